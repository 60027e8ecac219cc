package service

import (
	"github.com/dukerupert/storefront/internal/domain"
)

// Cart errors
var (
	ErrInvalidIdentity  = domain.ErrInvalidIdentity
	ErrInvalidQuantity  = domain.ErrInvalidQuantity
	ErrEmptyCart        = domain.ErrEmptyCart
	ErrUnauthorized     = domain.ErrCartOwnerMismatch
	ErrCartNotFound     = domain.Errorf(domain.ENOTFOUND, "", "Cart not found")
	ErrCartItemNotFound = domain.Errorf(domain.ENOTFOUND, "", "Cart item not found")
	ErrProductNotFound  = domain.ErrProductNotFound
)

// Fulfillment rejections
var (
	ErrInvalidSignature      = domain.ErrInvalidSignature
	ErrMissingAccountContext = domain.ErrMissingAccountContext
	ErrCartGone              = domain.ErrCartGone
	ErrAmountMismatch        = domain.ErrAmountMismatch
	ErrInsufficientStock     = domain.ErrInsufficientStock
	ErrOrderNotFound         = domain.ErrOrderNotFound
)

// Analytics
var (
	ErrInvalidRange = domain.Errorf(domain.EINVALID, "", "Start must be before end")
)
