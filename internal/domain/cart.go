package domain

import (
	"github.com/google/uuid"
)

// CartStatus is the lifecycle state of a cart.
type CartStatus string

const (
	CartStatusActive    CartStatus = "active"
	CartStatusConverted CartStatus = "converted"
)

// CartEventType names an immutable cart lifecycle fact.
type CartEventType string

const (
	CartEventAdd               CartEventType = "ADD"
	CartEventCheckoutStarted   CartEventType = "CHECKOUT_STARTED"
	CartEventCheckoutCompleted CartEventType = "CHECKOUT_COMPLETED"
)

// Valid reports whether t is one of the known event types.
func (t CartEventType) Valid() bool {
	switch t {
	case CartEventAdd, CartEventCheckoutStarted, CartEventCheckoutCompleted:
		return true
	}
	return false
}

// Cart errors
var (
	ErrInvalidIdentity = &Error{
		Code:    EINVALID,
		Message: "A session or account identifier is required",
	}

	ErrInvalidQuantity = &Error{
		Code:    EINVALID,
		Message: "Quantity must be greater than 0",
	}

	ErrEmptyCart = &Error{
		Code:    EINVALID,
		Message: "Cart is empty",
	}

	// ErrCartOwnerMismatch is returned when a caller acts on a line item
	// that belongs to a cart held by another identity.
	ErrCartOwnerMismatch = &Error{
		Code:    EFORBIDDEN,
		Message: "Access denied: cart item belongs to a different cart",
	}
)

type ownerKind uint8

const (
	ownerNone ownerKind = iota
	ownerAnonymous
	ownerAccount
)

// CartOwner identifies the holder of a cart. It is either an anonymous
// session or an authenticated account, never both. The zero value is
// invalid; build one with AnonymousOwner, AccountOwner or OwnerFrom.
type CartOwner struct {
	kind      ownerKind
	sessionID string
	accountID uuid.UUID
}

// AnonymousOwner returns the owner for an unauthenticated session.
func AnonymousOwner(sessionID string) CartOwner {
	if sessionID == "" {
		return CartOwner{}
	}
	return CartOwner{kind: ownerAnonymous, sessionID: sessionID}
}

// AccountOwner returns the owner for an authenticated account.
func AccountOwner(accountID uuid.UUID) CartOwner {
	if accountID == uuid.Nil {
		return CartOwner{}
	}
	return CartOwner{kind: ownerAccount, accountID: accountID}
}

// OwnerFrom picks the authoritative identity for a request. An account
// always wins over a session. Both absent yields ErrInvalidIdentity.
func OwnerFrom(accountID uuid.UUID, sessionID string) (CartOwner, error) {
	if accountID != uuid.Nil {
		return AccountOwner(accountID), nil
	}
	if sessionID != "" {
		return AnonymousOwner(sessionID), nil
	}
	return CartOwner{}, ErrInvalidIdentity
}

func (o CartOwner) Valid() bool       { return o.kind != ownerNone }
func (o CartOwner) IsAccount() bool   { return o.kind == ownerAccount }
func (o CartOwner) IsAnonymous() bool { return o.kind == ownerAnonymous }

// AccountID returns the account id when the owner is an account.
func (o CartOwner) AccountID() (uuid.UUID, bool) {
	return o.accountID, o.kind == ownerAccount
}

// SessionID returns the session id when the owner is anonymous.
func (o CartOwner) SessionID() (string, bool) {
	return o.sessionID, o.kind == ownerAnonymous
}

func (o CartOwner) String() string {
	switch o.kind {
	case ownerAccount:
		return "account:" + o.accountID.String()
	case ownerAnonymous:
		return "session:" + o.sessionID
	}
	return "none"
}
