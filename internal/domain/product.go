package domain

import (
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)

	// AmountEpsilon is the tolerance used when reconciling a charged
	// amount against a recomputed cart total.
	AmountEpsilon = decimal.RequireFromString("0.01")
)

var ErrProductNotFound = &Error{Code: ENOTFOUND, Message: "Product not found"}

// EffectiveUnitPrice applies a percentage discount to a list price and
// rounds to cents.
func EffectiveUnitPrice(listPrice, discountPercent decimal.Decimal) decimal.Decimal {
	return listPrice.Mul(hundred.Sub(discountPercent)).Div(hundred).Round(2)
}

// ToCents converts a two-place amount to minor units.
func ToCents(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

// FromCents converts minor units to a two-place amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// AmountsMatch reports whether two amounts agree within AmountEpsilon.
func AmountsMatch(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(AmountEpsilon)
}
