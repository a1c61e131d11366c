package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of fractional digits stored for monetary amounts.
const MoneyPlaces int32 = 2

// RatePlaces is the number of fractional digits stored for exchange rates.
const RatePlaces int32 = 4

var hundred = decimal.NewFromInt(100)

// RoundUp rounds d away from zero to the given number of places. A value that
// already fits is returned unchanged, so for positive amounts the result is the
// smallest value with that many places that is >= d.
func RoundUp(d decimal.Decimal, places int32) decimal.Decimal {
	return d.RoundUp(places)
}

// RoundMoney rounds a monetary amount up to cents.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return RoundUp(d, MoneyPlaces)
}

// RoundHalfUp rounds half away from zero (never to even). Used for values that
// are displayed rather than charged, such as rates.
func RoundHalfUp(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Round(places)
}

// FractionToPercentage converts a fee fraction (0.10) to a percentage (10.00).
func FractionToPercentage(fraction decimal.Decimal) decimal.Decimal {
	return fraction.Mul(hundred).Round(MoneyPlaces)
}

// FeeSplit is the result of applying a fee fraction to an amount. Both values
// are unrounded.
type FeeSplit struct {
	Fee            decimal.Decimal
	AmountAfterFee decimal.Decimal
}

// ApplyFee splits amount into the fee and the remainder. The remainder is
// computed from the unrounded fee; callers round each value for output.
func ApplyFee(amount, fraction decimal.Decimal) (FeeSplit, error) {
	if fraction.IsNegative() || fraction.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return FeeSplit{}, fmt.Errorf("fee fraction %s out of range [0, 1)", fraction.String())
	}
	fee := amount.Mul(fraction)
	return FeeSplit{Fee: fee, AmountAfterFee: amount.Sub(fee)}, nil
}

// HasAtMostPlaces reports whether d has no more than places fractional digits.
func HasAtMostPlaces(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Truncate(places))
}
