// Package money holds shared helpers for monetary values. All amounts in the
// system are fixed-point decimals with two fractional digits; float64 is never
// used for monetary arithmetic.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Zero is the canonical zero amount.
func Zero() decimal.Decimal {
	return decimal.Zero
}

// Round2 rounds an amount to two decimal places (half away from zero),
// matching the NUMERIC(12,2) column type used for storage.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Parse parses a decimal amount from its string form and normalizes it to
// two decimal places. An empty string parses to zero.
func Parse(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return Round2(d), nil
}

// IsNegative reports whether the amount is below zero.
func IsNegative(d decimal.Decimal) bool {
	return d.Sign() < 0
}

// Mul multiplies an amount by an integer quantity and rounds to two places.
func Mul(unit decimal.Decimal, qty int) decimal.Decimal {
	return Round2(unit.Mul(decimal.NewFromInt(int64(qty))))
}

// Percent returns rate% of the amount, rounded to two places.
// Percent(amount, 20) is a 20% share.
func Percent(amount decimal.Decimal, rate int64) decimal.Decimal {
	return Round2(amount.Mul(decimal.NewFromInt(rate)).Div(decimal.NewFromInt(100)))
}

// Min returns the smaller of two amounts.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}
