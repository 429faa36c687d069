// Package money converts the platform's major-unit decimal amounts into the
// integer minor units Klarna expects, and selects the taxation policy for a
// purchase country.
package money

import "github.com/shopspring/decimal"

var (
	hundred     = decimal.NewFromInt(100)
	tenThousand = decimal.NewFromInt(10000)
)

// Minor converts a major-unit amount to integer minor units, rounding half
// away from zero (0.005 becomes 1 cent, never banker's rounding).
func Minor(v decimal.Decimal) int64 {
	return v.Mul(hundred).Round(0).IntPart()
}

// Rate converts a fractional tax rate to Klarna's integer encoding of basis
// points x100: a 20% rate (0.2) is encoded as 2000.
func Rate(v decimal.Decimal) int64 {
	return v.Mul(tenThousand).Round(0).IntPart()
}
