// Package money provides the monetary rounding and rate primitives shared by
// the lending domain. All currency amounts are decimal values rounded to two
// places; interest and fee rates are plain decimals (0.18 means 18%).
package money

import (
	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// Round rounds a currency amount to two decimal places using half-up
// rounding. It is applied to the final result of a formula, never to
// intermediate steps, so rounding drift does not compound.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// NormalizeRate converts a rate given as a whole percentage into its decimal
// form: 18 becomes 0.18, 12.5 becomes 0.125. Values less than or equal to 1
// are assumed to already be decimal rates and pass through unchanged.
// Normalization happens once, at the boundary where product parameters enter
// the engine.
func NormalizeRate(r decimal.Decimal) decimal.Decimal {
	if r.GreaterThan(one) {
		return r.Div(hundred)
	}
	return r
}

// MonthlyRate derives the monthly rate from an annual decimal rate.
func MonthlyRate(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(twelve)
}

// Fraction returns amount multiplied by rate, rounded to a currency amount.
// It is the single place percentage/fee math happens.
func Fraction(amount, rate decimal.Decimal) decimal.Decimal {
	return Round(amount.Mul(rate))
}
