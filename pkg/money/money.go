// Package money centralizes monetary arithmetic for the reconciliation core.
// All fee math goes through decimals and is rounded to 2 places at each step;
// entities store the resulting float64 values (decimal(10,2) columns).
package money

import "github.com/shopspring/decimal"

// Tolerance is the maximum difference (1 cent) under which two stored
// amounts are considered equal.
const Tolerance = 0.01

// Round2 rounds v to 2 decimal places using banker's-free half-up rounding.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Mul computes round2(amount * rate).
func Mul(amount, rate float64) float64 {
	f, _ := decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(rate)).
		Round(2).
		Float64()
	return f
}

// Add computes round2(a + b). Addition of 2dp values is exact in decimal,
// the rounding only normalizes inputs that were never rounded.
func Add(a, b float64) float64 {
	f, _ := decimal.NewFromFloat(a).
		Add(decimal.NewFromFloat(b)).
		Round(2).
		Float64()
	return f
}

// Sub computes round2(a - b).
func Sub(a, b float64) float64 {
	f, _ := decimal.NewFromFloat(a).
		Sub(decimal.NewFromFloat(b)).
		Round(2).
		Float64()
	return f
}

// Half computes round2(v / 2).
func Half(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).
		Div(decimal.NewFromInt(2)).
		Round(2).
		Float64()
	return f
}

// Share computes round2(total * num / den), the proportional slice of total.
// den == 0 yields 0.
func Share(total, num, den float64) float64 {
	if den == 0 {
		return 0
	}
	f, _ := decimal.NewFromFloat(total).
		Mul(decimal.NewFromFloat(num)).
		Div(decimal.NewFromFloat(den)).
		Round(2).
		Float64()
	return f
}

// ToCents converts a 2dp amount to integer cents for the processor API.
func ToCents(v float64) int64 {
	return decimal.NewFromFloat(v).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// FromCents converts processor cents back to a 2dp amount.
func FromCents(c int64) float64 {
	f, _ := decimal.NewFromInt(c).Div(decimal.NewFromInt(100)).Float64()
	return f
}

// WithinTolerance reports whether a and b differ by at most one cent.
func WithinTolerance(a, b float64) bool {
	diff := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Abs()
	return diff.LessThanOrEqual(decimal.NewFromFloat(Tolerance))
}
