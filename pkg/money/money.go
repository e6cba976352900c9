package money

import "github.com/shopspring/decimal"

// Round2 rounds a monetary amount to 2 decimal places, half-up.
func Round2(v float64) float64 {
	out, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return out
}

// Cents converts an amount to whole cents after half-up rounding.
func Cents(v float64) int64 {
	return decimal.NewFromFloat(v).Round(2).Shift(2).IntPart()
}

// EqualWithinCent reports whether two amounts differ by at most one cent.
func EqualWithinCent(a, b float64) bool {
	d := Cents(a) - Cents(b)
	return d >= -1 && d <= 1
}
