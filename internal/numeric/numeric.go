// Package numeric provides the canonical rounding and comparison primitives
// for quantities and monetary amounts.
//
// Repeated additions and subtractions of binary floats accumulate
// representation error (a true 6.61 can surface as 6.609999999999999), which
// can make a valid sell look like it exceeds the held balance. Every
// quantity/price comparison in the ledger must go through this package;
// comparing unrounded floats with raw operators is not allowed.
package numeric

import "math"

// Canonical precisions, in decimal places.
const (
	QuantityDecimals = 6 // share/unit quantities
	PriceDecimals    = 2 // per-unit prices
	CurrencyDecimals = 2 // monetary totals
)

// Round rounds v to the given number of decimal places, half away from zero.
func Round(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Trunc(v*pow+math.Copysign(0.5, v)) / pow
}

// Eq reports whether a and b are equal after rounding both to decimals places.
func Eq(a, b float64, decimals int) bool {
	return Round(a, decimals) == Round(b, decimals)
}

// Lt reports whether a < b after rounding both to decimals places.
func Lt(a, b float64, decimals int) bool {
	return Round(a, decimals) < Round(b, decimals)
}

// Gt reports whether a > b after rounding both to decimals places.
func Gt(a, b float64, decimals int) bool {
	return Round(a, decimals) > Round(b, decimals)
}

// Lte reports whether a <= b after rounding both to decimals places.
func Lte(a, b float64, decimals int) bool {
	return Round(a, decimals) <= Round(b, decimals)
}

// Gte reports whether a >= b after rounding both to decimals places.
func Gte(a, b float64, decimals int) bool {
	return Round(a, decimals) >= Round(b, decimals)
}

// IsZero reports whether v rounds to zero at decimals places.
func IsZero(v float64, decimals int) bool {
	return Round(v, decimals) == 0
}
