package errors

import (
	"math"
)

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ClipValue clips a value to the range [min, max].
func ClipValue(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// SafeDivide performs division with protection against division by zero.
// The second return value is false when the denominator is zero, NaN or
// close enough to zero that the quotient is meaningless.
func SafeDivide(numerator, denominator float64) (float64, bool) {
	if math.IsNaN(denominator) || math.Abs(denominator) < 1e-12 {
		return 0, false
	}
	return numerator / denominator, true
}
