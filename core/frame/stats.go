package frame

import (
	"math"
	"sort"
)

// Quantile returns the q-th quantile (0 <= q <= 1) of values using linear
// interpolation between closest ranks, the default of numpy and pandas.
// values need not be sorted and is not modified. Empty input returns NaN.
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 || math.IsNaN(q) {
		return math.NaN()
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return QuantileSorted(sorted, q)
}

// QuantileSorted is Quantile for input already sorted in ascending order.
func QuantileSorted(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	q = math.Max(0, math.Min(1, q))
	h := q * float64(n-1)
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo])
}

// Median returns the 0.5 quantile of values.
func Median(values []float64) float64 {
	return Quantile(values, 0.5)
}
