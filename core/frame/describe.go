package frame

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/pricekit/core/parallel"
)

// describeSequential is the column count up to which Describe stays on the
// calling goroutine.
const describeSequential = 16

// Summary は1列分の要約統計量です。
// 数値列では Mean〜Max が、テキスト列では Unique と Top が埋められます。
type Summary struct {
	Column  string
	Kind    Kind
	Count   int
	Missing int

	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64

	Unique  int
	Top     string
	TopFreq int
}

// Describe computes per-column summary statistics in column order.
// Numeric statistics of a column without values are NaN.
func (d *Dataset) Describe() []Summary {
	out := make([]Summary, d.NCols())
	parallel.ForEach(len(d.cols), describeSequential, func(j int) {
		c := d.cols[j]
		s := Summary{
			Column:  c.Name(),
			Kind:    c.Kind(),
			Count:   c.Len() - c.MissingCount(),
			Missing: c.MissingCount(),
		}
		if c.IsNumeric() {
			describeNumeric(&s, c.Floats())
		} else {
			describeText(&s, c)
		}
		out[j] = s
	})
	return out
}

func describeNumeric(s *Summary, values []float64) {
	nan := math.NaN()
	s.Mean, s.Std, s.Min, s.Q25, s.Median, s.Q75, s.Max = nan, nan, nan, nan, nan, nan, nan
	if len(values) == 0 {
		return
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	if len(sorted) > 1 {
		s.Mean, s.Std = stat.MeanStdDev(sorted, nil)
	} else {
		s.Mean = sorted[0]
	}
	s.Min = floats.Min(sorted)
	s.Max = floats.Max(sorted)
	s.Q25 = QuantileSorted(sorted, 0.25)
	s.Median = QuantileSorted(sorted, 0.5)
	s.Q75 = QuantileSorted(sorted, 0.75)
}

func describeText(s *Summary, c *Column) {
	counts := make(map[string]int)
	for i := 0; i < c.Len(); i++ {
		if !c.IsMissing(i) {
			counts[c.Text(i)]++
		}
	}
	s.Unique = len(counts)
	for v, n := range counts {
		// ties resolve to the lexically smallest value
		if n > s.TopFreq || (n == s.TopFreq && v < s.Top) {
			s.Top, s.TopFreq = v, n
		}
	}
}
