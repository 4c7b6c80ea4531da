package impute

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/pricekit/core/frame"
	"github.com/YuminosukeSato/pricekit/pkg/errors"
)

// Method は補完に使う統計量です。
type Method string

const (
	Mean     Method = NameMean
	Median   Method = NameMedian
	Mode     Method = NameMode
	Constant Method = NameConstant
)

// Fill は欠損値を補完します。
//
// Mean / Median は数値列だけを、同じデータセットの非欠損値から計算した統計量で埋めます。
// Mode はすべての列を最頻値で埋め、同数の場合は最小の値を選びます。
// Constant はすべての列を Value で埋めます。数値の定数はテキスト列では文字列として格納され、
// 数値列にテキストの定数を入れようとすると TypeMismatchError になります。
// すべて欠損の列は変更せず、UndefinedStatisticWarning を出します。
type Fill struct {
	Method Method
	Value  frame.Value
}

// Handle implements Strategy.
func (s Fill) Handle(ds *frame.Dataset) (*frame.Dataset, error) {
	var statistic func(c *frame.Column) (frame.Value, bool)
	switch s.Method {
	case Mean:
		statistic = numericStat(meanOf)
	case Median:
		statistic = numericStat(frame.Median)
	case Mode:
		statistic = modeOf
	case Constant:
		if s.Value.IsMissing() {
			return nil, errors.NewInvalidParameterError("fill_value", "a constant fill needs a value", nil)
		}
	default:
		warnUnknown(string(s.Method))
		return ds.Drop(), nil
	}

	out := ds.Drop()
	for _, c := range ds.Columns() {
		if c.MissingCount() == 0 {
			continue
		}

		var v frame.Value
		if s.Method == Constant {
			if c.IsNumeric() {
				if _, ok := s.Value.AsFloat(); !ok || s.Value.Kind() == frame.KindText {
					return nil, errors.NewTypeMismatchError("Fill", c.Name(), "numeric constant", s.Value.Kind().String())
				}
			}
			v = s.Value
		} else {
			if s.Method != Mode && !c.IsNumeric() {
				continue
			}
			var ok bool
			if v, ok = statistic(c); !ok {
				errors.Warn(errors.NewUndefinedStatisticWarning(c.Name(), string(s.Method), "all values are missing"))
				continue
			}
		}

		var err error
		if out, err = out.WithColumn(fillColumn(c, v)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// fillColumn replaces the missing cells of c with v. An Int column filled
// with a non-integral number becomes a Float column.
func fillColumn(c *frame.Column, v frame.Value) *frame.Column {
	kind := c.Kind()
	if kind == frame.KindInt {
		if f, _ := v.AsFloat(); f != math.Trunc(f) {
			kind = frame.KindFloat
		}
	}
	b := frame.NewBuilder(c.Name(), kind, c.Len())
	for i := 0; i < c.Len(); i++ {
		if c.IsMissing(i) {
			b.Append(v)
		} else {
			b.Append(c.Value(i))
		}
	}
	return b.Build()
}

func meanOf(values []float64) float64 {
	return stat.Mean(values, nil)
}

func numericStat(f func([]float64) float64) func(c *frame.Column) (frame.Value, bool) {
	return func(c *frame.Column) (frame.Value, bool) {
		values := c.Floats()
		if len(values) == 0 {
			return frame.Missing(), false
		}
		return frame.Float(f(values)), true
	}
}

// modeOf returns the most frequent value of c, the smallest one on ties.
func modeOf(c *frame.Column) (frame.Value, bool) {
	if c.IsNumeric() {
		counts := make(map[float64]int)
		for _, v := range c.Floats() {
			counts[v]++
		}
		if len(counts) == 0 {
			return frame.Missing(), false
		}
		keys := make([]float64, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Float64s(keys)
		best := keys[0]
		for _, k := range keys[1:] {
			if counts[k] > counts[best] {
				best = k
			}
		}
		return frame.Float(best), true
	}

	counts := make(map[string]int)
	for i := 0; i < c.Len(); i++ {
		if !c.IsMissing(i) {
			counts[c.Text(i)]++
		}
	}
	if len(counts) == 0 {
		return frame.Missing(), false
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	best := keys[0]
	for _, k := range keys[1:] {
		if counts[k] > counts[best] {
			best = k
		}
	}
	return frame.Text(best), true
}
