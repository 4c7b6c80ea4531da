package outlier

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/pricekit/core/frame"
	"github.com/YuminosukeSato/pricekit/pkg/errors"
)

const (
	// DefaultZThreshold is the z-score threshold used when none is set.
	DefaultZThreshold = 3.0
	// DefaultRobustThreshold is the modified z-score threshold used when none is set.
	DefaultRobustThreshold = 3.5
	// DefaultIQRMultiplier is the fence multiplier used when none is set.
	DefaultIQRMultiplier = 1.5
)

// ZScore は |v − 平均| / 標本標準偏差 が Threshold を超えるセルを外れ値とします。
// 標準偏差が0またはNaNの列では何もフラグしません。
// Threshold が0以下なら DefaultZThreshold を使います。
type ZScore struct {
	Threshold float64
}

// Detect implements Strategy.
func (s ZScore) Detect(ds *frame.Dataset) (*Mask, error) {
	threshold := s.Threshold
	if threshold <= 0 {
		threshold = DefaultZThreshold
	}
	return detectWith(ds, func(c *frame.Column) []bool {
		values := c.Floats()
		if len(values) < 2 {
			return make([]bool, c.Len())
		}
		mean, std := stat.MeanStdDev(values, nil)
		if std == 0 || !errors.IsFinite(std) {
			return make([]bool, c.Len())
		}
		return flagPresent(c, func(v float64) bool {
			return math.Abs(v-mean)/std > threshold
		})
	}), nil
}

// RobustZScore は修正zスコア 0.6745·|v − 中央値| / MAD で判定します。
// 少数の極端な値が平均と標準偏差を引っ張る小さな標本でも外れ値を検出できます。
// MAD が0の列では何もフラグしません。
type RobustZScore struct {
	Threshold float64
}

// Detect implements Strategy.
func (s RobustZScore) Detect(ds *frame.Dataset) (*Mask, error) {
	threshold := s.Threshold
	if threshold <= 0 {
		threshold = DefaultRobustThreshold
	}
	return detectWith(ds, func(c *frame.Column) []bool {
		values := c.Floats()
		if len(values) == 0 {
			return make([]bool, c.Len())
		}
		median := frame.Median(values)
		deviations := make([]float64, len(values))
		for i, v := range values {
			deviations[i] = math.Abs(v - median)
		}
		mad := frame.Median(deviations)
		if !errors.IsFinite(mad) {
			return make([]bool, c.Len())
		}
		return flagPresent(c, func(v float64) bool {
			z, ok := errors.SafeDivide(0.6745*math.Abs(v-median), mad)
			return ok && z > threshold
		})
	}), nil
}

// IQR は [Q1 − k·IQR, Q3 + k·IQR] の外側のセルを外れ値とします。
// 四分位数は線形補間で求めます。Multiplier が0以下なら1.5です。
type IQR struct {
	Multiplier float64
}

// Detect implements Strategy.
func (s IQR) Detect(ds *frame.Dataset) (*Mask, error) {
	k := s.Multiplier
	if k <= 0 {
		k = DefaultIQRMultiplier
	}
	return detectWith(ds, func(c *frame.Column) []bool {
		values := c.Floats()
		if len(values) == 0 {
			return make([]bool, c.Len())
		}
		q1 := frame.Quantile(values, 0.25)
		q3 := frame.Quantile(values, 0.75)
		iqr := q3 - q1
		lower, upper := q1-k*iqr, q3+k*iqr
		return flagPresent(c, func(v float64) bool {
			return v < lower || v > upper
		})
	}), nil
}
