package frame

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantile(t *testing.T) {
	values := []float64{10, 12, 11, 13, 1000}
	tests := []struct {
		q    float64
		want float64
	}{
		{0, 10},
		{0.25, 11},
		{0.5, 12},
		{0.75, 13},
		{1, 1000},
		{0.01, 10.04},
		{0.99, 960.52},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Quantile(values, tt.q), 1e-9, "q=%v", tt.q)
	}
	assert.Equal(t, []float64{10, 12, 11, 13, 1000}, values, "input must not be reordered")
	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
	assert.Equal(t, 2.5, Median([]float64{4, 1, 3, 2}))
}

func TestDescribe(t *testing.T) {
	ds := MustNew(
		NewFloatWithMissing("price", []float64{1, 2, 3, 0}, []bool{true, true, true, false}),
		NewText("fuel", []string{"Diesel", "Petrol", "Diesel", "CNG"}),
		NewFloatWithMissing("empty", []float64{0, 0, 0, 0}, []bool{false, false, false, false}),
	)
	summaries := ds.Describe()
	require.Len(t, summaries, 3)

	price := summaries[0]
	assert.Equal(t, 3, price.Count)
	assert.Equal(t, 1, price.Missing)
	assert.InDelta(t, 2.0, price.Mean, 1e-12)
	assert.InDelta(t, 1.0, price.Std, 1e-12)
	assert.Equal(t, 1.0, price.Min)
	assert.Equal(t, 1.5, price.Q25)
	assert.Equal(t, 2.0, price.Median)
	assert.Equal(t, 3.0, price.Max)

	fuel := summaries[1]
	assert.Equal(t, 3, fuel.Unique)
	assert.Equal(t, "Diesel", fuel.Top)
	assert.Equal(t, 2, fuel.TopFreq)

	empty := summaries[2]
	assert.Equal(t, 0, empty.Count)
	assert.True(t, math.IsNaN(empty.Mean))
}
