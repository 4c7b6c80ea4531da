package preprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/pricekit/pkg/errors"
)

func TestStandardScalerRoundTrip(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 10,
		3, 10,
		math.NaN(), 10,
	})
	s := NewStandardScalerDefault()
	Xs, err := s.FitTransform(X)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, s.Mean[0], 1e-12)
	assert.InDelta(t, math.Sqrt(2.0/3.0), s.Scale[0], 1e-12)
	assert.Equal(t, 1.0, s.Scale[1], "constant feature keeps scale 1")
	assert.True(t, math.IsNaN(Xs.At(3, 0)))

	back, err := s.InverseTransform(Xs)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, X.At(i, 0), back.At(i, 0), 1e-12)
	}
	assert.Contains(t, s.String(), "n_features=2")
}

func TestStandardScalerErrors(t *testing.T) {
	s := NewStandardScaler(true, false)
	_, err := s.Transform(mat.NewDense(1, 1, []float64{1}))
	var nf *errors.NotFittedError
	assert.True(t, errors.As(err, &nf))

	require.NoError(t, s.Fit(mat.NewDense(2, 1, []float64{1, 3})))
	assert.Equal(t, 1.0, s.Scale[0], "WithStd=false keeps unit scale")

	_, err = s.Transform(mat.NewDense(1, 2, []float64{1, 2}))
	var de *errors.DimensionError
	assert.True(t, errors.As(err, &de))
}

func TestMinMaxScaler(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{2, 4, 6})
	m := NewMinMaxScaler([2]float64{-1, 1})
	Xs, err := m.FitTransform(X)
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, 0, 1}, mat.Col(nil, 0, Xs))

	back, err := m.InverseTransform(Xs)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4, 6}, mat.Col(nil, 0, back))

	bad := NewMinMaxScaler([2]float64{1, 1})
	err = bad.Fit(X)
	var ip *errors.InvalidParameterError
	assert.True(t, errors.As(err, &ip))
}
