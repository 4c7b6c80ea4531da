package model_selection

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/pricekit/core/frame"
	"github.com/YuminosukeSato/pricekit/core/model"
	"github.com/YuminosukeSato/pricekit/pkg/errors"
	"github.com/YuminosukeSato/pricekit/pkg/log"
)

func TestMain(m *testing.M) {
	provider, _ := log.NewTestLoggerProvider(log.LevelDebug)
	log.SetProvider(provider)
	os.Exit(m.Run())
}

func cars(n int) *frame.Dataset {
	price := make([]float64, n)
	km := make([]int64, n)
	fuel := make([]string, n)
	for i := 0; i < n; i++ {
		price[i] = float64(100 + i)
		km[i] = int64(1000 * i)
		if i%2 == 0 {
			fuel[i] = "Diesel"
		} else {
			fuel[i] = "Petrol"
		}
	}
	return frame.MustNew(
		frame.NewInt("km_driven", km),
		frame.NewFloat("selling_price", price),
		frame.NewText("fuel", fuel),
	)
}

func TestTrainTestSplit(t *testing.T) {
	ds := cars(10)

	s, err := TrainTestSplit(ds, "selling_price", 0.2, 0)
	require.NoError(t, err)
	assert.Equal(t, 8, s.XTrain.NRows())
	assert.Equal(t, 2, s.XTest.NRows())
	assert.Equal(t, []string{"km_driven", "fuel"}, s.XTrain.Names())
	assert.Equal(t, []string{"selling_price"}, s.YTrain.Names())
	assert.Equal(t, s.XTrain.Index(), s.YTrain.Index())
	assert.Equal(t, s.XTest.Index(), s.YTest.Index())

	seen := map[int]bool{}
	for _, l := range append(s.XTrain.Index(), s.XTest.Index()...) {
		assert.False(t, seen[l], "label %d appears twice", l)
		seen[l] = true
	}
	assert.Len(t, seen, 10)

	for i := 0; i < s.XTest.NRows(); i++ {
		label := s.XTest.Label(i)
		y, _ := s.YTest.Column("selling_price")
		assert.Equal(t, float64(100+label), y.Float(i), "target stays aligned with its row")
	}
}

func TestTrainTestSplitReproducible(t *testing.T) {
	ds := cars(25)
	a, err := TrainTestSplit(ds, "selling_price", 0.3, 0)
	require.NoError(t, err)
	b, err := TrainTestSplit(ds, "selling_price", 0.3, 0)
	require.NoError(t, err)
	assert.Equal(t, a.XTest.Index(), b.XTest.Index())
	assert.Equal(t, a.XTrain.Index(), b.XTrain.Index())
	assert.Equal(t, 8, a.XTest.NRows(), "ceil(0.3 * 25)")
}

func TestSplitRoundTrip(t *testing.T) {
	ds := cars(12)
	s, err := TrainTestSplit(ds, "selling_price", 0.25, DefaultSeed)
	require.NoError(t, err)

	train, err := s.Train()
	require.NoError(t, err)
	test, err := s.Test()
	require.NoError(t, err)
	all, err := frame.Concat(train, test)
	require.NoError(t, err)
	restored, err := all.SortByIndex().Select(ds.Names()...)
	require.NoError(t, err)
	assert.True(t, restored.Equal(ds))
}

func TestTrainTestSplitErrors(t *testing.T) {
	ds := cars(4)
	tests := []struct {
		name     string
		target   string
		fraction float64
	}{
		{"zero fraction", "selling_price", 0},
		{"one", "selling_price", 1},
		{"negative", "selling_price", -0.5},
		{"empty train", "selling_price", 0.9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TrainTestSplit(ds, tt.target, tt.fraction, 0)
			var invalid *errors.InvalidParameterError
			assert.True(t, errors.As(err, &invalid))
		})
	}

	_, err := TrainTestSplit(ds, "price", 0.5, 0)
	var missing *errors.MissingColumnError
	assert.True(t, errors.As(err, &missing))

	_, err = TrainTestSplit(cars(1), "selling_price", 0.5, 0)
	assert.Error(t, err)
}

func TestStratifiedTrainTestSplit(t *testing.T) {
	ds := cars(20)
	s, err := StratifiedTrainTestSplit(ds, "fuel", 0.3, 0)
	require.NoError(t, err)
	assert.Equal(t, 6, s.YTest.NRows())
	assert.Equal(t, 14, s.YTrain.NRows())

	fuel, err := s.YTest.Column("fuel")
	require.NoError(t, err)
	counts := map[string]int{}
	for i := 0; i < fuel.Len(); i++ {
		counts[fuel.Text(i)]++
	}
	assert.Equal(t, map[string]int{"Diesel": 3, "Petrol": 3}, counts)

	again, err := StratifiedTrainTestSplit(ds, "fuel", 0.3, 0)
	require.NoError(t, err)
	assert.Equal(t, s.YTest.Index(), again.YTest.Index())
}

func TestStratifiedErrors(t *testing.T) {
	var strat *errors.StratificationError

	_, err := StratifiedTrainTestSplit(cars(10), "selling_price", 0.3, 0)
	assert.True(t, errors.As(err, &strat), "continuous target")

	single := frame.MustNew(
		frame.NewFloat("x", []float64{1, 2, 3, 4}),
		frame.NewText("fuel", []string{"CNG", "CNG", "CNG", "CNG"}),
	)
	_, err = StratifiedTrainTestSplit(single, "fuel", 0.5, 0)
	assert.True(t, errors.As(err, &strat), "single class")

	lonely := frame.MustNew(
		frame.NewFloat("x", []float64{1, 2, 3, 4, 5}),
		frame.NewText("fuel", []string{"CNG", "CNG", "LPG", "LPG", "Electric"}),
	)
	_, err = StratifiedTrainTestSplit(lonely, "fuel", 0.4, 0)
	assert.True(t, errors.As(err, &strat), "class with one member")

	missing := frame.MustNew(
		frame.NewFloat("x", []float64{1, 2, 3, 4}),
		frame.NewTextWithMissing("fuel", []string{"a", "a", "b", ""}, []bool{true, true, true, false}),
	)
	_, err = StratifiedTrainTestSplit(missing, "fuel", 0.5, 0)
	assert.True(t, errors.As(err, &strat), "missing target")
}

func TestSplitters(t *testing.T) {
	ds := cars(10)
	rec := model.NewRecorder()
	ctx := NewContext(SimpleSplit{Target: "selling_price", TestFraction: 0.2}, rec)

	s, err := ctx.Execute(ds)
	require.NoError(t, err)
	assert.Equal(t, 10, s.NRows())
	assert.Equal(t, 3, s.NCols())
	assert.Equal(t, []string{log.StageSplit}, rec.Finished)

	ctx.SetStrategy(Strategy(StratifiedSplit{Target: "fuel", TestFraction: 0.2}))
	s, err = ctx.Execute(ds)
	require.NoError(t, err)
	assert.Equal(t, 2, s.YTest.NRows())
}

func TestKFold(t *testing.T) {
	ds := cars(7)
	folds, err := KFold{NSplits: 3, Shuffle: true, Seed: 1}.Folds(ds, "selling_price")
	require.NoError(t, err)
	require.Len(t, folds, 3)

	sizes := []int{}
	seen := map[int]int{}
	for _, f := range folds {
		sizes = append(sizes, f.XTest.NRows())
		assert.Equal(t, 7, f.NRows())
		for _, l := range f.XTest.Index() {
			seen[l]++
		}
	}
	assert.Equal(t, []int{3, 2, 2}, sizes)
	assert.Len(t, seen, 7, "every row is tested exactly once")
	for _, c := range seen {
		assert.Equal(t, 1, c)
	}

	_, err = KFold{NSplits: 1}.Folds(ds, "selling_price")
	assert.Error(t, err)
}
