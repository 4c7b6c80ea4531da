package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/pricekit/pkg/log"
)

type grid struct{ rows, cols int }

func (g grid) NRows() int { return g.rows }
func (g grid) NCols() int { return g.cols }

func TestContextExecute(t *testing.T) {
	rec := NewRecorder()
	double := StrategyFunc[grid, grid](func(g grid) (grid, error) {
		return grid{rows: g.rows * 2, cols: g.cols}, nil
	})
	ctx := NewContext[grid, grid]("double", double, rec)

	out, err := ctx.Execute(grid{rows: 2, cols: 3})
	require.NoError(t, err)
	assert.Equal(t, grid{rows: 4, cols: 3}, out)
	assert.Equal(t, []string{"double"}, rec.Started)
	assert.Equal(t, []string{"double"}, rec.Finished)
	assert.Equal(t, "double", ctx.Stage())
}

func TestContextSwapStrategy(t *testing.T) {
	ctx := NewContext[int, int]("swap", StrategyFunc[int, int](func(i int) (int, error) { return i + 1, nil }), nil)

	got, err := ctx.Execute(1)
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	boom := errors.New("boom")
	ctx.SetStrategy(StrategyFunc[int, int](func(int) (int, error) { return 0, boom }))
	_, err = ctx.Execute(1)
	assert.ErrorIs(t, err, boom)
	assert.NotNil(t, ctx.Strategy())
}

func TestLogObserver(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	obs := NewLogObserver(logger)

	obs.StageStarted(log.StageOutliers, 10, 3)
	obs.RowsDropped(log.StageOutliers, 2)
	obs.RowsDropped(log.StageOutliers, 0)
	obs.ValuesCoerced(log.StageFeatures, "mileage", 4)

	entries, err := logger.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "Stage started", entries[0]["message"])
	assert.Equal(t, 2.0, entries[1][log.RowsDroppedKey])
	assert.Equal(t, "mileage", entries[2][log.ColumnKey])
	assert.Equal(t, "WARN", entries[2]["level"])
}

func TestBaseEstimatorState(t *testing.T) {
	var e BaseEstimator
	assert.False(t, e.IsFitted())
	assert.Equal(t, "not fitted", e.State().String())
	e.SetFitted()
	assert.True(t, e.IsFitted())
	assert.Equal(t, Fitted, e.State())
	e.Reset()
	assert.False(t, e.IsFitted())
}
