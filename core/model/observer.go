package model

import (
	"time"

	"github.com/YuminosukeSato/pricekit/pkg/log"
)

// Observer receives progress notifications from pipeline stages.
type Observer interface {
	// StageStarted is called before a stage runs on a dataset of the given shape.
	StageStarted(stage string, rows, cols int)

	// StageFinished is called after a stage succeeded.
	StageFinished(stage string, rows, cols int, elapsed time.Duration)

	// RowsDropped reports rows removed by a stage.
	RowsDropped(stage string, count int)

	// ValuesCoerced reports cells of column turned into the missing marker.
	ValuesCoerced(stage, column string, count int)
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) StageStarted(string, int, int)                 {}
func (NopObserver) StageFinished(string, int, int, time.Duration) {}
func (NopObserver) RowsDropped(string, int)                       {}
func (NopObserver) ValuesCoerced(string, string, int)             {}

// LogObserver writes notifications to a structured logger.
type LogObserver struct {
	logger log.Logger
}

// NewLogObserver returns an observer logging through logger.
func NewLogObserver(logger log.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) StageStarted(stage string, rows, cols int) {
	o.logger.Debug("Stage started",
		log.StageKey, stage,
		log.RowsKey, rows,
		log.ColumnsKey, cols,
	)
}

func (o *LogObserver) StageFinished(stage string, rows, cols int, elapsed time.Duration) {
	o.logger.Info("Stage finished",
		log.StageKey, stage,
		log.RowsKey, rows,
		log.ColumnsKey, cols,
		log.DurationMsKey, elapsed.Milliseconds(),
	)
}

func (o *LogObserver) RowsDropped(stage string, count int) {
	if count == 0 {
		return
	}
	o.logger.Info("Rows dropped",
		log.StageKey, stage,
		log.RowsDroppedKey, count,
	)
}

func (o *LogObserver) ValuesCoerced(stage, column string, count int) {
	if count == 0 {
		return
	}
	o.logger.Warn("Values coerced to missing",
		log.StageKey, stage,
		log.ColumnKey, column,
		log.ValuesCoercedKey, count,
	)
}

// Recorder is an Observer that keeps counters in memory.
type Recorder struct {
	Started  []string
	Finished []string
	Dropped  map[string]int
	Coerced  map[string]int
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{Dropped: map[string]int{}, Coerced: map[string]int{}}
}

func (r *Recorder) StageStarted(stage string, _, _ int) { r.Started = append(r.Started, stage) }

func (r *Recorder) StageFinished(stage string, _, _ int, _ time.Duration) {
	r.Finished = append(r.Finished, stage)
}

func (r *Recorder) RowsDropped(stage string, count int) { r.Dropped[stage] += count }

func (r *Recorder) ValuesCoerced(_, column string, count int) { r.Coerced[column] += count }
