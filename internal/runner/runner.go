// Package runner chains the pricekit stages for one configured run:
// ingest, missing values, feature engineering, outlier filtering and split.
package runner

import (
	"os"
	"strconv"
	"time"

	"github.com/YuminosukeSato/pricekit/core/frame"
	"github.com/YuminosukeSato/pricekit/core/model"
	"github.com/YuminosukeSato/pricekit/impute"
	"github.com/YuminosukeSato/pricekit/ingest"
	"github.com/YuminosukeSato/pricekit/internal/config"
	"github.com/YuminosukeSato/pricekit/model_selection"
	"github.com/YuminosukeSato/pricekit/outlier"
	"github.com/YuminosukeSato/pricekit/pkg/errors"
	"github.com/YuminosukeSato/pricekit/pkg/log"
	"github.com/YuminosukeSato/pricekit/preprocessing"
)

// StageSummary records the shape of the dataset after one stage.
type StageSummary struct {
	Stage   string
	Rows    int
	Columns int
	Elapsed time.Duration
}

// Result is the outcome of a run.
type Result struct {
	Stages []StageSummary
	Clean  *frame.Dataset
	Split  *model_selection.Split
	Plots  []string
}

// Runner executes a configured run.
type Runner struct {
	cfg      *config.Config
	observer model.Observer
	logger   log.Logger
}

// New creates a runner. A nil observer reports to the runner logger.
func New(cfg *config.Config, observer model.Observer) *Runner {
	logger := log.GetLoggerWithName("runner")
	if observer == nil {
		observer = model.NewLogObserver(logger)
	}
	return &Runner{cfg: cfg, observer: observer, logger: logger}
}

// Run executes every stage in order and stops at the first error.
func (r *Runner) Run() (*Result, error) {
	res := &Result{}
	record := func(stage string, ds *frame.Dataset, start time.Time) {
		res.Stages = append(res.Stages, StageSummary{
			Stage:   stage,
			Rows:    ds.NRows(),
			Columns: ds.NCols(),
			Elapsed: time.Since(start),
		})
	}

	start := time.Now()
	ingestor, err := ingest.ForPath(r.cfg.Source)
	if err != nil {
		return nil, err
	}
	ds, err := ingestor.Ingest(r.cfg.Source)
	if err != nil {
		return nil, err
	}
	record(log.StageIngest, ds, start)

	start = time.Now()
	handler := impute.NewHandler(
		impute.ByName(r.cfg.Missing.Strategy, fillValue(r.cfg.Missing.FillValue)),
		impute.WithObserver(r.observer),
	)
	if ds, err = handler.Handle(ds); err != nil {
		return nil, errors.Wrap(err, "handle missing values")
	}
	record(log.StageMissing, ds, start)

	start = time.Now()
	registry, err := preprocessing.DefaultRegistry(r.cfg.Features.ReferenceYear, preprocessing.WithObserver(r.observer))
	if err != nil {
		return nil, err
	}
	if ds, err = registry.Apply(ds, r.cfg.Features.Transforms); err != nil {
		return nil, err
	}
	record(log.StageFeatures, ds, start)

	if r.cfg.PlotDir != "" {
		if res.Plots, err = r.plot(ds); err != nil {
			return nil, err
		}
	}

	start = time.Now()
	strategy, err := outlier.ByName(r.cfg.Outliers.Detector, r.cfg.Outliers.Threshold)
	if err != nil {
		return nil, err
	}
	detector := outlier.NewDetector(strategy, outlier.WithObserver(r.observer))
	for _, column := range r.cfg.Outliers.Columns {
		if ds, err = detector.Filter(ds, column, r.cfg.Outliers.Method); err != nil {
			return nil, errors.Wrapf(err, "filter outliers of %s", column)
		}
	}
	record(log.StageOutliers, ds, start)
	res.Clean = ds

	start = time.Now()
	if res.Split, err = model_selection.NewContext(r.splitter(), r.observer).Execute(ds); err != nil {
		return nil, err
	}
	res.Stages = append(res.Stages, StageSummary{
		Stage:   log.StageSplit,
		Rows:    res.Split.NRows(),
		Columns: res.Split.NCols(),
		Elapsed: time.Since(start),
	})

	r.logger.Info("Run finished",
		"source", r.cfg.Source,
		"train_rows", res.Split.XTrain.NRows(),
		"test_rows", res.Split.XTest.NRows(),
	)
	return res, nil
}

func (r *Runner) splitter() model_selection.Splitter {
	s := r.cfg.Split
	if s.Stratified {
		return model_selection.StratifiedSplit{Target: s.Target, TestFraction: s.TestFraction, Seed: s.Seed}
	}
	return model_selection.SimpleSplit{Target: s.Target, TestFraction: s.TestFraction, Seed: s.Seed}
}

// plot draws box plots of the configured outlier columns that are present.
func (r *Runner) plot(ds *frame.Dataset) ([]string, error) {
	if err := os.MkdirAll(r.cfg.PlotDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create plot directory %s", r.cfg.PlotDir)
	}
	var features []string
	for _, name := range r.cfg.Outliers.Columns {
		if c, err := ds.Column(name); err == nil && c.IsNumeric() {
			features = append(features, name)
		}
	}
	return outlier.PlotBoxes(ds, features, r.cfg.PlotDir)
}

// fillValue reads a configured constant: numbers become Float values,
// anything else Text, and an empty string the missing marker.
func fillValue(s string) frame.Value {
	if s == "" {
		return frame.Missing()
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return frame.Float(f)
	}
	return frame.Text(s)
}
