package model_selection

import (
	"github.com/YuminosukeSato/pricekit/core/frame"
	"github.com/YuminosukeSato/pricekit/core/model"
	"github.com/YuminosukeSato/pricekit/pkg/errors"
	"github.com/YuminosukeSato/pricekit/pkg/log"
)

// Splitter はデータセットを分割する戦略です。
type Splitter interface {
	Split(ds *frame.Dataset) (*Split, error)
}

// SimpleSplit performs a shuffled train/test split.
type SimpleSplit struct {
	Target       string
	TestFraction float64
	Seed         int64
}

// Split implements Splitter.
func (s SimpleSplit) Split(ds *frame.Dataset) (*Split, error) {
	return TrainTestSplit(ds, s.Target, s.TestFraction, s.Seed)
}

// StratifiedSplit performs a class-preserving train/test split.
type StratifiedSplit struct {
	Target       string
	TestFraction float64
	Seed         int64
}

// Split implements Splitter.
func (s StratifiedSplit) Split(ds *frame.Dataset) (*Split, error) {
	return StratifiedTrainTestSplit(ds, s.Target, s.TestFraction, s.Seed)
}

// NewContext wraps s in a strategy context reporting to observer under the
// split stage.
func NewContext(s Splitter, observer model.Observer) *model.Context[*frame.Dataset, *Split] {
	return model.NewContext[*frame.Dataset, *Split](log.StageSplit, Strategy(s), observer)
}

// Strategy adapts a Splitter to model.Strategy.
func Strategy(s Splitter) model.Strategy[*frame.Dataset, *Split] {
	return model.StrategyFunc[*frame.Dataset, *Split](s.Split)
}

// KFold は行を NSplits 個のフォールドに分け、各フォールドをテスト側とする分割を返します。
type KFold struct {
	NSplits int
	Shuffle bool
	Seed    int64
}

// Folds returns one Split per fold. Fold sizes differ by at most one row.
func (kf KFold) Folds(ds *frame.Dataset, target string) ([]*Split, error) {
	if err := ds.Require("model_selection.KFold", target); err != nil {
		return nil, err
	}
	n := ds.NRows()
	if kf.NSplits < 2 || kf.NSplits > n {
		return nil, errors.NewInvalidParameterError("n_splits", "must be between 2 and the number of rows", kf.NSplits)
	}

	positions := make([]int, n)
	for i := range positions {
		positions[i] = i
	}
	if kf.Shuffle {
		r := newRand(kf.Seed)
		r.Shuffle(n, func(i, j int) { positions[i], positions[j] = positions[j], positions[i] })
	}

	foldSize, remainder := n/kf.NSplits, n%kf.NSplits
	folds := make([]*Split, 0, kf.NSplits)
	start := 0
	for i := 0; i < kf.NSplits; i++ {
		size := foldSize
		if i < remainder {
			size++
		}
		test := positions[start : start+size]
		train := make([]int, 0, n-size)
		train = append(train, positions[:start]...)
		train = append(train, positions[start+size:]...)

		split, err := build(ds, target, train, test)
		if err != nil {
			return nil, err
		}
		folds = append(folds, split)
		start += size
	}
	return folds, nil
}
