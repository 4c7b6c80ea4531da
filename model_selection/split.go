// Package model_selection はデータセットを学習用とテスト用に分割します。
//
// 分割はシード付き PCG 乱数による置換に基づき、同じ入力とシードに対して常に同じ結果を返します。
// 特徴量とターゲットの各データセットは同じインデックスラベルを同じ順序で共有します。
package model_selection

import (
	"math"
	"math/rand/v2"

	"github.com/YuminosukeSato/pricekit/core/frame"
	"github.com/YuminosukeSato/pricekit/pkg/errors"
	"github.com/YuminosukeSato/pricekit/pkg/log"
)

// DefaultSeed is the seed used by configurations that do not set one.
const DefaultSeed int64 = 42

// Split holds the four datasets produced by a train/test split.
type Split struct {
	XTrain *frame.Dataset
	XTest  *frame.Dataset
	YTrain *frame.Dataset
	YTest  *frame.Dataset
}

// NRows returns the number of rows across both sides.
func (s *Split) NRows() int { return s.XTrain.NRows() + s.XTest.NRows() }

// NCols returns the number of feature columns plus the target column.
func (s *Split) NCols() int { return s.XTrain.NCols() + s.YTrain.NCols() }

// Train returns the training features joined with their target.
func (s *Split) Train() (*frame.Dataset, error) { return Join(s.XTrain, s.YTrain) }

// Test returns the test features joined with their target.
func (s *Split) Test() (*frame.Dataset, error) { return Join(s.XTest, s.YTest) }

// Join appends the target columns to features, matching rows by index label.
func Join(features, target *frame.Dataset) (*frame.Dataset, error) {
	return features.JoinByIndex(target)
}

// TrainTestSplit はターゲット列を分離し、行をランダムに学習用とテスト用へ振り分けます。
// テスト側の行数は ceil(testFraction·n) です。
func TrainTestSplit(ds *frame.Dataset, target string, testFraction float64, seed int64) (*Split, error) {
	nTest, err := validate(ds, "model_selection.TrainTestSplit", target, testFraction)
	if err != nil {
		return nil, err
	}
	perm := newRand(seed).Perm(ds.NRows())
	split, err := build(ds, target, perm[nTest:], perm[:nTest])
	if err != nil {
		return nil, err
	}
	logSplit("simple", split, testFraction, seed)
	return split, nil
}

func validate(ds *frame.Dataset, op, target string, testFraction float64) (int, error) {
	if err := ds.Require(op, target); err != nil {
		return 0, err
	}
	if math.IsNaN(testFraction) || testFraction <= 0 || testFraction >= 1 {
		return 0, errors.NewInvalidParameterError("test_fraction", "must be in the open interval (0, 1)", testFraction)
	}
	n := ds.NRows()
	nTest := int(math.Ceil(testFraction * float64(n)))
	if nTest < 1 || n-nTest < 1 {
		return 0, errors.NewInvalidParameterError("test_fraction",
			"train and test splits must both be non-empty", testFraction)
	}
	return nTest, nil
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}

// build takes the given row positions into the four datasets.
func build(ds *frame.Dataset, target string, train, test []int) (*Split, error) {
	features := ds.Drop(target)
	y, err := ds.Select(target)
	if err != nil {
		return nil, err
	}
	return &Split{
		XTrain: features.Take(train),
		XTest:  features.Take(test),
		YTrain: y.Take(train),
		YTest:  y.Take(test),
	}, nil
}

func logSplit(kind string, s *Split, testFraction float64, seed int64) {
	log.GetLoggerWithName("model_selection").Info("Split dataset",
		log.StageKey, log.StageSplit,
		log.StrategyKey, kind,
		"train_rows", s.XTrain.NRows(),
		"test_rows", s.XTest.NRows(),
		log.TestFractionKey, testFraction,
		log.RandomSeedKey, seed,
	)
}
