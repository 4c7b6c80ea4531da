package preprocessing

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/pricekit/core/frame"
	"github.com/YuminosukeSato/pricekit/core/model"
)

// FittedScaling は学習済みのスケーラーと対象列です。
// 訓練データで Fit し、テストデータにも同じパラメータで Transform できます。
type FittedScaling struct {
	Columns []string
	Scaler  model.InverseTransformer
}

// Transform applies the fitted scaler to the same columns of ds.
func (f *FittedScaling) Transform(ds *frame.Dataset) (*frame.Dataset, error) {
	return f.apply(ds, "FittedScaling.Transform", f.Scaler.Transform)
}

// Inverse maps scaled columns of ds back to their original scale.
func (f *FittedScaling) Inverse(ds *frame.Dataset) (*frame.Dataset, error) {
	return f.apply(ds, "FittedScaling.Inverse", f.Scaler.InverseTransform)
}

func (f *FittedScaling) apply(ds *frame.Dataset, op string, fn func(mat.Matrix) (mat.Matrix, error)) (*frame.Dataset, error) {
	X, err := scalingMatrix(ds, op, f.Columns)
	if err != nil {
		return nil, err
	}
	scaled, err := fn(X)
	if err != nil {
		return nil, err
	}

	out := ds.Drop()
	for j, name := range f.Columns {
		values := mat.Col(nil, j, scaled)
		if out, err = out.WithColumn(frame.NewFloat(name, values)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// scalingMatrix extracts the named numeric columns as a matrix, NaN for missing.
func scalingMatrix(ds *frame.Dataset, op string, columns []string) (*mat.Dense, error) {
	for _, name := range columns {
		if _, err := requireNumeric(ds, op, name); err != nil {
			return nil, err
		}
	}
	sub, err := ds.Select(columns...)
	if err != nil {
		return nil, err
	}
	X, _, err := sub.NumericMatrix()
	return X, err
}

// resolveColumns returns columns, or every numeric column of ds when empty.
func resolveColumns(ds *frame.Dataset, columns []string) []string {
	if len(columns) > 0 {
		return columns
	}
	numeric, _ := ds.SplitNumeric()
	return numeric.Names()
}

func fitScaling(ds *frame.Dataset, op string, columns []string, scaler model.InverseTransformer) (*FittedScaling, error) {
	columns = resolveColumns(ds, columns)
	X, err := scalingMatrix(ds, op, columns)
	if err != nil {
		return nil, err
	}
	if err := scaler.Fit(X); err != nil {
		return nil, err
	}
	return &FittedScaling{Columns: append([]string(nil), columns...), Scaler: scaler}, nil
}

// StandardScaling は列を平均0・標準偏差1に標準化します。
// Columns が空の場合はすべての数値列が対象です。
type StandardScaling struct {
	Columns []string
}

func (t StandardScaling) Kind() string { return KindStandardScaling }

// Fit fits a fresh StandardScaler on ds. Nothing is cached on t.
func (t StandardScaling) Fit(ds *frame.Dataset) (*FittedScaling, error) {
	return fitScaling(ds, "StandardScaling", t.Columns, NewStandardScalerDefault())
}

// FitApply fits on ds, transforms it and returns the fitted parameters.
func (t StandardScaling) FitApply(ds *frame.Dataset) (*frame.Dataset, *FittedScaling, error) {
	fitted, err := t.Fit(ds)
	if err != nil {
		return nil, nil, err
	}
	out, err := fitted.Transform(ds)
	return out, fitted, err
}

func (t StandardScaling) Apply(ds *frame.Dataset) (*frame.Dataset, error) {
	out, _, err := t.FitApply(ds)
	return out, err
}

// MinMaxScaling は列を FeatureRange（ゼロ値なら[0,1]）に線形変換します。
type MinMaxScaling struct {
	Columns      []string
	FeatureRange [2]float64
}

func (t MinMaxScaling) Kind() string { return KindMinMaxScaling }

// Fit fits a fresh MinMaxScaler on ds.
func (t MinMaxScaling) Fit(ds *frame.Dataset) (*FittedScaling, error) {
	scaler := NewMinMaxScalerDefault()
	if t.FeatureRange != [2]float64{} {
		scaler = NewMinMaxScaler(t.FeatureRange)
	}
	return fitScaling(ds, "MinMaxScaling", t.Columns, scaler)
}

// FitApply fits on ds, transforms it and returns the fitted parameters.
func (t MinMaxScaling) FitApply(ds *frame.Dataset) (*frame.Dataset, *FittedScaling, error) {
	fitted, err := t.Fit(ds)
	if err != nil {
		return nil, nil, err
	}
	out, err := fitted.Transform(ds)
	return out, fitted, err
}

func (t MinMaxScaling) Apply(ds *frame.Dataset) (*frame.Dataset, error) {
	out, _, err := t.FitApply(ds)
	return out, err
}
