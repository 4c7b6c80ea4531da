// Package preprocessing は列変換（派生列、単位除去、型変換、対数変換、
// スケーリング、one-hotエンコーディングなど）と、それらを固定順序で実行する
// レジストリを提供します。
//
// すべての変換は入力データセットを変更せず、新しいデータセットを返します。
// 値レベルの異常（解析できない数値、未知のカテゴリ）は欠損値に変換され、
// 構造的な違反（列がない、型が合わない）はエラーになります。
package preprocessing

import (
	"github.com/YuminosukeSato/pricekit/core/frame"
	"github.com/YuminosukeSato/pricekit/core/model"
	"github.com/YuminosukeSato/pricekit/pkg/errors"
)

// Transform は単一の名前付き列変換です。構築後は不変です。
type Transform interface {
	// Kind returns the operation kind, e.g. "derive-by-split".
	Kind() string

	// Apply returns a new dataset with the transform applied.
	Apply(ds *frame.Dataset) (*frame.Dataset, error)
}

// ObservedTransform is implemented by transforms that report coerced values
// or dropped rows while applying.
type ObservedTransform interface {
	Transform

	// ApplyObserved is Apply with notifications sent to obs under stage.
	ApplyObserved(ds *frame.Dataset, stage string, obs model.Observer) (*frame.Dataset, error)
}

// Operation kinds.
const (
	KindSplitExtract     = "derive-by-split"
	KindDifference       = "derive-by-difference"
	KindColumnDifference = "column-difference"
	KindDropColumns      = "column-drop"
	KindMapValues        = "value-mapping"
	KindStripUnits       = "unit-stripping"
	KindCastTypes        = "type-casting"
	KindLog              = "log-transform"
	KindStandardScaling  = "standard-scaling"
	KindMinMaxScaling    = "minmax-scaling"
	KindOneHot           = "one-hot-encoding"
	KindDropDuplicates   = "drop-duplicates"
)

// applyObserved runs t, routing notifications to obs when t supports them.
func applyObserved(t Transform, ds *frame.Dataset, stage string, obs model.Observer) (*frame.Dataset, error) {
	if ot, ok := t.(ObservedTransform); ok {
		return ot.ApplyObserved(ds, stage, obs)
	}
	return t.Apply(ds)
}

// requireNumeric returns the named column, failing when it is absent or not numeric.
func requireNumeric(ds *frame.Dataset, op, name string) (*frame.Column, error) {
	if err := ds.Require(op, name); err != nil {
		return nil, err
	}
	c, _ := ds.Column(name)
	if !c.IsNumeric() {
		return nil, typeMismatch(op, c, "numeric")
	}
	return c, nil
}

func typeMismatch(op string, c *frame.Column, expected string) error {
	return errors.NewTypeMismatchError(op, c.Name(), expected, c.Kind().String())
}
