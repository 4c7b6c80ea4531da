package preprocessing

import (
	"sort"
	"strings"

	"github.com/YuminosukeSato/pricekit/core/frame"
	"github.com/YuminosukeSato/pricekit/core/model"
	"github.com/YuminosukeSato/pricekit/pkg/errors"
)

// CastTypes は列を float / int / str のいずれかに変換します。
// 値ごとの変換失敗（数値でない文字列、整数でない数値のint変換）は欠損になり、
// 未対応の型名は UnsupportedCastError になります。
type CastTypes struct {
	Types map[string]string
}

func (t CastTypes) Kind() string { return KindCastTypes }

// targetKind resolves a type name. Accepted spellings follow the names used
// in pipeline configuration files.
func targetKind(name string) (frame.Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "float", "float64", "double":
		return frame.KindFloat, true
	case "int", "int64", "integer":
		return frame.KindInt, true
	case "str", "string", "text", "category":
		return frame.KindText, true
	default:
		return 0, false
	}
}

func (t CastTypes) Apply(ds *frame.Dataset) (*frame.Dataset, error) {
	return t.ApplyObserved(ds, KindCastTypes, model.NopObserver{})
}

func (t CastTypes) ApplyObserved(ds *frame.Dataset, stage string, obs model.Observer) (*frame.Dataset, error) {
	cols := make([]string, 0, len(t.Types))
	for c := range t.Types {
		cols = append(cols, c)
	}
	sort.Strings(cols)

	// resolve everything before touching any column
	kinds := make(map[string]frame.Kind, len(cols))
	for _, c := range cols {
		k, ok := targetKind(t.Types[c])
		if !ok {
			return nil, errors.NewUnsupportedCastError(c, t.Types[c])
		}
		kinds[c] = k
	}
	if err := ds.Require("CastTypes", cols...); err != nil {
		return nil, err
	}

	out := ds.Drop()
	for _, name := range cols {
		src, _ := out.Column(name)
		kind := kinds[name]
		if src.Kind() == kind {
			continue
		}

		b := frame.NewBuilder(name, kind, src.Len())
		for i := 0; i < src.Len(); i++ {
			if src.IsMissing(i) {
				b.AppendMissing()
				continue
			}
			b.Append(src.Value(i))
		}
		cast := b.Build()
		lost := cast.MissingCount() - src.MissingCount()
		if lost > 0 {
			obs.ValuesCoerced(stage, name, lost)
			errors.Warn(errors.NewDataConversionWarning(name, src.Kind().String(), kind.String(), lost,
				"values not representable in the target type were set to missing"))
		}

		var err error
		if out, err = out.WithColumn(cast); err != nil {
			return nil, err
		}
	}
	return out, nil
}
