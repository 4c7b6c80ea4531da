package preprocessing

import (
	"sort"

	"github.com/YuminosukeSato/pricekit/core/frame"
	"github.com/YuminosukeSato/pricekit/core/model"
)

// MapValues は Column の各値を文字列表現の完全一致で Mapping から引き、置き換えます。
// 表にない値は欠損になり、変換された値として報告されます。
// Mapping の値がすべて数値なら結果は Float 列、そうでなければ Text 列です。
type MapValues struct {
	Column  string
	Mapping map[string]frame.Value
}

// NewNumericMapping is a convenience constructor for number-valued tables.
func NewNumericMapping(column string, table map[string]float64) MapValues {
	m := make(map[string]frame.Value, len(table))
	for k, v := range table {
		m[k] = frame.Float(v)
	}
	return MapValues{Column: column, Mapping: m}
}

func (t MapValues) Kind() string { return KindMapValues }

func (t MapValues) Apply(ds *frame.Dataset) (*frame.Dataset, error) {
	return t.ApplyObserved(ds, KindMapValues, model.NopObserver{})
}

func (t MapValues) ApplyObserved(ds *frame.Dataset, stage string, obs model.Observer) (*frame.Dataset, error) {
	if err := ds.Require("MapValues", t.Column); err != nil {
		return nil, err
	}
	src, _ := ds.Column(t.Column)

	b := frame.NewBuilder(t.Column, t.resultKind(), src.Len())
	unmapped := 0
	for i := 0; i < src.Len(); i++ {
		if src.IsMissing(i) {
			b.AppendMissing()
			continue
		}
		v, ok := t.Mapping[src.Text(i)]
		if !ok {
			b.AppendMissing()
			unmapped++
			continue
		}
		b.Append(v)
	}
	obs.ValuesCoerced(stage, t.Column, unmapped)
	return ds.WithColumn(b.Build())
}

func (t MapValues) resultKind() frame.Kind {
	if len(t.Mapping) == 0 {
		return frame.KindText
	}
	for _, v := range t.Mapping {
		if v.IsMissing() {
			continue
		}
		if !v.Kind().IsNumeric() {
			return frame.KindText
		}
	}
	return frame.KindFloat
}

// Keys returns the mapped source values in sorted order.
func (t MapValues) Keys() []string {
	keys := make([]string, 0, len(t.Mapping))
	for k := range t.Mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
