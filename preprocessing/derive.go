package preprocessing

import (
	"strings"

	"github.com/YuminosukeSato/pricekit/core/frame"
	"github.com/YuminosukeSato/pricekit/core/model"
)

// SplitExtract は Source 列を Delimiter で分割し、Index 番目のトークンを
// Target 列に書き込んでから Source 列を削除します。
// 範囲外の位置や欠損値は欠損になります。数値列は文字列表現を分割します。
type SplitExtract struct {
	Source    string
	Target    string
	Delimiter string
	Index     int
}

func (t SplitExtract) Kind() string { return KindSplitExtract }

func (t SplitExtract) Apply(ds *frame.Dataset) (*frame.Dataset, error) {
	return t.ApplyObserved(ds, KindSplitExtract, model.NopObserver{})
}

func (t SplitExtract) ApplyObserved(ds *frame.Dataset, stage string, obs model.Observer) (*frame.Dataset, error) {
	if err := ds.Require("SplitExtract", t.Source); err != nil {
		return nil, err
	}
	src, _ := ds.Column(t.Source)

	b := frame.NewBuilder(t.Target, frame.KindText, src.Len())
	coerced := 0
	for i := 0; i < src.Len(); i++ {
		if src.IsMissing(i) {
			b.AppendMissing()
			continue
		}
		tokens := strings.Split(src.Text(i), t.Delimiter)
		if t.Index < 0 || t.Index >= len(tokens) {
			b.AppendMissing()
			coerced++
			continue
		}
		b.AppendText(tokens[t.Index])
	}
	obs.ValuesCoerced(stage, t.Target, coerced)

	out := ds.Drop(t.Source)
	if t.Target == t.Source {
		// keep the original position when writing back into the source column
		return ds.WithColumn(b.Build())
	}
	return out.WithColumn(b.Build())
}

// DifferenceFromConstant は Target = Constant − Source を計算します。
// Target が空の場合は Source を上書きします。年式から車齢を求めるのに使います。
type DifferenceFromConstant struct {
	Source   string
	Target   string
	Constant float64
}

func (t DifferenceFromConstant) Kind() string { return KindDifference }

func (t DifferenceFromConstant) Apply(ds *frame.Dataset) (*frame.Dataset, error) {
	src, err := requireNumeric(ds, "DifferenceFromConstant", t.Source)
	if err != nil {
		return nil, err
	}
	target := t.Target
	if target == "" {
		target = t.Source
	}

	kind := frame.KindFloat
	if src.Kind() == frame.KindInt && t.Constant == float64(int64(t.Constant)) {
		kind = frame.KindInt
	}
	b := frame.NewBuilder(target, kind, src.Len())
	for i := 0; i < src.Len(); i++ {
		if src.IsMissing(i) {
			b.AppendMissing()
			continue
		}
		b.AppendFloat(t.Constant - src.Float(i))
	}
	return ds.WithColumn(b.Build())
}

// ColumnDifference は Target = Minuend − Subtrahend を計算します。
type ColumnDifference struct {
	Minuend    string
	Subtrahend string
	Target     string
}

func (t ColumnDifference) Kind() string { return KindColumnDifference }

func (t ColumnDifference) Apply(ds *frame.Dataset) (*frame.Dataset, error) {
	a, err := requireNumeric(ds, "ColumnDifference", t.Minuend)
	if err != nil {
		return nil, err
	}
	s, err := requireNumeric(ds, "ColumnDifference", t.Subtrahend)
	if err != nil {
		return nil, err
	}

	kind := frame.KindFloat
	if a.Kind() == frame.KindInt && s.Kind() == frame.KindInt {
		kind = frame.KindInt
	}
	b := frame.NewBuilder(t.Target, kind, a.Len())
	for i := 0; i < a.Len(); i++ {
		if a.IsMissing(i) || s.IsMissing(i) {
			b.AppendMissing()
			continue
		}
		b.AppendFloat(a.Float(i) - s.Float(i))
	}
	return ds.WithColumn(b.Build())
}

// DropColumns は指定した列を削除します。存在しない列名は無視されます。
type DropColumns struct {
	Columns []string
}

func (t DropColumns) Kind() string { return KindDropColumns }

func (t DropColumns) Apply(ds *frame.Dataset) (*frame.Dataset, error) {
	return ds.Drop(t.Columns...), nil
}
