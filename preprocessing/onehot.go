package preprocessing

import (
	"sort"

	"github.com/YuminosukeSato/pricekit/core/frame"
	"github.com/YuminosukeSato/pricekit/pkg/errors"
)

// OneHotEncoding はカテゴリ列を 0/1 の Float 列に展開します。
//
// 語彙はソート順（数値列は値の順）で、既定では最初のカテゴリを落とします（KeepFirst で保持）。
// 新しい列は "列名_値" の名前でデータセットの末尾に追加され、元の列は削除されます。
// 欠損値と未知のカテゴリはすべて0の行になります。
// 生成される列名が既存の列や他の指示列と重なる場合は InvalidParameterError を返します。
// Columns が空の場合はすべてのテキスト列が対象です。
type OneHotEncoding struct {
	Columns   []string
	KeepFirst bool
}

// FittedEncoding は列ごとの語彙です。
type FittedEncoding struct {
	Columns    []string
	Categories map[string][]string
	DropFirst  bool
}

func (t OneHotEncoding) Kind() string { return KindOneHot }

// Fit builds the vocabulary of every encoded column from ds.
func (t OneHotEncoding) Fit(ds *frame.Dataset) (*FittedEncoding, error) {
	columns := t.Columns
	if len(columns) == 0 {
		for _, c := range ds.Columns() {
			if c.Kind() == frame.KindText {
				columns = append(columns, c.Name())
			}
		}
	}
	if err := ds.Require("OneHotEncoding", columns...); err != nil {
		return nil, err
	}

	fitted := &FittedEncoding{
		Columns:    append([]string(nil), columns...),
		Categories: make(map[string][]string, len(columns)),
		DropFirst:  !t.KeepFirst,
	}
	for _, name := range columns {
		c, _ := ds.Column(name)
		fitted.Categories[name] = vocabulary(c)
	}
	return fitted, nil
}

// vocabulary returns the distinct present values of c. Numeric columns are
// ordered by value, text columns lexically.
func vocabulary(c *frame.Column) []string {
	seen := make(map[string]float64)
	for i := 0; i < c.Len(); i++ {
		if !c.IsMissing(i) {
			seen[c.Text(i)] = c.Float(i)
		}
	}
	cats := make([]string, 0, len(seen))
	for v := range seen {
		cats = append(cats, v)
	}
	if c.IsNumeric() {
		sort.Slice(cats, func(i, j int) bool { return seen[cats[i]] < seen[cats[j]] })
	} else {
		sort.Strings(cats)
	}
	return cats
}

// OutputColumns returns the names of the indicator columns in output order.
func (f *FittedEncoding) OutputColumns() []string {
	var names []string
	for _, name := range f.Columns {
		for _, cat := range f.encoded(name) {
			names = append(names, name+"_"+cat)
		}
	}
	return names
}

func (f *FittedEncoding) encoded(column string) []string {
	cats := f.Categories[column]
	if f.DropFirst && len(cats) > 0 {
		return cats[1:]
	}
	return cats
}

// Transform encodes ds with the fitted vocabulary.
func (f *FittedEncoding) Transform(ds *frame.Dataset) (*frame.Dataset, error) {
	if err := ds.Require("OneHotEncoding", f.Columns...); err != nil {
		return nil, err
	}

	out := ds.Drop(f.Columns...)
	taken := make(map[string]struct{}, out.NCols())
	for _, name := range out.Names() {
		taken[name] = struct{}{}
	}

	var indicators []*frame.Column
	for _, name := range f.Columns {
		src, _ := ds.Column(name)
		for _, cat := range f.encoded(name) {
			indicator := name + "_" + cat
			if _, clash := taken[indicator]; clash {
				return nil, errors.NewInvalidParameterError("OneHotEncoding",
					"indicator column "+indicator+" of "+name+" collides with an existing column", indicator)
			}
			taken[indicator] = struct{}{}

			values := make([]float64, src.Len())
			for i := range values {
				if !src.IsMissing(i) && src.Text(i) == cat {
					values[i] = 1
				}
			}
			indicators = append(indicators, frame.NewFloat(indicator, values))
		}
	}

	for _, c := range indicators {
		var err error
		if out, err = out.WithColumn(c); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// FitApply fits on ds, encodes it and returns the vocabulary.
func (t OneHotEncoding) FitApply(ds *frame.Dataset) (*frame.Dataset, *FittedEncoding, error) {
	fitted, err := t.Fit(ds)
	if err != nil {
		return nil, nil, err
	}
	out, err := fitted.Transform(ds)
	return out, fitted, err
}

func (t OneHotEncoding) Apply(ds *frame.Dataset) (*frame.Dataset, error) {
	out, _, err := t.FitApply(ds)
	return out, err
}
