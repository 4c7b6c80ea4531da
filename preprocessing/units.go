package preprocessing

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/pricekit/core/frame"
	"github.com/YuminosukeSato/pricekit/core/model"
	"github.com/YuminosukeSato/pricekit/pkg/errors"
)

// StripUnits は列ごとの正規表現に一致する単位表記を取り除き、
// 残りを数値として解析します。解析できない値は欠損になります。
type StripUnits struct {
	patterns map[string]*regexp.Regexp
}

// NewStripUnits compiles one pattern per column.
func NewStripUnits(patterns map[string]string) (StripUnits, error) {
	compiled := make(map[string]*regexp.Regexp, len(patterns))
	for col, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return StripUnits{}, errors.NewInvalidParameterError("units."+col, err.Error(), p)
		}
		compiled[col] = re
	}
	return StripUnits{patterns: compiled}, nil
}

// MustStripUnits is like NewStripUnits but panics on an invalid pattern.
func MustStripUnits(patterns map[string]string) StripUnits {
	t, err := NewStripUnits(patterns)
	if err != nil {
		panic(err)
	}
	return t
}

func (t StripUnits) Kind() string { return KindStripUnits }

// Columns returns the handled column names in sorted order.
func (t StripUnits) Columns() []string {
	cols := make([]string, 0, len(t.patterns))
	for c := range t.patterns {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

func (t StripUnits) Apply(ds *frame.Dataset) (*frame.Dataset, error) {
	return t.ApplyObserved(ds, KindStripUnits, model.NopObserver{})
}

func (t StripUnits) ApplyObserved(ds *frame.Dataset, stage string, obs model.Observer) (*frame.Dataset, error) {
	cols := t.Columns()
	if err := ds.Require("StripUnits", cols...); err != nil {
		return nil, err
	}

	out := ds.Drop()
	for _, name := range cols {
		src, _ := out.Column(name)
		re := t.patterns[name]

		b := frame.NewBuilder(name, frame.KindFloat, src.Len())
		failed := 0
		for i := 0; i < src.Len(); i++ {
			if src.IsMissing(i) {
				b.AppendMissing()
				continue
			}
			s := strings.TrimSpace(re.ReplaceAllString(src.Text(i), ""))
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				b.AppendMissing()
				failed++
				continue
			}
			b.AppendFloat(f)
		}
		obs.ValuesCoerced(stage, name, failed)

		var err error
		if out, err = out.WithColumn(b.Build()); err != nil {
			return nil, err
		}
	}
	return out, nil
}
