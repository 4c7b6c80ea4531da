package preprocessing

import (
	"math"

	"github.com/YuminosukeSato/pricekit/core/frame"
	"github.com/YuminosukeSato/pricekit/pkg/errors"
)

// LogTransform は各列を log(1 + v) で置き換えます。
// すべての列を書き換える前に定義域 v >= -1 を検証し、違反があれば DomainError を返します。
// v = -1 は -Inf になります。
type LogTransform struct {
	Columns []string
}

func (t LogTransform) Kind() string { return KindLog }

func (t LogTransform) Apply(ds *frame.Dataset) (*frame.Dataset, error) {
	for _, name := range t.Columns {
		c, err := requireNumeric(ds, "LogTransform", name)
		if err != nil {
			return nil, err
		}
		for _, v := range c.Floats() {
			if v < -1 {
				return nil, errors.NewDomainError("LogTransform", name, v, "[-1, +Inf)")
			}
		}
	}

	out := ds.Drop()
	done := make(map[string]bool, len(t.Columns))
	for _, name := range t.Columns {
		if done[name] {
			continue
		}
		done[name] = true
		src, _ := out.Column(name)
		b := frame.NewBuilder(name, frame.KindFloat, src.Len())
		for i := 0; i < src.Len(); i++ {
			if src.IsMissing(i) {
				b.AppendMissing()
				continue
			}
			b.AppendFloat(math.Log1p(src.Float(i)))
		}
		var err error
		if out, err = out.WithColumn(b.Build()); err != nil {
			return nil, err
		}
	}
	return out, nil
}
