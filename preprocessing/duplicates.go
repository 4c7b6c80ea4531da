package preprocessing

import (
	"strconv"
	"strings"

	"github.com/YuminosukeSato/pricekit/core/frame"
	"github.com/YuminosukeSato/pricekit/core/model"
)

// DropDuplicates は全列が一致する行のうち、2回目以降の出現を削除します。
// 欠損値同士は一致するとみなします。
type DropDuplicates struct{}

func (DropDuplicates) Kind() string { return KindDropDuplicates }

func (t DropDuplicates) Apply(ds *frame.Dataset) (*frame.Dataset, error) {
	return t.ApplyObserved(ds, KindDropDuplicates, model.NopObserver{})
}

func (DropDuplicates) ApplyObserved(ds *frame.Dataset, stage string, obs model.Observer) (*frame.Dataset, error) {
	cols := ds.Columns()
	seen := make(map[string]struct{}, ds.NRows())
	var sb strings.Builder

	out := ds.Filter(func(row int) bool {
		sb.Reset()
		for _, c := range cols {
			// "-" marks a missing cell, present cells are length prefixed
			if c.IsMissing(row) {
				sb.WriteByte('-')
				continue
			}
			v := c.Text(row)
			sb.WriteString(strconv.Itoa(len(v)))
			sb.WriteByte(':')
			sb.WriteString(v)
		}
		key := sb.String()
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}
		return true
	})
	obs.RowsDropped(stage, ds.NRows()-out.NRows())
	return out, nil
}
