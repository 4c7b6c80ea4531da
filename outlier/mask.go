// Package outlier は数値列の外れ値を統計的に検出し、削除またはキャップします。
//
// 検出は数値列だけに対して行われ、テキスト列はインデックスラベルで再結合されます。
// 欠損セルは外れ値として扱われません。
package outlier

import (
	"github.com/YuminosukeSato/pricekit/core/frame"
	"github.com/YuminosukeSato/pricekit/core/parallel"
)

// detectSequential is the column count up to which detection stays on the
// calling goroutine.
const detectSequential = 8

// Mask は評価した数値列ごとの外れ値フラグです。
// 行はいずれかの列でフラグが立っていれば外れ値とみなされます。
type Mask struct {
	Columns []string
	Index   []int
	flags   [][]bool
}

func newMask(index []int) *Mask {
	return &Mask{Index: append([]int(nil), index...)}
}

func (m *Mask) add(column string, flags []bool) {
	m.Columns = append(m.Columns, column)
	m.flags = append(m.flags, flags)
}

// NRows returns the number of rows covered by the mask.
func (m *Mask) NRows() int { return len(m.Index) }

// NCols returns the number of evaluated columns.
func (m *Mask) NCols() int { return len(m.Columns) }

// At reports whether row position i of column j is flagged.
func (m *Mask) At(i, j int) bool { return m.flags[j][i] }

// Column returns the flags of the named column, or nil.
func (m *Mask) Column(name string) []bool {
	for j, c := range m.Columns {
		if c == name {
			return append([]bool(nil), m.flags[j]...)
		}
	}
	return nil
}

// Rows returns the row-level OR across all evaluated columns.
func (m *Mask) Rows() []bool {
	rows := make([]bool, len(m.Index))
	for _, col := range m.flags {
		for i, f := range col {
			rows[i] = rows[i] || f
		}
	}
	return rows
}

// FlaggedLabels returns the index labels of flagged rows.
func (m *Mask) FlaggedLabels() []int {
	var labels []int
	for i, f := range m.Rows() {
		if f {
			labels = append(labels, m.Index[i])
		}
	}
	return labels
}

// Count returns the number of flagged rows.
func (m *Mask) Count() int {
	return len(m.FlaggedLabels())
}

// Strategy は外れ値検出の戦略です。ds の数値列を評価します。
type Strategy interface {
	Detect(ds *frame.Dataset) (*Mask, error)
}

// columnRule flags the cells of one numeric column.
type columnRule func(c *frame.Column) []bool

func detectWith(ds *frame.Dataset, rule columnRule) *Mask {
	numeric, _ := ds.SplitNumeric()
	cols := numeric.Columns()
	flags := make([][]bool, len(cols))
	parallel.ForEach(len(cols), detectSequential, func(j int) {
		flags[j] = rule(cols[j])
	})

	m := newMask(ds.Index())
	for j, c := range cols {
		m.add(c.Name(), flags[j])
	}
	return m
}

// flagPresent evaluates pred on every non-missing cell of c.
func flagPresent(c *frame.Column, pred func(v float64) bool) []bool {
	flags := make([]bool, c.Len())
	for i := range flags {
		if !c.IsMissing(i) {
			flags[i] = pred(c.Float(i))
		}
	}
	return flags
}
