package frame

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/pricekit/pkg/errors"
)

// Dataset は名前付き列の順序付き集合と、行ごとの安定したインデックスラベルです。
type Dataset struct {
	cols   []*Column
	byName map[string]int
	index  []int
}

// New creates a dataset whose index labels are 0..n-1.
//
// All columns must have the same length and distinct names.
func New(cols ...*Column) (*Dataset, error) {
	n := 0
	if len(cols) > 0 {
		n = cols[0].Len()
	}
	index := make([]int, n)
	for i := range index {
		index[i] = i
	}
	return NewWithIndex(index, cols...)
}

// NewWithIndex creates a dataset with explicit, unique index labels.
func NewWithIndex(index []int, cols ...*Column) (*Dataset, error) {
	ds := &Dataset{
		cols:   make([]*Column, 0, len(cols)),
		byName: make(map[string]int, len(cols)),
		index:  append([]int(nil), index...),
	}
	for _, c := range cols {
		if c == nil {
			return nil, errors.NewInvalidParameterError("columns", "nil column", nil)
		}
		if c.Len() != len(index) {
			return nil, errors.NewInvalidParameterError("columns",
				fmt.Sprintf("column '%s' has %d rows, expected %d", c.Name(), c.Len(), len(index)), c.Len())
		}
		if _, dup := ds.byName[c.Name()]; dup {
			return nil, errors.NewInvalidParameterError("columns", "duplicate column name", c.Name())
		}
		ds.byName[c.Name()] = len(ds.cols)
		ds.cols = append(ds.cols, c)
	}
	seen := make(map[int]struct{}, len(index))
	for _, l := range index {
		if _, dup := seen[l]; dup {
			return nil, errors.NewInvalidParameterError("index", "duplicate index label", l)
		}
		seen[l] = struct{}{}
	}
	return ds, nil
}

// MustNew is like New but panics on error. Intended for tests and literals.
func MustNew(cols ...*Column) *Dataset {
	ds, err := New(cols...)
	if err != nil {
		panic(err)
	}
	return ds
}

// NRows returns the number of rows.
func (d *Dataset) NRows() int { return len(d.index) }

// NCols returns the number of columns.
func (d *Dataset) NCols() int { return len(d.cols) }

// Names returns the column names in order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.cols))
	for i, c := range d.cols {
		names[i] = c.Name()
	}
	return names
}

// Has reports whether the dataset has a column with the given name.
func (d *Dataset) Has(name string) bool {
	_, ok := d.byName[name]
	return ok
}

// Column returns the named column or a MissingColumnError.
func (d *Dataset) Column(name string) (*Column, error) {
	i, ok := d.byName[name]
	if !ok {
		return nil, errors.NewMissingColumnError("Dataset.Column", name)
	}
	return d.cols[i], nil
}

// Columns returns the columns in order.
func (d *Dataset) Columns() []*Column {
	return append([]*Column(nil), d.cols...)
}

// Require returns a MissingColumnError attributed to op for the first name
// that is not present.
func (d *Dataset) Require(op string, names ...string) error {
	for _, name := range names {
		if !d.Has(name) {
			return errors.NewMissingColumnError(op, name)
		}
	}
	return nil
}

// Index returns a copy of the row index labels.
func (d *Dataset) Index() []int {
	return append([]int(nil), d.index...)
}

// Label returns the index label of row position i.
func (d *Dataset) Label(i int) int { return d.index[i] }

// Clone returns a deep copy.
func (d *Dataset) Clone() *Dataset {
	cols := make([]*Column, len(d.cols))
	for i, c := range d.cols {
		cols[i] = c.Clone()
	}
	return d.rebuild(d.index, cols)
}

// rebuild assembles a dataset from parts already known to be consistent.
func (d *Dataset) rebuild(index []int, cols []*Column) *Dataset {
	out := &Dataset{
		cols:   cols,
		byName: make(map[string]int, len(cols)),
		index:  append([]int(nil), index...),
	}
	for i, c := range cols {
		out.byName[c.Name()] = i
	}
	return out
}

// WithColumn returns a dataset where c replaces the column of the same name
// in place, or is appended when no such column exists.
func (d *Dataset) WithColumn(c *Column) (*Dataset, error) {
	if c.Len() != d.NRows() {
		return nil, errors.NewDimensionError("Dataset.WithColumn", d.NRows(), c.Len(), 0)
	}
	cols := append([]*Column(nil), d.cols...)
	if i, ok := d.byName[c.Name()]; ok {
		cols[i] = c
	} else {
		cols = append(cols, c)
	}
	return d.rebuild(d.index, cols), nil
}

// Drop returns a dataset without the named columns. Unknown names are ignored.
func (d *Dataset) Drop(names ...string) *Dataset {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	cols := make([]*Column, 0, len(d.cols))
	for _, c := range d.cols {
		if _, ok := drop[c.Name()]; !ok {
			cols = append(cols, c)
		}
	}
	return d.rebuild(d.index, cols)
}

// Select returns a dataset with exactly the named columns in the given order.
func (d *Dataset) Select(names ...string) (*Dataset, error) {
	cols := make([]*Column, 0, len(names))
	for _, n := range names {
		c, err := d.Column(n)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return NewWithIndex(d.index, cols...)
}

// Take returns the rows at the given positions, keeping their index labels.
func (d *Dataset) Take(positions []int) *Dataset {
	index := make([]int, len(positions))
	for i, p := range positions {
		index[i] = d.index[p]
	}
	cols := make([]*Column, len(d.cols))
	for i, c := range d.cols {
		cols[i] = c.Take(positions)
	}
	return d.rebuild(index, cols)
}

// Filter keeps rows for which keep returns true.
func (d *Dataset) Filter(keep func(row int) bool) *Dataset {
	positions := make([]int, 0, d.NRows())
	for i := 0; i < d.NRows(); i++ {
		if keep(i) {
			positions = append(positions, i)
		}
	}
	return d.Take(positions)
}

// SplitNumeric separates numeric columns from the rest. Both parts share
// the index of d.
func (d *Dataset) SplitNumeric() (numeric, other *Dataset) {
	var num, rest []*Column
	for _, c := range d.cols {
		if c.IsNumeric() {
			num = append(num, c)
		} else {
			rest = append(rest, c)
		}
	}
	return d.rebuild(d.index, num), d.rebuild(d.index, rest)
}

// JoinByIndex appends the columns of right to d, matching rows by index
// label. The row order of d is kept; rows of right without a counterpart in
// d are discarded. A row of d whose label is absent from right fails with
// an IndexMismatchError.
func (d *Dataset) JoinByIndex(right *Dataset) (*Dataset, error) {
	pos := make(map[int]int, right.NRows())
	for i, l := range right.index {
		pos[l] = i
	}
	positions := make([]int, d.NRows())
	for i, l := range d.index {
		p, ok := pos[l]
		if !ok {
			return nil, errors.NewIndexMismatchError("Dataset.JoinByIndex", l)
		}
		positions[i] = p
	}
	aligned := right.Take(positions)

	cols := append([]*Column(nil), d.cols...)
	for _, c := range aligned.cols {
		if d.Has(c.Name()) {
			return nil, errors.NewInvalidParameterError("right", "column present on both sides", c.Name())
		}
		cols = append(cols, c)
	}
	return d.rebuild(d.index, cols), nil
}

// Concat stacks the rows of b under a. Both must have the same column names
// and kinds in the same order, and disjoint index labels.
func Concat(a, b *Dataset) (*Dataset, error) {
	if a.NCols() != b.NCols() {
		return nil, errors.NewDimensionError("frame.Concat", a.NCols(), b.NCols(), 1)
	}
	cols := make([]*Column, a.NCols())
	for j, ca := range a.cols {
		cb := b.cols[j]
		if ca.Name() != cb.Name() {
			return nil, errors.NewMissingColumnError("frame.Concat", ca.Name())
		}
		if ca.Kind() != cb.Kind() {
			return nil, errors.NewTypeMismatchError("frame.Concat", cb.Name(), ca.Kind().String(), cb.Kind().String())
		}
		bld := NewBuilder(ca.Name(), ca.Kind(), ca.Len()+cb.Len())
		for i := 0; i < ca.Len(); i++ {
			bld.Append(ca.Value(i))
		}
		for i := 0; i < cb.Len(); i++ {
			bld.Append(cb.Value(i))
		}
		cols[j] = bld.Build()
	}
	index := append(append([]int(nil), a.index...), b.index...)
	return NewWithIndex(index, cols...)
}

// SortByIndex returns the rows ordered by ascending index label.
func (d *Dataset) SortByIndex() *Dataset {
	positions := make([]int, d.NRows())
	for i := range positions {
		positions[i] = i
	}
	sort.SliceStable(positions, func(a, b int) bool {
		return d.index[positions[a]] < d.index[positions[b]]
	})
	return d.Take(positions)
}

// NumericMatrix returns the numeric columns as a rows × columns matrix with
// missing cells set to NaN, together with the column names.
func (d *Dataset) NumericMatrix() (*mat.Dense, []string, error) {
	numeric, _ := d.SplitNumeric()
	if numeric.NCols() == 0 || numeric.NRows() == 0 {
		return nil, nil, errors.Wrap(errors.ErrEmptyData, "Dataset.NumericMatrix")
	}
	m := mat.NewDense(numeric.NRows(), numeric.NCols(), nil)
	for j, c := range numeric.cols {
		for i := 0; i < c.Len(); i++ {
			m.Set(i, j, c.Float(i))
		}
	}
	return m, numeric.Names(), nil
}

// Row returns row position i as a map from column name to value.
func (d *Dataset) Row(i int) map[string]Value {
	row := make(map[string]Value, len(d.cols))
	for _, c := range d.cols {
		row[c.Name()] = c.Value(i)
	}
	return row
}

// Equal reports whether both datasets have the same index, column order and cells.
func (d *Dataset) Equal(o *Dataset) bool {
	if d.NRows() != o.NRows() || d.NCols() != o.NCols() {
		return false
	}
	for i, l := range d.index {
		if o.index[i] != l {
			return false
		}
	}
	for j, c := range d.cols {
		if !c.Equal(o.cols[j]) {
			return false
		}
	}
	return true
}

// String renders a short description such as "Dataset[5 rows × 3 cols]".
func (d *Dataset) String() string {
	return fmt.Sprintf("Dataset[%d rows × %d cols]", d.NRows(), d.NCols())
}
