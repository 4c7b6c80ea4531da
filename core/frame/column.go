package frame

import (
	"math"
	"strconv"
)

// Column は名前付きの同種の値の列です。構築後は不変です。
type Column struct {
	name   string
	kind   Kind
	floats []float64
	ints   []int64
	texts  []string
	valid  []bool
}

// NewFloat creates a float column. NaN entries are stored as missing.
func NewFloat(name string, values []float64) *Column {
	b := NewBuilder(name, KindFloat, len(values))
	for _, v := range values {
		b.AppendFloat(v)
	}
	return b.Build()
}

// NewFloatWithMissing creates a float column where valid[i] == false marks
// row i as missing. A nil valid slice means every value is present.
func NewFloatWithMissing(name string, values []float64, valid []bool) *Column {
	b := NewBuilder(name, KindFloat, len(values))
	for i, v := range values {
		if valid != nil && !valid[i] {
			b.AppendMissing()
			continue
		}
		b.AppendFloat(v)
	}
	return b.Build()
}

// NewInt creates an integer column.
func NewInt(name string, values []int64) *Column {
	b := NewBuilder(name, KindInt, len(values))
	for _, v := range values {
		b.AppendInt(v)
	}
	return b.Build()
}

// NewIntWithMissing creates an integer column with a validity mask.
func NewIntWithMissing(name string, values []int64, valid []bool) *Column {
	b := NewBuilder(name, KindInt, len(values))
	for i, v := range values {
		if valid != nil && !valid[i] {
			b.AppendMissing()
			continue
		}
		b.AppendInt(v)
	}
	return b.Build()
}

// NewText creates a text column.
func NewText(name string, values []string) *Column {
	b := NewBuilder(name, KindText, len(values))
	for _, v := range values {
		b.AppendText(v)
	}
	return b.Build()
}

// NewTextWithMissing creates a text column with a validity mask.
func NewTextWithMissing(name string, values []string, valid []bool) *Column {
	b := NewBuilder(name, KindText, len(values))
	for i, v := range values {
		if valid != nil && !valid[i] {
			b.AppendMissing()
			continue
		}
		b.AppendText(v)
	}
	return b.Build()
}

// NewFromValues creates a column of the given kind from dynamically typed
// values. Values that cannot be represented in kind are stored as missing.
func NewFromValues(name string, kind Kind, values []Value) *Column {
	b := NewBuilder(name, kind, len(values))
	for _, v := range values {
		b.Append(v)
	}
	return b.Build()
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Kind returns the column kind.
func (c *Column) Kind() Kind { return c.kind }

// IsNumeric reports whether the column holds numbers.
func (c *Column) IsNumeric() bool { return c.kind.IsNumeric() }

// Len returns the number of rows.
func (c *Column) Len() int { return len(c.valid) }

// IsMissing reports whether row i holds the missing marker.
func (c *Column) IsMissing(i int) bool { return !c.valid[i] }

// MissingCount returns the number of missing cells.
func (c *Column) MissingCount() int {
	n := 0
	for _, ok := range c.valid {
		if !ok {
			n++
		}
	}
	return n
}

// Float returns row i as a float. Missing cells and text cells return NaN.
func (c *Column) Float(i int) float64 {
	if !c.valid[i] {
		return math.NaN()
	}
	switch c.kind {
	case KindFloat:
		return c.floats[i]
	case KindInt:
		return float64(c.ints[i])
	default:
		return math.NaN()
	}
}

// Text returns row i rendered as text; missing cells return "".
func (c *Column) Text(i int) string {
	return c.Value(i).AsText()
}

// Value returns row i as a dynamically typed value.
func (c *Column) Value(i int) Value {
	if !c.valid[i] {
		return Missing()
	}
	switch c.kind {
	case KindFloat:
		return Float(c.floats[i])
	case KindInt:
		return Int(c.ints[i])
	default:
		return Text(c.texts[i])
	}
}

// Floats returns the non-missing values of a numeric column in row order.
// Text columns return nil.
func (c *Column) Floats() []float64 {
	if !c.IsNumeric() {
		return nil
	}
	out := make([]float64, 0, len(c.valid))
	for i := range c.valid {
		if c.valid[i] {
			out = append(out, c.Float(i))
		}
	}
	return out
}

// Take returns a new column holding rows at the given positions.
func (c *Column) Take(positions []int) *Column {
	b := NewBuilder(c.name, c.kind, len(positions))
	for _, p := range positions {
		b.Append(c.Value(p))
	}
	return b.Build()
}

// Clone returns a deep copy of the column.
func (c *Column) Clone() *Column {
	out := &Column{name: c.name, kind: c.kind, valid: append([]bool(nil), c.valid...)}
	switch c.kind {
	case KindFloat:
		out.floats = append([]float64(nil), c.floats...)
	case KindInt:
		out.ints = append([]int64(nil), c.ints...)
	default:
		out.texts = append([]string(nil), c.texts...)
	}
	return out
}

// Rename returns a copy of the column under a new name.
func (c *Column) Rename(name string) *Column {
	out := c.Clone()
	out.name = name
	return out
}

// Equal reports whether two columns have the same name, kind and cells.
func (c *Column) Equal(o *Column) bool {
	if c.name != o.name || c.kind != o.kind || c.Len() != o.Len() {
		return false
	}
	for i := range c.valid {
		if !c.Value(i).Equal(o.Value(i)) {
			return false
		}
	}
	return true
}

// Builder は列を1行ずつ組み立てます。
type Builder struct {
	col *Column
}

// NewBuilder returns a builder for a column of the given kind.
func NewBuilder(name string, kind Kind, capacity int) *Builder {
	c := &Column{name: name, kind: kind, valid: make([]bool, 0, capacity)}
	switch kind {
	case KindFloat:
		c.floats = make([]float64, 0, capacity)
	case KindInt:
		c.ints = make([]int64, 0, capacity)
	default:
		c.texts = make([]string, 0, capacity)
	}
	return &Builder{col: c}
}

// AppendMissing appends the missing marker.
func (b *Builder) AppendMissing() {
	c := b.col
	switch c.kind {
	case KindFloat:
		c.floats = append(c.floats, 0)
	case KindInt:
		c.ints = append(c.ints, 0)
	default:
		c.texts = append(c.texts, "")
	}
	c.valid = append(c.valid, false)
}

// AppendFloat appends a number, converting it to the column kind. NaN,
// and non-integral values in an Int column, become missing.
func (b *Builder) AppendFloat(v float64) {
	c := b.col
	switch {
	case math.IsNaN(v):
		b.AppendMissing()
	case c.kind == KindFloat:
		c.floats = append(c.floats, v)
		c.valid = append(c.valid, true)
	case c.kind == KindInt:
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.Abs(v) > 1<<62 {
			b.AppendMissing()
			return
		}
		c.ints = append(c.ints, int64(v))
		c.valid = append(c.valid, true)
	default:
		c.texts = append(c.texts, FormatFloat(v))
		c.valid = append(c.valid, true)
	}
}

// AppendInt appends an integer, converting it to the column kind.
func (b *Builder) AppendInt(v int64) {
	c := b.col
	switch c.kind {
	case KindFloat:
		c.floats = append(c.floats, float64(v))
	case KindInt:
		c.ints = append(c.ints, v)
	default:
		c.texts = append(c.texts, strconv.FormatInt(v, 10))
	}
	c.valid = append(c.valid, true)
}

// AppendText appends a string. Numeric columns parse it and store missing
// when it does not parse.
func (b *Builder) AppendText(s string) {
	c := b.col
	switch c.kind {
	case KindText:
		c.texts = append(c.texts, s)
		c.valid = append(c.valid, true)
	case KindInt:
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			b.AppendInt(n)
			return
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			b.AppendMissing()
			return
		}
		b.AppendFloat(f)
	default:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			b.AppendMissing()
			return
		}
		b.AppendFloat(f)
	}
}

// Append appends a dynamically typed value, converting it to the column kind.
func (b *Builder) Append(v Value) {
	if v.IsMissing() {
		b.AppendMissing()
		return
	}
	switch v.Kind() {
	case KindFloat:
		b.AppendFloat(v.num)
	case KindInt:
		b.AppendInt(v.i)
	default:
		b.AppendText(v.text)
	}
}

// Len returns the number of rows appended so far.
func (b *Builder) Len() int { return len(b.col.valid) }

// Build returns the finished column. The builder must not be used afterwards.
func (b *Builder) Build() *Column {
	c := b.col
	b.col = nil
	return c
}
