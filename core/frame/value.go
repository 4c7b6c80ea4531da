// Package frame は前処理パイプラインが受け渡す列指向のデータセットを提供します。
//
// Dataset は名前付きの列を順序付きで保持し、各列は Float / Int / Text の
// いずれか一種類の値だけを持ちます。欠損値は列ごとの有効ビットマップで表現され、
// 0 や空文字列とは区別されます。各行には安定した整数ラベル（インデックス）が付き、
// 行のフィルタリング後もラベルは保持されるため、別々に処理した列の部分集合を
// ラベルで再結合できます。
//
// 列は構築後に変更されません。Dataset の操作はすべて新しい Dataset を返します。
package frame

import (
	"math"
	"strconv"
)

// Kind は列の値の型です。
type Kind int

const (
	// KindFloat は64ビット浮動小数点列
	KindFloat Kind = iota
	// KindInt は64ビット整数列
	KindInt
	// KindText は文字列（カテゴリ）列
	KindText
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether the kind holds numbers.
func (k Kind) IsNumeric() bool {
	return k == KindFloat || k == KindInt
}

// Value は単一セルの動的型付き値です。ゼロ値は欠損値を表します。
type Value struct {
	kind  Kind
	num   float64
	i     int64
	text  string
	valid bool
}

// Missing は欠損値を返します。
func Missing() Value { return Value{} }

// Float wraps a float. NaN is treated as missing.
func Float(v float64) Value {
	if math.IsNaN(v) {
		return Value{kind: KindFloat}
	}
	return Value{kind: KindFloat, num: v, valid: true}
}

// Int wraps an integer.
func Int(v int64) Value {
	return Value{kind: KindInt, i: v, num: float64(v), valid: true}
}

// Text wraps a string.
func Text(s string) Value {
	return Value{kind: KindText, text: s, valid: true}
}

// IsMissing reports whether v is the missing marker.
func (v Value) IsMissing() bool { return !v.valid }

// Kind returns the kind of a non-missing value.
func (v Value) Kind() Kind { return v.kind }

// AsFloat returns the numeric form of v. Text is parsed; ok is false for
// missing values and unparsable text.
func (v Value) AsFloat() (float64, bool) {
	if !v.valid {
		return 0, false
	}
	switch v.kind {
	case KindFloat, KindInt:
		return v.num, true
	default:
		f, err := strconv.ParseFloat(v.text, 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	}
}

// AsText renders v as text. Missing renders as the empty string; use
// IsMissing to tell the two apart.
func (v Value) AsText() string {
	if !v.valid {
		return ""
	}
	switch v.kind {
	case KindFloat:
		return FormatFloat(v.num)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	default:
		return v.text
	}
}

// String implements fmt.Stringer. Missing values print as "<NA>".
func (v Value) String() string {
	if !v.valid {
		return "<NA>"
	}
	return v.AsText()
}

// Equal compares two values. Numbers compare by value regardless of kind,
// and two missing values are equal.
func (v Value) Equal(o Value) bool {
	if !v.valid || !o.valid {
		return v.valid == o.valid
	}
	if v.kind.IsNumeric() && o.kind.IsNumeric() {
		return v.num == o.num
	}
	if v.kind != o.kind {
		return false
	}
	return v.text == o.text
}

// FormatFloat renders f in its shortest exact decimal form without an
// exponent for ordinary magnitudes ("2014", "18.9", "0.5").
func FormatFloat(f float64) string {
	if math.IsInf(f, 0) || math.Abs(f) >= 1e21 || (f != 0 && math.Abs(f) < 1e-6) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
