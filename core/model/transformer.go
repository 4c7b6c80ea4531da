package model

import "gonum.org/v1/gonum/mat"

// Transformer は数値列の行列（行 × 列）に対する学習可能な変換です。
// 欠損セルは NaN として渡され、変換後も NaN のまま残ります。
type Transformer interface {
	Fit(X mat.Matrix) error
	Transform(X mat.Matrix) (mat.Matrix, error)
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// InverseTransformer can map transformed values back to the original scale.
type InverseTransformer interface {
	Transformer
	InverseTransform(X mat.Matrix) (mat.Matrix, error)
}
