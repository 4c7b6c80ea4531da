package impute

import (
	"github.com/YuminosukeSato/pricekit/core/frame"
	"github.com/YuminosukeSato/pricekit/pkg/errors"
)

// Axis は削除の方向です。
type Axis int

const (
	// Rows は欠損値を含む行を削除する
	Rows Axis = iota
	// Columns は欠損値を含む列を削除する
	Columns
)

// DropMissing は欠損値を含む行（または列）を削除します。
// MinValid > 0 の場合、非欠損値が MinValid 個以上ある行・列は残します。
type DropMissing struct {
	Axis     Axis
	MinValid int
}

// Handle implements Strategy.
func (s DropMissing) Handle(ds *frame.Dataset) (*frame.Dataset, error) {
	if s.MinValid < 0 {
		return nil, errors.NewInvalidParameterError("min_valid", "must not be negative", s.MinValid)
	}
	cols := ds.Columns()

	switch s.Axis {
	case Rows:
		return ds.Filter(func(row int) bool {
			valid := 0
			for _, c := range cols {
				if !c.IsMissing(row) {
					valid++
				}
			}
			return s.keep(valid, len(cols))
		}), nil
	case Columns:
		var drop []string
		for _, c := range cols {
			if !s.keep(c.Len()-c.MissingCount(), c.Len()) {
				drop = append(drop, c.Name())
			}
		}
		return ds.Drop(drop...), nil
	default:
		return nil, errors.NewInvalidParameterError("axis", "must be rows or columns", int(s.Axis))
	}
}

func (s DropMissing) keep(valid, total int) bool {
	if s.MinValid > 0 {
		return valid >= s.MinValid
	}
	return valid == total
}
