package model

import (
	"time"
)

// Strategy は単一のエントリポイントを持つ差し替え可能な処理です。
// 各サブシステム（欠損値処理、外れ値検出、分割など）は自分の入出力型で
// インスタンス化します。
type Strategy[In, Out any] interface {
	Execute(in In) (Out, error)
}

// StrategyFunc adapts an ordinary function to Strategy.
type StrategyFunc[In, Out any] func(in In) (Out, error)

// Execute calls f(in).
func (f StrategyFunc[In, Out]) Execute(in In) (Out, error) {
	return f(in)
}

// Shaped is implemented by values whose size is reported to observers.
type Shaped interface {
	NRows() int
	NCols() int
}

func shapeOf(v any) (rows, cols int) {
	if s, ok := v.(Shaped); ok {
		return s.NRows(), s.NCols()
	}
	return 0, 0
}

// Context は現在選択されている戦略を保持し、実行前後にオブザーバへ通知します。
type Context[In, Out any] struct {
	stage    string
	strategy Strategy[In, Out]
	observer Observer
}

// NewContext creates a context running s for the named stage. A nil
// observer is replaced by NopObserver.
func NewContext[In, Out any](stage string, s Strategy[In, Out], observer Observer) *Context[In, Out] {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Context[In, Out]{stage: stage, strategy: s, observer: observer}
}

// SetStrategy replaces the strategy used by later Execute calls.
func (c *Context[In, Out]) SetStrategy(s Strategy[In, Out]) {
	c.strategy = s
}

// Strategy returns the current strategy.
func (c *Context[In, Out]) Strategy() Strategy[In, Out] {
	return c.strategy
}

// Stage returns the stage name.
func (c *Context[In, Out]) Stage() string {
	return c.stage
}

// Execute runs the current strategy on in.
func (c *Context[In, Out]) Execute(in In) (Out, error) {
	rows, cols := shapeOf(in)
	c.observer.StageStarted(c.stage, rows, cols)
	start := time.Now()

	out, err := c.strategy.Execute(in)
	if err != nil {
		var zero Out
		return zero, err
	}

	rows, cols = shapeOf(out)
	c.observer.StageFinished(c.stage, rows, cols, time.Since(start))
	return out, nil
}
