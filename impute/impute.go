// Package impute は欠損値の処理戦略（行・列の削除、統計量や定数による補完）を提供します。
//
// すべての戦略は欠損値を含まないデータセットに対して恒等変換です。
package impute

import (
	"github.com/YuminosukeSato/pricekit/core/frame"
	"github.com/YuminosukeSato/pricekit/core/model"
	"github.com/YuminosukeSato/pricekit/pkg/errors"
	"github.com/YuminosukeSato/pricekit/pkg/log"
)

// Strategy は欠損値処理の戦略です。
type Strategy interface {
	Handle(ds *frame.Dataset) (*frame.Dataset, error)
}

// Strategy names accepted by ByName.
const (
	NameDrop     = "drop"
	NameMean     = "mean"
	NameMedian   = "median"
	NameMode     = "mode"
	NameConstant = "constant"
)

// Names lists every strategy name accepted by ByName.
var Names = []string{NameDrop, NameMean, NameMedian, NameMode, NameConstant}

// ByName returns the strategy for a configuration name. value is only used
// by "constant". Unknown names yield a Fill whose Handle warns and leaves
// the dataset unchanged.
func ByName(name string, value frame.Value) Strategy {
	switch name {
	case NameDrop:
		return DropMissing{Axis: Rows}
	case NameConstant:
		return Fill{Method: Constant, Value: value}
	default:
		return Fill{Method: Method(name)}
	}
}

// Handler は選択された戦略を実行し、オブザーバとロガーに通知します。
type Handler struct {
	ctx      *model.Context[*frame.Dataset, *frame.Dataset]
	observer model.Observer
	logger   log.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithObserver sets the observer notified by the handler.
func WithObserver(o model.Observer) Option {
	return func(h *Handler) {
		if o != nil {
			h.observer = o
		}
	}
}

// WithLogger sets the handler logger.
func WithLogger(l log.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHandler creates a handler running s.
func NewHandler(s Strategy, opts ...Option) *Handler {
	h := &Handler{
		observer: model.NopObserver{},
		logger:   log.GetLoggerWithName("impute"),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.ctx = model.NewContext[*frame.Dataset, *frame.Dataset](log.StageMissing, h.wrap(s), h.observer)
	return h
}

// SetStrategy switches the strategy used by later Handle calls.
func (h *Handler) SetStrategy(s Strategy) {
	h.logger.Info("Switching missing value strategy", log.StrategyKey, strategyName(s))
	h.ctx.SetStrategy(h.wrap(s))
}

// Handle applies the current strategy.
func (h *Handler) Handle(ds *frame.Dataset) (*frame.Dataset, error) {
	return h.ctx.Execute(ds)
}

func (h *Handler) wrap(s Strategy) model.Strategy[*frame.Dataset, *frame.Dataset] {
	return model.StrategyFunc[*frame.Dataset, *frame.Dataset](func(ds *frame.Dataset) (*frame.Dataset, error) {
		h.logger.Info("Handling missing values",
			log.StageKey, log.StageMissing,
			log.StrategyKey, strategyName(s),
		)
		out, err := s.Handle(ds)
		if err != nil {
			return nil, err
		}
		h.observer.RowsDropped(log.StageMissing, ds.NRows()-out.NRows())
		return out, nil
	})
}

func strategyName(s Strategy) string {
	switch v := s.(type) {
	case DropMissing:
		return NameDrop
	case Fill:
		return string(v.Method)
	default:
		return "custom"
	}
}

func warnUnknown(name string) {
	errors.Warn(errors.NewUnknownStrategyWarning("impute", name, Names...))
}
