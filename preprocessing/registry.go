package preprocessing

import (
	"github.com/YuminosukeSato/pricekit/core/frame"
	"github.com/YuminosukeSato/pricekit/core/model"
	"github.com/YuminosukeSato/pricekit/pkg/errors"
	"github.com/YuminosukeSato/pricekit/pkg/log"
)

// Entry はレジストリの1項目（キーと変換）です。
type Entry struct {
	Key       string
	Transform Transform
}

// Registry は変換の順序付きカタログです。
//
// 登録順が唯一の実行順序で、Apply に渡すキーの順序には依存しません。
// 要求されていない変換は出力に一切影響せず、未知のキーは無視されます。
type Registry struct {
	entries  []Entry
	observer model.Observer
	logger   log.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithObserver sets the observer notified for every executed transform.
func WithObserver(o model.Observer) Option {
	return func(r *Registry) {
		if o != nil {
			r.observer = o
		}
	}
}

// WithLogger sets the logger used for pipeline progress messages.
func WithLogger(l log.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry creates a registry. Keys must be unique and non-empty.
func NewRegistry(entries []Entry, opts ...Option) (*Registry, error) {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.Key == "" {
			return nil, errors.NewInvalidParameterError("key", "transform key must not be empty", e.Key)
		}
		if e.Transform == nil {
			return nil, errors.NewInvalidParameterError(e.Key, "transform must not be nil", nil)
		}
		if _, dup := seen[e.Key]; dup {
			return nil, errors.NewInvalidParameterError("key", "duplicate transform key", e.Key)
		}
		seen[e.Key] = struct{}{}
	}

	r := &Registry{
		entries:  append([]Entry(nil), entries...),
		observer: model.NopObserver{},
		logger:   log.GetLoggerWithName("preprocessing"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Keys returns the transform keys in execution order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.entries))
	for i, e := range r.entries {
		keys[i] = e.Key
	}
	return keys
}

// Lookup returns the transform registered under key.
func (r *Registry) Lookup(key string) (Transform, bool) {
	for _, e := range r.entries {
		if e.Key == key {
			return e.Transform, true
		}
	}
	return nil, false
}

// Plan returns the keys that Apply would execute for requested, in order.
func (r *Registry) Plan(requested []string) []string {
	want := make(map[string]struct{}, len(requested))
	for _, k := range requested {
		want[k] = struct{}{}
	}
	var plan []string
	for _, e := range r.entries {
		if _, ok := want[e.Key]; ok {
			plan = append(plan, e.Key)
		}
	}
	return plan
}

// Apply runs every requested transform in registry order. The first failure
// aborts the run and is returned as a TransformError carrying the key; no
// partial result is returned.
func (r *Registry) Apply(ds *frame.Dataset, requested []string) (*frame.Dataset, error) {
	plan := r.Plan(requested)
	logger := r.logger.With(log.StageKey, log.StageFeatures)

	out := ds.Drop()
	for _, key := range plan {
		t, _ := r.Lookup(key)
		step := model.NewContext[*frame.Dataset, *frame.Dataset](key,
			model.StrategyFunc[*frame.Dataset, *frame.Dataset](func(in *frame.Dataset) (*frame.Dataset, error) {
				var res *frame.Dataset
				err := errors.SafeExecute(key, func() error {
					var err error
					res, err = applyObserved(t, in, key, r.observer)
					return err
				})
				return res, err
			}), r.observer)

		next, err := step.Execute(out)
		if err != nil {
			logger.Error("Transform failed", err, log.TransformKey, key)
			return nil, errors.NewTransformError(key, err)
		}
		logger.Debug("Transform applied",
			log.TransformKey, key,
			log.RowsKey, next.NRows(),
			log.ColumnsKey, next.NCols(),
		)
		out = next
	}
	return out, nil
}

// Execute applies every registered transform. It lets a Registry be used
// wherever a dataset strategy is expected.
func (r *Registry) Execute(ds *frame.Dataset) (*frame.Dataset, error) {
	return r.Apply(ds, r.Keys())
}

// Pipeline binds a registry to a fixed request so that it can run as a
// single dataset strategy.
type Pipeline struct {
	Registry  *Registry
	Requested []string
}

// Execute implements model.Strategy.
func (p Pipeline) Execute(ds *frame.Dataset) (*frame.Dataset, error) {
	return p.Registry.Apply(ds, p.Requested)
}

var (
	_ model.Strategy[*frame.Dataset, *frame.Dataset] = (*Registry)(nil)
	_ model.Strategy[*frame.Dataset, *frame.Dataset] = Pipeline{}
)
