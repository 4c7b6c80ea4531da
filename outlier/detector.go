package outlier

import (
	"math"
	"strings"

	"github.com/YuminosukeSato/pricekit/core/frame"
	"github.com/YuminosukeSato/pricekit/core/model"
	"github.com/YuminosukeSato/pricekit/pkg/errors"
	"github.com/YuminosukeSato/pricekit/pkg/log"
)

// Handling methods accepted by Handle and Filter.
const (
	MethodRemove = "remove"
	MethodCap    = "cap"
)

// Detector names accepted by ByName.
const (
	NameZScore       = "zscore"
	NameRobustZScore = "robust_zscore"
	NameIQR          = "iqr"
)

// Methods lists every handling method.
var Methods = []string{MethodRemove, MethodCap}

// Names lists every detector name accepted by ByName.
var Names = []string{NameZScore, NameRobustZScore, NameIQR}

// Percentiles used by the cap method.
const (
	capLower = 0.01
	capUpper = 0.99
)

// ByName returns the detection strategy for a configuration name.
// threshold is the z-score threshold or the IQR multiplier; 0 selects the default.
func ByName(name string, threshold float64) (Strategy, error) {
	switch strings.ToLower(name) {
	case NameZScore, "z_score":
		return ZScore{Threshold: threshold}, nil
	case NameRobustZScore, "mad":
		return RobustZScore{Threshold: threshold}, nil
	case NameIQR:
		return IQR{Multiplier: threshold}, nil
	default:
		return nil, errors.NewInvalidParameterError("detector", "unknown outlier detector, available: "+strings.Join(Names, ", "), name)
	}
}

// Detector は検出戦略を保持し、検出結果に従って行の削除または値のキャップを行います。
type Detector struct {
	ctx      *model.Context[*frame.Dataset, *Mask]
	observer model.Observer
	logger   log.Logger
}

// Option configures a Detector.
type Option func(*Detector)

// WithObserver sets the observer notified by the detector.
func WithObserver(o model.Observer) Option {
	return func(d *Detector) {
		if o != nil {
			d.observer = o
		}
	}
}

// WithLogger sets the detector logger.
func WithLogger(l log.Logger) Option {
	return func(d *Detector) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDetector creates a detector running s.
func NewDetector(s Strategy, opts ...Option) *Detector {
	d := &Detector{
		observer: model.NopObserver{},
		logger:   log.GetLoggerWithName("outlier"),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.ctx = model.NewContext[*frame.Dataset, *Mask](log.StageOutliers, wrap(s), d.observer)
	return d
}

// SetStrategy switches the strategy used by later calls.
func (d *Detector) SetStrategy(s Strategy) {
	d.logger.Info("Switching outlier detector", log.StrategyKey, strategyName(s))
	d.ctx.SetStrategy(wrap(s))
}

// Detect evaluates every numeric column of ds.
func (d *Detector) Detect(ds *frame.Dataset) (*Mask, error) {
	return d.ctx.Execute(ds)
}

// Handle applies method to ds according to mask. Rows are matched by index
// label. An unknown method is reported as a warning and leaves ds unchanged.
func (d *Detector) Handle(ds *frame.Dataset, mask *Mask, method string) (*frame.Dataset, error) {
	switch method {
	case MethodRemove:
		flagged := make(map[int]struct{}, len(mask.Index))
		for _, label := range mask.FlaggedLabels() {
			flagged[label] = struct{}{}
		}
		out := ds.Filter(func(row int) bool {
			_, drop := flagged[ds.Label(row)]
			return !drop
		})
		dropped := ds.NRows() - out.NRows()
		d.observer.RowsDropped(log.StageOutliers, dropped)
		d.logger.Info("Removed outlier rows",
			log.MethodKey, method,
			log.RowsDroppedKey, dropped,
			log.RowsKey, out.NRows(),
		)
		return out, nil
	case MethodCap:
		return d.capColumns(ds, mask.Columns)
	default:
		errors.Warn(errors.NewUnknownStrategyWarning("outlier", method, Methods...))
		return ds.Drop(), nil
	}
}

// capColumns clips each named numeric column into its 1st-99th percentile.
func (d *Detector) capColumns(ds *frame.Dataset, columns []string) (*frame.Dataset, error) {
	out := ds.Drop()
	for _, name := range columns {
		c, err := out.Column(name)
		if err != nil {
			return nil, err
		}
		if !c.IsNumeric() {
			continue
		}
		values := c.Floats()
		if len(values) == 0 {
			continue
		}
		lower := frame.Quantile(values, capLower)
		upper := frame.Quantile(values, capUpper)
		kind := c.Kind()
		if kind == frame.KindInt && (lower != math.Trunc(lower) || upper != math.Trunc(upper)) {
			kind = frame.KindFloat
		}
		b := frame.NewBuilder(name, kind, c.Len())
		capped := 0
		for i := 0; i < c.Len(); i++ {
			if c.IsMissing(i) {
				b.AppendMissing()
				continue
			}
			v := c.Float(i)
			clipped := errors.ClipValue(v, lower, upper)
			if clipped != v {
				capped++
			}
			b.AppendFloat(clipped)
		}
		if out, err = out.WithColumn(b.Build()); err != nil {
			return nil, err
		}
		d.logger.Info("Capped outlier values",
			log.ColumnKey, name,
			"lower", lower,
			"upper", upper,
			"capped", capped,
		)
	}
	return out, nil
}

// Filter evaluates column only and applies method. The non-numeric part of
// ds is re-joined by index label and the original column order is kept.
func (d *Detector) Filter(ds *frame.Dataset, column, method string) (*frame.Dataset, error) {
	const op = "outlier.Filter"
	if err := ds.Require(op, column); err != nil {
		return nil, err
	}
	c, _ := ds.Column(column)
	if !c.IsNumeric() {
		return nil, errors.NewTypeMismatchError(op, column, "numeric", c.Kind().String())
	}
	numeric, other := ds.SplitNumeric()
	target, err := numeric.Select(column)
	if err != nil {
		return nil, err
	}
	mask, err := d.Detect(target)
	if err != nil {
		return nil, err
	}
	d.logger.Debug("Detected outliers", log.ColumnKey, column, "flagged", mask.Count())
	handled, err := d.Handle(numeric, mask, method)
	if err != nil {
		return nil, err
	}
	return rejoin(ds, handled, other)
}

// Clean evaluates every numeric column of ds at once and applies method.
func (d *Detector) Clean(ds *frame.Dataset, method string) (*frame.Dataset, error) {
	numeric, other := ds.SplitNumeric()
	mask, err := d.Detect(numeric)
	if err != nil {
		return nil, err
	}
	handled, err := d.Handle(numeric, mask, method)
	if err != nil {
		return nil, err
	}
	return rejoin(ds, handled, other)
}

func rejoin(ds, numeric, other *frame.Dataset) (*frame.Dataset, error) {
	joined, err := numeric.JoinByIndex(other)
	if err != nil {
		return nil, err
	}
	return joined.Select(ds.Names()...)
}

func wrap(s Strategy) model.Strategy[*frame.Dataset, *Mask] {
	return model.StrategyFunc[*frame.Dataset, *Mask](s.Detect)
}

func strategyName(s Strategy) string {
	switch s.(type) {
	case ZScore:
		return NameZScore
	case RobustZScore:
		return NameRobustZScore
	case IQR:
		return NameIQR
	default:
		return "custom"
	}
}
