package outlier

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/pricekit/core/frame"
	"github.com/YuminosukeSato/pricekit/pkg/errors"
	"github.com/YuminosukeSato/pricekit/pkg/log"
)

// PlotBoxes writes one box plot per feature into dir as boxplot_<feature>.png
// and returns the written paths. Missing cells are skipped.
func PlotBoxes(ds *frame.Dataset, features []string, dir string) ([]string, error) {
	const op = "outlier.PlotBoxes"
	if err := ds.Require(op, features...); err != nil {
		return nil, err
	}
	logger := log.GetLoggerWithName("outlier")
	paths := make([]string, 0, len(features))
	for _, name := range features {
		c, _ := ds.Column(name)
		if !c.IsNumeric() {
			return nil, errors.NewTypeMismatchError(op, name, "numeric", c.Kind().String())
		}
		values := c.Floats()
		if len(values) == 0 {
			errors.Warn(errors.NewUndefinedStatisticWarning(name, "boxplot", "no present values"))
			continue
		}

		p := plot.New()
		p.Title.Text = fmt.Sprintf("Boxplot of %s", name)
		p.Y.Label.Text = name

		box, err := plotter.NewBoxPlot(vg.Points(40), 0, plotter.Values(values))
		if err != nil {
			return nil, errors.Wrapf(err, "box plot for %s", name)
		}
		p.Add(box)
		p.NominalX(name)

		path := filepath.Join(dir, fmt.Sprintf("boxplot_%s.png", name))
		if err := p.Save(4*vg.Inch, 4*vg.Inch, path); err != nil {
			return nil, errors.Wrapf(err, "save %s", path)
		}
		logger.Debug("Wrote box plot", log.ColumnKey, name, "path", path)
		paths = append(paths, path)
	}
	return paths, nil
}
