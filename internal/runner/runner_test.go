package runner

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/pricekit/core/model"
	"github.com/YuminosukeSato/pricekit/internal/config"
	"github.com/YuminosukeSato/pricekit/pkg/errors"
	"github.com/YuminosukeSato/pricekit/pkg/log"
)

func TestMain(m *testing.M) {
	provider, _ := log.NewTestLoggerProvider(log.LevelDebug)
	log.SetProvider(provider)
	errors.SetWarningHandler(nil)
	os.Exit(m.Run())
}

func carArchive(t *testing.T, rows int) string {
	t.Helper()
	brands := []string{"Maruti Swift Dzire VDI", "Hyundai i20 Sportz", "Honda City ZX", "Tata Nexon XZ"}
	fuels := []string{"Diesel", "Petrol"}
	owners := []string{"First Owner", "Second Owner", "Third Owner"}

	var b strings.Builder
	b.WriteString("name,year,selling_price,km_driven,fuel,seller_type,transmission,owner,mileage,engine,max_power,seats\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "%s,%d,%d,%d,%s,Individual,Manual,%s,%.1f kmpl,%d CC,%d bhp,5\n",
			brands[i%len(brands)],
			2008+i%10,
			200000+15000*i,
			20000+3000*i,
			fuels[i%len(fuels)],
			owners[i%len(owners)],
			17.0+0.5*float64(i%6),
			1197+10*i,
			70+i,
		)
	}

	path := filepath.Join(t.TempDir(), "archive.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	fw, err := w.Create("Car details v3.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(b.String()))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return path
}

func TestRunDefaults(t *testing.T) {
	cfg := &config.Config{Source: carArchive(t, 10), PlotDir: filepath.Join(t.TempDir(), "plots")}
	cfg.ApplyDefaults()
	require.NoError(t, cfg.Validate())

	rec := model.NewRecorder()
	res, err := New(cfg, rec).Run()
	require.NoError(t, err)

	require.Len(t, res.Stages, 5)
	assert.Equal(t, log.StageIngest, res.Stages[0].Stage)
	assert.Equal(t, 10, res.Stages[0].Rows)
	assert.Equal(t, log.StageSplit, res.Stages[4].Stage)

	assert.Equal(t, 8, res.Split.XTrain.NRows())
	assert.Equal(t, 2, res.Split.XTest.NRows())
	assert.False(t, res.Split.XTrain.Has("selling_price"))
	assert.True(t, res.Split.XTrain.Has("brand_Maruti"))
	assert.False(t, res.Split.XTrain.Has("year"))
	assert.Len(t, res.Plots, len(config.DefaultOutlierColumns))

	assert.Contains(t, rec.Finished, "extract_brand")
	assert.Contains(t, rec.Finished, log.StageOutliers)
	assert.Contains(t, rec.Finished, log.StageSplit)
}

func TestRunIsReproducible(t *testing.T) {
	cfg := &config.Config{Source: carArchive(t, 30)}
	cfg.ApplyDefaults()
	cfg.Outliers.Detector = "iqr"

	a, err := New(cfg, model.NopObserver{}).Run()
	require.NoError(t, err)
	b, err := New(cfg, model.NopObserver{}).Run()
	require.NoError(t, err)
	assert.Equal(t, a.Split.XTest.Index(), b.Split.XTest.Index())
	assert.True(t, a.Clean.Equal(b.Clean))
}

func TestRunMissingOutlierColumn(t *testing.T) {
	cfg := &config.Config{Source: carArchive(t, 10)}
	cfg.ApplyDefaults()
	cfg.Outliers.Columns = []string{"torque"}

	_, err := New(cfg, nil).Run()
	var missing *errors.MissingColumnError
	assert.True(t, errors.As(err, &missing))
}

func TestRunUnsupportedSource(t *testing.T) {
	cfg := &config.Config{Source: "cars.parquet"}
	cfg.ApplyDefaults()
	_, err := New(cfg, nil).Run()
	assert.Error(t, err)
}
