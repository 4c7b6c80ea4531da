package ingest

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/pricekit/core/frame"
	"github.com/YuminosukeSato/pricekit/pkg/errors"
	"github.com/YuminosukeSato/pricekit/pkg/log"
)

const carsCSV = `name,year,selling_price,km_driven,fuel,mileage
Maruti Swift Dzire VDI,2014,450000,145500,Diesel,23.4 kmpl
Hyundai i20 Sportz,2010,225000,127000,Petrol,NA
Honda City 2017-2020 EXi,2006,158000.5,140000,,17.7 kmpl
`

func TestMain(m *testing.M) {
	provider, _ := log.NewTestLoggerProvider(log.LevelDebug)
	log.SetProvider(provider)
	os.Exit(m.Run())
}

func writeZip(t *testing.T, files map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	for name, body := range files {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return path
}

func TestReadCSVInfersKinds(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader(carsCSV))
	require.NoError(t, err)
	assert.Equal(t, 3, ds.NRows())
	assert.Equal(t, []string{"name", "year", "selling_price", "km_driven", "fuel", "mileage"}, ds.Names())

	kinds := map[string]frame.Kind{}
	for _, c := range ds.Columns() {
		kinds[c.Name()] = c.Kind()
	}
	assert.Equal(t, map[string]frame.Kind{
		"name":          frame.KindText,
		"year":          frame.KindInt,
		"selling_price": frame.KindFloat,
		"km_driven":     frame.KindInt,
		"fuel":          frame.KindText,
		"mileage":       frame.KindText,
	}, kinds)

	fuel, _ := ds.Column("fuel")
	assert.True(t, fuel.IsMissing(2))
	mileage, _ := ds.Column("mileage")
	assert.True(t, mileage.IsMissing(1))
	assert.Equal(t, "23.4 kmpl", mileage.Text(0))
	year, _ := ds.Column("year")
	assert.Equal(t, 2014.0, year.Float(0))
}

func TestReadCSVMissingOnlyColumn(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader("a,b\n1,NaN\n2,\n"))
	require.NoError(t, err)
	b, err := ds.Column("b")
	require.NoError(t, err)
	assert.Equal(t, frame.KindFloat, b.Kind())
	assert.Equal(t, 2, b.MissingCount())
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	_, err = ReadCSV(strings.NewReader("a,b\n1\n"))
	assert.Error(t, err, "ragged rows")

	_, err = ReadCSV(strings.NewReader("a,a\n1,2\n"))
	assert.Error(t, err, "duplicate header")
}

func TestZipIngestor(t *testing.T) {
	path := writeZip(t, map[string]string{
		"cars/car details.csv": carsCSV,
		"README.txt":           "readme",
	})
	ds, err := ZipIngestor{}.Ingest(path)
	require.NoError(t, err)
	assert.Equal(t, 3, ds.NRows())
	assert.Equal(t, []int{0, 1, 2}, ds.Index())
}

func TestZipIngestorErrors(t *testing.T) {
	none := writeZip(t, map[string]string{"notes.txt": "x"})
	_, err := ZipIngestor{}.Ingest(none)
	assert.True(t, errors.Is(err, ErrNoCSV))

	many := writeZip(t, map[string]string{"a.csv": carsCSV, "b.csv": carsCSV})
	_, err = ZipIngestor{}.Ingest(many)
	assert.True(t, errors.Is(err, ErrMultipleCSV))

	_, err = ZipIngestor{}.Ingest(filepath.Join(t.TempDir(), "data.csv"))
	var invalid *errors.InvalidParameterError
	assert.True(t, errors.As(err, &invalid))

	_, err = ZipIngestor{}.Ingest(filepath.Join(t.TempDir(), "absent.zip"))
	assert.Error(t, err)
}

func TestForExtension(t *testing.T) {
	i, err := ForExtension(".zip")
	require.NoError(t, err)
	assert.IsType(t, ZipIngestor{}, i)

	i, err = ForPath("/data/cars.CSV")
	require.NoError(t, err)
	assert.IsType(t, CSVIngestor{}, i)

	_, err = ForExtension(".parquet")
	assert.True(t, errors.Is(err, ErrUnsupportedExtension))
}

func TestCSVIngestor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cars.csv")
	require.NoError(t, os.WriteFile(path, []byte(carsCSV), 0o600))
	ds, err := CSVIngestor{}.Ingest(path)
	require.NoError(t, err)
	assert.Equal(t, 6, ds.NCols())
}
