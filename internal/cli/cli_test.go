package cli

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listings = `name,year,selling_price,km_driven,fuel,seller_type,transmission,owner,mileage,engine,max_power,seats
Maruti Swift Dzire VDI,2014,450000,145500,Diesel,Individual,Manual,First Owner,23.4 kmpl,1248 CC,74 bhp,5
Hyundai i20 Sportz,2017,650000,40000,Petrol,Dealer,Manual,Second Owner,18.9 kmpl,1197 CC,82 bhp,5
Honda City ZX,2010,225000,127000,Petrol,Individual,Manual,First Owner,17.7 kmpl,1497 CC,78 bhp,5
Tata Nexon XZ,2019,820000,30000,Diesel,Dealer,Manual,First Owner,21.5 kmpl,1497 CC,108 bhp,5
Maruti Alto LXi,2012,150000,80000,Petrol,Individual,Manual,Third Owner,20.9 kmpl,796 CC,47 bhp,5
`

func writeArchive(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archive.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	fw, err := w.Create("cars.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(listings))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestInspect(t *testing.T) {
	out, err := execute(t, "inspect", writeArchive(t), "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "selling_price")
	assert.Contains(t, out, "Petrol")
	assert.Contains(t, out, "5 rows x 12 columns")
}

func TestInspectRequiresArchive(t *testing.T) {
	_, err := execute(t, "inspect")
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "pipeline.yaml")
	cfg := "source: " + writeArchive(t) + "\nlog_level: error\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))

	out, err := execute(t, "run", "--config", cfgPath, "--test-fraction", "0.4")
	require.NoError(t, err)
	assert.Contains(t, out, "feature_engineering")
	assert.Contains(t, out, "train: 3 rows, test: 2 rows")
}

func TestRunInvalidConfig(t *testing.T) {
	_, err := execute(t, "run", "--log-level", "error")
	assert.Error(t, err, "source is required")
}
