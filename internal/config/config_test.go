package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/pricekit/outlier"
	"github.com/YuminosukeSato/pricekit/pkg/errors"
)

const pipelineYAML = `source: data/archive.zip
missing:
  strategy: median
features:
  transforms: [extract_brand, age]
outliers:
  detector: iqr
  threshold: 2
  columns: [selling_price]
split:
  test_fraction: 0.25
  seed: 7
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultMissingStrategy, cfg.Missing.Strategy)
	assert.Equal(t, DefaultReferenceYear, cfg.Features.ReferenceYear)
	assert.Equal(t, DefaultTransforms, cfg.Features.Transforms)
	assert.Equal(t, DefaultOutlierColumns, cfg.Outliers.Columns)
	assert.Zero(t, cfg.Outliers.Threshold, "0 keeps the detector default")
	assert.Equal(t, DefaultTarget, cfg.Split.Target)
	assert.Equal(t, DefaultTestFraction, cfg.Split.TestFraction)
	assert.Equal(t, int64(DefaultSeed), cfg.Split.Seed)
	assert.False(t, cfg.Split.Stratified)
}

func TestLoadFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, pipelineYAML), nil)
	require.NoError(t, err)
	assert.Equal(t, "data/archive.zip", cfg.Source)
	assert.Equal(t, "median", cfg.Missing.Strategy)
	assert.Equal(t, []string{"extract_brand", "age"}, cfg.Features.Transforms)
	assert.Equal(t, "iqr", cfg.Outliers.Detector)
	assert.Equal(t, 2.0, cfg.Outliers.Threshold)
	assert.Equal(t, []string{"selling_price"}, cfg.Outliers.Columns)
	assert.Equal(t, 0.25, cfg.Split.TestFraction)
	assert.Equal(t, int64(7), cfg.Split.Seed)
	assert.Equal(t, DefaultMethod, cfg.Outliers.Method, "unset keys keep defaults")
	require.NoError(t, cfg.Validate())
}

func TestDetectorKeepsOwnDefault(t *testing.T) {
	tests := []struct {
		detector string
		want     outlier.Strategy
	}{
		{"iqr", outlier.IQR{}},
		{"robust_zscore", outlier.RobustZScore{}},
		{"zscore", outlier.ZScore{}},
	}
	for _, tt := range tests {
		t.Run(tt.detector, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, "source: a.zip\noutliers:\n  detector: "+tt.detector+"\n"), nil)
			require.NoError(t, err)
			require.NoError(t, cfg.Validate())

			s, err := outlier.ByName(cfg.Outliers.Detector, cfg.Outliers.Threshold)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s)
		})
	}

	// the flag default must not override the detector default either
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(flags)
	require.NoError(t, flags.Parse([]string{"--detector", "iqr"}))
	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Zero(t, cfg.Outliers.Threshold)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("PRICEKIT_SPLIT__TEST_FRACTION", "0.4")
	t.Setenv("PRICEKIT_LOG_LEVEL", "debug")

	cfg, err := Load(writeConfig(t, pipelineYAML), nil)
	require.NoError(t, err)
	assert.Equal(t, 0.4, cfg.Split.TestFraction)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestFlagPrecedence(t *testing.T) {
	t.Setenv("PRICEKIT_SPLIT__SEED", "11")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(flags)
	require.NoError(t, flags.Set("seed", "3"))
	require.NoError(t, flags.Set("method", "cap"))

	cfg, err := Load(writeConfig(t, pipelineYAML), flags)
	require.NoError(t, err)
	assert.Equal(t, int64(3), cfg.Split.Seed, "flag wins over env and file")
	assert.Equal(t, "cap", cfg.Outliers.Method)
	assert.Equal(t, "iqr", cfg.Outliers.Detector, "unset flags do not override the file")
	assert.Equal(t, 0.25, cfg.Split.TestFraction)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := &Config{Source: "archive.zip"}
		c.ApplyDefaults()
		return c
	}
	require.NoError(t, valid().Validate())

	for _, alias := range []string{"z_score", "mad", "IQR", "Robust_ZScore"} {
		c := valid()
		c.Outliers.Detector = alias
		assert.NoError(t, c.Validate(), alias)
	}

	tests := []struct {
		name  string
		edit  func(c *Config)
		param string
	}{
		{"no source", func(c *Config) { c.Source = "" }, "source"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"constant without value", func(c *Config) { c.Missing.Strategy = "constant" }, "missing.fill_value"},
		{"unknown detector", func(c *Config) { c.Outliers.Detector = "lof" }, "outliers.detector"},
		{"empty detector", func(c *Config) { c.Outliers.Detector = "" }, "outliers.detector"},
		{"negative threshold", func(c *Config) { c.Outliers.Threshold = -1 }, "outliers.threshold"},
		{"fraction too large", func(c *Config) { c.Split.TestFraction = 1 }, "split.test_fraction"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.edit(c)
			err := c.Validate()
			var invalid *errors.InvalidParameterError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.param, invalid.ParamName)
		})
	}
}
