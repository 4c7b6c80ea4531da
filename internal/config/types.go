// Package config loads the pipeline description used by the pricekit CLI.
//
// Values are merged from built-in defaults, a YAML file, PRICEKIT_ environment
// variables and explicitly set command-line flags, in increasing precedence.
package config

// Config holds a full pipeline run description.
type Config struct {
	Source   string         `koanf:"source"`
	LogLevel string         `koanf:"log_level"`
	PlotDir  string         `koanf:"plot_dir"`
	Missing  MissingConfig  `koanf:"missing"`
	Features FeaturesConfig `koanf:"features"`
	Outliers OutlierConfig  `koanf:"outliers"`
	Split    SplitConfig    `koanf:"split"`
}

// MissingConfig selects the missing-value strategy.
type MissingConfig struct {
	Strategy  string `koanf:"strategy"`
	FillValue string `koanf:"fill_value"`
}

// FeaturesConfig selects the registry transforms to run.
type FeaturesConfig struct {
	ReferenceYear int      `koanf:"reference_year"`
	Transforms    []string `koanf:"transforms"`
}

// OutlierConfig selects the outlier detector and the filtered columns.
type OutlierConfig struct {
	Detector  string   `koanf:"detector"`
	Method    string   `koanf:"method"`
	// Threshold is the z-score threshold or the IQR multiplier; 0 keeps the
	// default of the chosen detector.
	Threshold float64  `koanf:"threshold"`
	Columns   []string `koanf:"columns"`
}

// SplitConfig parameterises the train/test split.
type SplitConfig struct {
	Target       string  `koanf:"target"`
	TestFraction float64 `koanf:"test_fraction"`
	Seed         int64   `koanf:"seed"`
	Stratified   bool    `koanf:"stratified"`
}

// Default configuration values.
const (
	DefaultLogLevel        = "info"
	DefaultMissingStrategy = "drop"
	DefaultReferenceYear   = 2025
	DefaultDetector        = "zscore"
	DefaultMethod          = "remove"
	DefaultTarget          = "selling_price"
	DefaultTestFraction    = 0.2
	DefaultSeed            = 42
)

// DefaultTransforms are the registry keys run when none are configured.
var DefaultTransforms = []string{
	"extract_brand", "age", "drop_year", "map_owner",
	"strip_units", "type_cast", "log_transform", "one_hot_encode",
}

// DefaultOutlierColumns are the columns filtered when none are configured.
var DefaultOutlierColumns = []string{"selling_price", "km_driven", "mileage", "max_power"}

// ApplyDefaults fills unset fields with their default values.
func (c *Config) ApplyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Missing.Strategy == "" {
		c.Missing.Strategy = DefaultMissingStrategy
	}
	if c.Features.ReferenceYear == 0 {
		c.Features.ReferenceYear = DefaultReferenceYear
	}
	if c.Features.Transforms == nil {
		c.Features.Transforms = append([]string(nil), DefaultTransforms...)
	}
	if c.Outliers.Detector == "" {
		c.Outliers.Detector = DefaultDetector
	}
	if c.Outliers.Method == "" {
		c.Outliers.Method = DefaultMethod
	}
	if c.Outliers.Columns == nil {
		c.Outliers.Columns = append([]string(nil), DefaultOutlierColumns...)
	}
	if c.Split.Target == "" {
		c.Split.Target = DefaultTarget
	}
	if c.Split.TestFraction == 0 {
		c.Split.TestFraction = DefaultTestFraction
	}
}
