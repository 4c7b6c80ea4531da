package config

import (
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/YuminosukeSato/pricekit/pkg/errors"
)

// EnvPrefix is the prefix of environment overrides. A double underscore
// separates nesting levels: PRICEKIT_SPLIT__TEST_FRACTION sets split.test_fraction.
const EnvPrefix = "PRICEKIT_"

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"source":         "source",
	"log-level":      "log_level",
	"plot-dir":       "plot_dir",
	"missing":        "missing.strategy",
	"fill-value":     "missing.fill_value",
	"reference-year": "features.reference_year",
	"transforms":     "features.transforms",
	"detector":       "outliers.detector",
	"method":         "outliers.method",
	"threshold":      "outliers.threshold",
	"outlier-cols":   "outliers.columns",
	"target":         "split.target",
	"test-fraction":  "split.test_fraction",
	"seed":           "split.seed",
	"stratified":     "split.stratified",
}

// Load reads the configuration. cfgFile may be empty. Only flags that were
// explicitly set override lower layers. The result has defaults applied but
// is not validated.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"log_level":               DefaultLogLevel,
		"missing.strategy":        DefaultMissingStrategy,
		"features.reference_year": DefaultReferenceYear,
		"features.transforms":     DefaultTransforms,
		"outliers.detector":       DefaultDetector,
		"outliers.method":         DefaultMethod,
		"outliers.columns":        DefaultOutlierColumns,
		"split.target":            DefaultTarget,
		"split.test_fraction":     DefaultTestFraction,
		"split.seed":              DefaultSeed,
	}, "."), nil); err != nil {
		return nil, errors.Wrap(err, "load defaults")
	}

	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "read config file %s", cfgFile)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load environment")
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, errors.Wrap(err, "load flags")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// RegisterFlags declares the override flags understood by Load.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("source", "", "input archive (.zip with one CSV) or CSV file")
	flags.String("log-level", DefaultLogLevel, "log level: debug, info, warn, error")
	flags.String("plot-dir", "", "directory for outlier box plots")
	flags.String("missing", DefaultMissingStrategy, "missing-value strategy: drop, mean, median, mode, constant")
	flags.String("fill-value", "", "fill value of the constant strategy")
	flags.Int("reference-year", DefaultReferenceYear, "reference year of the age transform")
	flags.StringSlice("transforms", nil, "registry transforms to run")
	flags.String("detector", DefaultDetector, "outlier detector: zscore, robust_zscore, iqr")
	flags.String("method", DefaultMethod, "outlier handling: remove, cap")
	flags.Float64("threshold", 0, "detector threshold or IQR multiplier (0 keeps the detector default)")
	flags.StringSlice("outlier-cols", nil, "columns filtered for outliers")
	flags.String("target", DefaultTarget, "target column of the split")
	flags.Float64("test-fraction", DefaultTestFraction, "share of rows in the test split")
	flags.Int64("seed", DefaultSeed, "random seed of the split")
	flags.Bool("stratified", false, "stratify the split by the target classes")
}
