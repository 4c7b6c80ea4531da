package config

import (
	"github.com/YuminosukeSato/pricekit/impute"
	"github.com/YuminosukeSato/pricekit/outlier"
	"github.com/YuminosukeSato/pricekit/pkg/errors"
	"github.com/YuminosukeSato/pricekit/pkg/log"
)

// Validate checks the configuration after defaults have been applied.
// Unknown missing-value strategies and outlier methods are accepted: the
// components degrade them to a warning at run time.
func (c *Config) Validate() error {
	if c.Source == "" {
		return errors.NewInvalidParameterError("source", "an input archive is required", c.Source)
	}
	if _, ok := log.ParseLevel(c.LogLevel); !ok {
		return errors.NewInvalidParameterError("log_level", "must be one of debug, info, warn, error", c.LogLevel)
	}
	if c.Missing.Strategy == impute.NameConstant && c.Missing.FillValue == "" {
		return errors.NewInvalidParameterError("missing.fill_value", "required by the constant strategy", c.Missing.FillValue)
	}
	if _, err := outlier.ByName(c.Outliers.Detector, c.Outliers.Threshold); err != nil {
		return errors.NewInvalidParameterError("outliers.detector", "unknown outlier detector", c.Outliers.Detector)
	}
	if c.Outliers.Threshold < 0 {
		return errors.NewInvalidParameterError("outliers.threshold", "must not be negative", c.Outliers.Threshold)
	}
	if c.Split.Target == "" {
		return errors.NewInvalidParameterError("split.target", "a target column is required", c.Split.Target)
	}
	if c.Split.TestFraction <= 0 || c.Split.TestFraction >= 1 {
		return errors.NewInvalidParameterError("split.test_fraction", "must be in the open interval (0, 1)", c.Split.TestFraction)
	}
	return nil
}
