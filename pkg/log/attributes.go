// Package log defines standard attribute keys for pipeline operations.
//
// Keys follow a hierarchical naming convention (e.g. "pipeline.stage",
// "data.rows") so that logs of a whole run can be filtered per stage or
// per column.

package log

// Pipeline context
const (
	// StageKey identifies the pipeline stage emitting the record.
	// Standard values: see the Stage* constants below.
	StageKey = "pipeline.stage"

	// TransformKey is the registry key of a column transform.
	// Examples: "extract_brand", "strip_units"
	TransformKey = "pipeline.transform"

	// StrategyKey names the strategy variant used by a stage.
	// Examples: "drop", "mean", "zscore", "iqr"
	StrategyKey = "pipeline.strategy"

	// MethodKey names a handling method, e.g. "remove" or "cap".
	MethodKey = "pipeline.method"

	// ComponentKey identifies which package is performing the operation.
	ComponentKey = "component"
)

// Data shape
const (
	// RowsKey is the number of rows of the dataset after the operation.
	RowsKey = "data.rows"

	// ColumnsKey is the number of columns of the dataset after the operation.
	ColumnsKey = "data.columns"

	// ColumnKey names the column an operation applies to.
	ColumnKey = "data.column"

	// RowsDroppedKey counts rows removed by a filtering operation.
	RowsDroppedKey = "data.rows_dropped"

	// ValuesCoercedKey counts values turned into the missing marker.
	ValuesCoercedKey = "data.values_coerced"
)

// Performance and reproducibility
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// ThresholdKey records a detection threshold.
	ThresholdKey = "config.threshold"

	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"

	// TestFractionKey records the share of rows assigned to the test split.
	TestFractionKey = "config.test_fraction"
)

// Error context
const (
	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"

	// SuggestionKey provides helpful suggestions for resolving issues.
	SuggestionKey = "error.suggestion"
)

// Standard stage names.
const (
	StageIngest   = "ingest"
	StageMissing  = "missing_values"
	StageFeatures = "feature_engineering"
	StageOutliers = "outliers"
	StageSplit    = "split"
)
