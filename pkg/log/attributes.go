// Package log defines standard attribute keys for eslgo computations.
//
// The keys follow a hierarchical naming convention (e.g. "model.name",
// "data.samples") so records can be filtered by prefix.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the kind of fit.
	// Examples: "LeastSquares", "BestSubset"
	ModelNameKey = "model.name"

	// EstimatorIDKey identifies one run of the CLI or one fit instance.
	EstimatorIDKey = "estimator.id"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "search", "evaluate", "load"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "linear", "subset", "evaluation", "dataset"
	ComponentKey = "ml.component"

	// PhaseKey indicates which split the data belongs to.
	PhaseKey = "ml.phase"
)

// Data Shape
const (
	// SamplesKey indicates the number of observations (rows).
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of design-matrix columns.
	FeaturesKey = "data.features"

	// ColumnsKey lists column names.
	ColumnsKey = "data.columns"

	// SourceKey names the file or reader a dataset came from.
	SourceKey = "data.source"
)

// Results
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// RSSKey records a residual sum of squares.
	RSSKey = "metrics.rss"

	// TestErrorKey records a held-out mean squared error.
	TestErrorKey = "metrics.test_error"

	// StdErrorKey records the standard error of TestErrorKey.
	StdErrorKey = "metrics.std_error"

	// SubsetSizeKey records the subset size k.
	SubsetSizeKey = "subset.size"

	// CombinationKey records the column indices of a subset.
	CombinationKey = "subset.combination"

	// EvaluatedKey records how many subsets were fitted.
	EvaluatedKey = "subset.evaluated"

	// WorkersKey records the number of parallel workers.
	WorkersKey = "subset.workers"
)

// Error Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// SuggestionKey provides a hint for resolving the issue.
	SuggestionKey = "error.suggestion"
)

// Standard attribute values.
const (
	OperationFit      = "fit"
	OperationSearch   = "search"
	OperationEvaluate = "evaluate"
	OperationLoad     = "load"

	PhaseTraining = "training"
	PhaseTesting  = "testing"

	ErrorDimensionality    = "DIMENSIONALITY"
	ErrorSingularMatrix    = "SINGULAR_MATRIX"
	ErrorInvalidParam      = "INVALID_PARAMETER"
	ErrorSchemaMismatch    = "SCHEMA_MISMATCH"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
)
