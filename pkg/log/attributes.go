// Package log defines standard attribute keys for regression operations.
//
// This file contains predefined attribute keys that provide consistency across
// all logging operations in LinReg. Using these standard keys enables better
// log analysis, monitoring, and debugging of model fitting workflows.
//
// The keys follow a hierarchical naming convention (e.g., "model.name",
// "data.samples") to enable structured log analysis and filtering.

package log

// Model and Operation Context
// These attributes identify the model type, instance, and operation being performed.
const (
	// ModelNameKey identifies the type of model.
	// Examples: "OLSEstimator", "FittedModel"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "score"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "linear", "preprocessing", "metrics", "dataset"
	ComponentKey = "ml.component"

	// SolverKey names the solver used for a fit.
	// Values: "normal_equations", "qr"
	SolverKey = "ml.solver"
)

// Data Shape and Characteristics
// These attributes describe the structure of the data being processed.
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of design-matrix columns,
	// including the bias column.
	FeaturesKey = "data.features"

	// RecordsKey indicates the number of records loaded from a file.
	RecordsKey = "data.records"
)

// Numerical Diagnostics
// These attributes describe properties of the solved system.
const (
	// CondKey is the condition number of the Gram matrix.
	CondKey = "matrix.cond"

	// RankKey is the numerical rank of the Gram matrix.
	RankKey = "matrix.rank"

	// Sigma2Key is the maximum-likelihood estimate of the noise variance.
	Sigma2Key = "model.sigma2"
)

// Performance Metrics
const (
	// DurationMsKey records elapsed wall-clock time in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// R2Key records a coefficient of determination.
	R2Key = "metric.r2"

	// MSEKey records a mean squared error.
	MSEKey = "metric.mse"
)
