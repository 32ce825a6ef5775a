// Package linreg provides deterministic ordinary least squares regression
// for Go, designed for backend services that need reproducible model fits.
//
// LinReg solves the normal equations directly and guarantees that fitting
// the same data twice produces bit-identical parameter vectors, which makes
// it suitable for pipelines where model artifacts are diffed or cached.
//
// # Features
//
// - Deterministic fits: fixed evaluation order, bit-identical repeat runs
// - Two solvers: normal equations (default) and QR decomposition
// - Rank and conditioning diagnostics surfaced as typed errors and warnings
// - CPU-parallel batch prediction with automatic thresholds
// - Model persistence: JSON weight export and gob serialization
//
// # Installation
//
// Install LinReg using go get:
//
//	go get github.com/YuminosukeSato/linreg
//
// # Quick Start
//
// Here's a simple example of fitting a line:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/linreg/linear"
//	    "github.com/YuminosukeSato/linreg/preprocessing"
//	)
//
//	func main() {
//	    // y = 5 + 2x
//	    X := preprocessing.DesignMatrix([]float64{0, 1, 2, 3, 4})
//	    y := preprocessing.TargetVector([]float64{5, 7, 9, 11, 13})
//
//	    est := linear.NewOLSEstimator()
//	    model, err := est.Fit(X, y)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    fmt.Println("intercept:", model.Intercept())
//	    fmt.Println("slope:", model.Coef())
//	}
//
// # Packages
//
// The library is organized into several packages:
//
//   - linear: the OLS estimator and fitted model
//   - preprocessing: design matrix construction (bias column handling)
//   - metrics: evaluation metrics (MSE, RMSE, MAE, R²)
//   - dataset: typed tabular loading for the bundled NYC 311 exploration
//   - core/model: core interfaces, base estimator, and weight persistence
//   - core/parallel: parallel processing utilities
//   - pkg/errors: typed errors and the numerical warning system
//   - pkg/log: structured logging helpers
package linreg
