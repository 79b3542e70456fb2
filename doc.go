// Package eslgo reproduces the least-squares and best-subset selection
// analyses of the prostate cancer data from "The Elements of Statistical
// Learning" (Table 3.1 to Table 3.3).
//
// A fixed tab-separated table of eight predictors, the lpsa response and a
// train flag is loaded, standardised, given an intercept column and split
// into training and held-out rows. Ordinary least squares and exhaustive
// best-subset selection are fitted on the training rows and compared by
// their held-out mean squared error.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/eslgo/core/model"
//	    "github.com/YuminosukeSato/eslgo/dataset"
//	    "github.com/YuminosukeSato/eslgo/evaluation"
//	    "github.com/YuminosukeSato/eslgo/linear"
//	    "github.com/YuminosukeSato/eslgo/subset"
//	)
//
//	func main() {
//	    ds, err := dataset.LoadFile("prostate.data", dataset.ProstateSchema())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    X, err := ds.X.WithIntercept()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    ds, _ = ds.WithX(X)
//	    train, _ := ds.Training()
//	    test, _ := ds.Testing()
//
//	    fit, err := linear.LeastSquares(train.X, train.Y)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    best, err := subset.BestSubset(train.X, train.Y, 2,
//	        subset.WithAlwaysInclude(dataset.InterceptName))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    models := map[string]model.Predictor{"LS": fit, "Best Subset": best.Fit}
//	    results, err := evaluation.Compare(models, test.X, test.Y, "LS", "Best Subset")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    for _, res := range results {
//	        fmt.Println(res.Name, res.TestError, res.StdError)
//	    }
//	}
//
// The esl command in cmd/esl prints the same tables from a config file or
// flags.
//
// # Packages
//
//   - dataset: loading, named design matrices, the train/test split
//   - preprocessing: column standardisation
//   - stats: correlation table
//   - linear: least squares with coefficient standard errors
//   - subset: lazy combinations and exhaustive best-subset search
//   - evaluation: held-out mean squared error and its standard error
//   - metrics: regression metrics (RSS, MSE, RMSE, MAE, R²)
//   - report: tables, JSON documents and charts
//   - config: YAML configuration with environment overrides
//   - core/model: fitted-state bookkeeping, prediction by column name, persistence
//   - core/parallel: chunked parallel execution
//
// # License
//
// eslgo is released under the MIT License.
package eslgo
