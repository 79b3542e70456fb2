// Package evaluation measures the held-out prediction error of fitted
// linear models.
package evaluation

import (
	"maps"
	"slices"

	"github.com/YuminosukeSato/eslgo/core/model"
	"github.com/YuminosukeSato/eslgo/dataset"
	"github.com/YuminosukeSato/eslgo/metrics"
	"github.com/YuminosukeSato/eslgo/pkg/errors"
)

// Result is the held-out error of one model.
type Result struct {
	Name string `json:"name,omitempty"`
	// TestError is the mean squared prediction error.
	TestError float64 `json:"test_error"`
	// StdError is the standard error of TestError: the sample standard
	// deviation of the squared errors over sqrt(m). NaN when m = 1.
	StdError float64 `json:"std_error"`
	// Observations is the number of held-out rows, m.
	Observations int `json:"observations"`
}

// TestError predicts ytest from Xtest with p and returns the mean squared
// error and its standard error. The model's columns are looked up in Xtest
// by name; columns of Xtest the model does not use are ignored, so a subset
// model can be evaluated against the full held-out matrix.
func TestError(p model.Predictor, Xtest *dataset.DesignMatrix, ytest *dataset.Response) (Result, error) {
	if err := dataset.CheckAligned("evaluation.TestError", Xtest, ytest); err != nil {
		return Result{}, err
	}
	pred, err := model.Predict(p, Xtest)
	if err != nil {
		return Result{}, err
	}
	sq, err := metrics.SquaredErrors(ytest.Vec(), pred)
	if err != nil {
		return Result{}, err
	}
	mean, se, err := metrics.MeanStdError(sq)
	if err != nil {
		return Result{}, err
	}
	return Result{TestError: mean, StdError: se, Observations: len(sq)}, nil
}

// Compare evaluates every model on the same held-out data. Results follow
// order when given, which must name every model exactly once; otherwise
// they are sorted by name.
func Compare(models map[string]model.Predictor, Xtest *dataset.DesignMatrix, ytest *dataset.Response, order ...string) ([]Result, error) {
	names, err := resolveOrder(models, order)
	if err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(names))
	for _, name := range names {
		res, err := TestError(models[name], Xtest, ytest)
		if err != nil {
			return nil, errors.Wrapf(err, "evaluating %s", name)
		}
		res.Name = name
		results = append(results, res)
	}
	return results, nil
}

func resolveOrder(models map[string]model.Predictor, order []string) ([]string, error) {
	if len(order) == 0 {
		return slices.Sorted(maps.Keys(models)), nil
	}
	if len(order) != len(models) {
		return nil, errors.NewInvalidParameterError("evaluation.Compare", "order", order,
			"must name every model exactly once")
	}
	seen := make(map[string]struct{}, len(order))
	for _, name := range order {
		if _, ok := models[name]; !ok {
			return nil, errors.NewInvalidParameterError("evaluation.Compare", "order", name, "unknown model")
		}
		if _, dup := seen[name]; dup {
			return nil, errors.NewInvalidParameterError("evaluation.Compare", "order", name, "duplicate model")
		}
		seen[name] = struct{}{}
	}
	return slices.Clone(order), nil
}
