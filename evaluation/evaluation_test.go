package evaluation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/eslgo/core/model"
	"github.com/YuminosukeSato/eslgo/dataset"
	"github.com/YuminosukeSato/eslgo/linear"
	"github.com/YuminosukeSato/eslgo/pkg/errors"
	"github.com/YuminosukeSato/eslgo/subset"
)

type constant struct {
	names []string
	coef  []float64
}

func (c constant) Names() []string         { return c.names }
func (c constant) Coefficients() []float64 { return c.coef }

func heldOut(t *testing.T) (*dataset.DesignMatrix, *dataset.Response) {
	t.Helper()
	X, err := dataset.NewDesignMatrix([]string{dataset.InterceptName, "x", "z"}, [][]float64{
		{1, 1, 1, 1, 1},
		{1, 2, 3, 4, 5},
		{0.5, -1, 2, 0, 1},
	})
	require.NoError(t, err)
	y, err := dataset.NewResponse("y", []float64{2.5, 3.9, 6.2, 8.1, 9.8})
	require.NoError(t, err)
	return X, y
}

func TestMeanPredictorGivesPopulationVariance(t *testing.T) {
	X, y := heldOut(t)
	mean := stat.Mean(y.Values(), nil)

	res, err := TestError(constant{names: []string{dataset.InterceptName}, coef: []float64{mean}}, X, y)
	require.NoError(t, err)

	_, popVar := stat.PopMeanVariance(y.Values(), nil)
	assert.InDelta(t, popVar, res.TestError, 1e-12)
	assert.Equal(t, 5, res.Observations)
}

func TestStdErrorOfSquaredErrors(t *testing.T) {
	X, y := heldOut(t)
	p := constant{names: []string{"x"}, coef: []float64{2}}

	res, err := TestError(p, X, y)
	require.NoError(t, err)

	// residuals 0.5, -0.1, 0.2, 0.1, -0.2
	sq := []float64{0.25, 0.01, 0.04, 0.01, 0.04}
	assert.InDelta(t, stat.Mean(sq, nil), res.TestError, 1e-12)
	assert.InDelta(t, stat.StdDev(sq, nil)/math.Sqrt(5), res.StdError, 1e-12)
}

func TestTrainingErrorMatchesRSS(t *testing.T) {
	X, y := heldOut(t)
	fit, err := linear.LeastSquares(X, y)
	require.NoError(t, err)

	res, err := TestError(fit, X, y)
	require.NoError(t, err)
	assert.InDelta(t, fit.RSS/float64(y.Len()), res.TestError, 1e-12)
}

func TestSubsetModelEvaluatesAgainstFullMatrix(t *testing.T) {
	X, y := heldOut(t)
	best, err := subset.BestSubset(X, y, 1, subset.WithAlwaysInclude(dataset.InterceptName))
	require.NoError(t, err)
	assert.Equal(t, []string{dataset.InterceptName, "x"}, best.Names)

	res, err := TestError(best.Fit, X, y)
	require.NoError(t, err)
	assert.InDelta(t, best.RSS/5, res.TestError, 1e-12)
}

func TestTestErrorSchemaMismatch(t *testing.T) {
	X, y := heldOut(t)

	_, err := TestError(constant{names: []string{"x", "w"}, coef: []float64{1, 1}}, X, y)
	var schemaErr *errors.SchemaMismatchError
	require.True(t, errors.As(err, &schemaErr), "got %v", err)
	assert.Equal(t, []string{"w"}, schemaErr.Missing)

	_, err = TestError(constant{names: []string{"x"}, coef: []float64{1, 2}}, X, y)
	require.True(t, errors.As(err, &schemaErr), "got %v", err)

	short, err := dataset.NewResponse("y", []float64{1, 2})
	require.NoError(t, err)
	_, err = TestError(constant{names: []string{"x"}, coef: []float64{1}}, X, short)
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr), "got %v", err)
}

func TestSingleObservationWarns(t *testing.T) {
	X, err := dataset.NewDesignMatrix([]string{"x"}, [][]float64{{2}})
	require.NoError(t, err)
	y, err := dataset.NewResponse("y", []float64{5})
	require.NoError(t, err)

	var warned error
	restore := errors.SetWarningHandler(func(w error) { warned = w })
	defer restore()

	res, err := TestError(constant{names: []string{"x"}, coef: []float64{2}}, X, y)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.TestError, 1e-12)
	assert.True(t, math.IsNaN(res.StdError))

	var w *errors.UndefinedMetricWarning
	assert.True(t, errors.As(warned, &w))
}

func TestCompare(t *testing.T) {
	X, y := heldOut(t)
	models := map[string]model.Predictor{
		"slope": constant{names: []string{"x"}, coef: []float64{2}},
		"flat":  constant{names: []string{dataset.InterceptName}, coef: []float64{6}},
	}

	sorted, err := Compare(models, X, y)
	require.NoError(t, err)
	require.Len(t, sorted, 2)
	assert.Equal(t, "flat", sorted[0].Name)
	assert.Equal(t, "slope", sorted[1].Name)

	ordered, err := Compare(models, X, y, "slope", "flat")
	require.NoError(t, err)
	assert.Equal(t, "slope", ordered[0].Name)
	assert.Less(t, ordered[0].TestError, ordered[1].TestError)

	var paramErr *errors.InvalidParameterError
	_, err = Compare(models, X, y, "slope")
	assert.True(t, errors.As(err, &paramErr), "got %v", err)
	_, err = Compare(models, X, y, "slope", "other")
	assert.True(t, errors.As(err, &paramErr), "got %v", err)
	_, err = Compare(models, X, y, "slope", "slope")
	assert.True(t, errors.As(err, &paramErr), "got %v", err)
}
