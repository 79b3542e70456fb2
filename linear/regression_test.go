package linear

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/eslgo/dataset"
	"github.com/YuminosukeSato/eslgo/pkg/errors"
)

func design(t testing.TB, names []string, columns ...[]float64) *dataset.DesignMatrix {
	t.Helper()
	X, err := dataset.NewDesignMatrix(names, columns)
	require.NoError(t, err)
	return X
}

func response(t testing.TB, values ...float64) *dataset.Response {
	t.Helper()
	y, err := dataset.NewResponse("y", values)
	require.NoError(t, err)
	return y
}

func TestLeastSquaresExactLine(t *testing.T) {
	X := design(t, []string{"intercept", "x"}, []float64{1, 1, 1, 1}, []float64{1, 2, 3, 4})
	y := response(t, 2, 4, 6, 8)

	fit, err := LeastSquares(X, y)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, fit.Betahat[0], 1e-9)
	assert.InDelta(t, 2.0, fit.Betahat[1], 1e-9)
	assert.InDelta(t, 0.0, fit.StdErrors[0], 1e-7)
	assert.InDelta(t, 0.0, fit.StdErrors[1], 1e-7)
	assert.InDelta(t, 0.0, fit.RSS, 1e-18)
	assert.Equal(t, []string{"intercept", "x"}, fit.Names())
	assert.Equal(t, 4, fit.Observations)
}

func TestLeastSquaresRecoversKnownCoefficients(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	trueBeta := []float64{1.5, -2.0, 0.25, 3.0}

	const n = 30
	columns := make([][]float64, len(trueBeta))
	columns[0] = make([]float64, n)
	for i := range columns[0] {
		columns[0][i] = 1
	}
	for j := 1; j < len(trueBeta); j++ {
		columns[j] = make([]float64, n)
		for i := range columns[j] {
			columns[j][i] = rng.Float64()*4 - 2
		}
	}
	y := make([]float64, n)
	for i := range y {
		for j, b := range trueBeta {
			y[i] += b * columns[j][i]
		}
	}

	fit, err := LeastSquares(design(t, []string{"intercept", "a", "b", "c"}, columns...), response(t, y...))
	require.NoError(t, err)
	for j, want := range trueBeta {
		assert.InDelta(t, want, fit.Betahat[j], 1e-9, "coefficient %d", j)
	}
}

func TestLeastSquaresStandardErrors(t *testing.T) {
	X := design(t, []string{"intercept", "x"}, []float64{1, 1, 1, 1, 1}, []float64{1, 2, 3, 4, 5})
	y := response(t, 1.1, 1.9, 3.2, 3.9, 5.1)

	fit, err := LeastSquares(X, y)
	require.NoError(t, err)

	// simple regression: se(slope) = sqrt(sigma2 / Sxx), Sxx = 10
	assert.InDelta(t, fit.RSS/3, fit.Sigma2, 1e-15)
	assert.InDelta(t, math.Sqrt(fit.Sigma2/10), fit.StdErrors[1], 1e-12)
	// se(intercept) = sqrt(sigma2 * (1/n + mean²/Sxx))
	assert.InDelta(t, math.Sqrt(fit.Sigma2*(1.0/5+9.0/10)), fit.StdErrors[0], 1e-12)

	for j, se := range fit.StandardErrors() {
		assert.GreaterOrEqual(t, se, 0.0, "std error %d", j)
	}

	z := fit.ZScores()
	assert.InDelta(t, fit.Betahat[1]/fit.StdErrors[1], z[1], 1e-12)
}

func TestLeastSquaresResidualConsistency(t *testing.T) {
	X := design(t, []string{"a", "b"}, []float64{1, 2, 3, 4, 5, 6}, []float64{2, 1, 0, 1, 3, 2})
	y := response(t, 3, 2, 4, 6, 5, 9)

	fit, err := LeastSquares(X, y)
	require.NoError(t, err)

	res, err := fit.Residuals(X, y)
	require.NoError(t, err)
	data := res.RawVector().Data
	assert.InDelta(t, fit.RSS, floats.Dot(data, data), 1e-10)

	// residuals are orthogonal to every column
	for _, name := range X.Names() {
		col, err := X.Column(name)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, floats.Dot(col, data), 1e-9, name)
	}
}

func TestLeastSquaresErrors(t *testing.T) {
	tests := []struct {
		name  string
		X     *dataset.DesignMatrix
		y     *dataset.Response
		check func(t *testing.T, err error)
	}{
		{
			name: "too few observations",
			X:    design(t, []string{"a", "b"}, []float64{1, 2}, []float64{3, 5}),
			y:    response(t, 1, 2),
			check: func(t *testing.T, err error) {
				var dimErr *errors.DimensionalityError
				require.True(t, errors.As(err, &dimErr), "got %v", err)
				assert.Equal(t, 2, dimErr.Samples)
				assert.Equal(t, 2, dimErr.Features)
			},
		},
		{
			name: "collinear columns",
			X:    design(t, []string{"x", "x_copy"}, []float64{1, 2, 3, 4}, []float64{1, 2, 3, 4}),
			y:    response(t, 1, 2, 3, 4),
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, errors.ErrSingularMatrix), "got %v", err)
				var singular *errors.SingularMatrixError
				require.True(t, errors.As(err, &singular))
				assert.Equal(t, []string{"x", "x_copy"}, singular.Columns)
			},
		},
		{
			name: "row mismatch",
			X:    design(t, []string{"x"}, []float64{1, 2, 3}),
			y:    response(t, 1, 2),
			check: func(t *testing.T, err error) {
				var dimErr *errors.DimensionError
				assert.True(t, errors.As(err, &dimErr), "got %v", err)
			},
		},
		{
			name: "non finite input",
			X:    design(t, []string{"x"}, []float64{1, math.NaN(), 3}),
			y:    response(t, 1, 2, 3),
			check: func(t *testing.T, err error) {
				var numErr *errors.NumericalInstabilityError
				assert.True(t, errors.As(err, &numErr), "got %v", err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fit, err := LeastSquares(tt.X, tt.y)
			require.Error(t, err)
			assert.Nil(t, fit)
			tt.check(t, err)
		})
	}
}

func TestFitPredictByName(t *testing.T) {
	X := design(t, []string{"intercept", "x"}, []float64{1, 1, 1, 1}, []float64{1, 2, 3, 4})
	fit, err := LeastSquares(X, response(t, 3, 5, 7, 9))
	require.NoError(t, err)

	other := design(t, []string{"unused", "x", "intercept"}, []float64{9, 9}, []float64{10, 20}, []float64{1, 1})
	pred, err := fit.Predict(other)
	require.NoError(t, err)
	assert.InDelta(t, 21.0, pred.AtVec(0), 1e-9)
	assert.InDelta(t, 41.0, pred.AtVec(1), 1e-9)

	slope, ok := fit.Coefficient("x")
	assert.True(t, ok)
	assert.InDelta(t, 2.0, slope, 1e-9)
	_, ok = fit.Coefficient("nope")
	assert.False(t, ok)

	r2, err := fit.Score(X, response(t, 3, 5, 7, 9))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r2, 1e-12)

	_, err = fit.Predict(design(t, []string{"x"}, []float64{1}))
	var schemaErr *errors.SchemaMismatchError
	require.True(t, errors.As(err, &schemaErr), "got %v", err)
	assert.Equal(t, []string{"intercept"}, schemaErr.Missing)
}

func TestFitAccessorsReturnCopies(t *testing.T) {
	X := design(t, []string{"intercept", "x"}, []float64{1, 1, 1}, []float64{1, 2, 4})
	fit, err := LeastSquares(X, response(t, 1, 2, 3))
	require.NoError(t, err)

	coef := fit.Coefficients()
	coef[0] = 1000
	assert.NotEqual(t, 1000.0, fit.Betahat[0])

	names := fit.Names()
	names[0] = "changed"
	assert.Equal(t, "intercept", fit.Columns[0])
}
