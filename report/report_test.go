package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/eslgo/dataset"
	"github.com/YuminosukeSato/eslgo/evaluation"
	"github.com/YuminosukeSato/eslgo/linear"
	"github.com/YuminosukeSato/eslgo/stats"
	"github.com/YuminosukeSato/eslgo/subset"
)

func fixture(t *testing.T) (*dataset.DesignMatrix, *dataset.Response) {
	t.Helper()
	X, err := dataset.NewDesignMatrix([]string{dataset.InterceptName, "a", "b"}, [][]float64{
		{1, 1, 1, 1, 1, 1},
		{0.5, 1.5, -0.3, 2.2, 0.9, -1.1},
		{1.0, -0.4, 0.7, 0.1, -1.2, 0.6},
	})
	require.NoError(t, err)
	y, err := dataset.NewResponse("y", []float64{1.8, 3.1, 0.2, 4.5, 1.4, -1.0})
	require.NoError(t, err)
	return X, y
}

func summaries(t *testing.T) []ModelSummary {
	t.Helper()
	X, y := fixture(t)
	full, err := linear.LeastSquares(X, y)
	require.NoError(t, err)
	best, err := subset.BestSubset(X, y, 1, subset.WithAlwaysInclude(dataset.InterceptName))
	require.NoError(t, err)

	lsErr, err := evaluation.TestError(full, X, y)
	require.NoError(t, err)
	bsErr, err := evaluation.TestError(best.Fit, X, y)
	require.NoError(t, err)

	return []ModelSummary{
		Summarize("LS", full, lsErr),
		Summarize("Best Subset", best.Fit, bsErr),
	}
}

func TestFloatJSON(t *testing.T) {
	b, err := Float(math.NaN()).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	b, err = Float(math.Inf(-1)).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	b, err = Float(0.125).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "0.125", string(b))

	var f Float
	require.NoError(t, f.UnmarshalJSON([]byte("null")))
	assert.True(t, math.IsNaN(float64(f)))
	assert.Error(t, f.UnmarshalJSON([]byte(`"x"`)))
}

func TestCoefficients(t *testing.T) {
	X, y := fixture(t)
	fit, err := linear.LeastSquares(X, y)
	require.NoError(t, err)

	rows := Coefficients(fit)
	require.Len(t, rows, 3)
	assert.Equal(t, "a", rows[1].Name)
	assert.InDelta(t, fit.Betahat[1]/fit.StdErrors[1], float64(rows[1].ZScore), 1e-12)

	out := RegressionTable(rows)
	for _, want := range []string{"Coefficient", "Std. Error", "Z Score", "intercept"} {
		assert.Contains(t, out, want)
	}
}

func TestShrinkageTableMarksUnusedColumns(t *testing.T) {
	models := summaries(t)
	require.Len(t, models[1].Columns, 2)

	out := ShrinkageTable(models)
	for _, want := range []string{"LS", "Best Subset", "Test Error", "Std Error", missing} {
		assert.Contains(t, out, want)
	}
	assert.Equal(t, []string{dataset.InterceptName, "a", "b"}, coefficientNames(models))

	unused := "a"
	if models[1].Columns[1] == "a" {
		unused = "b"
	}
	assert.True(t, math.IsNaN(models[1].Coefficient(unused)))
}

func TestCorrelationAndPathTables(t *testing.T) {
	X, y := fixture(t)
	predictors, err := X.Drop(dataset.InterceptName)
	require.NoError(t, err)
	ct, err := stats.Correlations(predictors, y)
	require.NoError(t, err)

	out := CorrelationTable(NewCorrelations(ct))
	assert.Contains(t, out, "1.000")
	assert.Equal(t, 3, strings.Count(out, "1.000"))

	path, err := subset.Path(X, y, 0, subset.WithAlwaysInclude(dataset.InterceptName))
	require.NoError(t, err)
	points := NewPath(path)
	require.Len(t, points, 2)
	assert.Contains(t, PathTable(points), "intercept, a, b")
}

func TestJSONRoundTrip(t *testing.T) {
	doc := &Document{
		RunID:     "run-1",
		Shrinkage: summaries(t),
		Path:      []PathPoint{{Size: 1, Names: []string{"a"}, RSS: Float(2.5)}},
	}
	doc.Shrinkage[0].StdError = Float(math.NaN())

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, doc))
	assert.Contains(t, buf.String(), `"std_error": null`)
	assert.NotContains(t, buf.String(), "correlations")

	got, err := ReadJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, doc.Shrinkage[1].Columns, got.Shrinkage[1].Columns)
	assert.True(t, math.IsNaN(float64(got.Shrinkage[0].StdError)))
	assert.Equal(t, Float(2.5), got.Path[0].RSS)
}

func TestCoefficientChartPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CoefficientChartPNG(&buf, summaries(t)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	assert.Error(t, CoefficientChartPNG(&buf, nil))
}

func TestComparisonPage(t *testing.T) {
	var buf bytes.Buffer
	points := []PathPoint{{Size: 1, RSS: 3}, {Size: 2, RSS: 2}}
	require.NoError(t, ComparisonPage(&buf, summaries(t), points))
	html := buf.String()
	assert.Contains(t, html, "<html")
	assert.Contains(t, html, "Best subset RSS by size")

	assert.Error(t, ComparisonPage(&buf, nil, nil))
}
