package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/eslgo/dataset"
	"github.com/YuminosukeSato/eslgo/pkg/errors"
)

func TestCorrelations(t *testing.T) {
	X, err := dataset.NewDesignMatrix([]string{"x1", "x2"}, [][]float64{
		{1, 2, 3, 4},
		{4, 3, 2, 1},
	})
	require.NoError(t, err)
	y, err := dataset.NewResponse("y", []float64{2, 4, 6, 8})
	require.NoError(t, err)

	table, err := Correlations(X, y)
	require.NoError(t, err)
	assert.Equal(t, []string{"x1", "x2", "y"}, table.Names())

	for i := range table.Names() {
		assert.InDelta(t, 1.0, table.At(i, i), 1e-12)
	}
	assert.InDelta(t, -1.0, table.At(0, 1), 1e-12)

	r, err := table.Get("x1", "y")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r, 1e-12)

	rows := table.Rows()
	require.Len(t, rows, 3)
	assert.InDelta(t, -1.0, rows[2][1], 1e-12)

	_, err = table.Get("x1", "nope")
	var schemaErr *errors.SchemaMismatchError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, []string{"nope"}, schemaErr.Missing)
}

func TestCorrelationsPredictorsOnly(t *testing.T) {
	X, err := dataset.NewDesignMatrix([]string{"a", "b"}, [][]float64{
		{1, 2, 3, 5},
		{2, 1, 4, 3},
	})
	require.NoError(t, err)

	table, err := Correlations(X, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, table.Names())
	assert.InDelta(t, table.At(0, 1), table.At(1, 0), 1e-15)
	assert.False(t, math.IsNaN(table.At(0, 1)))

	// sum(dx*dy) / sqrt(sum(dx²) * sum(dy²)) = 3.5 / sqrt(8.75 * 5)
	assert.InDelta(t, 3.5/math.Sqrt(43.75), table.At(0, 1), 1e-12)
	assert.InDelta(t, 1.0, table.At(1, 1), 1e-12)
}

func TestCorrelationsErrors(t *testing.T) {
	X, err := dataset.NewDesignMatrix([]string{"a"}, [][]float64{{1, 2, 3}})
	require.NoError(t, err)
	y, err := dataset.NewResponse("y", []float64{1, 2})
	require.NoError(t, err)

	_, err = Correlations(X, y)
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr), "got %v", err)

	single, err := dataset.NewDesignMatrix([]string{"a"}, [][]float64{{1}})
	require.NoError(t, err)
	_, err = Correlations(single, nil)
	var dErr *errors.DimensionalityError
	assert.True(t, errors.As(err, &dErr), "got %v", err)
}
