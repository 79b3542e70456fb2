// Package stats computes descriptive statistics over a design matrix.
package stats

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/eslgo/dataset"
	"github.com/YuminosukeSato/eslgo/pkg/errors"
)

// CorrelationTable holds pairwise Pearson correlations between named
// variables.
type CorrelationTable struct {
	names []string
	corr  *mat.SymDense
}

// Correlations returns the correlation table of the columns of X followed
// by y. y may be nil to correlate the predictors only.
func Correlations(X *dataset.DesignMatrix, y *dataset.Response) (*CorrelationTable, error) {
	rows, cols := X.Dims()
	if rows < 2 {
		return nil, errors.NewDimensionalityError("stats.Correlations", rows, 1)
	}

	names := X.Names()
	data := X.Dense()
	if y != nil {
		if err := dataset.CheckAligned("stats.Correlations", X, y); err != nil {
			return nil, err
		}
		grown := mat.NewDense(rows, cols+1, nil)
		grown.Slice(0, rows, 0, cols).(*mat.Dense).Copy(data)
		grown.SetCol(cols, y.Values())
		data = grown
		names = append(names, y.Name())
	}
	if err := errors.CheckMatrix("stats.Correlations", data); err != nil {
		return nil, err
	}

	var corr mat.SymDense
	stat.CorrelationMatrix(&corr, data, nil)
	return &CorrelationTable{names: names, corr: &corr}, nil
}

// Names returns the variable names in table order.
func (c *CorrelationTable) Names() []string {
	return append([]string(nil), c.names...)
}

// At returns the correlation between variables i and j. A constant
// variable yields NaN.
func (c *CorrelationTable) At(i, j int) float64 {
	return c.corr.At(i, j)
}

// Get returns the correlation between two named variables.
func (c *CorrelationTable) Get(a, b string) (float64, error) {
	i, j := indexOf(c.names, a), indexOf(c.names, b)
	var missing []string
	if i < 0 {
		missing = append(missing, a)
	}
	if j < 0 {
		missing = append(missing, b)
	}
	if len(missing) > 0 {
		return 0, errors.NewSchemaMismatchError("stats.CorrelationTable.Get", missing, 2, 2-len(missing))
	}
	return c.corr.At(i, j), nil
}

// Rows returns the table as a dense row-major slice of slices.
func (c *CorrelationTable) Rows() [][]float64 {
	n := len(c.names)
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
		for j := range out[i] {
			out[i][j] = c.corr.At(i, j)
		}
	}
	return out
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
