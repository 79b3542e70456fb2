package dataset

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/eslgo/pkg/errors"
)

// InterceptName is the name of the constant column added by WithIntercept.
const InterceptName = "intercept"

// DesignMatrix is an immutable set of named numeric columns over a fixed
// number of rows. Column names are unique and every column has the same
// length; both are checked at construction.
type DesignMatrix struct {
	names []string
	index map[string]int
	data  *mat.Dense
}

// NewDesignMatrix builds a DesignMatrix from column slices. The slices are
// copied.
func NewDesignMatrix(names []string, columns [][]float64) (*DesignMatrix, error) {
	if len(names) != len(columns) {
		return nil, errors.NewDimensionError("dataset.NewDesignMatrix", len(names), len(columns), 1)
	}
	if len(columns) == 0 || len(columns[0]) == 0 {
		return nil, errors.NewModelError("dataset.NewDesignMatrix", "empty data", errors.ErrEmptyData)
	}
	rows := len(columns[0])
	for _, col := range columns {
		if len(col) != rows {
			return nil, errors.NewDimensionError("dataset.NewDesignMatrix", rows, len(col), 0)
		}
	}
	data := mat.NewDense(rows, len(columns), nil)
	for j, col := range columns {
		data.SetCol(j, col)
	}
	return newDesignMatrix(names, data)
}

// NewDesignMatrixFromDense builds a DesignMatrix from a matrix whose columns
// are named by names. The matrix is copied.
func NewDesignMatrixFromDense(names []string, m mat.Matrix) (*DesignMatrix, error) {
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewModelError("dataset.NewDesignMatrixFromDense", "empty data", errors.ErrEmptyData)
	}
	if len(names) != c {
		return nil, errors.NewDimensionError("dataset.NewDesignMatrixFromDense", c, len(names), 1)
	}
	return newDesignMatrix(names, mat.DenseCopyOf(m))
}

// newDesignMatrix takes ownership of data.
func newDesignMatrix(names []string, data *mat.Dense) (*DesignMatrix, error) {
	index := make(map[string]int, len(names))
	for j, name := range names {
		if name == "" {
			return nil, errors.NewInvalidParameterError("dataset.DesignMatrix", "names", j, "column names must be non-empty")
		}
		if _, dup := index[name]; dup {
			return nil, errors.NewInvalidParameterError("dataset.DesignMatrix", "names", name, "column names must be unique")
		}
		index[name] = j
	}
	return &DesignMatrix{
		names: append([]string(nil), names...),
		index: index,
		data:  data,
	}, nil
}

// Dims returns the number of rows and columns.
func (d *DesignMatrix) Dims() (rows, cols int) {
	return d.data.Dims()
}

// At returns the value at row i, column j.
func (d *DesignMatrix) At(i, j int) float64 {
	return d.data.At(i, j)
}

// Names returns a copy of the column names in column order.
func (d *DesignMatrix) Names() []string {
	return append([]string(nil), d.names...)
}

// Name returns the name of column j.
func (d *DesignMatrix) Name(j int) string {
	return d.names[j]
}

// Index returns the position of the named column.
func (d *DesignMatrix) Index(name string) (int, bool) {
	j, ok := d.index[name]
	return j, ok
}

// Column returns a copy of the named column.
func (d *DesignMatrix) Column(name string) ([]float64, error) {
	j, ok := d.index[name]
	if !ok {
		return nil, errors.NewSchemaMismatchError("dataset.Column", []string{name}, 1, 0)
	}
	return mat.Col(nil, j, d.data), nil
}

// Dense returns a copy of the underlying matrix.
func (d *DesignMatrix) Dense() *mat.Dense {
	return mat.DenseCopyOf(d.data)
}

// Matrix returns a read-only view of the data.
func (d *DesignMatrix) Matrix() mat.Matrix {
	return readOnly{d.data}
}

// Select returns a new DesignMatrix with the columns at indices, in the
// given order.
func (d *DesignMatrix) Select(indices []int) (*DesignMatrix, error) {
	rows, cols := d.data.Dims()
	if len(indices) == 0 {
		return nil, errors.NewInvalidParameterError("dataset.Select", "indices", indices, "at least one column is required")
	}
	names := make([]string, len(indices))
	data := mat.NewDense(rows, len(indices), nil)
	col := make([]float64, rows)
	for k, j := range indices {
		if j < 0 || j >= cols {
			return nil, errors.NewInvalidParameterError("dataset.Select", "indices", j, "column index out of range")
		}
		names[k] = d.names[j]
		data.SetCol(k, mat.Col(col, j, d.data))
	}
	return newDesignMatrix(names, data)
}

// SelectNames returns a new DesignMatrix with the named columns in the given
// order. Unknown names produce a SchemaMismatchError listing all of them.
func (d *DesignMatrix) SelectNames(names []string) (*DesignMatrix, error) {
	indices, err := d.Indices(names)
	if err != nil {
		return nil, err
	}
	return d.Select(indices)
}

// Indices resolves column names to positions.
func (d *DesignMatrix) Indices(names []string) ([]int, error) {
	indices := make([]int, len(names))
	var missing []string
	for k, name := range names {
		j, ok := d.index[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		indices[k] = j
	}
	if len(missing) > 0 {
		return nil, errors.NewSchemaMismatchError("dataset.Indices", missing, len(names), len(names)-len(missing))
	}
	return indices, nil
}

// Drop returns a new DesignMatrix without the named columns.
func (d *DesignMatrix) Drop(names ...string) (*DesignMatrix, error) {
	if _, err := d.Indices(names); err != nil {
		return nil, err
	}
	drop := make(map[string]struct{}, len(names))
	for _, name := range names {
		drop[name] = struct{}{}
	}
	var keep []int
	for j, name := range d.names {
		if _, ok := drop[name]; !ok {
			keep = append(keep, j)
		}
	}
	return d.Select(keep)
}

// WithIntercept returns a new DesignMatrix with a leading constant column
// named InterceptName.
func (d *DesignMatrix) WithIntercept() (*DesignMatrix, error) {
	if _, ok := d.index[InterceptName]; ok {
		return nil, errors.NewInvalidParameterError("dataset.WithIntercept", "names", InterceptName, "design matrix already has an intercept column")
	}
	rows, cols := d.data.Dims()
	data := mat.NewDense(rows, cols+1, nil)
	for i := 0; i < rows; i++ {
		data.Set(i, 0, 1.0)
	}
	data.Slice(0, rows, 1, cols+1).(*mat.Dense).Copy(d.data)
	return newDesignMatrix(append([]string{InterceptName}, d.names...), data)
}

// Rows returns a new DesignMatrix holding the rows where mask is true.
func (d *DesignMatrix) Rows(mask []bool) (*DesignMatrix, error) {
	rows, cols := d.data.Dims()
	if len(mask) != rows {
		return nil, errors.NewDimensionError("dataset.Rows", rows, len(mask), 0)
	}
	selected := countTrue(mask)
	if selected == 0 {
		return nil, errors.NewModelError("dataset.Rows", "no rows selected", errors.ErrEmptyData)
	}
	data := mat.NewDense(selected, cols, nil)
	row := make([]float64, cols)
	k := 0
	for i, keep := range mask {
		if !keep {
			continue
		}
		data.SetRow(k, mat.Row(row, i, d.data))
		k++
	}
	return newDesignMatrix(d.names, data)
}

func countTrue(mask []bool) int {
	n := 0
	for _, b := range mask {
		if b {
			n++
		}
	}
	return n
}

// readOnly hides the mutating methods of *mat.Dense.
type readOnly struct {
	m *mat.Dense
}

func (r readOnly) Dims() (int, int)    { return r.m.Dims() }
func (r readOnly) At(i, j int) float64 { return r.m.At(i, j) }
func (r readOnly) T() mat.Matrix       { return mat.Transpose{Matrix: r} }
