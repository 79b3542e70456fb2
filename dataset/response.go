package dataset

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/eslgo/pkg/errors"
)

// Response is an immutable, named vector of observed outcomes aligned
// row-for-row with a DesignMatrix.
type Response struct {
	name   string
	values []float64
}

// NewResponse copies values into a new Response.
func NewResponse(name string, values []float64) (*Response, error) {
	if len(values) == 0 {
		return nil, errors.NewModelError("dataset.NewResponse", "empty data", errors.ErrEmptyData)
	}
	return &Response{name: name, values: append([]float64(nil), values...)}, nil
}

// Name returns the response column name.
func (r *Response) Name() string { return r.name }

// Len returns the number of observations.
func (r *Response) Len() int { return len(r.values) }

// AtVec returns observation i.
func (r *Response) AtVec(i int) float64 { return r.values[i] }

// Values returns a copy of the observations.
func (r *Response) Values() []float64 {
	return append([]float64(nil), r.values...)
}

// Vec returns the observations as a new column vector.
func (r *Response) Vec() *mat.VecDense {
	return mat.NewVecDense(len(r.values), r.Values())
}

// Rows returns a new Response holding the observations where mask is true.
func (r *Response) Rows(mask []bool) (*Response, error) {
	if len(mask) != len(r.values) {
		return nil, errors.NewDimensionError("dataset.Response.Rows", len(r.values), len(mask), 0)
	}
	out := make([]float64, 0, countTrue(mask))
	for i, keep := range mask {
		if keep {
			out = append(out, r.values[i])
		}
	}
	return NewResponse(r.name, out)
}

// CheckAligned returns a DimensionError unless X and y have the same number
// of rows.
func CheckAligned(op string, X *DesignMatrix, y *Response) error {
	rows, _ := X.Dims()
	if y.Len() != rows {
		return errors.NewDimensionError(op, rows, y.Len(), 0)
	}
	return nil
}
