package model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/eslgo/dataset"
	"github.com/YuminosukeSato/eslgo/pkg/errors"
)

// Predict は p の列を X から名前で選び、予測値 X_S·β を返す
//
// X に余分な列があっても無視される。p の列が X に存在しない場合、
// または係数の数と列名の数が一致しない場合は SchemaMismatchError を返す。
func Predict(p Predictor, X *dataset.DesignMatrix) (*mat.VecDense, error) {
	names := p.Names()
	coef := p.Coefficients()
	if len(coef) != len(names) {
		return nil, errors.NewSchemaMismatchError("model.Predict", nil, len(coef), len(names))
	}
	if len(names) == 0 {
		return nil, errors.NewSchemaMismatchError("model.Predict", nil, 0, 0)
	}

	indices, err := X.Indices(names)
	if err != nil {
		var schemaErr *errors.SchemaMismatchError
		if errors.As(err, &schemaErr) {
			return nil, errors.NewSchemaMismatchError("model.Predict", schemaErr.Missing, len(names), len(names)-len(schemaErr.Missing))
		}
		return nil, err
	}

	rows, _ := X.Dims()
	view := X.Matrix()
	pred := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		var sum float64
		for k, j := range indices {
			sum += view.At(i, j) * coef[k]
		}
		pred.SetVec(i, sum)
	}
	return pred, nil
}
