// Package linear は正規方程式による最小二乗回帰と、その標準誤差を計算する。
package linear

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/eslgo/core/model"
	"github.com/YuminosukeSato/eslgo/dataset"
	"github.com/YuminosukeSato/eslgo/metrics"
	"github.com/YuminosukeSato/eslgo/pkg/errors"
)

var _ model.Predictor = (*Fit)(nil)

// Fit は最小二乗回帰の結果
//
// 全てのスライスは Columns と同じ順序で対応する。LeastSquares が返した後に
// 変更されることはない。アクセサはコピーを返す。
type Fit struct {
	Betahat      []float64 `json:"betahat"`               // 係数
	StdErrors    []float64 `json:"std_errors"`            // 係数の標準誤差
	RSS          float64   `json:"rss"`                   // 残差平方和
	Sigma2       float64   `json:"sigma2"`                // 残差分散 RSS/(n-p)
	Columns      []string  `json:"columns"`               // 列名
	Combination  []int     `json:"combination,omitempty"` // 部分集合モデルの場合、元の行列での列番号
	Observations int       `json:"observations"`          // 学習に使った観測数
}

// LeastSquares は ||y - Xβ||² を最小にする β を求める
// 正規方程式 β = (X^T * X)^(-1) * X^T * y を使用
//
// 観測数 n が列数 p 以下の場合は DimensionalityError、
// X^T X が逆行列を持たない場合は SingularMatrixError を返す。
//
// 使用例:
//
//	fit, err := linear.LeastSquares(X, y)
//	z := fit.ZScores()
func LeastSquares(X *dataset.DesignMatrix, y *dataset.Response) (*Fit, error) {
	// 入力の検証
	if err := dataset.CheckAligned("linear.LeastSquares", X, y); err != nil {
		return nil, err
	}
	n, p := X.Dims()
	if n <= p {
		return nil, errors.NewDimensionalityError("linear.LeastSquares", n, p)
	}
	if err := errors.CheckMatrix("linear.LeastSquares", X.Matrix()); err != nil {
		return nil, err
	}
	yValues := y.Values()
	if err := errors.CheckNumericalStability("linear.LeastSquares", yValues); err != nil {
		return nil, err
	}

	// 正規方程式を解く
	// (X^T * X)^(-1) * X^T * y
	view := X.Matrix()
	var XTX mat.Dense
	XTX.Mul(view.T(), view)

	// 逆行列を計算
	var XTXInv mat.Dense
	if err := XTXInv.Inverse(&XTX); err != nil {
		return nil, errors.NewSingularMatrixError("linear.LeastSquares", X.Names(), err)
	}

	yVec := mat.NewVecDense(n, yValues)
	var XTy mat.VecDense
	XTy.MulVec(view.T(), yVec)

	beta := mat.NewVecDense(p, nil)
	beta.MulVec(&XTXInv, &XTy)

	// 残差 e = y - Xβ
	var fitted mat.VecDense
	fitted.MulVec(view, beta)
	residuals := make([]float64, n)
	floats.SubTo(residuals, yValues, fitted.RawVector().Data)
	rss := floats.Dot(residuals, residuals)

	sigma2 := rss / float64(n-p)
	stdErrors := make([]float64, p)
	for j := 0; j < p; j++ {
		// 丸め誤差で対角が負になった場合は0とする
		stdErrors[j] = math.Sqrt(math.Max(0, sigma2*XTXInv.At(j, j)))
	}

	return &Fit{
		Betahat:      mat.Col(nil, 0, beta),
		StdErrors:    stdErrors,
		RSS:          rss,
		Sigma2:       sigma2,
		Columns:      X.Names(),
		Observations: n,
	}, nil
}

// Names は係数に対応する列名を返す
func (f *Fit) Names() []string {
	return append([]string(nil), f.Columns...)
}

// Coefficients は係数 β̂ を返す
func (f *Fit) Coefficients() []float64 {
	return append([]float64(nil), f.Betahat...)
}

// StandardErrors は係数の標準誤差を返す
func (f *Fit) StandardErrors() []float64 {
	return append([]float64(nil), f.StdErrors...)
}

// Coefficient は名前で係数を引く
func (f *Fit) Coefficient(name string) (float64, bool) {
	for j, col := range f.Columns {
		if col == name {
			return f.Betahat[j], true
		}
	}
	return 0, false
}

// ZScores は係数を標準誤差で割った値を返す
// 標準誤差が0の係数は ±Inf（係数も0なら NaN）になる。
func (f *Fit) ZScores() []float64 {
	z := make([]float64, len(f.Betahat))
	floats.DivTo(z, f.Betahat, f.StdErrors)
	return z
}

// Predict は X から列を名前で選んで予測値を返す
func (f *Fit) Predict(X *dataset.DesignMatrix) (*mat.VecDense, error) {
	return model.Predict(f, X)
}

// Residuals は y - Xβ̂ を返す
func (f *Fit) Residuals(X *dataset.DesignMatrix, y *dataset.Response) (*mat.VecDense, error) {
	if err := dataset.CheckAligned("linear.Fit.Residuals", X, y); err != nil {
		return nil, err
	}
	pred, err := f.Predict(X)
	if err != nil {
		return nil, err
	}
	var res mat.VecDense
	res.SubVec(y.Vec(), pred)
	return &res, nil
}

// Score は決定係数（R²）を計算する
func (f *Fit) Score(X *dataset.DesignMatrix, y *dataset.Response) (float64, error) {
	pred, err := f.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2Score(y.Vec(), pred)
}
