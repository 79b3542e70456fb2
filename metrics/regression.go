// Package metrics は回帰モデルの誤差指標を計算する。
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/eslgo/pkg/errors"
)

// SquaredErrors は各観測の二乗誤差 (yTrue_i - yPred_i)² を返す
func SquaredErrors(yTrue, yPred *mat.VecDense) ([]float64, error) {
	if err := checkPair("SquaredErrors", yTrue, yPred); err != nil {
		return nil, err
	}
	n := yTrue.Len()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		out[i] = diff * diff
	}
	return out, nil
}

// RSS は残差平方和（Residual Sum of Squares）を計算する
func RSS(yTrue, yPred *mat.VecDense) (float64, error) {
	sq, err := SquaredErrors(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return floats.Sum(sq), nil
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	sq, err := SquaredErrors(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	// MSE = (1/n) * Σ(yTrue - yPred)²
	return stat.Mean(sq, nil), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	if err := checkPair("MAE", yTrue, yPred); err != nil {
		return 0, err
	}
	n := yTrue.Len()
	diff := make([]float64, n)
	for i := 0; i < n; i++ {
		diff[i] = math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
	}
	return stat.Mean(diff, nil), nil
}

// R2Score は決定係数（R²）を計算する
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	rss, err := RSS(yTrue, yPred)
	if err != nil {
		return 0, err
	}

	values := mat.Col(nil, 0, yTrue)
	yMean := stat.Mean(values, nil)
	var tss float64
	for _, v := range values {
		tss += (v - yMean) * (v - yMean)
	}

	// 全変動が0の場合（すべてのyTrueが同じ値）
	if tss == 0 {
		return 0, errors.Newf("R2Score: total sum of squares is zero (no variance in yTrue)")
	}

	// R² = 1 - RSS/TSS
	return 1 - rss/tss, nil
}

// MeanStdError は values の平均と、その標準誤差 sd/sqrt(m) を返す
//
// sd は不偏標準偏差（m-1）。m = 1 のとき標準誤差は定義できないため
// UndefinedMetricWarning を発生させ、NaN を返す。
func MeanStdError(values []float64) (mean, stdErr float64, err error) {
	m := len(values)
	if m == 0 {
		return 0, 0, errors.NewValueError("MeanStdError", "empty vector")
	}
	if m == 1 {
		errors.Warn(errors.NewUndefinedMetricWarning("std_error", "a single observation", math.NaN()))
		return values[0], math.NaN(), nil
	}
	mean, sd := stat.MeanStdDev(values, nil)
	return mean, sd / math.Sqrt(float64(m)), nil
}

func checkPair(op string, yTrue, yPred *mat.VecDense) error {
	n := yTrue.Len()
	if n == 0 {
		return errors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != n {
		return errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return nil
}
