// Package preprocessing は計画行列の列を標準化する前処理器を提供する。
package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/eslgo/core/model"
	"github.com/YuminosukeSato/eslgo/dataset"
	"github.com/YuminosukeSato/eslgo/pkg/errors"
)

// 標準偏差がこれより小さい列はスケーリングしない
const minScale = 1e-8

var _ model.Transformer = (*StandardScaler)(nil)

// StandardScaler は各列を平均0、標準偏差1に変換する
//
// 列は名前で管理される。Transform に渡す行列は Fit 時の列を全て含む必要があるが、
// 並び順は問わない。Skip に含まれる列（既定では切片列）はそのまま残す。
type StandardScaler struct {
	model.BaseEstimator

	// Names は学習時の列名
	Names []string

	// Mean は各列の平均値
	Mean []float64

	// Scale は各列の標準偏差
	Scale []float64

	// Ddof は分散の自由度補正。1 なら不偏分散（n-1）、0 なら母分散（n）
	Ddof int

	// Skip は標準化しない列名
	Skip []string
}

// NewStandardScaler は新しいStandardScalerを作成する
//
// パラメータ:
//   - ddof: 分散の自由度補正（0 または 1）
//
// 使用例:
//
//	scaler := preprocessing.NewStandardScaler(1)
//	XScaled, err := scaler.FitTransform(X)
func NewStandardScaler(ddof int) *StandardScaler {
	return &StandardScaler{
		Ddof: ddof,
		Skip: []string{dataset.InterceptName},
	}
}

// NewStandardScalerDefault は不偏分散を使うStandardScalerを作成する
func NewStandardScalerDefault() *StandardScaler {
	return NewStandardScaler(1)
}

// Fit は訓練データから各列の平均と標準偏差を計算する
func (s *StandardScaler) Fit(X *dataset.DesignMatrix) error {
	if s.Ddof != 0 && s.Ddof != 1 {
		return errors.NewInvalidParameterError("StandardScaler.Fit", "ddof", s.Ddof, "must be 0 or 1")
	}
	r, c := X.Dims()
	if r <= s.Ddof {
		return errors.NewDimensionalityError("StandardScaler.Fit", r, s.Ddof)
	}

	s.Reset()
	s.Names = X.Names()
	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)

	skip := s.skipSet()
	col := make([]float64, r)
	for j, name := range s.Names {
		if _, ok := skip[name]; ok {
			s.Scale[j] = 1.0
			continue
		}
		mat.Col(col, j, X.Matrix())

		var mean, std float64
		if s.Ddof == 1 {
			mean, std = stat.MeanStdDev(col, nil)
		} else {
			mean, std = stat.PopMeanStdDev(col, nil)
		}
		s.Mean[j] = mean
		s.Scale[j] = std

		// 標準偏差が0に近い場合は1に設定（ゼロ除算を避ける）
		if math.Abs(s.Scale[j]) < minScale {
			s.Scale[j] = 1.0
		}
	}

	s.SetFitted()
	return nil
}

// Transform は学習済みの統計量で X を標準化した新しい行列を返す
func (s *StandardScaler) Transform(X *dataset.DesignMatrix) (*dataset.DesignMatrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "Transform")
	}
	indices, err := X.Indices(s.Names)
	if err != nil {
		return nil, err
	}

	out := X.Dense()
	r, _ := out.Dims()
	for k, j := range indices {
		mean, scale := s.Mean[k], s.Scale[k]
		for i := 0; i < r; i++ {
			out.Set(i, j, (out.At(i, j)-mean)/scale)
		}
	}
	return dataset.NewDesignMatrixFromDense(X.Names(), out)
}

// FitTransform は Fit と Transform を続けて実行する
func (s *StandardScaler) FitTransform(X *dataset.DesignMatrix) (*dataset.DesignMatrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// GetParams はスケーラーのパラメータを返す
func (s *StandardScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"ddof": s.Ddof,
		"skip": s.Skip,
	}
}

// String はスケーラーの文字列表現を返す
func (s *StandardScaler) String() string {
	if !s.IsFitted() {
		return fmt.Sprintf("StandardScaler(ddof=%d)", s.Ddof)
	}
	return fmt.Sprintf("StandardScaler(ddof=%d, n_features=%d)", s.Ddof, len(s.Names))
}

func (s *StandardScaler) skipSet() map[string]struct{} {
	set := make(map[string]struct{}, len(s.Skip))
	for _, name := range s.Skip {
		set[name] = struct{}{}
	}
	return set
}
