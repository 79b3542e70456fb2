// Package model は推定結果が満たすべき契約と、その永続化を提供する。
package model

import "github.com/YuminosukeSato/eslgo/dataset"

// Predictor は列名で係数を引ける学習済み線形モデル
//
// Names と Coefficients は同じ長さで、同じ順序で対応する。
// 評価側は Names を使って評価データから列を選ぶため、
// 学習時とは列の並びが異なる行列にも適用できる。
type Predictor interface {
	// Names はモデルが使う列名を返す
	Names() []string
	// Coefficients は Names と同じ順序の係数を返す
	Coefficients() []float64
}

// Transformer は学習データから統計量を求め、計画行列を変換する前処理器
type Transformer interface {
	Fit(X *dataset.DesignMatrix) error
	Transform(X *dataset.DesignMatrix) (*dataset.DesignMatrix, error)
	IsFitted() bool
}
