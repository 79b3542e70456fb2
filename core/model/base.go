package model

import "github.com/google/uuid"

// EstimatorState はモデルの学習状態を表す
type EstimatorState int

const (
	// NotFitted はモデルが未学習の状態
	NotFitted EstimatorState = iota
	// Fitted はモデルが学習済みの状態
	Fitted
)

// String は状態名を返す
func (s EstimatorState) String() string {
	if s == Fitted {
		return "fitted"
	}
	return "not_fitted"
}

// BaseEstimator は学習状態を持つ推定器（スケーラーなど）に埋め込む構造体
//
// 学習のたびに新しいIDが割り当てられ、ログの estimator.id 属性として使われる。
type BaseEstimator struct {
	state EstimatorState
	id    string
}

// IsFitted はモデルが学習済みかどうかを返す
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// State は現在の学習状態を返す
func (e *BaseEstimator) State() EstimatorState {
	return e.state
}

// SetFitted はモデルを学習済み状態に設定し、新しいIDを割り当てる
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
	e.id = uuid.NewString()
}

// ID は直近の学習に割り当てられたIDを返す。未学習の場合は空文字列
func (e *BaseEstimator) ID() string {
	return e.id
}

// Reset はモデルを初期状態にリセットする
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
	e.id = ""
}
