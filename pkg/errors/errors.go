// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
// 最小二乗法・最良部分集合選択で発生するエラーを構造化された型として表現します。
package errors

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("eslgo-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定し、
// 直前のハンドラに戻す関数を返します。
//
// 例:
//
//	restore := errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
//	defer restore()
func SetWarningHandler(handler func(w error)) (restore func()) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	prev := warningHandler
	warningHandler = handler
	return func() {
		warningMutex.Lock()
		defer warningMutex.Unlock()
		warningHandler = prev
	}
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが設定されている場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// UndefinedMetricWarning は評価指標が計算できない場合に発生する警告です。
// 例えば、テストデータが1行しかなく標準誤差が定義できない場合など。
type UndefinedMetricWarning struct {
	Metric    string
	Condition string
	Result    float64 // この条件で返される値
}

func (w *UndefinedMetricWarning) Error() string {
	return fmt.Sprintf("'%s' is ill-defined and being set to %f due to %s.", w.Metric, w.Result, w.Condition)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *UndefinedMetricWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("metric", w.Metric).
		Str("condition", w.Condition).
		Float64("result", w.Result).
		Str("type", "UndefinedMetricWarning")
}

// NewUndefinedMetricWarning は新しいUndefinedMetricWarningを作成します。
func NewUndefinedMetricWarning(metric, condition string, result float64) *UndefinedMetricWarning {
	return &UndefinedMetricWarning{Metric: metric, Condition: condition, Result: result}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// NotFittedError は学習前のスケーラーなどで Transform を呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("eslgo: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionalityError は観測数が説明変数の数以下で、正規方程式が劣決定になる場合のエラーです。
type DimensionalityError struct {
	Op       string
	Samples  int
	Features int
}

func (e *DimensionalityError) Error() string {
	return fmt.Sprintf("eslgo: %s: under-determined system: %d observations for %d columns (need more observations than columns)",
		e.Op, e.Samples, e.Features)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionalityError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("samples", e.Samples).
		Int("features", e.Features).
		Str("type", "DimensionalityError")
}

// NewDimensionalityError は新しいDimensionalityErrorを作成し、スタックトレースを付与します。
func NewDimensionalityError(op string, samples, features int) error {
	err := &DimensionalityError{Op: op, Samples: samples, Features: features}
	return errors.WithStack(err)
}

// SingularMatrixError は X^T X が逆行列を持たない（列が共線）場合のエラーです。
// errors.Is(err, ErrSingularMatrix) でも判定できます。
type SingularMatrixError struct {
	Op      string
	Columns []string // 対象となった列名（分かる場合）
	Err     error    // gonum から返された元のエラー
}

func (e *SingularMatrixError) Error() string {
	msg := fmt.Sprintf("eslgo: %s: normal equations matrix is singular", e.Op)
	if len(e.Columns) > 0 {
		msg += fmt.Sprintf(" (columns: %s)", strings.Join(e.Columns, ", "))
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *SingularMatrixError) Unwrap() error {
	return e.Err
}

// Is は ErrSingularMatrix との比較を可能にします。
func (e *SingularMatrixError) Is(target error) bool {
	return target == ErrSingularMatrix
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *SingularMatrixError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Strs("columns", e.Columns).
		Str("type", "SingularMatrixError")
}

// NewSingularMatrixError は新しいSingularMatrixErrorを作成し、スタックトレースを付与します。
func NewSingularMatrixError(op string, columns []string, cause error) error {
	err := &SingularMatrixError{Op: op, Columns: columns, Err: cause}
	return errors.WithStack(err)
}

// InvalidParameterError はパラメータが有効範囲外の場合のエラーです。
// 例えば、部分集合のサイズ k が 1 <= k <= p を満たさない場合など。
type InvalidParameterError struct {
	Op     string
	Param  string
	Value  interface{}
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("eslgo: %s: invalid parameter '%s': %s (got: %v)", e.Op, e.Param, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *InvalidParameterError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("param_name", e.Param).
		Interface("value", e.Value).
		Str("reason", e.Reason).
		Str("type", "InvalidParameterError")
}

// NewInvalidParameterError は新しいInvalidParameterErrorを作成し、スタックトレースを付与します。
func NewInvalidParameterError(op, param string, value interface{}, reason string) error {
	err := &InvalidParameterError{Op: op, Param: param, Value: value, Reason: reason}
	return errors.WithStack(err)
}

// SchemaMismatchError は学習時と評価時で列構成が一致しない場合のエラーです。
type SchemaMismatchError struct {
	Op       string
	Missing  []string // 評価データに存在しない列
	Expected int      // モデルの係数の数
	Got      int      // 解決できた列の数
}

func (e *SchemaMismatchError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("eslgo: %s: schema mismatch: columns not found in evaluation data: %s",
			e.Op, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("eslgo: %s: schema mismatch: model has %d coefficients but %d columns", e.Op, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *SchemaMismatchError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Strs("missing", e.Missing).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Str("type", "SchemaMismatchError")
}

// NewSchemaMismatchError は新しいSchemaMismatchErrorを作成し、スタックトレースを付与します。
func NewSchemaMismatchError(op string, missing []string, expected, got int) error {
	err := &SchemaMismatchError{Op: op, Missing: missing, Expected: expected, Got: got}
	return errors.WithStack(err)
}

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("eslgo: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValueError は引数の値が不適切または不正な場合に発生するエラーです。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("eslgo: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ModelError はデータセットやモデルに関する一般的なエラーです。
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("eslgo: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("eslgo: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError は新しいModelErrorを作成し、スタックトレースを付与します。
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// ===========================================================================
//
//	数値計算のエラー型
//
// ===========================================================================

// NumericalInstabilityError は入力や計算結果に NaN や Inf が含まれる場合のエラーです。
type NumericalInstabilityError struct {
	Operation string    // 発生した操作（例: "least_squares", "evaluation"）
	Values    []float64 // 問題のある値
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("eslgo: numerical instability detected in %s. Values: [%s]", e.Operation, valStr)
}

// NewNumericalInstabilityError は新しいNumericalInstabilityErrorを作成します。
func NewNumericalInstabilityError(operation string, values []float64) error {
	err := &NumericalInstabilityError{
		Operation: operation,
		Values:    values,
	}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix は特異行列の場合のエラーです。
	ErrSingularMatrix = New("singular matrix")
)
