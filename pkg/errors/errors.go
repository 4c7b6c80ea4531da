// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
// データ前処理パイプラインの「構造的に続行できない」エラー（列の欠落、型の不一致、
// 不正なパラメータなど）と、「値が使えないだけ」の警告を明確に区別します。
package errors

import (
	"fmt"
	"log"
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
		log.Printf("pricekit-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
// nil を渡すと従来のハンドラに戻ります。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが利用可能な場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
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

// DataConversionWarning は値が欠損マーカーへ変換された場合などに発生する警告です。
type DataConversionWarning struct {
	Column   string
	FromType string
	ToType   string
	Count    int
	Reason   string
}

func (w *DataConversionWarning) Error() string {
	return fmt.Sprintf("column '%s': %d value(s) converted from %s to %s. Reason: %s",
		w.Column, w.Count, w.FromType, w.ToType, w.Reason)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *DataConversionWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("column", w.Column).
		Str("from_type", w.FromType).
		Str("to_type", w.ToType).
		Int("count", w.Count).
		Str("reason", w.Reason).
		Str("type", "DataConversionWarning")
}

// NewDataConversionWarning は新しいDataConversionWarningを作成します。
func NewDataConversionWarning(column, from, to string, count int, reason string) *DataConversionWarning {
	return &DataConversionWarning{Column: column, FromType: from, ToType: to, Count: count, Reason: reason}
}

// UnknownStrategyWarning は未知の戦略名・手法名が指定され、処理をスキップした場合の警告です。
type UnknownStrategyWarning struct {
	Component string
	Name      string
	Available []string
}

func (w *UnknownStrategyWarning) Error() string {
	return fmt.Sprintf("%s: unknown method '%s', no changes applied (available: %v)", w.Component, w.Name, w.Available)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *UnknownStrategyWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("component", w.Component).
		Str("name", w.Name).
		Strs("available", w.Available).
		Str("type", "UnknownStrategyWarning")
}

// NewUnknownStrategyWarning は新しいUnknownStrategyWarningを作成します。
func NewUnknownStrategyWarning(component, name string, available ...string) *UnknownStrategyWarning {
	return &UnknownStrategyWarning{Component: component, Name: name, Available: available}
}

// UndefinedStatisticWarning は統計量が計算できない場合に発生する警告です。
// 例えば、全ての値が欠損している列の最頻値など。
type UndefinedStatisticWarning struct {
	Column    string
	Statistic string
	Condition string
}

func (w *UndefinedStatisticWarning) Error() string {
	return fmt.Sprintf("'%s' of column '%s' is undefined due to %s; column left unchanged", w.Statistic, w.Column, w.Condition)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *UndefinedStatisticWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("column", w.Column).
		Str("statistic", w.Statistic).
		Str("condition", w.Condition).
		Str("type", "UndefinedStatisticWarning")
}

// NewUndefinedStatisticWarning は新しいUndefinedStatisticWarningを作成します。
func NewUndefinedStatisticWarning(column, statistic, condition string) *UndefinedStatisticWarning {
	return &UndefinedStatisticWarning{Column: column, Statistic: statistic, Condition: condition}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// MissingColumnError は変換に必要な列がデータセットに存在しない場合のエラーです。
type MissingColumnError struct {
	Op     string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("pricekit: %s: missing column '%s'", e.Op, e.Column)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *MissingColumnError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("column", e.Column).
		Str("type", "MissingColumnError")
}

// NewMissingColumnError は新しいMissingColumnErrorを作成し、スタックトレースを付与します。
func NewMissingColumnError(op, column string) error {
	return errors.WithStack(&MissingColumnError{Op: op, Column: column})
}

// TypeMismatchError は列の型が操作の前提と異なる場合のエラーです。
type TypeMismatchError struct {
	Op       string
	Column   string
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("pricekit: %s: column '%s' has type %s, expected %s", e.Op, e.Column, e.Got, e.Expected)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *TypeMismatchError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("column", e.Column).
		Str("expected", e.Expected).
		Str("got", e.Got).
		Str("type", "TypeMismatchError")
}

// NewTypeMismatchError は新しいTypeMismatchErrorを作成し、スタックトレースを付与します。
func NewTypeMismatchError(op, column, expected, got string) error {
	return errors.WithStack(&TypeMismatchError{Op: op, Column: column, Expected: expected, Got: got})
}

// UnsupportedCastError は変換先の型がサポートされていない場合のエラーです。
type UnsupportedCastError struct {
	Column string
	Type   string
}

func (e *UnsupportedCastError) Error() string {
	return fmt.Sprintf("pricekit: cannot cast column '%s' to unsupported type '%s'", e.Column, e.Type)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *UnsupportedCastError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("column", e.Column).
		Str("target_type", e.Type).
		Str("type", "UnsupportedCastError")
}

// NewUnsupportedCastError は新しいUnsupportedCastErrorを作成し、スタックトレースを付与します。
func NewUnsupportedCastError(column, typ string) error {
	return errors.WithStack(&UnsupportedCastError{Column: column, Type: typ})
}

// DomainError は値が数学的な定義域外にある場合のエラーです。
// 例えば、log(1+x) に x < -1 を渡した場合など。
type DomainError struct {
	Op     string
	Column string
	Value  float64
	Domain string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("pricekit: %s: column '%s' contains %g outside domain %s", e.Op, e.Column, e.Value, e.Domain)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DomainError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("column", e.Column).
		Float64("value", e.Value).
		Str("domain", e.Domain).
		Str("type", "DomainError")
}

// NewDomainError は新しいDomainErrorを作成し、スタックトレースを付与します。
func NewDomainError(op, column string, value float64, domain string) error {
	return errors.WithStack(&DomainError{Op: op, Column: column, Value: value, Domain: domain})
}

// IndexMismatchError は行インデックスによる再結合で対応する行が見つからない場合のエラーです。
type IndexMismatchError struct {
	Op    string
	Label int
}

func (e *IndexMismatchError) Error() string {
	return fmt.Sprintf("pricekit: %s: row with index %d has no counterpart", e.Op, e.Label)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *IndexMismatchError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("label", e.Label).
		Str("type", "IndexMismatchError")
}

// NewIndexMismatchError は新しいIndexMismatchErrorを作成し、スタックトレースを付与します。
func NewIndexMismatchError(op string, label int) error {
	return errors.WithStack(&IndexMismatchError{Op: op, Label: label})
}

// InvalidParameterError は入力パラメータの検証に失敗した場合のエラーです。
type InvalidParameterError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("pricekit: invalid parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *InvalidParameterError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "InvalidParameterError")
}

// NewInvalidParameterError は新しいInvalidParameterErrorを作成し、スタックトレースを付与します。
func NewInvalidParameterError(param, reason string, value interface{}) error {
	return errors.WithStack(&InvalidParameterError{ParamName: param, Reason: reason, Value: value})
}

// StratificationError は層化分割の前提（カテゴリ型、各クラス2件以上）を満たさない場合のエラーです。
type StratificationError struct {
	Column string
	Reason string
}

func (e *StratificationError) Error() string {
	return fmt.Sprintf("pricekit: cannot stratify on column '%s': %s", e.Column, e.Reason)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *StratificationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("column", e.Column).
		Str("reason", e.Reason).
		Str("type", "StratificationError")
}

// NewStratificationError は新しいStratificationErrorを作成し、スタックトレースを付与します。
func NewStratificationError(column, reason string) error {
	return errors.WithStack(&StratificationError{Column: column, Reason: reason})
}

// TransformError はパイプライン中の変換が失敗した場合に、その変換のキーを付与するエラーです。
type TransformError struct {
	Key string
	Err error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("pricekit: transform '%s' failed: %v", e.Key, e.Err)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *TransformError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("key", e.Key).
		AnErr("cause", e.Err).
		Str("type", "TransformError")
}

// NewTransformError は新しいTransformErrorを作成し、スタックトレースを付与します。
func NewTransformError(key string, err error) error {
	return errors.WithStack(&TransformError{Key: key, Err: err})
}

// NotFittedError は統計量が未学習の状態で `Transform` を呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("pricekit: %s: not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	return errors.WithStack(&NotFittedError{ModelName: modelName, Method: method})
}

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns
}

func (e *DimensionError) Error() string {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("pricekit: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got, Axis: axis})
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

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
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
)
