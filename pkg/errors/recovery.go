// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
//
// このファイルはパニック回復を扱います。gonum の行列ルーチンは不正な形状で
// panic するため、公開 API の境界でエラーに変換して返します。

package errors

import (
	"fmt"
	"runtime/debug"
)

// PanicError は回復されたパニックから作られたエラーです。
// パニック時の値とスタックトレースを保持します。
type PanicError struct {
	// PanicValue は panic() に渡された元の値
	PanicValue interface{}

	// StackTrace はパニック発生時点のスタックトレース
	StackTrace string

	// Operation はパニックを回復した操作名
	Operation string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Operation, e.PanicValue)
}

// Unwrap は nil を返す（PanicError は他のエラーをラップしない）。
func (e *PanicError) Unwrap() error {
	return nil
}

// String はスタックトレースを含む詳細表現を返す。
func (e *PanicError) String() string {
	return fmt.Sprintf("panic in %s: %v\nStack trace:\n%s",
		e.Operation, e.PanicValue, e.StackTrace)
}

// NewPanicError は操作名とパニック値から PanicError を作成します。
// スタックトレースは作成時点で取得されます。
func NewPanicError(operation string, panicValue interface{}) *PanicError {
	return &PanicError{
		PanicValue: panicValue,
		StackTrace: string(debug.Stack()),
		Operation:  operation,
	}
}

// Recover は defer で使い、パニックをエラー戻り値に変換します。
// 名前付きエラー戻り値へのポインタを渡してください。
//
// 使用例:
//
//	func (e *OLSEstimator) Fit(X, y mat.Matrix) (fm *FittedModel, err error) {
//	    defer errors.Recover(&err, "OLSEstimator.Fit")
//	    // gonum の行列演算 ...
//	}
//
// 既にエラーが設定されている状態でパニックが起きた場合は、
// 元のエラーをラップした形で両方の情報を保持します。
func Recover(err *error, operation string) {
	if r := recover(); r != nil {
		panicErr := NewPanicError(operation, r)

		if *err != nil {
			*err = fmt.Errorf("panic in %s: %v (original error: %w)",
				operation, r, *err)
		} else {
			*err = panicErr
		}
	}
}

// SafeExecute は fn を実行し、パニックが起きた場合は PanicError として返します。
// 単発の危険な操作（逆行列計算など）を包むときに使います。
//
// 使用例:
//
//	err := errors.SafeExecute("gram_inverse", func() error {
//	    return gramInv.Inverse(&gram)
//	})
func SafeExecute(operation string, fn func() error) (err error) {
	defer Recover(&err, operation)
	return fn()
}
