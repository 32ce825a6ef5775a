package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		kind     string
		err      error
		wantMsg  string
		hasStack bool
	}{
		{
			name:     "with original error",
			op:       "Fit",
			kind:     "singular matrix",
			err:      ErrSingularMatrix,
			wantMsg:  "linreg: Fit: singular matrix: singular matrix",
			hasStack: true,
		},
		{
			name:     "without original error",
			op:       "Predict",
			kind:     "not fitted",
			err:      nil,
			wantMsg:  "linreg: Predict: not fitted",
			hasStack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			// 基本的なエラーメッセージの確認
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			if tt.hasStack {
				formatted := fmt.Sprintf("%+v", err)
				if !strings.Contains(formatted, "errors_test.go") {
					t.Error("Expected stack trace to contain test file name")
				}
			}

			// ModelError型にキャスト可能か確認
			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("Fit", 5, 4, 0)

	// 基本的なエラーメッセージの確認
	want := "linreg: Fit: dimension mismatch on axis 0 (rows). Expected 5, got 4"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Fatal("Error should be castable to *DimensionError")
	}
	if dimErr.Expected != 5 || dimErr.Got != 4 || dimErr.Axis != 0 {
		t.Errorf("unexpected fields: %+v", dimErr)
	}

	// 列軸のメッセージも確認
	err = NewDimensionError("Predict", 3, 2, 1)
	want = "linreg: Predict: dimension mismatch on axis 1 (columns). Expected 3, got 2"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}

func TestNewRankDeficientError(t *testing.T) {
	tests := []struct {
		name string
		rows int
		cols int
		rank int
		want string
	}{
		{
			name: "with rank",
			rows: 5,
			cols: 3,
			rank: 2,
			want: "linreg: Fit: design matrix is rank-deficient (5x3, rank 2). Columns must be linearly independent and rows >= columns",
		},
		{
			name: "rank unknown",
			rows: 2,
			cols: 3,
			rank: -1,
			want: "linreg: Fit: design matrix is rank-deficient (2x3). Columns must be linearly independent and rows >= columns",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRankDeficientError("Fit", tt.rows, tt.cols, tt.rank)
			if err.Error() != tt.want {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.want)
			}

			var rdErr *RankDeficientError
			if !As(err, &rdErr) {
				t.Fatal("Error should be castable to *RankDeficientError")
			}
			if rdErr.Rows != tt.rows || rdErr.Cols != tt.cols || rdErr.Rank != tt.rank {
				t.Errorf("unexpected fields: %+v", rdErr)
			}
		})
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("OLSEstimator", "Predict")

	want := "linreg: OLSEstimator: this model is not fitted yet. Call Fit() before using Predict()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var nfErr *NotFittedError
	if !As(err, &nfErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestWarningHandler(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) {
		captured = w
	})

	warning := NewIllConditionedWarning("OLSEstimator.Fit", 1e14, 1e12)
	Warn(warning)

	if captured == nil {
		t.Fatal("Expected warning to be captured by handler")
	}

	var icw *IllConditionedWarning
	if !As(captured, &icw) {
		t.Fatalf("Expected IllConditionedWarning, got %T", captured)
	}
	if icw.Cond != 1e14 || icw.Threshold != 1e12 {
		t.Errorf("unexpected fields: %+v", icw)
	}
	if !strings.Contains(icw.Error(), "ill-conditioned") {
		t.Errorf("unexpected message: %s", icw.Error())
	}
}

func TestSentinelErrors(t *testing.T) {
	wrapped := Wrap(ErrSingularMatrix, "Fit failed")
	if !Is(wrapped, ErrSingularMatrix) {
		t.Error("wrapped error should match ErrSingularMatrix")
	}

	wrapped = Wrapf(ErrEmptyData, "op %s", "Fit")
	if !Is(wrapped, ErrEmptyData) {
		t.Error("wrapped error should match ErrEmptyData")
	}
}
