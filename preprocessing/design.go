// Package preprocessing は計画行列の組み立てを行うユーティリティを提供します。
package preprocessing

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linreg/core/parallel"
)

// 並列処理の閾値（この値以下の行数では逐次処理を使用）
const parallelThreshold = 1000

// AddBias は X の先頭に定数1のバイアス列を追加した新しい行列を返す
//
// 返される行列は n×(d+1) で、0列目がバイアス列。入力 X は変更されない。
//
// 使用例:
//
//	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
//	XDesign := preprocessing.AddBias(X)  // 4×2、先頭列はすべて1
func AddBias(X mat.Matrix) *mat.Dense {
	r, c := X.Dims()
	XWithBias := mat.NewDense(r, c+1, nil)

	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			XWithBias.Set(i, 0, 1.0) // バイアス項
			for j := 0; j < c; j++ {
				XWithBias.Set(i, j+1, X.At(i, j))
			}
		}
	})

	return XWithBias
}

// DesignMatrix は単一特徴量の観測列からバイアス列つきの計画行列を組み立てる
//
// 戻り値は n×2 の行列 [1, x]。ノートブック的な単回帰の前処理に相当する。
func DesignMatrix(xs []float64) *mat.Dense {
	n := len(xs)
	X := mat.NewDense(n, 2, nil)
	for i, x := range xs {
		X.Set(i, 0, 1.0)
		X.Set(i, 1, x)
	}
	return X
}

// TargetVector は観測値のスライスから目的変数ベクトルを組み立てる
//
// データはコピーされるため、呼び出し元のスライスを後から変更しても安全。
func TargetVector(ys []float64) *mat.VecDense {
	data := make([]float64, len(ys))
	copy(data, ys)
	return mat.NewVecDense(len(ys), data)
}
