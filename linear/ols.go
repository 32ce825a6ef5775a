// Package linear は正規方程式による最小二乗法の線形回帰を提供します。
//
// 計画行列の規約: Fit に渡す X は定数1のバイアス列を既に含むものとし、
// バイアス列は先頭（0列目）に置きます（preprocessing.AddBias を参照）。
// 推定器自身は列の拡張を行いません。
package linear

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linreg/core/model"
	"github.com/YuminosukeSato/linreg/pkg/errors"
	"github.com/YuminosukeSato/linreg/pkg/log"
)

// 行列要素の比較に使う倍精度の機械イプシロン
const epsilon = 2.220446049250313e-16

// OLSEstimator は閉形式（正規方程式）の最小二乗推定器
//
// Fit は θ = (X^T X)^(-1) X^T y を固定された演算順序で解き、
// 不変な FittedModel を返します。推定器は訓練データを保持しません。
type OLSEstimator struct {
	model.BaseEstimator

	solver        Solver
	condThreshold float64
	cloneInputs   bool
}

// NewOLSEstimator は新しい最小二乗推定器を作成する
func NewOLSEstimator(opts ...Option) *OLSEstimator {
	e := &OLSEstimator{
		solver:        NormalEquations,
		condThreshold: 1e12,
		cloneInputs:   true,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Fit はモデルを訓練データで学習させ、学習済みモデルを返す
//
// 正規方程式 θ = (X^T * X)^(-1) * X^T * y を使用。演算は次の固定順序で行う:
//  1. X^T（転置）
//  2. A = X^T * X（グラム行列）
//  3. A の逆行列（特異なら RankDeficientError）
//  4. b = X^T * y
//  5. θ = A^(-1) * b
//
// 同一の入力ビットパターンに対して結果は決定的です。
func (e *OLSEstimator) Fit(X, y mat.Matrix) (fm *FittedModel, err error) {
	defer errors.Recover(&err, "OLSEstimator.Fit")

	start := time.Now()

	// 入力の検証（数値計算の前に行う）
	n, p := X.Dims()
	ry, cy := y.Dims()

	if n == 0 || p == 0 {
		return nil, errors.NewModelError("OLSEstimator.Fit", "empty data", errors.ErrEmptyData)
	}

	if ry != n {
		return nil, errors.NewDimensionError("OLSEstimator.Fit", n, ry, 0)
	}

	if cy != 1 {
		return nil, errors.NewValueError("OLSEstimator.Fit", "y must be a column vector")
	}

	if n < p {
		return nil, errors.NewRankDeficientError("OLSEstimator.Fit", n, p, -1)
	}

	// y を VecDense に変換（呼び出し元のデータは保持しない）
	yVec := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		yVec.SetVec(i, y.At(i, 0))
	}

	XWork := X
	if e.cloneInputs {
		XCopy := mat.NewDense(n, p, nil)
		XCopy.Copy(X)
		XWork = XCopy
	}

	var theta *mat.VecDense
	var cond float64
	var rank int

	switch e.solver {
	case QR:
		theta, cond, rank, err = e.solveQR(XWork, yVec)
	default:
		theta, cond, rank, err = e.solveNormalEquations(XWork, yVec)
	}
	if err != nil {
		return nil, err
	}

	// 条件数が閾値を超えた場合は警告（解は返す）
	if e.condThreshold > 0 && cond > e.condThreshold {
		errors.Warn(errors.NewIllConditionedWarning("OLSEstimator.Fit", cond, e.condThreshold))
	}

	// 解の NaN/Inf を検出（特異に近い行列での数値破綻を黙って返さない）
	if err := errors.CheckNumericalStability("theta_solve", theta.RawVector().Data); err != nil {
		return nil, err
	}

	fm = newFittedModel(theta, p, cond)
	fm.sigma2 = fm.residualVariance(XWork, yVec)

	e.SetFitted()

	log.GetLoggerWithName("linear").Debug("fit complete",
		log.ModelNameKey, "OLSEstimator",
		log.OperationKey, "fit",
		log.SolverKey, e.solver.String(),
		log.SamplesKey, n,
		log.FeaturesKey, p,
		log.RankKey, rank,
		log.CondKey, cond,
		log.Sigma2Key, fm.sigma2,
		log.DurationMsKey, float64(time.Since(start).Microseconds())/1000.0,
	)

	return fm, nil
}

// solveNormalEquations は正規方程式を明示的な逆行列で解く
//
// 戻り値は (θ, グラム行列の条件数, 数値ランク)。
func (e *OLSEstimator) solveNormalEquations(X mat.Matrix, yVec *mat.VecDense) (*mat.VecDense, float64, int, error) {
	n, p := X.Dims()

	// 1. X^T
	var XT mat.Dense
	XT.CloneFrom(X.T())

	// 2. A = X^T * X
	var gram mat.Dense
	gram.Mul(&XT, X)

	// 3a. 特異値からランクと条件数を求める（逆行列より先に特異性を検出する）
	var svd mat.SVD
	if ok := svd.Factorize(&gram, mat.SVDNone); !ok {
		return nil, 0, 0, errors.NewModelError("OLSEstimator.Fit", "SVD factorization failed", errors.ErrSingularMatrix)
	}

	sv := svd.Values(nil)
	svMax := sv[0]
	svMin := sv[len(sv)-1]

	tol := float64(maxInt(n, p)) * epsilon * svMax
	rank := 0
	for _, s := range sv {
		if s > tol {
			rank++
		}
	}

	if rank < p {
		return nil, 0, 0, errors.NewRankDeficientError("OLSEstimator.Fit", n, p, rank)
	}

	cond := math.Inf(1)
	if svMin > 0 {
		cond = svMax / svMin
	}

	// 3b. A の逆行列
	var gramInv mat.Dense
	if err := gramInv.Inverse(&gram); err != nil {
		return nil, 0, 0, errors.NewRankDeficientError("OLSEstimator.Fit", n, p, rank)
	}

	// 4. b = X^T * y
	var xty mat.VecDense
	xty.MulVec(&XT, yVec)

	// 5. θ = A^(-1) * b
	theta := mat.NewVecDense(p, nil)
	theta.MulVec(&gramInv, &xty)

	return theta, cond, rank, nil
}

// solveQR は X の QR 分解と後退代入で解く
//
// 戻り値は (θ, グラム行列の条件数の近似, 数値ランク)。
func (e *OLSEstimator) solveQR(X mat.Matrix, yVec *mat.VecDense) (*mat.VecDense, float64, int, error) {
	n, p := X.Dims()

	qr := new(mat.QR)
	qr.Factorize(X)

	q := new(mat.Dense)
	r := new(mat.Dense)
	qr.QTo(q)
	qr.RTo(r)

	// R の対角要素が退化していればランク落ち
	rMax := 0.0
	for i := 0; i < p; i++ {
		if v := math.Abs(r.At(i, i)); v > rMax {
			rMax = v
		}
	}
	tol := float64(maxInt(n, p)) * epsilon * rMax
	rank := 0
	rMin := math.Inf(1)
	for i := 0; i < p; i++ {
		v := math.Abs(r.At(i, i))
		if v > tol {
			rank++
		}
		if v < rMin {
			rMin = v
		}
	}
	if rank < p {
		return nil, 0, 0, errors.NewRankDeficientError("OLSEstimator.Fit", n, p, rank)
	}

	// グラム行列の条件数は cond(R)^2 で近似できる
	cond := math.Inf(1)
	if rMin > 0 {
		c := rMax / rMin
		cond = c * c
	}

	// c = Q^T y の先頭 p 成分に対する後退代入
	var yq mat.Dense
	yq.Mul(yVec.T(), q)

	c := make([]float64, p)
	for i := p - 1; i >= 0; i-- {
		c[i] = yq.At(0, i)
		for j := i + 1; j < p; j++ {
			c[i] -= c[j] * r.At(i, j)
		}
		c[i] /= r.At(i, i)
	}

	return mat.NewVecDense(p, c), cond, rank, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
