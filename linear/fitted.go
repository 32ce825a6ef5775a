package linear

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linreg/core/model"
	"github.com/YuminosukeSato/linreg/core/parallel"
	"github.com/YuminosukeSato/linreg/metrics"
	"github.com/YuminosukeSato/linreg/pkg/errors"
)

// 予測を並列化する行数の閾値
const parallelThreshold = 1000

// FittedModel は学習済みの線形モデル
//
// パラメータベクトル θ（バイアス係数が先頭）と列数の規約のみを保持し、
// 訓練データへの参照は持ちません。構築後は不変であり、複数のゴルーチン
// から同時に Predict を呼び出しても安全です。
type FittedModel struct {
	theta  []float64 // バイアス係数を先頭に持つ係数ベクトル
	p      int       // 計画行列の列数（バイアス列を含む）
	cond   float64   // 学習時のグラム行列の条件数
	sigma2 float64   // 最尤推定によるノイズ分散 RSS/n
}

var _ model.LinearModel = (*FittedModel)(nil)

func newFittedModel(theta *mat.VecDense, p int, cond float64) *FittedModel {
	t := make([]float64, theta.Len())
	copy(t, theta.RawVector().Data)
	return &FittedModel{theta: t, p: p, cond: cond}
}

// Predict は入力データに対する予測 ŷ = X·θ を行う
//
// X は学習時と同じ列規約（バイアス列を含む同じ列数）であること。
// 各行の内積は左から右へ固定順で累積するため、同一入力に対する
// 結果はビット単位で再現されます。
func (m *FittedModel) Predict(X mat.Matrix) (*mat.VecDense, error) {
	n, p := X.Dims()
	if p != m.p {
		return nil, errors.NewDimensionError("FittedModel.Predict", m.p, p, 1)
	}

	predictions := mat.NewVecDense(n, nil)

	parallel.ParallelizeWithThreshold(n, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			var pred float64
			for j := 0; j < p; j++ {
				pred += X.At(i, j) * m.theta[j]
			}
			predictions.SetVec(i, pred)
		}
	})

	return predictions, nil
}

// Theta はバイアス係数を先頭に持つパラメータベクトルのコピーを返す
func (m *FittedModel) Theta() []float64 {
	t := make([]float64, len(m.theta))
	copy(t, m.theta)
	return t
}

// Coef はバイアスを除いた係数のコピーを返す
func (m *FittedModel) Coef() []float64 {
	c := make([]float64, len(m.theta)-1)
	copy(c, m.theta[1:])
	return c
}

// Intercept はバイアス係数（θの先頭要素）を返す
func (m *FittedModel) Intercept() float64 {
	return m.theta[0]
}

// Cond は学習時に計測したグラム行列の条件数を返す
func (m *FittedModel) Cond() float64 {
	return m.cond
}

// Sigma2 は最尤推定によるノイズ分散 σ² = RSS/n を返す
func (m *FittedModel) Sigma2() float64 {
	return m.sigma2
}

// Residuals は残差ベクトル y - X·θ を返す
func (m *FittedModel) Residuals(X mat.Matrix, y *mat.VecDense) (*mat.VecDense, error) {
	n, _ := X.Dims()
	if y.Len() != n {
		return nil, errors.NewDimensionError("FittedModel.Residuals", n, y.Len(), 0)
	}

	yPred, err := m.Predict(X)
	if err != nil {
		return nil, err
	}

	residuals := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		residuals.SetVec(i, y.AtVec(i)-yPred.AtVec(i))
	}
	return residuals, nil
}

// Score はモデルの決定係数（R²）を計算する
func (m *FittedModel) Score(X mat.Matrix, y *mat.VecDense) (float64, error) {
	yPred, err := m.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2Score(y, yPred)
}

// LogLikelihood はガウスノイズ仮定の下での対数尤度を計算する
//
// σ² には学習時の最尤推定値を用いる:
//
//	ln L = -n/2 · ln(2π·σ²) - RSS/(2σ²)
func (m *FittedModel) LogLikelihood(X mat.Matrix, y *mat.VecDense) (float64, error) {
	if m.sigma2 <= 0 {
		return 0, errors.NewValueError("FittedModel.LogLikelihood", "noise variance is zero; likelihood is unbounded for a noiseless fit")
	}

	residuals, err := m.Residuals(X, y)
	if err != nil {
		return 0, err
	}

	var rss float64
	for i := 0; i < residuals.Len(); i++ {
		r := residuals.AtVec(i)
		rss += r * r
	}

	n := float64(residuals.Len())
	return -0.5*n*math.Log(2.0*math.Pi*m.sigma2) - rss/(2.0*m.sigma2), nil
}

// residualVariance は訓練データ上の RSS/n を計算する（学習時に一度だけ呼ばれる）
func (m *FittedModel) residualVariance(X mat.Matrix, yVec *mat.VecDense) float64 {
	yPred, err := m.Predict(X)
	if err != nil {
		return 0
	}

	var rss float64
	for i := 0; i < yVec.Len(); i++ {
		r := yVec.AtVec(i) - yPred.AtVec(i)
		rss += r * r
	}
	return rss / float64(yVec.Len())
}

// Weights はシリアライゼーション用の重みドキュメントを返す
func (m *FittedModel) Weights() *model.ModelWeights {
	return &model.ModelWeights{
		ModelType: "OLSEstimator",
		Version:   "1.0",
		Theta:     m.Theta(),
		Sigma2:    m.sigma2,
		Metadata: map[string]interface{}{
			"cond": m.cond,
		},
	}
}

// FittedModelFromWeights は重みドキュメントから学習済みモデルを復元する
func FittedModelFromWeights(mw *model.ModelWeights) (*FittedModel, error) {
	if err := mw.Validate(); err != nil {
		return nil, errors.NewValidationError("weights", err.Error(), mw.ModelType)
	}
	if mw.ModelType != "OLSEstimator" {
		return nil, errors.NewValidationError("model_type", "unsupported model type", mw.ModelType)
	}

	theta := make([]float64, len(mw.Theta))
	copy(theta, mw.Theta)

	fm := &FittedModel{
		theta:  theta,
		p:      len(theta),
		sigma2: mw.Sigma2,
	}
	if c, ok := mw.Metadata["cond"].(float64); ok {
		fm.cond = c
	}
	return fm, nil
}

// GobEncode は gob.GobEncoder を実装する
//
// 内部フィールドは非公開なので、gob には ModelWeights ドキュメントの
// JSON 表現を載せる。model.SaveModel / SaveModelToWriter から利用される。
func (m *FittedModel) GobEncode() ([]byte, error) {
	return m.Weights().ToJSON()
}

// GobDecode は gob.GobDecoder を実装する
func (m *FittedModel) GobDecode(data []byte) error {
	var mw model.ModelWeights
	if err := mw.FromJSON(data); err != nil {
		return err
	}
	restored, err := FittedModelFromWeights(&mw)
	if err != nil {
		return err
	}
	*m = *restored
	return nil
}
