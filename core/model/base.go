package model

// EstimatorState は推定器の学習状態を表す
type EstimatorState int

const (
	// NotFitted は Fit がまだ成功していない状態
	NotFitted EstimatorState = iota
	// Fitted は少なくとも一度 Fit が成功した状態
	Fitted
)

// BaseEstimator は推定器に埋め込まれ、学習済みフラグを共通管理する
//
// OLSEstimator のように学習結果を別の値（FittedModel）として返す設計でも、
// 推定器自身が一度でも学習に成功したかどうかはこのフラグで判定できる。
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted は Fit が成功済みかどうかを返す
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted は学習成功後に推定器が呼ぶ
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset は推定器を未学習状態に戻す
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}
