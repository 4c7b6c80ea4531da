package model

// EstimatorState は統計量を学習する変換器の状態です。
type EstimatorState int

const (
	// NotFitted は統計量が未学習の状態
	NotFitted EstimatorState = iota
	// Fitted は Fit が成功した後の状態
	Fitted
)

// String returns "fitted" or "not fitted".
func (s EstimatorState) String() string {
	if s == Fitted {
		return "fitted"
	}
	return "not fitted"
}

// BaseEstimator tracks whether column statistics have been learned.
// Embed it in scalers and encoders that need Fit before Transform.
type BaseEstimator struct {
	state EstimatorState
}

// State returns the current state.
func (e *BaseEstimator) State() EstimatorState { return e.state }

// IsFitted reports whether Fit has succeeded.
func (e *BaseEstimator) IsFitted() bool { return e.state == Fitted }

// SetFitted marks the statistics as learned.
func (e *BaseEstimator) SetFitted() { e.state = Fitted }

// Reset forgets the learned statistics.
func (e *BaseEstimator) Reset() { e.state = NotFitted }
