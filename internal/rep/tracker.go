// Package rep turns per-frame pose samples into a debounced repetition
// count for a symmetric two-limb exercise.
package rep

import "github.com/banshee-data/repcount/internal/signal"

// LimbPair drives the three channels of the pipeline: a shared smoothed
// reference (the body center) and a zero-crossing detector per limb.
// Both detectors borrow the same reference, so the update order below is
// a correctness requirement: the center must be appended before either
// limb sees its sample for the tick.
type LimbPair struct {
	center *signal.Smoothed
	left   *signal.ZeroCrossDown
	right  *signal.ZeroCrossDown
}

// NewLimbPair creates the channel set for one tracking session.
func NewLimbPair(centerWindow, lookback int, predictionFactor float64) *LimbPair {
	center := signal.NewSmoothed(centerWindow)
	return &LimbPair{
		center: center,
		left:   signal.NewZeroCrossDown(lookback, center, predictionFactor),
		right:  signal.NewZeroCrossDown(lookback, center, predictionFactor),
	}
}

// Update processes one tick. A missed center detection holds the
// reference at its last smoothed value; missing limbs are extrapolated
// by their detectors. Returns true iff both limbs completed a downward
// crossing within their lookback windows on this call, the signature of
// one full repetition.
func (lp *LimbPair) Update(center, left, right signal.Sample) bool {
	cv := center.Value
	if !center.Valid {
		cv = lp.center.Latest()
	}
	// Center first so both limbs center against this tick's reference.
	lp.center.Append(cv)
	lp.left.Append(left)
	lp.right.Append(right)

	return lp.left.HasCrossed() && lp.right.HasCrossed()
}

// ClearState empties both limbs' lookback windows. Called after a
// counted repetition so the same crossing is not counted again while it
// is still inside the window.
func (lp *LimbPair) ClearState() {
	lp.left.ClearState()
	lp.right.ClearState()
}

// Ticks returns the number of ticks processed.
func (lp *LimbPair) Ticks() int {
	return lp.center.Len()
}

// Header returns the fixed column order of the diagnostic history.
func (lp *LimbPair) Header() []string {
	return []string{
		"left_raw",
		"left_centered",
		"right_raw",
		"right_centered",
		"center_raw",
		"center_smoothed",
	}
}

// Rows returns the accumulated per-tick history in Header order.
// Missing raw samples are rendered with the estimator's -1 convention.
func (lp *LimbPair) Rows() [][]float64 {
	leftRaw := lp.left.Raw()
	leftCentered := lp.left.Centered()
	rightRaw := lp.right.Raw()
	rightCentered := lp.right.Centered()
	centerRaw := lp.center.Raw()
	centerSmoothed := lp.center.SmoothedSeries()

	rows := make([][]float64, len(centerRaw))
	for i := range rows {
		rows[i] = []float64{
			leftRaw[i].ExportValue(),
			leftCentered[i],
			rightRaw[i].ExportValue(),
			rightCentered[i],
			centerRaw[i],
			centerSmoothed[i],
		}
	}
	return rows
}
