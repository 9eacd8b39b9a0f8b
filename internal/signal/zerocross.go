package signal

// Sign convention: centered = reference - raw. Image coordinates grow
// downward, so a limb tracked above the reference point produces a
// positive centered value, and a "downward" zero-crossing corresponds to
// the limb falling back through the reference line.

// ZeroCrossDown centers a raw channel against a shared smoothed reference
// and detects downward zero-crossings within a bounded lookback window.
// When a sample is missing (keypoint not detected on that frame) the
// centered value is extrapolated from the previous two centered values so
// the channel stays in lockstep with its siblings.
type ZeroCrossDown struct {
	ref              *Smoothed
	predictionFactor float64

	raw      []Sample
	centered []float64

	// history[0] is the most recent tick. Bounded: acts as the
	// lookback/debounce window, not a full log.
	history  []bool
	lookback int
}

// NewZeroCrossDown creates a detector reading the given shared reference.
// The reference is borrowed, not owned: the coordinating tracker must
// update it before this channel on every tick. lookback is the number of
// ticks a completed crossing remains visible and must be >= 1.
func NewZeroCrossDown(lookback int, ref *Smoothed, predictionFactor float64) *ZeroCrossDown {
	if lookback < 1 {
		panic("signal: lookback must be >= 1")
	}
	return &ZeroCrossDown{
		ref:              ref,
		predictionFactor: predictionFactor,
		history:          make([]bool, 0, lookback),
		lookback:         lookback,
	}
}

// Append processes one tick. A valid sample is centered against the
// reference; a missing sample records a predicted centered value instead
// (see predict). The raw sample is recorded verbatim either way.
func (z *ZeroCrossDown) Append(s Sample) {
	z.raw = append(z.raw, s)

	var centered float64
	if s.Valid {
		centered = z.ref.Latest() - s.Value
	} else {
		centered = z.predict()
	}

	complete := centered <= 0 && z.lastCentered() > 0
	z.centered = append(z.centered, centered)
	z.pushHistory(complete)
}

// predict extrapolates the next centered value from finite-difference
// velocity: c[-1] + factor*(c[-1]-c[-2]). With fewer than two prior
// values there is no trend to follow and the prediction is 0.
func (z *ZeroCrossDown) predict() float64 {
	n := len(z.centered)
	if n < 2 {
		return 0
	}
	return z.centered[n-1] + z.predictionFactor*(z.centered[n-1]-z.centered[n-2])
}

func (z *ZeroCrossDown) lastCentered() float64 {
	if len(z.centered) == 0 {
		return 0
	}
	return z.centered[len(z.centered)-1]
}

// pushHistory prepends a tick result, dropping the oldest entry once the
// window is full.
func (z *ZeroCrossDown) pushHistory(complete bool) {
	if len(z.history) < z.lookback {
		z.history = append(z.history, false)
	}
	copy(z.history[1:], z.history)
	z.history[0] = complete
}

// HasCrossed reports whether a completed downward crossing occurred
// within the last lookback ticks.
func (z *ZeroCrossDown) HasCrossed() bool {
	for _, c := range z.history {
		if c {
			return true
		}
	}
	return false
}

// ClearState empties the lookback window so an already-counted crossing
// cannot trigger again. The raw and centered series are untouched.
func (z *ZeroCrossDown) ClearState() {
	z.history = z.history[:0]
}

// Raw returns the accumulated raw samples, missing ticks included.
func (z *ZeroCrossDown) Raw() []Sample {
	return z.raw
}

// Centered returns the accumulated centered series.
func (z *ZeroCrossDown) Centered() []float64 {
	return z.centered
}
