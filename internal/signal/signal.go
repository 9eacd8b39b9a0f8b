// Package signal provides the per-channel primitives for the rep-counting
// pipeline: an explicit optional scalar sample, a trailing moving average,
// and a downward zero-crossing detector with one-step prediction for
// missing samples.
package signal

// Sample is a single scalar measurement for one tick of a channel.
// Valid is false when the upstream estimator failed to locate the
// keypoint on that frame; the measurement is then absent, not zero.
type Sample struct {
	Value float64
	Valid bool
}

// Valid returns a valid Sample carrying v.
func Valid(v float64) Sample {
	return Sample{Value: v, Valid: true}
}

// Missing returns an invalid Sample.
func Missing() Sample {
	return Sample{}
}

// ExportValue renders the sample for diagnostic output. Missing samples
// are written as -1, matching the convention of the upstream pose
// estimator (image coordinates are never negative).
func (s Sample) ExportValue() float64 {
	if !s.Valid {
		return -1
	}
	return s.Value
}
