package signal

// Smoothed maintains a trailing moving average over a bounded window of
// raw samples. Both the raw and smoothed series are retained for the
// lifetime of the session so they can be exported for offline inspection.
type Smoothed struct {
	window   int
	raw      []float64
	smoothed []float64
}

// NewSmoothed creates a moving average with the given window size.
// The window is fixed for the lifetime of the object and must be >= 1.
func NewSmoothed(window int) *Smoothed {
	if window < 1 {
		panic("signal: smoothing window must be >= 1")
	}
	return &Smoothed{window: window}
}

// Append records a raw sample and computes the mean of the trailing
// min(window, len(raw)) raw values. The raw and smoothed series always
// have equal length.
func (s *Smoothed) Append(v float64) {
	s.raw = append(s.raw, v)

	n := len(s.raw)
	span := s.window
	if n < span {
		span = n
	}

	var sum float64
	for _, x := range s.raw[n-span:] {
		sum += x
	}
	s.smoothed = append(s.smoothed, sum/float64(span))
}

// Latest returns the most recent smoothed value, or 0 before any sample
// has been appended.
func (s *Smoothed) Latest() float64 {
	if len(s.smoothed) == 0 {
		return 0
	}
	return s.smoothed[len(s.smoothed)-1]
}

// Len returns the number of samples appended so far.
func (s *Smoothed) Len() int {
	return len(s.raw)
}

// Raw returns the accumulated raw series.
func (s *Smoothed) Raw() []float64 {
	return s.raw
}

// SmoothedSeries returns the accumulated smoothed series.
func (s *Smoothed) SmoothedSeries() []float64 {
	return s.smoothed
}
