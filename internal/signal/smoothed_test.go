package signal

import (
	"math"
	"testing"
)

// TestSmoothedTrailingMean checks the moving-average contract exactly:
// output i is the mean of the last min(window, i+1) raw samples.
func TestSmoothedTrailingMean(t *testing.T) {
	cases := []struct {
		name   string
		window int
		raw    []float64
	}{
		{"window 1 passthrough", 1, []float64{3, -2, 7, 0}},
		{"window 3 ramp", 3, []float64{1, 2, 3, 4, 5, 6}},
		{"window larger than series", 10, []float64{2, 4, 6}},
		{"constant input", 5, []float64{220, 220, 220, 220}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSmoothed(tc.window)
			for i, v := range tc.raw {
				s.Append(v)

				span := tc.window
				if i+1 < span {
					span = i + 1
				}
				var sum float64
				for _, x := range tc.raw[i+1-span : i+1] {
					sum += x
				}
				want := sum / float64(span)

				got := s.SmoothedSeries()[i]
				if math.Abs(got-want) > 1e-12 {
					t.Errorf("smoothed[%d] = %v, want %v", i, got, want)
				}
				if len(s.SmoothedSeries()) != len(s.Raw()) {
					t.Errorf("series length mismatch: %d smoothed vs %d raw",
						len(s.SmoothedSeries()), len(s.Raw()))
				}
			}
		})
	}
}

func TestSmoothedLatestDefaultsToZero(t *testing.T) {
	s := NewSmoothed(4)
	if got := s.Latest(); got != 0 {
		t.Errorf("Latest on empty series = %v, want 0", got)
	}

	s.Append(8)
	if got := s.Latest(); got != 8 {
		t.Errorf("Latest after one sample = %v, want 8", got)
	}
}

func TestSmoothedRejectsBadWindow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for window 0")
		}
	}()
	NewSmoothed(0)
}
