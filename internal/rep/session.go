package rep

import (
	"fmt"

	"github.com/banshee-data/repcount/internal/pose"
	"github.com/banshee-data/repcount/internal/timeutil"
)

// Default tuning, matched to the upstream exercise tracker.
const (
	DefaultCenterSmoothWindow = 10
	DefaultLookback           = 4
	DefaultPredictionFactor   = 0.5
)

// Default landmark names for a jumping-jack style exercise.
const (
	DefaultCenterLandmark = "neck"
	DefaultLeftLandmark   = "left_wrist"
	DefaultRightLandmark  = "right_wrist"
)

// SessionConfig holds the resolved tuning for one tracking session.
type SessionConfig struct {
	CenterSmoothWindow int
	Lookback           int
	PredictionFactor   float64

	CenterLandmark string
	LeftLandmark   string
	RightLandmark  string
}

// DefaultSessionConfig returns the standard tuning.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		CenterSmoothWindow: DefaultCenterSmoothWindow,
		Lookback:           DefaultLookback,
		PredictionFactor:   DefaultPredictionFactor,
		CenterLandmark:     DefaultCenterLandmark,
		LeftLandmark:       DefaultLeftLandmark,
		RightLandmark:      DefaultRightLandmark,
	}
}

// Session consumes per-frame poses and maintains a monotone repetition
// count. State is created once per session, mutated once per tick by
// Update, and optionally flushed to a history record at the end.
type Session struct {
	config SessionConfig
	limbs  *LimbPair
	clock  timeutil.Clock

	count    int
	repTicks []int // tick index at which each rep was counted
}

// NewSession creates a session with the given tuning. A nil clock uses
// the real one; tests inject a fake for deterministic export filenames.
func NewSession(config SessionConfig, clock timeutil.Clock) *Session {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &Session{
		config: config,
		limbs:  NewLimbPair(config.CenterSmoothWindow, config.Lookback, config.PredictionFactor),
		clock:  clock,
	}
}

// Update processes one pose frame. Counted is true when this tick
// completed a repetition. A frame missing one of the configured
// landmark keys entirely is a collaborator-protocol violation and
// returns an error without consuming the tick.
func (s *Session) Update(f pose.Frame) (counted bool, err error) {
	center, err := f.Vertical(s.config.CenterLandmark)
	if err != nil {
		return false, err
	}
	left, err := f.Vertical(s.config.LeftLandmark)
	if err != nil {
		return false, err
	}
	right, err := f.Vertical(s.config.RightLandmark)
	if err != nil {
		return false, err
	}

	if s.limbs.Update(center, left, right) {
		s.count++
		s.repTicks = append(s.repTicks, s.limbs.Ticks())
		s.limbs.ClearState()
		return true, nil
	}
	return false, nil
}

// Count returns the cumulative repetition count. It never decreases.
func (s *Session) Count() int {
	return s.count
}

// Ticks returns the number of frames processed.
func (s *Session) Ticks() int {
	return s.limbs.Ticks()
}

// RepTicks returns the tick index (1-based) at which each repetition was
// counted.
func (s *Session) RepTicks() []int {
	out := make([]int, len(s.repTicks))
	copy(out, s.repTicks)
	return out
}

// Config returns the session tuning.
func (s *Session) Config() SessionConfig {
	return s.config
}

// Limbs exposes the channel set for diagnostic consumers.
func (s *Session) Limbs() *LimbPair {
	return s.limbs
}

// Validate checks a session configuration before use.
func (c SessionConfig) Validate() error {
	if c.CenterSmoothWindow < 1 {
		return fmt.Errorf("center_smooth_window must be >= 1, got %d", c.CenterSmoothWindow)
	}
	if c.Lookback < 1 {
		return fmt.Errorf("lookback must be >= 1, got %d", c.Lookback)
	}
	if c.PredictionFactor < 0 {
		return fmt.Errorf("prediction_factor must be non-negative, got %f", c.PredictionFactor)
	}
	if c.CenterLandmark == "" || c.LeftLandmark == "" || c.RightLandmark == "" {
		return fmt.Errorf("landmark names must be non-empty")
	}
	return nil
}
