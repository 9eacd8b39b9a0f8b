// Package config loads tuning parameters for the rep-counting pipeline.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/repcount/internal/rep"
)

// TuningConfig is the on-disk tuning schema. All fields are pointers so
// a partial JSON file only overrides what it names; the Get* methods
// supply defaults for everything else.
type TuningConfig struct {
	CenterSmoothWindow *int     `json:"center_smooth_window,omitempty"`
	Lookback           *int     `json:"lookback,omitempty"`
	PredictionFactor   *float64 `json:"prediction_factor,omitempty"`

	CenterLandmark *string `json:"center_landmark,omitempty"`
	LeftLandmark   *string `json:"left_landmark,omitempty"`
	RightLandmark  *string `json:"right_landmark,omitempty"`

	// TickHz is the nominal frame rate of the pose source, used only
	// for cadence statistics, never for counting.
	TickHz *float64 `json:"tick_hz,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with all fields unset.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file. The file must
// have a .json extension and stay under the max file size. Fields
// omitted from the JSON retain their defaults, so partial configs are
// safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that any set values are usable.
func (c *TuningConfig) Validate() error {
	if c.CenterSmoothWindow != nil && *c.CenterSmoothWindow < 1 {
		return fmt.Errorf("center_smooth_window must be >= 1, got %d", *c.CenterSmoothWindow)
	}
	if c.Lookback != nil && *c.Lookback < 1 {
		return fmt.Errorf("lookback must be >= 1, got %d", *c.Lookback)
	}
	if c.PredictionFactor != nil && *c.PredictionFactor < 0 {
		return fmt.Errorf("prediction_factor must be non-negative, got %f", *c.PredictionFactor)
	}
	if c.TickHz != nil && *c.TickHz <= 0 {
		return fmt.Errorf("tick_hz must be positive, got %f", *c.TickHz)
	}
	if c.CenterLandmark != nil && *c.CenterLandmark == "" {
		return fmt.Errorf("center_landmark must be non-empty when set")
	}
	if c.LeftLandmark != nil && *c.LeftLandmark == "" {
		return fmt.Errorf("left_landmark must be non-empty when set")
	}
	if c.RightLandmark != nil && *c.RightLandmark == "" {
		return fmt.Errorf("right_landmark must be non-empty when set")
	}
	return nil
}

// GetCenterSmoothWindow returns the center_smooth_window value or the default.
func (c *TuningConfig) GetCenterSmoothWindow() int {
	if c.CenterSmoothWindow == nil {
		return rep.DefaultCenterSmoothWindow
	}
	return *c.CenterSmoothWindow
}

// GetLookback returns the lookback value or the default.
func (c *TuningConfig) GetLookback() int {
	if c.Lookback == nil {
		return rep.DefaultLookback
	}
	return *c.Lookback
}

// GetPredictionFactor returns the prediction_factor value or the default.
func (c *TuningConfig) GetPredictionFactor() float64 {
	if c.PredictionFactor == nil {
		return rep.DefaultPredictionFactor
	}
	return *c.PredictionFactor
}

// GetCenterLandmark returns the center_landmark value or the default.
func (c *TuningConfig) GetCenterLandmark() string {
	if c.CenterLandmark == nil {
		return rep.DefaultCenterLandmark
	}
	return *c.CenterLandmark
}

// GetLeftLandmark returns the left_landmark value or the default.
func (c *TuningConfig) GetLeftLandmark() string {
	if c.LeftLandmark == nil {
		return rep.DefaultLeftLandmark
	}
	return *c.LeftLandmark
}

// GetRightLandmark returns the right_landmark value or the default.
func (c *TuningConfig) GetRightLandmark() string {
	if c.RightLandmark == nil {
		return rep.DefaultRightLandmark
	}
	return *c.RightLandmark
}

// GetTickHz returns the tick_hz value or the default (30fps).
func (c *TuningConfig) GetTickHz() float64 {
	if c.TickHz == nil {
		return 30.0
	}
	return *c.TickHz
}

// SessionConfig resolves the tuning into a session configuration.
func (c *TuningConfig) SessionConfig() rep.SessionConfig {
	return rep.SessionConfig{
		CenterSmoothWindow: c.GetCenterSmoothWindow(),
		Lookback:           c.GetLookback(),
		PredictionFactor:   c.GetPredictionFactor(),
		CenterLandmark:     c.GetCenterLandmark(),
		LeftLandmark:       c.GetLeftLandmark(),
		RightLandmark:      c.GetRightLandmark(),
	}
}
