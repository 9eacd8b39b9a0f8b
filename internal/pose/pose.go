// Package pose defines the input boundary with the external pose
// estimator: per-frame 2D keypoint records and their JSON wire form.
//
// One frame is one JSON object per line (or per datagram):
//
//	{"ts": 1714070400.033, "keypoints": {"neck": [412.0, 220.5], "left_wrist": null, "right_wrist": [500.2, 198.0]}}
//
// A keypoint the estimator failed to detect is null, or [-1, -1] for
// estimators that report undetected points with negative coordinates.
// Either form decodes to an undetected point; image coordinates are
// never negative, so the pair is unambiguous.
package pose

import (
	"encoding/json"
	"fmt"

	"github.com/banshee-data/repcount/internal/signal"
)

// Point is a single 2D keypoint. Valid is false when the estimator did
// not detect the keypoint on this frame.
type Point struct {
	X, Y  float64
	Valid bool
}

// UnmarshalJSON accepts null or a two-element numeric array. A [-1, -1]
// pair decodes as undetected.
func (p *Point) UnmarshalJSON(data []byte) error {
	*p = Point{}
	if string(data) == "null" {
		return nil
	}
	var coords []float64
	if err := json.Unmarshal(data, &coords); err != nil {
		return fmt.Errorf("keypoint must be null or [x, y]: %w", err)
	}
	if len(coords) != 2 {
		return fmt.Errorf("keypoint must have 2 coordinates, got %d", len(coords))
	}
	if coords[0] == -1 && coords[1] == -1 {
		return nil
	}
	p.X, p.Y, p.Valid = coords[0], coords[1], true
	return nil
}

// MarshalJSON renders an undetected point as null.
func (p Point) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return json.Marshal([2]float64{p.X, p.Y})
}

// Frame is one pose record: a timestamp (seconds since epoch, as
// reported by the estimator) and named keypoints.
type Frame struct {
	TS        float64          `json:"ts"`
	Keypoints map[string]Point `json:"keypoints"`
}

// ParseFrame decodes a single wire-format frame. Malformed JSON or
// non-numeric coordinates are contract violations and return an error.
func ParseFrame(data []byte) (Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return Frame{}, fmt.Errorf("malformed pose frame: %w", err)
	}
	if f.Keypoints == nil {
		return Frame{}, fmt.Errorf("pose frame has no keypoints object")
	}
	return f, nil
}

// Vertical returns the named keypoint's vertical coordinate as a channel
// sample. A keypoint the estimator failed to detect yields a missing
// sample; a keypoint absent from the record entirely is a protocol
// mismatch and returns an error.
func (f Frame) Vertical(name string) (signal.Sample, error) {
	p, ok := f.Keypoints[name]
	if !ok {
		return signal.Sample{}, fmt.Errorf("pose frame missing landmark %q", name)
	}
	if !p.Valid {
		return signal.Missing(), nil
	}
	return signal.Valid(p.Y), nil
}
