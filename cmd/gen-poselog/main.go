// Command gen-poselog generates synthetic pose-frame logs for testing
// the rep counter end to end: two sinusoidal wrist channels crossing a
// fixed neck line in sync, with optional noise and keypoint dropout.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"log"
	"math"
	"math/rand"
	"os"

	"github.com/banshee-data/repcount/internal/pose"
)

func main() {
	reps := flag.Int("reps", 5, "number of full repetitions")
	period := flag.Int("period", 40, "ticks per repetition")
	tickHz := flag.Float64("hz", 30, "nominal frame rate recorded in timestamps")
	noise := flag.Float64("noise", 0.0, "gaussian pixel noise stddev")
	dropout := flag.Float64("dropout", 0.0, "per-keypoint probability of a missed detection")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	const (
		neckY = 220.0
		// Wrist sweep around the neck line; image y grows downward, so
		// the arm raised above the neck means a smaller y.
		amplitude = 80.0
	)

	total := *reps * *period
	for tick := 0; tick < total; tick++ {
		phase := 2 * math.Pi * float64(tick) / float64(*period)
		// Start below the neck line, rise through it, fall back.
		wristY := neckY + amplitude*math.Cos(phase)

		frame := pose.Frame{
			TS: float64(tick) / *tickHz,
			Keypoints: map[string]pose.Point{
				"neck":        point(rng, 412, neckY, *noise, *dropout),
				"left_wrist":  point(rng, 330, wristY, *noise, *dropout),
				"right_wrist": point(rng, 494, wristY, *noise, *dropout),
			},
		}

		data, err := json.Marshal(frame)
		if err != nil {
			log.Fatalf("marshal frame %d: %v", tick, err)
		}
		w.Write(data)
		w.WriteByte('\n')
	}
	log.Printf("wrote %d frames (%d reps, period %d)", total, *reps, *period)
}

func point(rng *rand.Rand, x, y, noise, dropout float64) pose.Point {
	if dropout > 0 && rng.Float64() < dropout {
		return pose.Point{}
	}
	if noise > 0 {
		x += rng.NormFloat64() * noise
		y += rng.NormFloat64() * noise
	}
	return pose.Point{X: x, Y: y, Valid: true}
}
