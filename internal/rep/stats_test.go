package rep

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeIntervalStats(t *testing.T) {
	t.Run("regular cadence", func(t *testing.T) {
		// Reps at ticks 30, 70, 110: interval 40 ticks at 20 Hz = 2s.
		stats := ComputeIntervalStats([]int{30, 70, 110}, 20)

		assert.Equal(t, 3, stats.Reps)
		assert.InDelta(t, 40, stats.MeanIntervalTicks, 1e-9)
		assert.InDelta(t, 0, stats.StddevTicks, 1e-9)
		assert.InDelta(t, 2, stats.MeanIntervalSecs, 1e-9)
		assert.InDelta(t, 30, stats.RepsPerMinute, 1e-9)
	})

	t.Run("uneven cadence", func(t *testing.T) {
		stats := ComputeIntervalStats([]int{10, 40, 90}, 10)

		assert.Equal(t, 3, stats.Reps)
		assert.InDelta(t, 40, stats.MeanIntervalTicks, 1e-9) // (30+50)/2
		assert.InDelta(t, 14.1421356, stats.StddevTicks, 1e-6)
	})

	t.Run("fewer than two reps", func(t *testing.T) {
		assert.Zero(t, ComputeIntervalStats(nil, 30).MeanIntervalTicks)
		assert.Zero(t, ComputeIntervalStats([]int{42}, 30).RepsPerMinute)
		assert.Equal(t, 1, ComputeIntervalStats([]int{42}, 30).Reps)
	})

	t.Run("invalid tick rate", func(t *testing.T) {
		stats := ComputeIntervalStats([]int{10, 20}, 0)
		assert.Equal(t, 2, stats.Reps)
		assert.Zero(t, stats.MeanIntervalTicks)
	})
}
