package rep

import "gonum.org/v1/gonum/stat"

// IntervalStats summarises the cadence of a session's counted reps.
type IntervalStats struct {
	Reps              int     `json:"reps"`
	MeanIntervalTicks float64 `json:"mean_interval_ticks"`
	StddevTicks       float64 `json:"stddev_interval_ticks"`
	MeanIntervalSecs  float64 `json:"mean_interval_secs"`
	RepsPerMinute     float64 `json:"reps_per_minute"`
}

// ComputeIntervalStats derives inter-rep interval statistics from the
// tick indices of counted reps. tickHz is the frame rate of the source;
// with fewer than two reps the interval fields are zero.
func ComputeIntervalStats(repTicks []int, tickHz float64) IntervalStats {
	out := IntervalStats{Reps: len(repTicks)}
	if len(repTicks) < 2 || tickHz <= 0 {
		return out
	}

	intervals := make([]float64, len(repTicks)-1)
	for i := 1; i < len(repTicks); i++ {
		intervals[i-1] = float64(repTicks[i] - repTicks[i-1])
	}

	out.MeanIntervalTicks = stat.Mean(intervals, nil)
	out.StddevTicks = stat.StdDev(intervals, nil)
	out.MeanIntervalSecs = out.MeanIntervalTicks / tickHz
	if out.MeanIntervalSecs > 0 {
		out.RepsPerMinute = 60 / out.MeanIntervalSecs
	}
	return out
}
