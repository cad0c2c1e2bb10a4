package telemetry

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// WindowStats is one stats-window record of the render loop, flat for CSV.
type WindowStats struct {
	Tick        int64   `csv:"tick"`
	Particles   int     `csv:"particles"`
	Edges       int     `csv:"edges"`
	TextPoints  int     `csv:"text_points"`
	FrameMsMean float64 `csv:"frame_ms_mean"`
	FrameMsP50  float64 `csv:"frame_ms_p50"`
	FrameMsP90  float64 `csv:"frame_ms_p90"`
	FrameMsMax  float64 `csv:"frame_ms_max"`
}

// FrameQuantiles summarizes a window of tick durations in milliseconds.
// Returns zeros for an empty window.
func FrameQuantiles(durations []time.Duration) (mean, p50, p90, max float64) {
	if len(durations) == 0 {
		return 0, 0, 0, 0
	}

	ms := make([]float64, len(durations))
	for i, d := range durations {
		ms[i] = float64(d) / float64(time.Millisecond)
	}
	sort.Float64s(ms)

	mean = stat.Mean(ms, nil)
	p50 = stat.Quantile(0.5, stat.Empirical, ms, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, ms, nil)
	max = ms[len(ms)-1]
	return mean, p50, p90, max
}

// ComputeWindowStats builds one CSV record from the collector's current
// window plus the scene counts at the window boundary.
func ComputeWindowStats(p *PerfCollector, tick int64, particles, edges, textPoints int) WindowStats {
	mean, p50, p90, max := FrameQuantiles(p.TickDurations())
	return WindowStats{
		Tick:        tick,
		Particles:   particles,
		Edges:       edges,
		TextPoints:  textPoints,
		FrameMsMean: mean,
		FrameMsP50:  p50,
		FrameMsP90:  p90,
		FrameMsMax:  max,
	}
}
