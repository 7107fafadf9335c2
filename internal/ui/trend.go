package ui

import (
	"math"

	"github.com/bamsammich/ezscan/internal/stats"
)

// trendGlyphs draw one rate sample each. Index 0 is an idle second.
var trendGlyphs = []rune(" ▁▂▃▄▅▆▇█")

// RateTrend draws the last n seconds of the scan's entries/s history,
// oldest on the left. Seconds not yet recorded are blank.
func RateTrend(c *stats.Collector, n int) string {
	if n <= 0 {
		return ""
	}
	return trend(c.RateHistory(n), n)
}

// trend scales samples against the busiest second. Any non-zero sample gets
// at least the lowest bar, so a slow directory never looks idle.
func trend(samples []float64, n int) string {
	out := make([]rune, n)
	for i := range out {
		out[i] = trendGlyphs[0]
	}
	if len(samples) > n {
		samples = samples[len(samples)-n:]
	}

	peak := 0.0
	for _, v := range samples {
		peak = math.Max(peak, v)
	}
	if peak <= 0 {
		return string(out)
	}

	top := len(trendGlyphs) - 1
	pad := n - len(samples)
	for i, v := range samples {
		if v <= 0 {
			continue
		}
		level := int(math.Ceil(v / peak * float64(top)))
		out[pad+i] = trendGlyphs[min(max(level, 1), top)]
	}
	return string(out)
}
