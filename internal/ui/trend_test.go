package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bamsammich/ezscan/internal/stats"
)

func TestTrend(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		n       int
		want    string
	}{
		{"idle scan", []float64{0, 0, 0}, 3, "   "},
		{"no samples yet", nil, 4, "    "},
		{"new scan pads left", []float64{40}, 4, "   █"},
		{"steady rate", []float64{7, 7, 7}, 3, "███"},
		{"ramp", []float64{0, 1, 4, 8}, 4, " ▁▄█"},
		{"slow second still shows", []float64{1, 1000}, 2, "▁█"},
		{"keeps newest samples", []float64{900, 10, 20}, 2, "▄█"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, trend(tt.samples, tt.n))
		})
	}
}

func TestRateTrendFromCollector(t *testing.T) {
	c := stats.NewCollector()
	assert.Equal(t, "", RateTrend(c, 0))
	assert.Equal(t, "   ", RateTrend(c, 3), "no ticks yet")

	c.AddFilesSeen(10)
	c.Tick()
	c.Tick() // idle second
	c.AddDirsVisited(1)
	c.AddFilesSeen(19)
	c.Tick()

	assert.Equal(t, " ▄ █", RateTrend(c, 4))
}
