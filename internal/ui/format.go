package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/bamsammich/ezscan/internal/stats"
)

// FormatEntryRate formats an entries-per-second rate: "850/s", "12.4k/s".
func FormatEntryRate(perSec float64) string {
	switch {
	case perSec <= 0:
		return "0/s"
	case perSec < 1000:
		return fmt.Sprintf("%.0f/s", perSec)
	case perSec < 1_000_000:
		return fmt.Sprintf("%.1fk/s", perSec/1000)
	default:
		return fmt.Sprintf("%.1fM/s", perSec/1_000_000)
	}
}

// FormatCount formats an integer with comma separators.
func FormatCount(n int64) string {
	if n < 0 {
		return "-" + FormatCount(-n)
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		b.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatBytes wraps stats.FormatBytes for UI use.
func FormatBytes(b int64) string {
	return stats.FormatBytes(b)
}

// FormatDuration formats elapsed time concisely.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %02dm %02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
