package ui

import (
	"fmt"

	"github.com/bamsammich/ezscan/internal/stats"
)

// CompletionSummary builds the final summary line from a snapshot.
// Format: done ✓  dirs 1,204  files 48,917  matched 312  size 2.1 GiB  time 3s  errors 0
func CompletionSummary(snap stats.Snapshot) string {
	icon := "✓"
	if snap.Errors() > 0 {
		icon = "✗"
	}

	base := fmt.Sprintf("done %s  dirs %s  files %s  matched %s  size %s  time %s",
		icon,
		FormatCount(snap.DirsVisited),
		FormatCount(snap.FilesSeen),
		FormatCount(snap.FilesMatched),
		FormatBytes(snap.BytesMatched),
		FormatDuration(snap.Elapsed),
	)
	if snap.EntriesDropped > 0 {
		base += "  truncated " + FormatCount(snap.EntriesDropped)
	}
	if snap.DepthLimited > 0 {
		base += "  depth-limited " + FormatCount(snap.DepthLimited)
	}
	if snap.AttrApplied > 0 {
		base += "  changed " + FormatCount(snap.AttrApplied)
	}
	return base + fmt.Sprintf("  errors %d", snap.Errors())
}
