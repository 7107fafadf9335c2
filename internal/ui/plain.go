package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"golang.org/x/time/rate"

	"github.com/bamsammich/ezscan/internal/stats"
)

const progressInterval = 5 * time.Second

// plainPresenter writes one line per noteworthy event and a periodic
// progress line. Used when stderr is not a terminal.
type plainPresenter struct {
	w        io.Writer
	stats    *stats.Collector
	warn     *color.Color
	fail     *color.Color
	progress *rate.Sometimes
	root     string
	verbose  bool
}

func (p *plainPresenter) Run(events <-chan Event) error {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			p.handleEvent(ev)
		case <-ticker.C:
			p.stats.Tick()
			p.progress.Do(p.printProgress)
		}
	}
}

func (p *plainPresenter) handleEvent(ev Event) {
	path := StripRoot(p.root, ev.Path)
	switch ev.Type {
	case DirTruncated:
		p.warn.Fprintf(p.w, "truncated: %s  %s entries dropped\n", path, FormatCount(ev.Count))
	case DepthLimited:
		p.warn.Fprintf(p.w, "depth limit: %s  not descended\n", path)
	case EnumFailed:
		p.fail.Fprintf(p.w, "unreadable: %s  %s\n", path, errText(ev.Error))
	case AttrFailed:
		p.fail.Fprintf(p.w, "chattr failed: %s  %s\n", path, errText(ev.Error))
	case DirEntered:
		if p.verbose {
			fmt.Fprintf(p.w, "scan: %s\n", path)
		}
	case DirPruned:
		if p.verbose {
			fmt.Fprintf(p.w, "skip: %s\n", path)
		}
	case DirCreated:
		if p.verbose {
			fmt.Fprintf(p.w, "mkdir: %s\n", ev.Path)
		}
	case AttrApplied:
		if p.verbose {
			fmt.Fprintf(p.w, "chattr: %s\n", path)
		}
	}
}

func (p *plainPresenter) printProgress() {
	snap := p.stats.Snapshot()
	fmt.Fprintf(p.w, "progress: %s dirs %s files %s matched %s  %s\n",
		FormatCount(snap.DirsVisited),
		FormatCount(snap.FilesSeen),
		FormatCount(snap.FilesMatched),
		FormatBytes(snap.BytesMatched),
		FormatEntryRate(p.stats.RollingEntriesPerSec(5)),
	)
}

func (p *plainPresenter) Summary() string {
	return CompletionSummary(p.stats.Snapshot())
}

func errText(err error) string {
	if err == nil {
		return "error"
	}
	return err.Error()
}
