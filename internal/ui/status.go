package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bamsammich/ezscan/internal/stats"
)

// ANSI escape sequences.
const (
	ansiDim       = "\033[2m"
	ansiYellow    = "\033[33m"
	ansiRed       = "\033[31m"
	ansiReset     = "\033[0m"
	ansiClearLine = "\r\033[K"
)

const (
	trendWidth      = 12
	statusMinRedraw = 50 * time.Millisecond
)

// statusPresenter keeps a single status line redrawn in place at the bottom
// of the terminal. Warnings scroll above it.
type statusPresenter struct {
	w        io.Writer
	stats    *stats.Collector
	lastDraw time.Time
	root     string
	current  string // directory being scanned, relative to root
	width    int
	drawn    bool
	verbose  bool
}

func (p *statusPresenter) Run(events <-chan Event) error {
	secTicker := time.NewTicker(time.Second)
	defer secTicker.Stop()

	redrawTicker := time.NewTicker(100 * time.Millisecond)
	defer redrawTicker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				p.clear()
				return nil
			}
			p.handleEvent(ev)
			p.maybeDraw()
		case <-redrawTicker.C:
			p.draw()
		case <-secTicker.C:
			p.stats.Tick()
		}
	}
}

func (p *statusPresenter) handleEvent(ev Event) {
	path := StripRoot(p.root, ev.Path)
	switch ev.Type {
	case DirEntered:
		p.current = path
		if p.verbose {
			p.println("%s%s%s", ansiDim, path, ansiReset)
		}
	case DirTruncated:
		p.println("%s!%s  %s  %s entries dropped", ansiYellow, ansiReset, path, FormatCount(ev.Count))
	case DepthLimited:
		p.println("%s!%s  %s  depth limit", ansiYellow, ansiReset, path)
	case EnumFailed:
		p.println("%s✗%s  %s  %s", ansiRed, ansiReset, path, errText(ev.Error))
	case AttrFailed:
		p.println("%s✗%s  %s  chattr: %s", ansiRed, ansiReset, path, errText(ev.Error))
	case DirPruned:
		if p.verbose {
			p.println("–  %s  %sskipped%s", path, ansiDim, ansiReset)
		}
	}
}

// println prints a line above the status line.
func (p *statusPresenter) println(format string, args ...any) {
	p.clear()
	fmt.Fprintf(p.w, format+"\n", args...)
	p.draw()
}

func (p *statusPresenter) maybeDraw() {
	if time.Since(p.lastDraw) < statusMinRedraw {
		return
	}
	p.draw()
}

func (p *statusPresenter) draw() {
	p.clear()
	fmt.Fprint(p.w, p.line())
	p.drawn = true
	p.lastDraw = time.Now()
}

func (p *statusPresenter) line() string {
	snap := p.stats.Snapshot()
	graph := RateTrend(p.stats, trendWidth)
	head := fmt.Sprintf("%s %8s  dirs %s  files %s  matched %s  %s  ",
		graph,
		FormatEntryRate(p.stats.RollingEntriesPerSec(5)),
		FormatCount(snap.DirsVisited),
		FormatCount(snap.FilesSeen),
		FormatCount(snap.FilesMatched),
		FormatBytes(snap.BytesMatched),
	)
	room := p.width - len([]rune(head)) - 1
	if room <= 3 {
		r := []rune(head)
		return string(r[:min(len(r), max(p.width-1, 0))])
	}
	return head + ansiDim + truncPath(p.current, room) + ansiReset
}

func (p *statusPresenter) clear() {
	if !p.drawn {
		return
	}
	fmt.Fprint(p.w, ansiClearLine)
	p.drawn = false
}

func (p *statusPresenter) Summary() string {
	return CompletionSummary(p.stats.Snapshot())
}

// truncPath shortens a path to fit within maxLen characters.
func truncPath(path string, maxLen int) string {
	r := []rune(path)
	if len(r) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return "..." + string(r[len(r)-maxLen+3:])
}

// StripRoot removes a slash-terminated root prefix from a path. Paths
// outside root, and root itself, are returned unchanged.
func StripRoot(root, path string) string {
	if root == "" {
		return path
	}
	if !strings.HasSuffix(root, "/") {
		root += "/"
	}
	if rel, ok := strings.CutPrefix(path, root); ok && rel != "" {
		return rel
	}
	return path
}
