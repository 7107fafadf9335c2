package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/ezscan/internal/event"
	"github.com/bamsammich/ezscan/internal/stats"
)

func newStatus(out *bytes.Buffer, width int) *statusPresenter {
	return &statusPresenter{
		w:     out,
		stats: stats.NewCollector(),
		root:  "/src/",
		width: width,
	}
}

func TestStatusPresenterTracksCurrentDir(t *testing.T) {
	var out bytes.Buffer
	p := newStatus(&out, 200)

	events := make(chan Event, 4)
	events <- Event{Type: event.DirEntered, Path: "/src/photos/2024/"}
	close(events)
	require.NoError(t, p.Run(events))

	assert.Equal(t, "photos/2024/", p.current)
	assert.Contains(t, out.String(), "photos/2024/")
	assert.True(t, strings.HasSuffix(out.String(), ansiClearLine), "status line cleared on exit")
	assert.False(t, p.drawn)
}

func TestStatusPresenterWarningsScrollAbove(t *testing.T) {
	var out bytes.Buffer
	p := newStatus(&out, 120)
	p.draw()
	out.Reset()

	p.handleEvent(Event{Type: event.DirTruncated, Path: "/src/huge/", Count: 42})

	s := out.String()
	assert.True(t, strings.HasPrefix(s, ansiClearLine))
	assert.Contains(t, s, "huge/  42 entries dropped\n")
	assert.True(t, p.drawn, "status line redrawn after warning")
}

func TestStatusPresenterPrunedOnlyWhenVerbose(t *testing.T) {
	var out bytes.Buffer
	p := newStatus(&out, 120)
	p.handleEvent(Event{Type: event.DirPruned, Path: "/src/skip/"})
	assert.NotContains(t, out.String(), "skipped")

	p.verbose = true
	p.handleEvent(Event{Type: event.DirPruned, Path: "/src/skip/"})
	assert.Contains(t, out.String(), "skip/")
	assert.Contains(t, out.String(), "skipped")
}

func TestStatusLineCounts(t *testing.T) {
	var out bytes.Buffer
	p := newStatus(&out, 200)
	p.stats.AddDirsVisited(2)
	p.stats.AddFilesSeen(1500)
	p.stats.AddFilesMatched(12)

	line := p.line()
	assert.Contains(t, line, "dirs 2")
	assert.Contains(t, line, "files 1,500")
	assert.Contains(t, line, "matched 12")
}

func TestStatusLineNarrowTerminal(t *testing.T) {
	var out bytes.Buffer
	p := newStatus(&out, 10)
	p.current = "a/very/long/path/"
	assert.LessOrEqual(t, len([]rune(p.line())), 9)
}

func TestTruncPath(t *testing.T) {
	assert.Equal(t, "short", truncPath("short", 10))
	assert.Equal(t, "...ef/ghij", truncPath("abc/def/ghij", 10))
	assert.Equal(t, "ab", truncPath("abcdef", 2))
}

func TestStripRoot(t *testing.T) {
	assert.Equal(t, "sub/file.txt", StripRoot("/src/", "/src/sub/file.txt"))
	assert.Equal(t, "sub/file.txt", StripRoot("/src", "/src/sub/file.txt"))
	assert.Equal(t, "/src/", StripRoot("/src/", "/src/"))
	assert.Equal(t, "/other/file.txt", StripRoot("/src/", "/other/file.txt"))
	assert.Equal(t, "file.txt", StripRoot("", "file.txt"))
	assert.Equal(t, "x.txt", StripRoot("C:/data/", "C:/data/x.txt"))
}
