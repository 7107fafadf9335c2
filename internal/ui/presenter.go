package ui

import (
	"io"

	"github.com/fatih/color"
	"golang.org/x/time/rate"

	"github.com/bamsammich/ezscan/internal/stats"
)

// Presenter consumes events and displays progress.
type Presenter interface {
	// Run consumes events until the channel closes. Blocks until done.
	Run(events <-chan Event) error
	// Summary returns the final summary line.
	Summary() string
}

// Config configures a Presenter. Presenters write progress and warnings
// only; the listing itself is produced by the report package.
type Config struct {
	Writer  io.Writer
	Stats   *stats.Collector
	Root    string // source root, stripped from displayed paths
	Width   int
	IsTTY   bool
	Quiet   bool
	Verbose bool
}

// NewPresenter creates the appropriate presenter based on configuration.
//
//nolint:ireturn // presenter kind is chosen at runtime
func NewPresenter(cfg Config) Presenter {
	if cfg.Quiet {
		return &quietPresenter{stats: cfg.Stats}
	}
	if !cfg.IsTTY {
		return newPlainPresenter(cfg)
	}
	width := cfg.Width
	if width <= 0 {
		width = 80
	}
	return &statusPresenter{
		w:       cfg.Writer,
		stats:   cfg.Stats,
		root:    cfg.Root,
		width:   width,
		verbose: cfg.Verbose,
	}
}

func newPlainPresenter(cfg Config) *plainPresenter {
	return &plainPresenter{
		w:        cfg.Writer,
		stats:    cfg.Stats,
		root:     cfg.Root,
		verbose:  cfg.Verbose,
		warn:     color.New(color.FgYellow),
		fail:     color.New(color.FgRed),
		progress: &rate.Sometimes{Interval: progressInterval},
	}
}
