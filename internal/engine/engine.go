package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bamsammich/ezscan/internal/event"
	"github.com/bamsammich/ezscan/internal/fsys"
	"github.com/bamsammich/ezscan/internal/mirror"
	"github.com/bamsammich/ezscan/internal/pathres"
	"github.com/bamsammich/ezscan/internal/stats"
	"github.com/bamsammich/ezscan/internal/wildcard"
)

const (
	// DefaultMaxDirList caps the subdirectories collected per directory.
	DefaultMaxDirList = 700
	// DefaultMaxDepth caps directory nesting, counting the root as one.
	DefaultMaxDepth = 30
)

var (
	// ErrOverlap is returned when destination creation was requested and
	// the destination is the source or lies beneath it.
	ErrOverlap = errors.New("destination overlaps source")

	// ErrCreateDest is returned when the destination root cannot be made.
	ErrCreateDest = errors.New("cannot create destination root")
)

// Config describes one scan.
type Config struct {
	FS     fsys.FS            // nil = host filesystem
	Events chan<- event.Event // optional
	Stats  *stats.Collector   // nil = private collector
	Logger *slog.Logger       // nil = slog.Default()

	Source  string
	Dest    string // "" = working directory
	Pattern string // "" = "*.*"

	MaxDirList int // <= 0 = DefaultMaxDirList
	MaxDepth   int // <= 0 = DefaultMaxDepth

	CreateDestDirs bool
	Recurse        bool
	Sort           bool // enumerate in name order instead of backend order
}

func (c Config) withDefaults() Config {
	if c.FS == nil {
		c.FS = fsys.NewLocal()
	}
	if c.Stats == nil {
		c.Stats = stats.NewCollector()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Pattern == "" {
		c.Pattern = wildcard.DefaultPattern
	}
	if c.MaxDirList <= 0 {
		c.MaxDirList = DefaultMaxDirList
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	return c
}

// Result is the outcome of a scan.
type Result struct {
	Err   error
	ID    string
	Roots Roots
	Stats stats.Snapshot
}

// ScanAll acquires the scan session, runs one scan and releases it.
func ScanAll(ctx context.Context, cfg Config, hooks Hooks) Result {
	s, err := Acquire(ctx)
	if err != nil {
		return Result{Err: err}
	}
	defer s.Release()
	return s.Run(ctx, cfg, hooks)
}

func run(ctx context.Context, cfg Config, hooks Hooks) Result {
	cfg = cfg.withDefaults()
	id := uuid.NewString()
	log := cfg.Logger.With("scan", id)
	res := Result{ID: id}

	if wd, err := cfg.FS.Getwd(); err == nil {
		defer func() {
			if err := cfg.FS.Chdir(wd); err != nil {
				log.Warn("restore working directory", "dir", wd, "error", err)
			}
		}()
	} else {
		log.Debug("working directory unavailable", "error", err)
	}

	src, err := pathres.ResolveDir(cfg.Source, cfg.FS.Getwd)
	if err != nil {
		res.Err = fmt.Errorf("source: %w", err)
		return res
	}
	dst, err := pathres.ResolveDir(cfg.Dest, cfg.FS.Getwd)
	if err != nil {
		res.Err = fmt.Errorf("destination: %w", err)
		return res
	}
	res.Roots = Roots{SourceRoot: src, DestRoot: dst, CurrentSourceDir: src, CurrentDestDir: dst}

	w := newWalker(ctx, cfg, hooks, log, id, res.Roots)

	if cfg.CreateDestDirs {
		if mirror.IsUnsafeOverlap(src, dst) {
			res.Err = fmt.Errorf("%w: %s is within %s", ErrOverlap, dst, src)
			return res
		}
		if err := cfg.FS.MkdirAll(pathres.TrimSlash(dst)); err != nil {
			res.Err = fmt.Errorf("%w %s: %w", ErrCreateDest, dst, err)
			return res
		}
		cfg.Stats.AddDirsCreated(1)
		w.emit(event.Event{Type: event.DirCreated, Path: dst})
	}

	log.Debug("scan starting", "source", src, "dest", dst, "pattern", cfg.Pattern,
		"recurse", cfg.Recurse, "mkdirs", cfg.CreateDestDirs)
	start := time.Now()
	w.emit(event.Event{Type: event.ScanStarted, Path: src, DestPath: dst})

	res.Err = w.scanRoot()

	res.Stats = cfg.Stats.Snapshot()
	w.emit(event.Event{
		Type:  event.ScanComplete,
		Path:  src,
		Count: res.Stats.FilesMatched,
		Size:  res.Stats.BytesMatched,
		Error: res.Err,
	})
	log.Debug("scan finished", "elapsed", time.Since(start), "stats", res.Stats.String())
	return res
}
