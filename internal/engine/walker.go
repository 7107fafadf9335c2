package engine

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/bamsammich/ezscan/internal/attr"
	"github.com/bamsammich/ezscan/internal/event"
	"github.com/bamsammich/ezscan/internal/fsys"
	"github.com/bamsammich/ezscan/internal/mirror"
	"github.com/bamsammich/ezscan/internal/pathres"
	"github.com/bamsammich/ezscan/internal/stats"
	"github.com/bamsammich/ezscan/internal/wildcard"
)

// walker carries the state of one scan. It is single-goroutine; the Scope
// it hands to hooks is mutated in place as the walk advances.
type walker struct {
	ctx      context.Context
	fs       fsys.FS
	hooks    Hooks
	log      *slog.Logger
	stats    *stats.Collector
	events   chan<- event.Event
	norm     *attr.Normalizer
	scope    Scope
	pattern  wildcard.Pattern
	matchAll wildcard.Pattern
	maxDirs  int
	maxDepth int
	mkdirs   bool
	sorted   bool
	recurse  bool
}

func newWalker(ctx context.Context, cfg Config, hooks Hooks, log *slog.Logger, id string, roots Roots) *walker {
	w := &walker{
		ctx:      ctx,
		fs:       cfg.FS,
		hooks:    hooks,
		log:      log,
		stats:    cfg.Stats,
		events:   cfg.Events,
		pattern:  wildcard.Compile(cfg.Pattern),
		matchAll: wildcard.Compile(wildcard.DefaultPattern),
		maxDirs:  cfg.MaxDirList,
		maxDepth: cfg.MaxDepth,
		mkdirs:   cfg.CreateDestDirs,
		sorted:   cfg.Sort,
		recurse:  cfg.Recurse,
		scope: Scope{
			ID:      id,
			Roots:   roots,
			Pattern: cfg.Pattern,
		},
	}
	w.norm = &attr.Normalizer{
		FS: cfg.FS,
		OnError: func(p string, err error) {
			w.stats.AddStatFailed(1)
			w.log.Debug("metadata query failed", "path", p, "error", err)
		},
	}
	return w
}

func (w *walker) scanRoot() error {
	root := w.scope.Roots.SourceRoot
	w.scope.Dir = root
	w.scope.Depth = 0
	w.scope.State = RootEntered
	w.chdir(root)

	e := w.norm.Stat(pathres.TrimSlash(root), w.matchAll)
	if !w.hooks.DirProcess(&w.scope, &e) {
		w.log.Debug("recursion disabled by root hook", "dir", root)
		w.recurse = false
	}

	err := w.visit(root, 0)
	w.scope.State = Idle
	return err
}

// visit processes dir: subdirectories first, then files, then the two
// finishing hooks.
func (w *walker) visit(dir string, depth int) error {
	if err := w.ctx.Err(); err != nil {
		return err
	}
	w.stats.AddDirsVisited(1)
	w.emit(event.Event{Type: event.DirEntered, Path: dir, Depth: depth})
	w.chdir(dir)

	w.setDir(dir, depth, ScanningSubdirs)
	for _, sd := range w.collectSubdirs(dir, depth) {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		if err := w.subdir(dir, sd, depth); err != nil {
			return err
		}
		w.setDir(dir, depth, ScanningSubdirs)
		w.chdir(dir)
	}

	w.setDir(dir, depth, ScanningFiles)
	if err := w.files(dir, depth); err != nil {
		return err
	}

	own := w.norm.Stat(pathres.TrimSlash(dir), w.pattern)
	w.hooks.FileListFinish(&w.scope, &own)

	w.scope.State = DirFinished
	w.chdir(pathres.Parent(dir))
	change := w.hooks.DirFinish(&w.scope, &own)
	w.apply(pathres.TrimSlash(dir), change)
	w.emit(event.Event{Type: event.DirFinished, Path: dir, Depth: depth})
	return nil
}

// subdirEntry is a subdirectory queried once during collection.
type subdirEntry struct {
	name  string
	entry attr.Entry
}

// collectSubdirs returns up to maxDirs subdirectories of dir. Entries past
// the cap are dropped and reported. Entries whose metadata cannot be read
// are skipped; the file pass reports them.
func (w *walker) collectSubdirs(dir string, depth int) []subdirEntry {
	var subdirs []subdirEntry
	dropped := 0
	for _, name := range w.readDir(dir) {
		if wildcard.IsDotEntry(name) {
			continue
		}
		e, err := w.norm.Query(dir+name, w.pattern)
		if err != nil || !e.IsDir {
			continue
		}
		if len(subdirs) >= w.maxDirs {
			dropped++
			continue
		}
		subdirs = append(subdirs, subdirEntry{name: name, entry: e})
	}

	if dropped > 0 {
		w.stats.AddDirsTruncated(1)
		w.stats.AddEntriesDropped(int64(dropped))
		w.log.Warn("subdirectory list truncated", "dir", dir, "kept", w.maxDirs, "dropped", dropped)
		w.emit(event.Event{Type: event.DirTruncated, Path: dir, Count: int64(dropped), Depth: depth})
	}
	return subdirs
}

func (w *walker) subdir(dir string, sd subdirEntry, depth int) error {
	name, e := sd.name, sd.entry
	sub := dir + name + "/"
	destSub, err := mirror.Mirror(w.scope.Roots.SourceRoot, w.scope.Roots.DestRoot, dir, name+"/")
	if err != nil {
		w.log.Debug("cannot mirror directory", "dir", sub, "error", err)
		return nil
	}

	w.scope.Dir = sub
	w.scope.Depth = depth + 1
	w.scope.Roots.CurrentSourceDir = sub
	w.scope.Roots.CurrentDestDir = destSub

	if w.mkdirs && w.recurse {
		w.makeDestDir(destSub)
	}

	allow := w.hooks.DirProcess(&w.scope, &e)
	switch {
	case !allow:
		w.stats.AddDirsPruned(1)
		w.emit(event.Event{Type: event.DirPruned, Path: sub, DestPath: destSub, Depth: depth + 1})
	case !w.recurse:
		// DirProcess is still told about every subdirectory.
	case depth+1 >= w.maxDepth:
		w.stats.AddDepthLimited(1)
		w.log.Warn("depth limit reached", "dir", sub, "max_depth", w.maxDepth)
		w.emit(event.Event{Type: event.DepthLimited, Path: sub, Depth: depth + 1})
	default:
		w.scope.State = Recursing
		return w.visit(sub, depth+1)
	}
	return nil
}

func (w *walker) makeDestDir(destSub string) {
	if err := w.fs.MkdirAll(pathres.TrimSlash(destSub)); err != nil {
		w.stats.AddDirCreateFailed(1)
		w.log.Warn("cannot create destination directory", "dir", destSub, "error", err)
		return
	}
	w.stats.AddDirsCreated(1)
	w.emit(event.Event{Type: event.DirCreated, Path: destSub})
}

func (w *walker) files(dir string, depth int) error {
	roots := &w.scope.Roots
	destDir := roots.CurrentDestDir

	for _, name := range w.readDir(dir) {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		p := dir + name
		e := w.norm.Stat(p, w.pattern)
		if e.IsDir || e.Match == wildcard.ExcludedDotEntry {
			continue
		}
		w.stats.AddFilesSeen(1)
		if e.Match != wildcard.Included {
			w.stats.AddFilesExcluded(1)
			continue
		}

		destFile, err := mirror.Mirror(roots.SourceRoot, roots.DestRoot, dir, name)
		if err != nil {
			w.log.Debug("cannot mirror file", "path", p, "error", err)
			continue
		}

		w.stats.AddFilesMatched(1)
		w.stats.AddBytesMatched(int64(e.Size))
		w.emit(event.Event{Type: event.FileMatched, Path: p, DestPath: destFile, Size: int64(e.Size), Depth: depth})

		roots.CurrentSourceDir, roots.CurrentDestDir = "", ""
		roots.CurrentSourceFile, roots.CurrentDestFile = p, destFile
		change := w.hooks.FileProcess(&w.scope, &e)
		roots.CurrentSourceFile, roots.CurrentDestFile = "", ""
		roots.CurrentSourceDir, roots.CurrentDestDir = dir, destDir

		w.apply(p, change)
	}
	return nil
}

// setDir points the scope back at dir after a hook or recursion moved it.
func (w *walker) setDir(dir string, depth int, state State) {
	w.scope.Dir = dir
	w.scope.Depth = depth
	w.scope.State = state
	w.scope.Roots.CurrentSourceDir = dir
	w.scope.Roots.CurrentSourceFile = ""
	w.scope.Roots.CurrentDestFile = ""
	dest, err := mirror.Mirror(w.scope.Roots.SourceRoot, w.scope.Roots.DestRoot, dir, "")
	if err != nil {
		dest = w.scope.Roots.DestRoot
	}
	w.scope.Roots.CurrentDestDir = dest
}

func (w *walker) readDir(dir string) []string {
	names, err := w.fs.ReadDir(dir)
	if err != nil {
		w.stats.AddEnumFailed(1)
		w.log.Warn("cannot enumerate directory", "dir", dir, "error", err)
		w.emit(event.Event{Type: event.EnumFailed, Path: dir, Error: err})
		return nil
	}
	if w.sorted {
		sort.Strings(names)
	}
	return names
}

func (w *walker) apply(p string, c attr.Change) {
	if c.IsZero() {
		return
	}
	if err := w.norm.Apply(p, c); err != nil {
		w.stats.AddAttrFailed(1)
		w.log.Warn("attribute change failed", "path", p, "change", c.String(), "error", err)
		w.emit(event.Event{Type: event.AttrFailed, Path: p, Error: err})
		return
	}
	w.stats.AddAttrApplied(1)
	w.log.Debug("attributes changed", "path", p, "change", c.String())
	w.emit(event.Event{Type: event.AttrApplied, Path: p})
}

// chdir moves the backend's working directory as a courtesy to hooks that
// use relative paths. The walk itself only uses absolute paths.
func (w *walker) chdir(dir string) {
	if err := w.fs.Chdir(dir); err != nil {
		w.log.Debug("chdir failed", "dir", dir, "error", err)
	}
}

func (w *walker) emit(e event.Event) {
	if w.events == nil {
		return
	}
	e.Timestamp = time.Now()
	select {
	case w.events <- e:
	case <-w.ctx.Done():
	}
}
