package main

import (
	"log/slog"
	"strings"

	"github.com/bamsammich/ezscan/internal/attr"
	"github.com/bamsammich/ezscan/internal/engine"
	"github.com/bamsammich/ezscan/internal/filter"
	"github.com/bamsammich/ezscan/internal/report"
)

// lister is the CLI's engine.Hooks: it prunes directories and drops files
// through the filter chain, records every listed file and hands back the
// requested attribute change.
type lister struct {
	chain    *filter.Chain
	log      *slog.Logger
	records  []report.Record
	change   attr.Change
	listed   int // files listed in the current directory
	withDest bool
	dryRun   bool
}

func (l *lister) rel(sc *engine.Scope, p string) string {
	return strings.TrimPrefix(p, sc.Roots.SourceRoot)
}

func (l *lister) DirProcess(sc *engine.Scope, e *attr.Entry) bool {
	if sc.State == engine.RootEntered {
		return true
	}
	rel := l.rel(sc, sc.Roots.CurrentSourceDir)
	ok, why := l.chain.Explain(filter.Candidate{RelPath: rel, IsDir: true, Modified: e.Modified})
	if !ok {
		l.log.Debug("directory pruned", "dir", sc.Roots.CurrentSourceDir, "reason", why)
	}
	return ok
}

func (l *lister) FileProcess(sc *engine.Scope, e *attr.Entry) attr.Change {
	p := sc.Roots.CurrentSourceFile
	ok, why := l.chain.Explain(filter.Candidate{
		RelPath:  l.rel(sc, p),
		Size:     int64(e.Size),
		Modified: e.Modified,
	})
	if !ok {
		l.log.Debug("file filtered", "path", p, "reason", why)
		return attr.Change{}
	}

	dest := ""
	if l.withDest {
		dest = sc.Roots.CurrentDestFile
	}
	rec := report.FromEntry(p, dest, e)
	rec.Change = l.change.String()
	l.records = append(l.records, rec)
	l.listed++

	if l.dryRun {
		return attr.Change{}
	}
	return l.change
}

func (l *lister) FileListFinish(sc *engine.Scope, _ *attr.Entry) {
	l.log.Debug("directory listed", "dir", sc.Dir, "files", l.listed, "depth", sc.Depth)
	l.listed = 0
}

func (l *lister) DirFinish(*engine.Scope, *attr.Entry) attr.Change {
	return attr.Change{}
}
