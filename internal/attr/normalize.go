package attr

import (
	"errors"
	"fmt"

	"github.com/bamsammich/ezscan/internal/fsys"
	"github.com/bamsammich/ezscan/internal/pathres"
	"github.com/bamsammich/ezscan/internal/wildcard"
)

// ErrAttrWrite wraps every failure to apply a Change.
var ErrAttrWrite = errors.New("attribute write-back failed")

// Owner permission bits. The flags describe the owner's access only.
const (
	ownerRead  = 0o400
	ownerWrite = 0o200
	ownerExec  = 0o100
)

// execExts stand in for the execute bit on backends without one.
var execExts = []string{"exe", "com", "bat", "dll"}

// Normalizer builds Entries from a backend and applies Changes to it.
type Normalizer struct {
	FS fsys.FS

	// OnError, when set, is told about metadata queries that failed and
	// were replaced by defaults.
	OnError func(path string, err error)
}

// Stat returns the normalized record for p. It never fails: when the
// backend cannot be queried the entry keeps its name and match flag and
// reports itself as neither readable nor writable.
func (n *Normalizer) Stat(p string, pat wildcard.Pattern) Entry {
	e, err := n.Query(p, pat)
	if err != nil && n.OnError != nil {
		n.OnError(p, err)
	}
	return e
}

// Query is Stat for callers that handle the failure themselves. On error
// the entry holds the same defaults Stat would return and OnError is not
// called.
func (n *Normalizer) Query(p string, pat wildcard.Pattern) (Entry, error) {
	name := pathres.Base(p)
	e := Entry{
		Name:     name,
		Filtered: wildcard.Shape(name),
		Match:    wildcard.Match(name, pat),
	}

	info, err := n.FS.Stat(p)
	if err != nil {
		return e, err
	}

	caps := n.FS.Caps()
	e.IsDir = info.IsDir
	e.Size = uint64(max(info.Size, 0))
	e.Modified = info.ModTime
	e.Readable = info.Perm&ownerRead != 0
	e.Writable = info.Perm&ownerWrite != 0

	switch {
	case caps.ExecBit:
		e.Executable = info.Perm&ownerExec != 0
	case e.IsDir:
		e.Executable = true
	default:
		for _, ext := range execExts {
			if pathres.HasExtension(name, ext) {
				e.Executable = true
				break
			}
		}
	}

	if caps.DOSAttrs && info.DOS != nil {
		e.Hidden = Bool(info.DOS.Hidden)
		e.System = Bool(info.DOS.System)
		e.Archive = Bool(info.DOS.Archive)
		if info.DOS.ReadOnly {
			e.Writable = false
		}
	}
	return e, nil
}

// Apply writes c back to p. DOS flags are ignored silently on backends
// without them.
func (n *Normalizer) Apply(p string, c Change) error {
	if c.IsZero() {
		return nil
	}

	info, err := n.FS.Stat(p)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrAttrWrite, p, err)
	}

	perm := info.Perm
	if c.Readable != nil {
		if *c.Readable {
			perm |= ownerRead
		} else {
			perm &^= ownerRead
		}
	}
	if c.Writable != nil {
		if *c.Writable {
			perm |= ownerWrite
		} else {
			perm &^= ownerWrite
		}
	}
	if perm != info.Perm {
		if err := n.FS.Chmod(p, perm); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrAttrWrite, p, err)
		}
	}

	return n.applyDOS(p, info, c)
}

func (n *Normalizer) applyDOS(p string, info fsys.Info, c Change) error {
	setter, ok := n.FS.(fsys.DOSAttributer)
	if !ok || !n.FS.Caps().DOSAttrs || info.DOS == nil {
		return nil
	}
	if c.Writable == nil && c.Hidden == nil && c.System == nil && c.Archive == nil {
		return nil
	}

	next := *info.DOS
	if c.Writable != nil {
		next.ReadOnly = !*c.Writable
	}
	override(&next.Hidden, c.Hidden)
	override(&next.System, c.System)
	override(&next.Archive, c.Archive)

	if err := setter.SetDOSAttrs(p, next); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrAttrWrite, p, err)
	}
	return nil
}

func override(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
