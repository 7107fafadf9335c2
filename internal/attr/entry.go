// Package attr normalizes per-backend file metadata into a portable Entry
// and writes attribute changes back.
package attr

import (
	"time"

	"github.com/bamsammich/ezscan/internal/wildcard"
)

// Entry is the normalized record of one scanned filesystem object. A fresh
// Entry is built for every visit; nothing is cached between calls.
type Entry struct {
	Modified time.Time

	// DOS attribute flags; nil on backends that do not expose them.
	Hidden  *bool
	System  *bool
	Archive *bool

	Name       string
	Size       uint64
	Filtered   wildcard.Slots
	Match      wildcard.MatchFlag
	IsDir      bool
	Readable   bool
	Writable   bool
	Executable bool
}

// Included reports whether the entry passed the wildcard pattern.
func (e *Entry) Included() bool {
	return e.Match == wildcard.Included
}

// Attrs renders the nine-character attribute string used in listings:
// a match marker ('!' pattern miss, ':' dot entry) followed by D R W X H S A
// and a reserved blank. Unset flags are blanks.
func (e *Entry) Attrs() string {
	b := []byte("         ")
	switch e.Match {
	case wildcard.ExcludedByPattern:
		b[0] = '!'
	case wildcard.ExcludedDotEntry:
		b[0] = ':'
	}
	mark(b, 1, 'D', e.IsDir)
	mark(b, 2, 'R', e.Readable)
	mark(b, 3, 'W', e.Writable)
	mark(b, 4, 'X', e.Executable)
	mark(b, 5, 'H', isSet(e.Hidden))
	mark(b, 6, 'S', isSet(e.System))
	mark(b, 7, 'A', isSet(e.Archive))
	return string(b)
}

func (e *Entry) String() string {
	return e.Attrs() + " " + e.Name
}

func mark(b []byte, i int, c byte, on bool) {
	if on {
		b[i] = c
	}
}

func isSet(p *bool) bool {
	return p != nil && *p
}
