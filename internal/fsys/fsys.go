// Package fsys abstracts the handful of filesystem primitives the scanner
// needs: enumeration, metadata, working directory and permission changes.
// Paths use forward slashes on every backend.
package fsys

import (
	"os"
	"time"
)

// Info is the raw metadata a backend reports for one path.
type Info struct {
	ModTime time.Time
	DOS     *DOSAttrs // nil unless the backend exposes DOS attribute flags
	Name    string
	Size    int64
	Perm    os.FileMode
	IsDir   bool
}

// DOSAttrs holds the attribute flags only DOS-family systems expose.
type DOSAttrs struct {
	ReadOnly bool
	Hidden   bool
	System   bool
	Archive  bool
}

// Caps describes what a backend can report and change.
type Caps struct {
	ExecBit  bool // permission bits carry a native execute flag
	DOSAttrs bool // Info.DOS is populated and SetDOSAttrs is honored
}

// FS is the set of primitives the traversal engine consumes.
type FS interface {
	// ReadDir returns the names of the entries in dir, in backend order.
	ReadDir(dir string) ([]string, error)

	// Stat returns metadata for name, following symlinks.
	Stat(name string) (Info, error)

	// Chmod replaces the permission bits of name.
	Chmod(name string, perm os.FileMode) error

	// MkdirAll creates dir and any missing parents.
	MkdirAll(dir string) error

	// Getwd returns the backend's current working directory.
	Getwd() (string, error)

	// Chdir changes the backend's current working directory.
	Chdir(dir string) error

	// Caps reports backend capabilities.
	Caps() Caps

	// Close releases resources held by the backend.
	Close() error
}

// DOSAttributer is implemented by backends that can change DOS attribute
// flags.
type DOSAttributer interface {
	SetDOSAttrs(name string, attrs DOSAttrs) error
}
