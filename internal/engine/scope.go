package engine

import "github.com/bamsammich/ezscan/internal/attr"

// State is the engine's position in the traversal protocol.
type State int

const (
	Idle State = iota
	RootEntered
	ScanningSubdirs
	Recursing
	ScanningFiles
	DirFinished
)

var stateNames = [...]string{
	Idle:            "Idle",
	RootEntered:     "RootEntered",
	ScanningSubdirs: "ScanningSubdirs",
	Recursing:       "Recursing",
	ScanningFiles:   "ScanningFiles",
	DirFinished:     "DirFinished",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}

// Roots holds the canonical roots of the scan and the paths currently being
// worked on. Directory paths are slash-terminated.
type Roots struct {
	SourceRoot string
	DestRoot   string

	// Directory being processed; both are "" while a file is in hand.
	CurrentSourceDir string
	CurrentDestDir   string

	// File being processed; both are "" outside FileProcess.
	CurrentSourceFile string
	CurrentDestFile   string
}

// Scope is the context handed to every hook. It is owned by the engine and
// only valid for the duration of the call.
type Scope struct {
	ID      string // scan id, also attached to log records
	Dir     string // directory being enumerated, slash-terminated
	Pattern string
	Roots   Roots
	Depth   int // 0 for the source root
	State   State
}

// Hooks receives the traversal protocol. Every method is called
// synchronously from the walking goroutine.
type Hooks interface {
	// DirProcess is called once for the root and once per subdirectory.
	// Returning false keeps the engine out of that directory. For the root,
	// false disables recursion for the whole scan; root files are still
	// scanned.
	DirProcess(sc *Scope, e *attr.Entry) bool

	// DirFinish is called after a visited directory has been fully
	// processed, with the working directory already at its parent.
	DirFinish(sc *Scope, e *attr.Entry) attr.Change

	// FileProcess is called for every non-directory entry that matches the
	// pattern.
	FileProcess(sc *Scope, e *attr.Entry) attr.Change

	// FileListFinish is called once per visited directory after its files,
	// even when there were none.
	FileListFinish(sc *Scope, e *attr.Entry)
}

// HookFuncs adapts plain functions to Hooks. Nil fields are no-ops, except
// DirProcessFunc which defaults to true.
type HookFuncs struct {
	DirProcessFunc     func(sc *Scope, e *attr.Entry) bool
	DirFinishFunc      func(sc *Scope, e *attr.Entry) attr.Change
	FileProcessFunc    func(sc *Scope, e *attr.Entry) attr.Change
	FileListFinishFunc func(sc *Scope, e *attr.Entry)
}

func (h HookFuncs) DirProcess(sc *Scope, e *attr.Entry) bool {
	if h.DirProcessFunc == nil {
		return true
	}
	return h.DirProcessFunc(sc, e)
}

func (h HookFuncs) DirFinish(sc *Scope, e *attr.Entry) attr.Change {
	if h.DirFinishFunc == nil {
		return attr.Change{}
	}
	return h.DirFinishFunc(sc, e)
}

func (h HookFuncs) FileProcess(sc *Scope, e *attr.Entry) attr.Change {
	if h.FileProcessFunc == nil {
		return attr.Change{}
	}
	return h.FileProcessFunc(sc, e)
}

func (h HookFuncs) FileListFinish(sc *Scope, e *attr.Entry) {
	if h.FileListFinishFunc != nil {
		h.FileListFinishFunc(sc, e)
	}
}
