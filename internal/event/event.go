package event

import "time"

// Type identifies the kind of event.
type Type int

const (
	ScanStarted Type = iota + 1
	ScanComplete
	DirEntered
	DirPruned
	DirFinished
	DirCreated
	DirTruncated
	DepthLimited
	FileMatched
	EnumFailed
	AttrApplied
	AttrFailed
)

var typeNames = [...]string{
	ScanStarted:  "ScanStarted",
	ScanComplete: "ScanComplete",
	DirEntered:   "DirEntered",
	DirPruned:    "DirPruned",
	DirFinished:  "DirFinished",
	DirCreated:   "DirCreated",
	DirTruncated: "DirTruncated",
	DepthLimited: "DepthLimited",
	FileMatched:  "FileMatched",
	EnumFailed:   "EnumFailed",
	AttrApplied:  "AttrApplied",
	AttrFailed:   "AttrFailed",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Event represents a single progress event from the engine.
type Event struct {
	Timestamp time.Time
	Error     error
	Type      Type
	Path      string // absolute source path
	DestPath  string // mirrored destination path, when one applies
	Size      int64  // file size (FileMatched) or bytes matched (ScanComplete)
	Count     int64  // dropped entries (DirTruncated) or files matched (ScanComplete)
	Depth     int
}
