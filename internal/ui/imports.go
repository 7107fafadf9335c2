package ui

import "github.com/bamsammich/ezscan/internal/event"

// Event is the engine's progress event.
type Event = event.Event

// Re-export event types for convenience.
const (
	ScanStarted  = event.ScanStarted
	ScanComplete = event.ScanComplete
	DirEntered   = event.DirEntered
	DirPruned    = event.DirPruned
	DirFinished  = event.DirFinished
	DirCreated   = event.DirCreated
	DirTruncated = event.DirTruncated
	DepthLimited = event.DepthLimited
	FileMatched  = event.FileMatched
	EnumFailed   = event.EnumFailed
	AttrApplied  = event.AttrApplied
	AttrFailed   = event.AttrFailed
)
