package stats

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

const ringSize = 60

// Collector tracks scan statistics using lock-free atomic counters.
type Collector struct {
	startTime       time.Time
	dirsVisited     atomic.Int64
	dirsPruned      atomic.Int64
	dirsCreated     atomic.Int64
	dirsTruncated   atomic.Int64
	entriesDropped  atomic.Int64
	depthLimited    atomic.Int64
	filesSeen       atomic.Int64
	filesMatched    atomic.Int64
	filesExcluded   atomic.Int64
	bytesMatched    atomic.Int64
	enumFailed      atomic.Int64
	statFailed      atomic.Int64
	attrApplied     atomic.Int64
	attrFailed      atomic.Int64
	dirCreateFailed atomic.Int64

	// Ring buffer; written only by the presenter's Tick.
	mu          sync.Mutex
	entriesRate [ringSize]int64 // entries seen per second
	ringIdx     int
	ringCount   int
	lastEntries int64
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	DirsVisited     int64
	DirsPruned      int64
	DirsCreated     int64
	DirsTruncated   int64
	EntriesDropped  int64
	DepthLimited    int64
	FilesSeen       int64
	FilesMatched    int64
	FilesExcluded   int64
	BytesMatched    int64
	EnumFailed      int64
	StatFailed      int64
	AttrApplied     int64
	AttrFailed      int64
	DirCreateFailed int64
	Elapsed         time.Duration
}

func (c *Collector) AddDirsVisited(n int64)     { c.dirsVisited.Add(n) }
func (c *Collector) AddDirsPruned(n int64)      { c.dirsPruned.Add(n) }
func (c *Collector) AddDirsCreated(n int64)     { c.dirsCreated.Add(n) }
func (c *Collector) AddDirsTruncated(n int64)   { c.dirsTruncated.Add(n) }
func (c *Collector) AddEntriesDropped(n int64)  { c.entriesDropped.Add(n) }
func (c *Collector) AddDepthLimited(n int64)    { c.depthLimited.Add(n) }
func (c *Collector) AddFilesSeen(n int64)       { c.filesSeen.Add(n) }
func (c *Collector) AddFilesMatched(n int64)    { c.filesMatched.Add(n) }
func (c *Collector) AddFilesExcluded(n int64)   { c.filesExcluded.Add(n) }
func (c *Collector) AddBytesMatched(n int64)    { c.bytesMatched.Add(n) }
func (c *Collector) AddEnumFailed(n int64)      { c.enumFailed.Add(n) }
func (c *Collector) AddStatFailed(n int64)      { c.statFailed.Add(n) }
func (c *Collector) AddAttrApplied(n int64)     { c.attrApplied.Add(n) }
func (c *Collector) AddAttrFailed(n int64)      { c.attrFailed.Add(n) }
func (c *Collector) AddDirCreateFailed(n int64) { c.dirCreateFailed.Add(n) }

// Snapshot returns a point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		DirsVisited:     c.dirsVisited.Load(),
		DirsPruned:      c.dirsPruned.Load(),
		DirsCreated:     c.dirsCreated.Load(),
		DirsTruncated:   c.dirsTruncated.Load(),
		EntriesDropped:  c.entriesDropped.Load(),
		DepthLimited:    c.depthLimited.Load(),
		FilesSeen:       c.filesSeen.Load(),
		FilesMatched:    c.filesMatched.Load(),
		FilesExcluded:   c.filesExcluded.Load(),
		BytesMatched:    c.bytesMatched.Load(),
		EnumFailed:      c.enumFailed.Load(),
		StatFailed:      c.statFailed.Load(),
		AttrApplied:     c.attrApplied.Load(),
		AttrFailed:      c.attrFailed.Load(),
		DirCreateFailed: c.dirCreateFailed.Load(),
		Elapsed:         c.Elapsed(),
	}
}

// Tick records the entries seen since the previous Tick. Called 1/sec by
// the presenter.
func (c *Collector) Tick() {
	current := c.filesSeen.Load() + c.dirsVisited.Load()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entriesRate[c.ringIdx] = current - c.lastEntries
	c.lastEntries = current
	c.ringIdx = (c.ringIdx + 1) % ringSize
	if c.ringCount < ringSize {
		c.ringCount++
	}
}

// RollingEntriesPerSec returns average entries/sec over the last n samples.
func (c *Collector) RollingEntriesPerSec(seconds int) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := min(seconds, c.ringCount)
	if count <= 0 {
		return 0
	}
	var sum int64
	for i := 0; i < count; i++ {
		idx := (c.ringIdx - 1 - i + ringSize) % ringSize
		sum += c.entriesRate[idx]
	}
	return float64(sum) / float64(count)
}

// RateHistory returns up to n per-second samples, oldest first.
func (c *Collector) RateHistory(n int) []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := min(n, c.ringCount)
	out := make([]float64, count)
	for i := 0; i < count; i++ {
		idx := (c.ringIdx - count + i + ringSize) % ringSize
		out[i] = float64(c.entriesRate[idx])
	}
	return out
}

// Elapsed returns time since collector creation.
func (c *Collector) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

// Errors is the number of recovered failures: enumeration, metadata,
// attribute write-back and destination directory creation.
func (s Snapshot) Errors() int64 {
	return s.EnumFailed + s.StatFailed + s.AttrFailed + s.DirCreateFailed
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"dirs=%d pruned=%d files=%d matched=%d bytes=%d truncated=%d depth_limited=%d errors=%d",
		s.DirsVisited, s.DirsPruned, s.FilesSeen, s.FilesMatched,
		s.BytesMatched, s.EntriesDropped, s.DepthLimited, s.Errors(),
	)
}

// FormatBytes returns a human-readable byte count.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
