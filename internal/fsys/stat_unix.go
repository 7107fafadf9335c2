//go:build unix && !darwin && !ios

package fsys

import (
	"time"

	"golang.org/x/sys/unix"
)

// mtimeFromStat returns the modification time from a unix.Stat_t.
func mtimeFromStat(st *unix.Stat_t) time.Time {
	return time.Unix(st.Mtim.Unix())
}
