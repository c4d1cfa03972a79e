//go:build linux

package meta

import (
	"time"

	"golang.org/x/sys/unix"
)

// birthTime reads the file's birth time via statx. Not every filesystem
// records one (STATX_BTIME is a request, not a guarantee); the zero time is
// returned when the kernel or filesystem cannot supply it.
func birthTime(path string) time.Time {
	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, 0, unix.STATX_BTIME, &stx)
	if err != nil || stx.Mask&unix.STATX_BTIME == 0 {
		return time.Time{}
	}
	if stx.Btime.Sec == 0 && stx.Btime.Nsec == 0 {
		return time.Time{}
	}
	return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
}
