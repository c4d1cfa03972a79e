//go:build darwin

package meta

import (
	"os"
	"syscall"
	"time"
)

// birthTime reads the file's birth time from the Darwin stat structure,
// where it is always recorded.
func birthTime(path string) time.Time {
	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}
	}
	return time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec)
}
