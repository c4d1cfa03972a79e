//go:build !linux && !darwin

package meta

import "time"

// birthTime is unavailable on this platform; the creation_date template
// field degrades to the empty string.
func birthTime(string) time.Time {
	return time.Time{}
}
