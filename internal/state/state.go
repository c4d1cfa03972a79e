// Package state persists the mapping of processed source files. A source is
// keyed by its resolved absolute path and fingerprinted by (size, mtime); a
// record is written only after a publish has returned a video ID, and the
// whole store is flushed to disk after every successful publish so a crash
// loses at most the in-flight item.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/backmassage/tape2tube/internal/scan"
)

// Record is one uploaded source file: its fingerprint at publish time, the
// remote video identifier, and when the upload happened (Unix seconds).
// MTime is stored as Unix nanoseconds so the comparison is exact.
type Record struct {
	Size       int64  `json:"size"`
	MTime      int64  `json:"mtime"`
	VideoID    string `json:"video_id"`
	UploadedAt int64  `json:"uploaded_at"`
}

// document is the on-disk JSON shape: {"uploaded": {<path>: Record}}.
type document struct {
	Uploaded map[string]Record `json:"uploaded"`
}

// Store is the in-memory view of the state file plus the advisory lock that
// prevents two concurrent runs from interleaving whole-file writes.
type Store struct {
	path     string
	lock     *flock.Flock
	uploaded map[string]Record
}

// Load reads the state file at path. A missing file yields an empty store.
func Load(path string) (*Store, error) {
	s := &Store{
		path:     path,
		lock:     flock.New(path + ".lock"),
		uploaded: map[string]Record{},
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state %s: %w", path, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse state %s: %w", path, err)
	}
	if doc.Uploaded != nil {
		s.uploaded = doc.Uploaded
	}
	return s, nil
}

// Acquire takes the advisory lock next to the state file. It fails
// immediately when another run holds it rather than blocking a batch job
// behind an unknown wait.
func (s *Store) Acquire() error {
	ok, err := s.lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock state %s: %w", s.lock.Path(), err)
	}
	if !ok {
		return fmt.Errorf("state file %s is locked by another run", s.path)
	}
	return nil
}

// Release drops the advisory lock.
func (s *Store) Release() error {
	return s.lock.Unlock()
}

// IsNew reports whether src needs processing: unknown path, or any
// difference between the current (size, mtime) and the stored fingerprint.
// Detection is purely metadata-based; content is never hashed, so a rewrite
// that preserves both size and mtime is indistinguishable from unchanged.
func (s *Store) IsNew(src scan.Source) bool {
	rec, ok := s.uploaded[src.Path]
	if !ok {
		return true
	}
	return rec.Size != src.Size || rec.MTime != src.ModTime.UnixNano()
}

// Record returns the stored record for a resolved path, if any.
func (s *Store) Record(path string) (Record, bool) {
	rec, ok := s.uploaded[path]
	return rec, ok
}

// Len returns the number of recorded uploads.
func (s *Store) Len() int { return len(s.uploaded) }

// MarkUploaded records (or overwrites) the fingerprint and video ID for src.
// Call only after the publish call has returned an ID; Save must follow
// before the next item starts.
func (s *Store) MarkUploaded(src scan.Source, videoID string, now time.Time) {
	s.uploaded[src.Path] = Record{
		Size:       src.Size,
		MTime:      src.ModTime.UnixNano(),
		VideoID:    videoID,
		UploadedAt: now.Unix(),
	}
}

// Save serializes the whole store and atomically replaces the state file:
// write to a uuid-suffixed temp path in the same directory, then rename into
// place, so a crash mid-write never corrupts the committed state.
func (s *Store) Save() error {
	doc := document{Uploaded: s.uploaded}
	data, err := json.MarshalIndent(&doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	tmp := s.path + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write state %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace state %s: %w", s.path, err)
	}
	return nil
}
