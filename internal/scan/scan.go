// Package scan discovers source audio files and background images. Audio
// discovery produces immutable snapshots sorted by modification time
// ascending, so the oldest recordings are processed first and the order is
// deterministic across runs.
package scan

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Source is an immutable snapshot of one audio file, taken once per run.
// Path is absolute with symlinks resolved; it is the key used by the state
// store. Size and ModTime together form the change-detection fingerprint.
type Source struct {
	Path    string
	Name    string // Base name with extension, e.g. "song.mp3".
	Stem    string // Base name without extension, e.g. "song".
	Size    int64
	ModTime time.Time
}

// Discover lists the .mp3 files directly inside audioDir (non-recursive,
// case-insensitive extension match) and returns snapshots sorted by
// modification time ascending, name as tie-breaker.
func Discover(audioDir string) ([]Source, error) {
	entries, err := os.ReadDir(audioDir)
	if err != nil {
		return nil, fmt.Errorf("read audio dir %s: %w", audioDir, err)
	}

	var sources []Source
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".mp3") {
			continue
		}
		src, err := Snapshot(filepath.Join(audioDir, e.Name()))
		if err != nil {
			// The file vanished between ReadDir and Stat; skip it.
			continue
		}
		sources = append(sources, src)
	}

	sort.Slice(sources, func(i, j int) bool {
		if sources[i].ModTime.Equal(sources[j].ModTime) {
			return sources[i].Name < sources[j].Name
		}
		return sources[i].ModTime.Before(sources[j].ModTime)
	})
	return sources, nil
}

// Snapshot stats path and returns its Source snapshot. The path is resolved
// to an absolute, symlink-free form so state-store keys are stable no matter
// how the file was named on the command line.
func Snapshot(path string) (Source, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Source{}, err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return Source{}, err
	}
	name := filepath.Base(abs)
	return Source{
		Path:    abs,
		Name:    name,
		Stem:    strings.TrimSuffix(name, filepath.Ext(name)),
		Size:    fi.Size(),
		ModTime: fi.ModTime(),
	}, nil
}

// Supported background image extensions (lowercase, with leading dot).
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
}

// ImagePool lists the background images directly inside imagesDir, sorted by
// name for determinism. An empty pool is returned as an empty slice; callers
// decide whether that is fatal.
func ImagePool(imagesDir string) ([]string, error) {
	entries, err := os.ReadDir(imagesDir)
	if err != nil {
		return nil, fmt.Errorf("read images dir %s: %w", imagesDir, err)
	}
	var images []string
	for _, e := range entries {
		if e.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		images = append(images, filepath.Join(imagesDir, e.Name()))
	}
	sort.Strings(images)
	return images, nil
}

// PickRandom selects one image uniformly at random from the pool.
// The pool must be non-empty.
func PickRandom(pool []string, rng *rand.Rand) string {
	return pool[rng.Intn(len(pool))]
}
