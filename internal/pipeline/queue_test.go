package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/backmassage/tape2tube/internal/config"
	"github.com/backmassage/tape2tube/internal/scan"
	"github.com/backmassage/tape2tube/internal/state"
)

// --- Helpers ---

func queueConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.AudioDir = t.TempDir()
	cfg.StatePath = filepath.Join(t.TempDir(), "state.json")
	return &cfg
}

func addMP3(t *testing.T, dir, name string, mtime time.Time) scan.Source {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("mp3 bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
	src, err := scan.Snapshot(path)
	if err != nil {
		t.Fatal(err)
	}
	return src
}

func emptyStore(t *testing.T, cfg *config.Config) *state.Store {
	t.Helper()
	store, err := state.Load(cfg.StatePath)
	if err != nil {
		t.Fatal(err)
	}
	return store
}

// --- BuildQueue ---

func TestBuildQueue_SkipsRecorded(t *testing.T) {
	cfg := queueConfig(t)
	base := time.Now().Add(-time.Hour)
	old := addMP3(t, cfg.AudioDir, "old.mp3", base)
	fresh := addMP3(t, cfg.AudioDir, "fresh.mp3", base.Add(time.Minute))

	store := emptyStore(t, cfg)
	store.MarkUploaded(old, "vid-old", time.Now())

	queue, err := BuildQueue(cfg, store)
	if err != nil {
		t.Fatalf("BuildQueue: %v", err)
	}
	if len(queue) != 1 || queue[0].Path != fresh.Path {
		t.Errorf("queue = %+v, want only the unrecorded file", queue)
	}
}

func TestBuildQueue_LimitKeepsOldest(t *testing.T) {
	cfg := queueConfig(t)
	cfg.Limit = 2
	base := time.Now().Add(-5 * time.Hour)
	addMP3(t, cfg.AudioDir, "third.mp3", base.Add(2*time.Hour))
	addMP3(t, cfg.AudioDir, "fifth.mp3", base.Add(4*time.Hour))
	addMP3(t, cfg.AudioDir, "first.mp3", base)
	addMP3(t, cfg.AudioDir, "fourth.mp3", base.Add(3*time.Hour))
	addMP3(t, cfg.AudioDir, "second.mp3", base.Add(time.Hour))

	queue, err := BuildQueue(cfg, emptyStore(t, cfg))
	if err != nil {
		t.Fatal(err)
	}
	if len(queue) != 2 {
		t.Fatalf("queue length = %d, want 2", len(queue))
	}
	if queue[0].Name != "first.mp3" || queue[1].Name != "second.mp3" {
		t.Errorf("limit should keep the oldest entries, got %s, %s", queue[0].Name, queue[1].Name)
	}
}

func TestBuildQueue_OnlyResolvesAgainstAudioDir(t *testing.T) {
	cfg := queueConfig(t)
	cfg.Only = "pick me.mp3"
	want := addMP3(t, cfg.AudioDir, "pick me.mp3", time.Now())
	addMP3(t, cfg.AudioDir, "other.mp3", time.Now())

	queue, err := BuildQueue(cfg, emptyStore(t, cfg))
	if err != nil {
		t.Fatal(err)
	}
	if len(queue) != 1 || queue[0].Path != want.Path {
		t.Errorf("queue = %+v, want exactly the named file", queue)
	}
}

func TestBuildQueue_OnlyBypassesChangeDetection(t *testing.T) {
	cfg := queueConfig(t)
	cfg.Only = "again.mp3"
	src := addMP3(t, cfg.AudioDir, "again.mp3", time.Now())

	store := emptyStore(t, cfg)
	store.MarkUploaded(src, "vid-1", time.Now())

	queue, err := BuildQueue(cfg, store)
	if err != nil {
		t.Fatal(err)
	}
	if len(queue) != 1 {
		t.Error("an explicitly named file is always work, even when already recorded")
	}
}

func TestBuildQueue_OnlyMissingIsFatal(t *testing.T) {
	cfg := queueConfig(t)
	cfg.Only = "nope.mp3"

	if _, err := BuildQueue(cfg, emptyStore(t, cfg)); err == nil {
		t.Error("want error when the named file does not exist")
	}
}

func TestBuildQueue_EmptyDir(t *testing.T) {
	cfg := queueConfig(t)
	queue, err := BuildQueue(cfg, emptyStore(t, cfg))
	if err != nil {
		t.Fatal(err)
	}
	if len(queue) != 0 {
		t.Errorf("queue = %+v, want empty", queue)
	}
}

// --- Dry-run table ---

func TestPrintDryRun(t *testing.T) {
	cfg := queueConfig(t)
	addMP3(t, cfg.AudioDir, "take one.mp3", time.Date(2024, 5, 1, 9, 30, 0, 0, time.Local))
	addMP3(t, cfg.AudioDir, "take two.mp3", time.Date(2024, 5, 2, 9, 30, 0, 0, time.Local))

	queue, err := BuildQueue(cfg, emptyStore(t, cfg))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	PrintDryRun(&buf, queue)
	out := buf.String()

	for _, want := range []string{"FILE", "SIZE", "MODIFIED", "take one.mp3", "take two.mp3", "2024-05-01 09:30"} {
		if !strings.Contains(out, want) {
			t.Errorf("dry-run table missing %q:\n%s", want, out)
		}
	}
}
