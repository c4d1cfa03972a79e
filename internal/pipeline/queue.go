package pipeline

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/backmassage/tape2tube/internal/config"
	"github.com/backmassage/tape2tube/internal/display"
	"github.com/backmassage/tape2tube/internal/scan"
	"github.com/backmassage/tape2tube/internal/state"
)

// BuildQueue assembles this run's work queue. With --only it is exactly that
// file (name resolved against the audio dir, change detection bypassed — an
// explicitly named file is always work); otherwise every discovered source
// the store considers new, oldest modification first. --limit caps the
// queue after selection, so it always keeps the oldest entries.
//
// A named --only file that does not exist is a fatal error.
func BuildQueue(cfg *config.Config, store *state.Store) ([]scan.Source, error) {
	if cfg.Only != "" {
		path := cfg.Only
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.AudioDir, path)
		}
		src, err := scan.Snapshot(path)
		if err != nil {
			return nil, fmt.Errorf("requested MP3 not found: %s", path)
		}
		return []scan.Source{src}, nil
	}

	sources, err := scan.Discover(cfg.AudioDir)
	if err != nil {
		return nil, err
	}

	queue := sources[:0]
	for _, src := range sources {
		if store.IsNew(src) {
			queue = append(queue, src)
		}
	}

	if cfg.Limit > 0 && len(queue) > cfg.Limit {
		queue = queue[:cfg.Limit]
	}
	return queue, nil
}

// PrintDryRun writes the work queue as a table: what would be rendered and
// published, without doing either.
func PrintDryRun(out io.Writer, queue []scan.Source) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"#", "File", "Size", "Modified"})
	for i, src := range queue {
		t.AppendRow(table.Row{
			i + 1,
			src.Name,
			display.FormatBytes(src.Size),
			src.ModTime.Format("2006-01-02 15:04"),
		})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}
