package pipeline

import (
	"os"

	"github.com/schollz/progressbar/v3"

	"github.com/backmassage/tape2tube/internal/display"
	"github.com/backmassage/tape2tube/internal/logging"
	"github.com/backmassage/tape2tube/internal/term"
	"github.com/backmassage/tape2tube/internal/upload"
)

// uploadProgress returns the progress callback for one transfer: a live
// progress bar on a TTY, otherwise log lines at 25% steps so batch logs stay
// readable.
func uploadProgress(log *logging.Logger, name string, size int64) upload.Progress {
	if term.IsTerminal(os.Stdout) {
		bar := progressbar.NewOptions64(size,
			progressbar.OptionSetDescription(name),
			progressbar.OptionShowBytes(true),
			progressbar.OptionClearOnFinish(),
		)
		return func(sent, total int64) {
			_ = bar.Set64(sent)
			if sent >= total {
				_ = bar.Finish()
			}
		}
	}

	lastStep := -1
	return func(sent, total int64) {
		if total <= 0 {
			return
		}
		step := int(sent * 4 / total) // 0..4 → 0%, 25%, 50%, 75%, 100%
		if step <= lastStep {
			return
		}
		lastStep = step
		log.Info("Upload progress: %d%% (%s of %s)",
			step*25, display.FormatBytes(sent), display.FormatBytes(total))
	}
}
