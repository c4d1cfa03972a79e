// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation for ffmpeg, ffprobe, libx264, AAC, and the
// visualization filters.
package check

import (
	"errors"
	"os/exec"
	"strings"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrFfmpegNotFound = errors.New("ffmpeg not found on PATH")
	ErrX264TestFailed = errors.New("libx264 test encode failed")
	ErrAACTestFailed  = errors.New("aac test encode failed")
)

// Logger is the minimal logging interface needed by RunCheck. Defined here
// (rather than importing the logging package) so that check remains
// dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck runs the interactive --check flow: prints availability of ffmpeg,
// ffprobe, the libx264 and AAC encoders, and the showwaves/showspectrum
// filters. Informational only; it does not stop on failure. Returns false
// when anything required for rendering is missing.
func RunCheck(log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkFfmpeg(log)
	checkFfprobe(log)
	ok = checkX264(log) && ok
	ok = checkAAC(log) && ok
	checkVisualizationFilters(log)
	return ok
}

// checkFfmpeg verifies ffmpeg is on PATH and logs its version string.
func checkFfmpeg(log Logger) bool {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		log.Error("ffmpeg not found")
		return false
	}
	out, err := exec.Command("ffmpeg", "-version").Output()
	if err != nil {
		log.Warn("ffmpeg found but -version failed: %v", err)
		return true
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("ffmpeg: %s", firstLine)
	return true
}

// checkFfprobe reports ffprobe availability. A missing ffprobe is never
// fatal: the mp3_rate template field degrades to empty instead.
func checkFfprobe(log Logger) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		log.Warn("ffprobe not found (mp3_rate template field will be empty)")
		return
	}
	log.Success("ffprobe: available")
}

// checkX264 runs a minimal libx264 encode to verify video encoding works.
func checkX264(log Logger) bool {
	log.Info("Testing libx264...")
	if runSilent("ffmpeg", x264TestArgs()...) {
		log.Success("libx264 works")
		return true
	}
	log.Error("libx264 test encode failed")
	return false
}

// checkAAC runs a minimal AAC encode to verify the audio encoder works.
func checkAAC(log Logger) bool {
	log.Info("Testing AAC encoder...")
	if runSilent("ffmpeg", aacTestArgs()...) {
		log.Success("AAC encoder works")
		return true
	}
	log.Error("AAC encoder test failed")
	return false
}

// checkVisualizationFilters reports whether the overlay-mode filters are
// compiled into this ffmpeg build.
func checkVisualizationFilters(log Logger) {
	out, err := exec.Command("ffmpeg", "-hide_banner", "-filters").Output()
	if err != nil {
		log.Warn("Could not list filters: %v", err)
		return
	}
	for _, filter := range []string{"showwaves", "showspectrum"} {
		if strings.Contains(string(out), filter) {
			log.Success("filter %s: available", filter)
		} else {
			log.Warn("filter %s: missing (overlay mode would fail)", filter)
		}
	}
}

// CheckDeps is the pre-pipeline validation: ffmpeg must be on PATH and both
// test encodes must pass, since every work item needs them. Returns a
// sentinel error on failure. ffprobe is deliberately not required here —
// probe failure is tolerated per item.
func CheckDeps() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return ErrFfmpegNotFound
	}
	if !runSilent("ffmpeg", x264TestArgs()...) {
		return ErrX264TestFailed
	}
	if !runSilent("ffmpeg", aacTestArgs()...) {
		return ErrAACTestFailed
	}
	return nil
}

// --- internal helpers ---

// x264TestArgs returns the ffmpeg arguments for a minimal libx264 test encode.
func x264TestArgs() []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=256x256:d=0.1",
		"-c:v", "libx264",
		"-f", "null", "-",
	}
}

// aacTestArgs returns the ffmpeg arguments for a minimal AAC test encode.
func aacTestArgs() []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "sine=frequency=1000:duration=0.1",
		"-c:a", "aac", "-f", "null", "-",
	}
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
