// Package render builds the deterministic ffmpeg invocation that turns one
// audio file plus one background image into a video, and executes it. Plan
// construction is pure: it never touches the filesystem or runs ffmpeg, so
// the argument shapes are fully testable. Invocation failures belong to the
// pipeline.
package render

import (
	"path/filepath"

	"github.com/backmassage/tape2tube/internal/config"
	"github.com/backmassage/tape2tube/internal/scan"
)

// videoExt is the fixed output container extension. Re-rendering the same
// source overwrites the previous output in place.
const videoExt = ".mp4"

// Options are the config-derived inputs to plan construction.
type Options struct {
	OutDir   string
	Width    int
	Height   int
	Waveform config.Waveform
	Verbose  bool // Raises ffmpeg loglevel from error to info.
}

// OptionsFromConfig extracts the render options from a validated config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		OutDir:   cfg.OutDir,
		Width:    cfg.VideoWidth,
		Height:   cfg.VideoHeight,
		Waveform: cfg.Waveform,
		Verbose:  cfg.Verbose,
	}
}

// Plan is the ephemeral value object consumed once by the encoder
// invocation: the full ffmpeg argument list (argv[0] included) and the
// output path it writes.
type Plan struct {
	Args       []string
	OutputPath string
}

// OutputPath returns where the rendered video for src will land:
// out_dir/<stem>.mp4.
func OutputPath(outDir string, src scan.Source) string {
	return filepath.Join(outDir, src.Stem+videoExt)
}
