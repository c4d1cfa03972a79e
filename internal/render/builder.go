package render

import (
	"strconv"

	"github.com/backmassage/tape2tube/internal/scan"
)

// BuildPlan constructs the complete ffmpeg argument slice for rendering src
// over imagePath. Two shapes exist, matching the legacy script exactly:
//
//   - Plain (overlay disabled): one combined pass, image looped at 1 fps,
//     audio re-encoded to AAC, duration clamped to the shorter stream
//     (-shortest; with a looped still that is the audio length).
//   - Overlay (waveform/spectrum enabled): a two-input filter graph at the
//     configured frame rate; the graph itself pins the pixel format.
func BuildPlan(opts Options, src scan.Source, imagePath string) Plan {
	out := OutputPath(opts.OutDir, src)
	args := make([]string, 0, 32)

	// --- Preamble ---
	args = append(args, "ffmpeg", "-hide_banner", "-nostdin", "-y")
	if opts.Verbose {
		args = append(args, "-loglevel", "info")
	} else {
		args = append(args, "-loglevel", "error")
	}

	if opts.Waveform.Enabled {
		fps := strconv.Itoa(opts.Waveform.FPS)

		// --- Inputs: looped still at the overlay frame rate, then audio ---
		args = append(args,
			"-loop", "1", "-framerate", fps,
			"-i", imagePath, "-i", src.Path,
		)

		// --- Composite filter graph ---
		args = append(args, "-filter_complex", buildOverlayFilter(opts))

		// --- Codecs ---
		args = append(args,
			"-c:v", "libx264", "-tune", "stillimage", "-r", fps,
			"-c:a", "aac", "-b:a", "192k", "-shortest",
			out,
		)
		return Plan{Args: args, OutputPath: out}
	}

	// --- Plain single-pass: static image, no filter graph ---
	args = append(args,
		"-loop", "1", "-framerate", "1",
		"-i", imagePath, "-i", src.Path,
		"-c:v", "libx264", "-tune", "stillimage",
		"-c:a", "aac", "-b:a", "192k",
		"-shortest", "-pix_fmt", "yuv420p",
		out,
	)
	return Plan{Args: args, OutputPath: out}
}
