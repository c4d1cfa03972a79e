package render

import (
	"fmt"
	"strconv"
)

// buildOverlayFilter constructs the -filter_complex graph for overlay mode:
// the background image scaled to the target frame and pinned to yuv420p, an
// audio-derived visualization sized frame-width x configured-height, and a
// centered overlay of the two.
//
// The visualization is showspectrum when the mode selects it (with its
// slide/mode/scale sub-options), otherwise showwaves in the configured
// drawing mode and color.
func buildOverlayFilter(opts Options) string {
	wf := opts.Waveform
	size := strconv.Itoa(opts.Width) + "x" + strconv.Itoa(opts.Height)
	visSize := strconv.Itoa(opts.Width) + "x" + strconv.Itoa(wf.Height)

	if wf.Mode.IsSpectrum() {
		return fmt.Sprintf(
			"[0:v]scale=%s,format=yuv420p[bg];"+
				"[1:a]showspectrum=s=%s:color=%s:slide=%d:mode=%s:scale=%s[sw];"+
				"[bg][sw]overlay=(W-w)/2:(H-h)/2",
			size, visSize, wf.Color, wf.SpectrumSlide, wf.SpectrumMode, wf.SpectrumScale,
		)
	}

	return fmt.Sprintf(
		"[0:v]scale=%s,format=yuv420p[bg];"+
			"[1:a]showwaves=s=%s:mode=%s:colors=%s[sw];"+
			"[bg][sw]overlay=(W-w)/2:(H-h)/2",
		size, visSize, wf.Mode, wf.Color,
	)
}
