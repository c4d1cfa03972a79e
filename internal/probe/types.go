package probe

// FormatInfo holds container-level metadata from ffprobe's format section.
type FormatInfo struct {
	Filename   string
	FormatName string
	Duration   float64
	Size       int64
	BitRate    int64
}

// AudioStream holds the parsed properties of a single audio stream.
type AudioStream struct {
	Index         int
	Codec         string
	Channels      int
	ChannelLayout string
	SampleRate    int
	BitRate       int64
}

// Result is the fully parsed output of a single ffprobe JSON call.
type Result struct {
	Format       FormatInfo
	AudioStreams []AudioStream
}

// AudioBitRate returns the first audio stream's bit rate in bits/sec,
// falling back to the container-level bit rate when the stream value is
// unavailable or zero. Returns 0 when neither is known.
func (r *Result) AudioBitRate() int64 {
	if len(r.AudioStreams) > 0 && r.AudioStreams[0].BitRate > 0 {
		return r.AudioStreams[0].BitRate
	}
	return r.Format.BitRate
}
