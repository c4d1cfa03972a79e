package probe

import "testing"

const sampleMP3JSON = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "mp3",
      "codec_type": "audio",
      "sample_rate": "44100",
      "channels": 2,
      "channel_layout": "stereo",
      "bit_rate": "192000"
    }
  ],
  "format": {
    "filename": "take1.mp3",
    "format_name": "mp3",
    "duration": "183.562449",
    "size": "4405498",
    "bit_rate": "192015"
  }
}`

func TestParseJSON(t *testing.T) {
	res, err := ParseJSON([]byte(sampleMP3JSON))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}

	if res.Format.FormatName != "mp3" {
		t.Errorf("FormatName = %q", res.Format.FormatName)
	}
	if res.Format.Duration < 183 || res.Format.Duration > 184 {
		t.Errorf("Duration = %f", res.Format.Duration)
	}
	if res.Format.Size != 4405498 {
		t.Errorf("Size = %d", res.Format.Size)
	}

	if len(res.AudioStreams) != 1 {
		t.Fatalf("got %d audio streams, want 1", len(res.AudioStreams))
	}
	s := res.AudioStreams[0]
	if s.Codec != "mp3" || s.Channels != 2 || s.SampleRate != 44100 {
		t.Errorf("stream = %+v", s)
	}
	if s.BitRate != 192000 {
		t.Errorf("stream BitRate = %d", s.BitRate)
	}
}

func TestParseJSON_SkipsNonAudioStreams(t *testing.T) {
	data := `{
	  "streams": [
	    {"index": 0, "codec_name": "mjpeg", "codec_type": "video"},
	    {"index": 1, "codec_name": "mp3", "codec_type": "audio", "bit_rate": "128000"}
	  ],
	  "format": {"format_name": "mp3"}
	}`
	res, err := ParseJSON([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.AudioStreams) != 1 || res.AudioStreams[0].Codec != "mp3" {
		t.Errorf("audio streams = %+v, want the embedded cover art filtered out", res.AudioStreams)
	}
}

func TestParseJSON_Invalid(t *testing.T) {
	if _, err := ParseJSON([]byte("not json")); err == nil {
		t.Error("want error for invalid JSON")
	}
}

func TestAudioBitRate(t *testing.T) {
	tests := []struct {
		name string
		res  Result
		want int64
	}{
		{
			"stream rate wins",
			Result{Format: FormatInfo{BitRate: 192015}, AudioStreams: []AudioStream{{BitRate: 192000}}},
			192000,
		},
		{
			"zero stream rate falls back to format",
			Result{Format: FormatInfo{BitRate: 192015}, AudioStreams: []AudioStream{{BitRate: 0}}},
			192015,
		},
		{
			"no streams falls back to format",
			Result{Format: FormatInfo{BitRate: 128000}},
			128000,
		},
		{
			"nothing known",
			Result{},
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.res.AudioBitRate(); got != tt.want {
				t.Errorf("AudioBitRate() = %d, want %d", got, tt.want)
			}
		})
	}
}
