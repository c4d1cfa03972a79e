package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.AudioDir != "./audio" || cfg.ImagesDir != "./images" || cfg.OutDir != "./out" {
		t.Errorf("unexpected dir defaults: %q %q %q", cfg.AudioDir, cfg.ImagesDir, cfg.OutDir)
	}
	if cfg.CategoryID != "10" {
		t.Errorf("CategoryID = %q, want 10 (Music)", cfg.CategoryID)
	}
	if cfg.PrivacyStatus != "unlisted" {
		t.Errorf("PrivacyStatus = %q, want unlisted", cfg.PrivacyStatus)
	}
	if cfg.VideoSize != "1280x720" {
		t.Errorf("VideoSize = %q, want 1280x720", cfg.VideoSize)
	}
	if cfg.Waveform.Enabled {
		t.Error("waveform overlay should be off by default")
	}
	if cfg.Waveform.FPS != 30 || cfg.Waveform.Height != 200 || cfg.Waveform.Mode != WaveLine {
		t.Errorf("unexpected waveform defaults: %+v", cfg.Waveform)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	if cfg.VideoWidth != 1280 || cfg.VideoHeight != 720 {
		t.Errorf("derived size = %dx%d, want 1280x720", cfg.VideoWidth, cfg.VideoHeight)
	}
}

func TestLoad_MissingFileKeepsDefaults(t *testing.T) {
	cfg := DefaultConfig()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := Load(&cfg, path); err != nil {
		t.Fatalf("Load with missing file: %v", err)
	}
	if cfg.CategoryID != "10" {
		t.Errorf("defaults were disturbed: CategoryID = %q", cfg.CategoryID)
	}
	// Relative defaults still anchor to the config file's directory.
	if cfg.AudioDir != filepath.Join(filepath.Dir(path), "audio") {
		t.Errorf("AudioDir = %q, want resolved against %s", cfg.AudioDir, filepath.Dir(path))
	}
}

func TestLoad_TOMLOverridesAndPathResolution(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
audio_dir = "tapes"
state_path = "/var/lib/t2t/state.json"
title_template = "{basename} | session"
tags = ["chiptune", "po"]
privacy_status = "public"
video_size = "1920x1080"

[waveform]
enabled = true
mode = "spectrum"
fps = 24
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := Load(&cfg, path); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.AudioDir != filepath.Join(dir, "tapes") {
		t.Errorf("AudioDir = %q, want resolved against config dir", cfg.AudioDir)
	}
	if cfg.StatePath != "/var/lib/t2t/state.json" {
		t.Errorf("absolute StatePath was rewritten: %q", cfg.StatePath)
	}
	if cfg.TitleTemplate != "{basename} | session" {
		t.Errorf("TitleTemplate = %q", cfg.TitleTemplate)
	}
	if len(cfg.Tags) != 2 || cfg.Tags[0] != "chiptune" {
		t.Errorf("Tags = %v", cfg.Tags)
	}
	if !cfg.Waveform.Enabled || cfg.Waveform.Mode != WaveSpectrum || cfg.Waveform.FPS != 24 {
		t.Errorf("waveform = %+v", cfg.Waveform)
	}
	// Untouched waveform fields keep their defaults.
	if cfg.Waveform.Height != 200 || cfg.Waveform.Color != "white@0.8" {
		t.Errorf("partial [waveform] table clobbered defaults: %+v", cfg.Waveform)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.VideoWidth != 1920 || cfg.VideoHeight != 1080 {
		t.Errorf("derived size = %dx%d", cfg.VideoWidth, cfg.VideoHeight)
	}
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("audio_dir = [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	if err := Load(&cfg, path); err == nil {
		t.Error("want parse error for malformed TOML")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("TAPE2TUBE_CLIENT_SECRETS", "/secrets/cs.json")
	t.Setenv("TAPE2TUBE_TOKEN", "/secrets/token.json")

	cfg := DefaultConfig()
	cfg.ApplyEnv()
	if cfg.ClientSecrets != "/secrets/cs.json" {
		t.Errorf("ClientSecrets = %q", cfg.ClientSecrets)
	}
	if cfg.TokenPath != "/secrets/token.json" {
		t.Errorf("TokenPath = %q", cfg.TokenPath)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"spectrum mode", func(c *Config) { c.Waveform.Mode = WaveSpectrum }, false},
		{"showspectrum alias", func(c *Config) { c.Waveform.Mode = "showspectrum" }, false},
		{"bad waveform mode", func(c *Config) { c.Waveform.Mode = "zigzag" }, true},
		{"bad privacy", func(c *Config) { c.PrivacyStatus = "secret" }, true},
		{"bad color mode", func(c *Config) { c.ColorMode = "sometimes" }, true},
		{"zero fps", func(c *Config) { c.Waveform.FPS = 0 }, true},
		{"negative height", func(c *Config) { c.Waveform.Height = -1 }, true},
		{"bad video size", func(c *Config) { c.VideoSize = "wide" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseVideoSize(t *testing.T) {
	tests := []struct {
		in      string
		w, h    int
		wantErr bool
	}{
		{"1280x720", 1280, 720, false},
		{"1920x1080", 1920, 1080, false},
		{" 640x480 ", 640, 480, false},
		{"1280", 0, 0, true},
		{"x720", 0, 0, true},
		{"1280x", 0, 0, true},
		{"0x720", 0, 0, true},
		{"-1x720", 0, 0, true},
		{"axb", 0, 0, true},
	}
	for _, tt := range tests {
		w, h, err := ParseVideoSize(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseVideoSize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && (w != tt.w || h != tt.h) {
			t.Errorf("ParseVideoSize(%q) = %dx%d, want %dx%d", tt.in, w, h, tt.w, tt.h)
		}
	}
}

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct{ in, want string }{
		{"/music/", "/music"},
		{"/music//", "/music"},
		{"audio", "audio"},
		{"/", "/"},
	}
	for _, tt := range tests {
		if got := NormalizeDirArg(tt.in); got != tt.want {
			t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
