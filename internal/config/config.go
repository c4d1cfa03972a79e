// Package config holds runtime configuration: defaults, TOML config file
// loading, and validation. All defaults match the legacy tape2tube.py script
// for parity.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// --- Enum types for validated string fields ---

// WaveMode selects the audio visualization drawn over the background image.
type WaveMode string

const (
	WaveLine     WaveMode = "line"     // showwaves amplitude trace (default).
	WavePoint    WaveMode = "point"    // showwaves point mode.
	WaveP2P      WaveMode = "p2p"      // showwaves peak-to-peak mode.
	WaveCline    WaveMode = "cline"    // showwaves centered line mode.
	WaveSpectrum WaveMode = "spectrum" // showspectrum frequency display.
)

// IsSpectrum reports whether the mode selects the showspectrum filter rather
// than showwaves. "showspectrum" is accepted as an alias in config files.
func (m WaveMode) IsSpectrum() bool {
	return m == WaveSpectrum || m == "showspectrum"
}

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Waveform configures the optional audio-visualization overlay.
type Waveform struct {
	Enabled       bool     `toml:"enabled"`        // Default: false (plain static image).
	FPS           int      `toml:"fps"`            // Default: 30. Only used when enabled.
	Height        int      `toml:"height"`         // Default: 200 px.
	Mode          WaveMode `toml:"mode"`           // Default: "line".
	Color         string   `toml:"color"`          // Default: "white@0.8".
	SpectrumMode  string   `toml:"spectrum_mode"`  // Default: "combined".
	SpectrumSlide int      `toml:"spectrum_slide"` // Default: 1.
	SpectrumScale string   `toml:"spectrum_scale"` // Default: "lin".
}

// Config holds all runtime settings. It is populated by [DefaultConfig],
// overlaid by [Load] from the TOML config file, and finally mutated by CLI
// flag overrides before being passed (by pointer) to packages that need it.
type Config struct {
	// Work directories and files. Relative values resolve against the
	// config file's directory; CLI overrides resolve against the CWD.
	AudioDir      string `toml:"audio_dir"`      // Default: "./audio".
	ImagesDir     string `toml:"images_dir"`     // Default: "./images".
	OutDir        string `toml:"out_dir"`        // Default: "./out".
	StatePath     string `toml:"state_path"`     // Default: "./state.json".
	ClientSecrets string `toml:"client_secrets"` // Default: "./client_secrets.json".
	TokenPath     string `toml:"token_path"`     // Default: "./token.json".

	// Video metadata.
	TitlePrefix         string   `toml:"title_prefix"`         // Legacy fallback title prefix.
	Description         string   `toml:"description"`          // Fixed text appended to every description.
	DescriptionPrefix   string   `toml:"description_prefix"`   // Legacy fallback description prefix.
	TitleTemplate       string   `toml:"title_template"`       // Wins over TitlePrefix when it renders non-empty.
	DescriptionTemplate string   `toml:"description_template"` // Wins over DescriptionPrefix when it renders non-empty.
	Tags                []string `toml:"tags"`
	CategoryID          string   `toml:"category_id"`     // Default: "10" (Music).
	PrivacyStatus       string   `toml:"privacy_status"`  // Default: "unlisted".
	PlaylistID          string   `toml:"playlist_id"`     // Empty disables playlist attach.

	// Render settings.
	VideoSize string   `toml:"video_size"` // "WIDTHxHEIGHT", default "1280x720".
	Waveform  Waveform `toml:"waveform"`

	// Derived by Validate from VideoSize.
	VideoWidth  int `toml:"-"`
	VideoHeight int `toml:"-"`

	// Runtime flags (CLI only, never read from the config file).
	ConfigPath string    `toml:"-"`
	Only       string    `toml:"-"` // Process only this MP3 (name or path).
	DryRun     bool      `toml:"-"`
	Limit      int       `toml:"-"` // 0 means unlimited.
	Verbose    bool      `toml:"-"`
	CheckOnly  bool      `toml:"-"`
	ColorMode  ColorMode `toml:"-"`
	LogFile    string    `toml:"-"`
}

// DefaultConfig returns a Config with all defaults matching legacy
// tape2tube.py behavior. Used as the base before [Load] and CLI overrides.
func DefaultConfig() Config {
	return Config{
		AudioDir:          "./audio",
		ImagesDir:         "./images",
		OutDir:            "./out",
		StatePath:         "./state.json",
		ClientSecrets:     "./client_secrets.json",
		TokenPath:         "./token.json",
		DescriptionPrefix: "pocket operator tinkering - ",
		Tags:              []string{},
		CategoryID:        "10",
		PrivacyStatus:     "unlisted",
		VideoSize:         "1280x720",
		Waveform: Waveform{
			Enabled:       false,
			FPS:           30,
			Height:        200,
			Mode:          WaveLine,
			Color:         "white@0.8",
			SpectrumMode:  "combined",
			SpectrumSlide: 1,
			SpectrumScale: "lin",
		},
		ColorMode: ColorAuto,
	}
}

// Validate checks enum fields and parses VideoSize into VideoWidth/Height.
// It is called after Load and CLI overrides have been applied.
func (c *Config) Validate() error {
	switch c.Waveform.Mode {
	case WaveLine, WavePoint, WaveP2P, WaveCline, WaveSpectrum, "showspectrum":
		// valid
	default:
		return fmt.Errorf("invalid waveform mode %q (use line, point, p2p, cline or spectrum)", c.Waveform.Mode)
	}

	switch c.PrivacyStatus {
	case "public", "unlisted", "private":
		// valid
	default:
		return fmt.Errorf("invalid privacy_status %q (use public, unlisted or private)", c.PrivacyStatus)
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use auto, always or never)")
	}

	if c.Waveform.FPS <= 0 {
		return fmt.Errorf("waveform fps must be positive (got %d)", c.Waveform.FPS)
	}
	if c.Waveform.Height <= 0 {
		return fmt.Errorf("waveform height must be positive (got %d)", c.Waveform.Height)
	}

	w, h, err := ParseVideoSize(c.VideoSize)
	if err != nil {
		return err
	}
	c.VideoWidth, c.VideoHeight = w, h
	return nil
}

// ParseVideoSize splits a "WIDTHxHEIGHT" string into positive integers.
func ParseVideoSize(s string) (width, height int, err error) {
	parts := strings.SplitN(strings.TrimSpace(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid video_size %q (use WIDTHxHEIGHT, e.g. 1280x720)", s)
	}
	width, werr := strconv.Atoi(parts[0])
	height, herr := strconv.Atoi(parts[1])
	if werr != nil || herr != nil || width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("invalid video_size %q (use WIDTHxHEIGHT, e.g. 1280x720)", s)
	}
	return width, height, nil
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}
