package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Load reads the TOML config file at path into cfg. A missing file is not an
// error: defaults simply apply, matching the legacy script. After decoding,
// every relative path option is resolved against the config file's directory
// so a run started from anywhere sees the same tree.
func Load(cfg *Config, path string) error {
	cfg.ConfigPath = path

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// No config file: defaults apply, but still anchor relative paths.
	case err != nil:
		return fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	base := filepath.Dir(path)
	cfg.AudioDir = resolveAgainst(base, cfg.AudioDir)
	cfg.ImagesDir = resolveAgainst(base, cfg.ImagesDir)
	cfg.OutDir = resolveAgainst(base, cfg.OutDir)
	cfg.StatePath = resolveAgainst(base, cfg.StatePath)
	cfg.ClientSecrets = resolveAgainst(base, cfg.ClientSecrets)
	cfg.TokenPath = resolveAgainst(base, cfg.TokenPath)
	return nil
}

// ApplyEnv overlays credential path overrides from the environment (typically
// loaded from .env by the CLI). Absolute or relative to the CWD.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("TAPE2TUBE_CLIENT_SECRETS"); v != "" {
		c.ClientSecrets = v
	}
	if v := os.Getenv("TAPE2TUBE_TOKEN"); v != "" {
		c.TokenPath = v
	}
}

// resolveAgainst joins a relative path onto base; absolute paths win.
func resolveAgainst(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
