// Package config loads thermview's runtime settings the way the teacher
// loads its update/GitHub-token settings (pkg/cli/dotenv.go, superseded here
// by the real github.com/joho/godotenv): an optional .env file is loaded
// first, then THERMVIEW_* environment variables override its values, and
// finally cobra flags (applied by the caller) override both.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the settings that can come from .env/environment rather than
// being mandatory CLI arguments.
type Config struct {
	Palette       string // output palette name: iron|grayscale|rainbow; empty means the determined input palette
	Interpolation string // interpolation mode name
	Quantization  string // quantization mode name
	LogFile       string // rotated log file path; empty means stderr only
	LogDebug      bool
}

// Default returns the built-in defaults before any .env/environment layer
// is applied.
func Default() Config {
	return Config{
		Palette:       "",
		Interpolation: "square_small",
		Quantization:  "floor",
		LogFile:       "",
		LogDebug:      false,
	}
}

// Load reads an optional .env file (missing is not an error — the teacher's
// dotenv.go has the same "ignore if absent" behavior) and applies any
// THERMVIEW_* overrides on top of Default().
func Load() Config {
	_ = godotenv.Load()

	cfg := Default()
	if v := os.Getenv("THERMVIEW_PALETTE"); v != "" {
		cfg.Palette = v
	}
	if v := os.Getenv("THERMVIEW_INTERPOLATION"); v != "" {
		cfg.Interpolation = v
	}
	if v := os.Getenv("THERMVIEW_QUANTIZATION"); v != "" {
		cfg.Quantization = v
	}
	if v := os.Getenv("THERMVIEW_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("THERMVIEW_LOG_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogDebug = b
		}
	}
	return cfg
}
