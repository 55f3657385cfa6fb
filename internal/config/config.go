// Package config reads process configuration from environment variables.
// An optional .env file is loaded by the CLI before this runs.
package config

import (
	"os"
	"strconv"
)

type Config struct {
	Output OutputConfig
	Fonts  FontConfig
}

type OutputConfig struct {
	Dir string // directory for generated files (default ".")
	DPI int    // output raster resolution (default 300)
}

type FontConfig struct {
	RegularPath string // TTF path overriding the bundled regular face
	BoldPath    string // TTF path overriding the bundled bold face
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

func envStr(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func Load() *Config {
	return &Config{
		Output: OutputConfig{
			Dir: envStr("COVERWIZARD_OUTPUT_DIR", "."),
			DPI: envInt("COVERWIZARD_DPI", 300),
		},
		Fonts: FontConfig{
			RegularPath: os.Getenv("COVERWIZARD_FONT_REGULAR"),
			BoldPath:    os.Getenv("COVERWIZARD_FONT_BOLD"),
		},
	}
}
