package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-feditext/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string // FEDITEXT_CONFIG: config file name or path
	Format     string // FEDITEXT_FORMAT: output format name
	Style      string // FEDITEXT_STYLE: style name, path, or inline CSS

	// Tier 2 - I/O
	InputDir  string // FEDITEXT_INPUT_DIR: default input directory
	OutputDir string // FEDITEXT_OUTPUT_DIR: default output directory
	AssetPath string // FEDITEXT_ASSETS: custom asset directory

	// Tier 3 - Extended
	Workers          int  // FEDITEXT_WORKERS: parallel workers
	Pretty           bool // FEDITEXT_PRETTY: indent JSON output
	NoStyle          bool // FEDITEXT_NO_STYLE: disable preview styling
	KeepTrailingTags bool // FEDITEXT_KEEP_TRAILING_TAGS: keep the tag paragraph
}

// knownEnvVars lists valid FEDITEXT_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"FEDITEXT_CONFIG": true,
	"FEDITEXT_FORMAT": true,
	"FEDITEXT_STYLE":  true,
	// Tier 2 - I/O
	"FEDITEXT_INPUT_DIR":  true,
	"FEDITEXT_OUTPUT_DIR": true,
	"FEDITEXT_ASSETS":     true,
	// Tier 3 - Extended
	"FEDITEXT_WORKERS":            true,
	"FEDITEXT_PRETTY":             true,
	"FEDITEXT_NO_STYLE":           true,
	"FEDITEXT_KEEP_TRAILING_TAGS": true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized FEDITEXT_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		// Tier 1
		ConfigPath: os.Getenv("FEDITEXT_CONFIG"),
		Format:     os.Getenv("FEDITEXT_FORMAT"),
		Style:      os.Getenv("FEDITEXT_STYLE"),
		// Tier 2
		InputDir:  os.Getenv("FEDITEXT_INPUT_DIR"),
		OutputDir: os.Getenv("FEDITEXT_OUTPUT_DIR"),
		AssetPath: os.Getenv("FEDITEXT_ASSETS"),
	}

	// Parse int for workers
	if workers := os.Getenv("FEDITEXT_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	cfg.Pretty = envBool("FEDITEXT_PRETTY")
	cfg.NoStyle = envBool("FEDITEXT_NO_STYLE")
	cfg.KeepTrailingTags = envBool("FEDITEXT_KEEP_TRAILING_TAGS")

	return cfg
}

// envBool parses a boolean environment variable. Unset or unparseable
// values read as false.
func envBool(name string) bool {
	v := os.Getenv(name)
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// warnUnknownEnvVars logs warnings for unrecognized FEDITEXT_* variables.
// Helps catch typos like FEDITEXT_FROMAT instead of FEDITEXT_FORMAT.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "FEDITEXT_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Environment values override file values; CLI flags are applied after via
// mergeFlags, giving: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Format != "" {
		cfg.Format.Name = env.Format
	}
	if env.Style != "" {
		cfg.Preview.Style = env.Style
	}
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.Workers > 0 {
		cfg.Workers.Count = env.Workers
	}
	if env.Pretty {
		cfg.Format.Pretty = true
	}
	if env.NoStyle {
		cfg.Preview.NoStyle = true
	}
	if env.KeepTrailingTags {
		cfg.Convert.KeepTrailingTags = true
	}
}
