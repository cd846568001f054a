// Package config loads and validates YAML configuration for the feditext CLI.
//
// Configuration is resolved by name or by path. A bare name is searched in
// the current directory first, then in the user configuration directory
// under go-feditext/. Anything containing a path separator is treated as an
// explicit path and loaded directly.
//
// All fields are optional; flags and environment variables override file
// values, and DefaultConfig supplies the rest.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-feditext/internal/fileutil"
	"github.com/alnah/go-feditext/internal/yamlutil"
)

var (
	// ErrConfigNotFound is returned when no candidate path holds a config file.
	ErrConfigNotFound = errors.New("config not found")

	// ErrEmptyConfigName is returned when the config name or path is empty.
	ErrEmptyConfigName = errors.New("config name is empty")

	// ErrConfigParse is returned when a config file exists but cannot be parsed.
	ErrConfigParse = errors.New("config parse failed")

	// ErrFieldTooLong is returned when a string field exceeds its length limit.
	ErrFieldTooLong = errors.New("config field too long")

	// ErrInvalidFormat is returned when format.name is not a known output format.
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrInvalidWorkers is returned when workers.count is negative.
	ErrInvalidWorkers = errors.New("invalid worker count")
)

// Field length limits. Paths get the usual filesystem bound; the style field
// is larger because it may carry a name, a path, or short inline CSS.
const (
	MaxPathLength  = 4096
	MaxStyleLength = 8192
	MaxWorkers     = 256
)

// configFileExtensions lists the extensions tried when resolving a bare name.
var configFileExtensions = []string{".yaml", ".yml"}

// searchDirName is the subdirectory of os.UserConfigDir searched for configs.
const searchDirName = "go-feditext"

// Config mirrors the YAML file layout. Unknown fields are rejected at parse
// time so typos do not silently disappear.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Format  FormatConfig  `yaml:"format"`
	Preview PreviewConfig `yaml:"preview"`
	Assets  AssetsConfig  `yaml:"assets"`
	Convert ConvertConfig `yaml:"convert"`
	Workers WorkersConfig `yaml:"workers"`
}

// InputConfig controls where input files are looked up.
type InputConfig struct {
	// DefaultDir is converted when no input argument is given.
	DefaultDir string `yaml:"defaultDir"`
}

// OutputConfig controls where converted files are written.
type OutputConfig struct {
	// DefaultDir receives outputs when set; otherwise outputs land next to
	// their inputs.
	DefaultDir string `yaml:"defaultDir"`
}

// FormatConfig selects the default output format.
type FormatConfig struct {
	// Name is one of: markdown, text, json, links, html.
	Name string `yaml:"name"`

	// Pretty indents JSON output.
	Pretty bool `yaml:"pretty"`
}

// PreviewConfig controls HTML preview styling.
type PreviewConfig struct {
	// Style is a style name, a path to a CSS file, or inline CSS.
	Style string `yaml:"style"`

	// NoStyle disables stylesheet injection entirely.
	NoStyle bool `yaml:"noStyle"`
}

// AssetsConfig points at user-provided assets.
type AssetsConfig struct {
	// BasePath is a directory containing a styles/ subdirectory with custom
	// CSS files. Embedded styles remain available as fallback.
	BasePath string `yaml:"basePath"`
}

// ConvertConfig tunes conversion behavior.
type ConvertConfig struct {
	// KeepTrailingTags preserves trailing hashtag lines instead of
	// stripping them.
	KeepTrailingTags bool `yaml:"keepTrailingTags"`
}

// WorkersConfig bounds batch parallelism.
type WorkersConfig struct {
	// Count is the number of concurrent conversions. Zero means one worker
	// per CPU.
	Count int `yaml:"count"`
}

// ValidFormats returns the accepted output format names in display order.
func ValidFormats() []string {
	return []string{"markdown", "text", "json", "links", "html"}
}

// IsValidFormat reports whether name is an accepted output format.
func IsValidFormat(name string) bool {
	for _, f := range ValidFormats() {
		if name == f {
			return true
		}
	}
	return false
}

// DefaultConfig returns the configuration used when no file is loaded.
func DefaultConfig() Config {
	return Config{
		Format: FormatConfig{Name: "markdown"},
	}
}

// Validate checks field lengths and enumerated values.
func (c *Config) Validate() error {
	checks := []struct {
		field string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"preview.style", c.Preview.Style, MaxStyleLength},
	}
	for _, check := range checks {
		if err := validateFieldLength(check.field, check.value, check.max); err != nil {
			return err
		}
	}

	if c.Format.Name != "" && !IsValidFormat(c.Format.Name) {
		return fmt.Errorf("%w: %q (valid: %s)",
			ErrInvalidFormat, c.Format.Name, strings.Join(ValidFormats(), ", "))
	}

	if c.Workers.Count < 0 || c.Workers.Count > MaxWorkers {
		return fmt.Errorf("%w: %d (must be 0..%d)",
			ErrInvalidWorkers, c.Workers.Count, MaxWorkers)
	}

	return nil
}

func validateFieldLength(field, value string, max int) error {
	if len(value) > max {
		return fmt.Errorf("%w: %s (%d chars, max %d)",
			ErrFieldTooLong, field, len(value), max)
	}
	return nil
}

// SearchPaths returns the candidate paths tried for a bare config name, in
// resolution order. Useful for error messages when nothing is found.
func SearchPaths(name string) []string {
	var paths []string
	for _, ext := range configFileExtensions {
		paths = append(paths, name+ext)
	}
	if userDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range configFileExtensions {
			paths = append(paths, filepath.Join(userDir, searchDirName, name+ext))
		}
	}
	return paths
}

// LoadConfig loads a configuration by name or path. The result is validated
// before being returned.
func LoadConfig(nameOrPath string) (Config, error) {
	if nameOrPath == "" {
		return Config{}, ErrEmptyConfigName
	}

	path := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) && !fileutil.FileExists(nameOrPath) {
		resolved, err := resolveConfigPath(nameOrPath)
		if err != nil {
			return Config{}, err
		}
		path = resolved
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from user flags
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, candidate := range tried {
		if fileutil.FileExists(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
