// Package hints builds actionable suggestions appended to CLI error output.
//
// Each function returns a ready-to-print string (empty when there is nothing
// useful to say) so callers can concatenate it to an error message without
// further formatting.
package hints

import (
	"fmt"
	"strings"
)

// format renders each hint on its own indented line.
func format(hints ...string) string {
	var b strings.Builder
	for _, h := range hints {
		b.WriteString("\n  hint: ")
		b.WriteString(h)
	}
	return b.String()
}

// ForConfigNotFound suggests how to make a config file discoverable.
func ForConfigNotFound(searchedPaths []string) string {
	hints := []string{
		"pass --config with an explicit path, or place the file in one of the searched locations",
	}
	if len(searchedPaths) > 0 {
		hints = append(hints, fmt.Sprintf("searched: %s", strings.Join(searchedPaths, ", ")))
	}
	hints = append(hints, "a user-wide config lives in ~/.config/go-feditext/<name>.yaml")
	return format(hints...)
}

// ForInputNotFound suggests how inputs are discovered.
func ForInputNotFound() string {
	return format(
		"check the path; directories are searched recursively for .html and .htm files",
		"pass - to read a single document from stdin",
	)
}

// ForOutputDirectory suggests fixes for unwritable output locations.
func ForOutputDirectory() string {
	return format(
		"ensure the output directory exists and is writable",
		"use --output to write somewhere else",
	)
}

// ForStyleNotFound lists the styles that are available.
func ForStyleNotFound(available []string) string {
	hints := []string{
		"--style accepts a style name, a path to a CSS file, or inline CSS",
	}
	if len(available) > 0 {
		hints = append(hints, fmt.Sprintf("embedded styles: %s", strings.Join(available, ", ")))
	}
	hints = append(hints, "custom styles are read from <basePath>/styles/<name>.css (see --assets)")
	return format(hints...)
}

// ForUnknownFormat lists the accepted output formats.
func ForUnknownFormat(valid []string) string {
	return format(fmt.Sprintf("valid formats: %s", strings.Join(valid, ", ")))
}
