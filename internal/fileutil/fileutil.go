// Package fileutil provides small filesystem and path classification helpers
// shared by the CLI and configuration loading.
package fileutil

import (
	"os"
	"path/filepath"
	"strings"
)

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// IsFilePath reports whether s looks like a path rather than a bare name.
// Anything containing a path separator is treated as a path.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsCSS reports whether s looks like inline CSS content rather than a style
// name or a path. A declaration block is the tell.
func IsCSS(s string) bool {
	return strings.Contains(s, "{")
}

// IsHTML reports whether path carries an HTML file extension.
func IsHTML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}
