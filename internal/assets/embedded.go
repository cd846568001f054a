package assets

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed styles/*.css
var styles embed.FS

// DefaultStyleName is the built-in stylesheet used when no style is
// configured.
const DefaultStyleName = "default"

// EmbeddedLoader loads stylesheets from the embedded filesystem.
// Implements StyleLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a stylesheet from embedded assets by name.
// The name should not include the .css extension.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateStyleName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}

	return string(content), nil
}

// StyleNames returns the names of all embedded stylesheets, sorted.
func (e *EmbeddedLoader) StyleNames() []string {
	entries, err := styles.ReadDir("styles")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".css"))
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ StyleLoader = (*EmbeddedLoader)(nil)
