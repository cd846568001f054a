package assets

import (
	"errors"
)

// StyleResolver combines custom and embedded loaders with fallback logic.
// When a custom loader is configured, it tries custom first, then falls
// back to embedded if the style is not found in the custom location.
type StyleResolver struct {
	custom   StyleLoader // nil if no custom path configured
	embedded StyleLoader
}

// NewStyleResolver creates a StyleResolver.
// If customBasePath is empty, only embedded styles are used.
// If customBasePath is set, custom styles take precedence with fallback to
// embedded. Returns error if customBasePath is set but invalid.
func NewStyleResolver(customBasePath string) (*StyleResolver, error) {
	resolver := &StyleResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadStyle loads a stylesheet, trying the custom loader first if available.
func (r *StyleResolver) LoadStyle(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadStyle(name)
	}

	content, err := r.custom.LoadStyle(name)
	if err == nil {
		return content, nil
	}

	// Only fall back for "not found" errors, not validation or I/O errors.
	if !errors.Is(err, ErrStyleNotFound) {
		return "", err
	}

	return r.embedded.LoadStyle(name)
}

// HasCustomLoader returns true if a custom style loader is configured.
func (r *StyleResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ StyleLoader = (*StyleResolver)(nil)
