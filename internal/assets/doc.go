// Package assets provides the CSS stylesheets used by preview rendering.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	StyleLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in styles)
//	    ├── FilesystemLoader  - loads from a custom directory on disk
//	    └── StyleResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in styles (default, dark) embedded at
// compile time.
//
// FilesystemLoader allows users to provide custom stylesheets from a
// directory, with path traversal protection and symlink resolution.
//
// StyleResolver is the loader the CLI uses. It tries the custom
// FilesystemLoader first, falling back to EmbeddedLoader if the style is
// not found in the custom location. This enables overriding specific styles
// while keeping the defaults.
//
// # Directory Structure
//
//	{basePath}/
//	└── styles/
//	    └── {name}.css           # stylesheets (e.g., dark.css)
//
// # Security
//
// Style names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
