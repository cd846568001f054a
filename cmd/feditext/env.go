package main

import (
	"io"
	"os"

	"github.com/alnah/go-feditext/internal/assets"
)

// Environment holds injectable dependencies for testability.
// Includes I/O streams and style loading.
type Environment struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Styles assets.StyleLoader
}

// DefaultEnv returns the production environment with embedded styles.
func DefaultEnv() *Environment {
	return &Environment{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Styles: assets.NewEmbeddedLoader(),
	}
}
