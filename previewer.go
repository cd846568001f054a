package feditext

import (
	"context"
	"errors"
	"fmt"

	"github.com/alnah/go-feditext/internal/assets"
	"github.com/alnah/go-feditext/internal/pipeline"
)

// DefaultStyle is the name of the built-in preview stylesheet.
const DefaultStyle = "default"

// PreviewOption configures a Previewer.
type PreviewOption func(*Previewer)

// previewConfig holds internal configuration for Previewer.
type previewConfig struct {
	style   string
	noStyle bool
}

// WithPreviewStyle sets the CSS injected into rendered preview documents.
// The argument is raw CSS content; resolving style names or file paths is
// the caller's job.
func WithPreviewStyle(css string) PreviewOption {
	return func(p *Previewer) {
		p.cfg.style = css
	}
}

// WithoutPreviewStyle disables stylesheet injection entirely, leaving the
// rendered document unstyled.
func WithoutPreviewStyle() PreviewOption {
	return func(p *Previewer) {
		p.cfg.noStyle = true
	}
}

// Previewer renders converted content as a standalone HTML document, for
// checking what a status will look like before it is displayed. Previewers
// are read-only after construction and safe for concurrent use.
type Previewer struct {
	cfg      previewConfig
	renderer *pipeline.PreviewRenderer
}

// NewPreviewer creates a Previewer. Without options it injects the
// built-in stylesheet; use WithPreviewStyle for custom CSS or
// WithoutPreviewStyle for none.
func NewPreviewer(opts ...PreviewOption) *Previewer {
	p := &Previewer{renderer: pipeline.NewPreviewRenderer()}
	for _, opt := range opts {
		opt(p)
	}

	if p.cfg.style == "" && !p.cfg.noStyle {
		if css, err := assets.NewEmbeddedLoader().LoadStyle(DefaultStyle); err == nil {
			p.cfg.style = css
		}
	}
	return p
}

// Preview renders content.Markdown into a complete HTML document with the
// configured stylesheet inlined. Returns ErrNilContent for nil content and
// wraps renderer failures in ErrPreviewRender; context cancellation is
// returned as-is.
func (p *Previewer) Preview(ctx context.Context, content *Content) (string, error) {
	if content == nil {
		return "", ErrNilContent
	}

	rendered, err := p.renderer.Render(ctx, content.Markdown)
	if err != nil {
		if errors.Is(err, pipeline.ErrRenderFailed) {
			return "", fmt.Errorf("%w: %v", ErrPreviewRender, err)
		}
		return "", err
	}

	if p.cfg.noStyle || p.cfg.style == "" {
		return rendered, nil
	}
	return pipeline.InjectStyle(rendered, p.cfg.style), nil
}
