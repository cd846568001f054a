package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrRenderFailed indicates the Markdown renderer rejected the content.
var ErrRenderFailed = errors.New("preview rendering failed")

// previewTemplate wraps goldmark's fragment output in a complete HTML5
// document.
const previewTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Preview</title>
</head>
<body>
%s
</body>
</html>`

// PreviewRenderer renders converted Markdown back to display HTML with
// goldmark (pure Go).
type PreviewRenderer struct {
	md goldmark.Markdown
}

// NewPreviewRenderer creates a PreviewRenderer tuned for status content:
// GFM extensions for strikethrough and autolinks, hard wraps because every
// line break in a post is intentional.
func NewPreviewRenderer() *PreviewRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // Strikethrough, autolinks, tables
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(), // Treat newlines as <br>
			html.WithXHTML(),     // Self-closing tags
			// Note: WithUnsafe() intentionally NOT used; raw HTML in the
			// Markdown stays escaped in the preview.
		),
	)
	return &PreviewRenderer{md: md}
}

// Render converts Markdown to a standalone HTML5 document. Supports context
// cancellation via goroutine + select pattern since goldmark doesn't
// natively support context.
func (p *PreviewRenderer) Render(ctx context.Context, markdown string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := p.md.Convert([]byte(markdown), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrRenderFailed, err)}
			return
		}
		done <- result{html: fmt.Sprintf(previewTemplate, buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// InjectStyle inserts a <style> block into a rendered preview document.
// Tries </head> first, then after <body>, then prepends to the HTML.
// CSS content is sanitized to prevent injection attacks.
func InjectStyle(htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	// Try inserting before </head>
	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	// Try inserting after <body>
	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		closeIdx := strings.Index(htmlContent[idx:], ">")
		if closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	// Fallback: prepend
	return styleBlock + htmlContent
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
