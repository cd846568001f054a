package feditext

import (
	"net/url"

	"github.com/alnah/go-feditext/internal/pipeline"
)

// Converter derives Content values from status HTML. A zero-configured
// Converter strips trailing hashtag clouds; use WithTrailingTags to keep
// them. Converters hold no mutable state and are safe for concurrent use
// from multiple goroutines.
type Converter struct {
	cfg converterConfig
}

// NewConverter creates a Converter.
// Use options to customize behavior (e.g., WithTrailingTags).
func NewConverter(opts ...Option) *Converter {
	c := &Converter{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// defaultConverter backs the package-level Convert.
var defaultConverter = NewConverter()

// Convert converts status HTML with the default configuration: trailing
// hashtag clouds are stripped.
func Convert(input string) *Content {
	return defaultConverter.Convert(input)
}

// Convert builds every derived representation of one status body in a
// single pass: Markdown with captured links and status references, an
// independent plain-text rendering, and the trailing-tag verdict.
//
// Convert never fails. Input the parser cannot recover becomes a Content
// that keeps the original HTML and raw text but renders no Markdown, and
// internal panics degrade the same way instead of propagating to callers.
func (c *Converter) Convert(input string) (content *Content) {
	defer func() {
		if r := recover(); r != nil {
			content = fallbackContent(input)
		}
	}()

	root, err := pipeline.ParseDocument(input)
	if err != nil {
		return fallbackContent(input)
	}

	result := pipeline.RenderMarkdown(root)

	markdown := result.Markdown
	hadTags := false
	if !c.cfg.keepTrailingTags {
		markdown, hadTags = pipeline.StripTrailingHashtags(markdown)
	}

	// Raw text is an independent pass over the original input, not a
	// de-markdowned copy of the walker output.
	rawText := pipeline.ExtractText(input)
	if hadTags {
		rawText = pipeline.StripTrailingTagText(rawText)
	}

	links := make([]Link, 0, len(result.Links))
	for _, l := range result.Links {
		links = append(links, newLink(l.URL, l.Display))
	}

	statusURLs := result.StatusURLs
	if statusURLs == nil {
		statusURLs = make([]*url.URL, 0)
	}

	return &Content{
		HTML:            input,
		Markdown:        markdown,
		RawText:         rawText,
		StatusURLs:      statusURLs,
		Links:           links,
		HadTrailingTags: hadTags,
	}
}

// fallbackContent is the degraded result for input that cannot be parsed:
// the original string doubles as the raw text and nothing else is derived.
func fallbackContent(input string) *Content {
	return &Content{
		HTML:       input,
		RawText:    input,
		StatusURLs: make([]*url.URL, 0),
		Links:      make([]Link, 0),
	}
}
