// Package feditext converts fediverse status HTML into Markdown and plain
// text, extracting links and status references along the way.
//
// # Quick Start
//
// Convert a status body and read the derived representations:
//
//	content := feditext.Convert(html)
//	fmt.Println(content.Markdown)
//	fmt.Println(content.RawText)
//	for _, link := range content.Links {
//	    fmt.Println(link.Type, link.URL)
//	}
//
// Convert never returns an error: input the parser cannot recover yields a
// Content that keeps the original HTML and raw text but renders no
// Markdown.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Lenient HTML parsing (documents and fragments alike)
//  2. Node walk producing Markdown, links, and status-reference URLs
//  3. Trailing hashtag-cloud removal from the Markdown
//  4. Independent plain-text extraction from the original HTML
//  5. Mirrored hashtag-cloud removal from the plain text
//
// # Configuration
//
// Use functional options to customize a Converter:
//
//	conv := feditext.NewConverter(feditext.WithTrailingTags())
//	content := conv.Convert(html)
//
// # Persistence
//
// Content implements json.Marshaler and json.Unmarshaler. Encoding writes a
// structured record; decoding additionally accepts the historical bare-string
// shape (raw HTML, re-converted on load) and never returns an error, so
// cache loads always produce a usable value:
//
//	var content feditext.Content
//	_ = json.Unmarshal(cached, &content)
//
// # Preview
//
// Previewer renders a Content's Markdown as a standalone styled HTML
// document:
//
//	prev := feditext.NewPreviewer()
//	doc, err := prev.Preview(ctx, content)
//
// Converters and Previewers hold no mutable state after construction and
// are safe for concurrent use from multiple goroutines.
package feditext
