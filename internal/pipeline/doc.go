// Package pipeline implements the HTML-to-Markdown conversion pipeline.
//
// This package handles the stages between raw status HTML and its derived
// representations:
//   - Lenient HTML parsing (full documents and server fragments)
//   - Markdown rendering with link and status-reference capture
//   - Markdown-special escaping with custom-emoji awareness
//   - Repair of malformed URLs via percent-encoding
//   - Trailing hashtag-cloud stripping
//   - Plain-text extraction via tag stripping
//   - Preview rendering back to display HTML via Goldmark
//
// Assembly of the pieces into a single immutable value is handled by the
// root feditext package. This separation keeps the pipeline focused on
// individual transformations while the root package owns orchestration,
// fallback behavior, and the persisted wire shapes.
package pipeline
