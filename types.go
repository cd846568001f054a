package feditext

import (
	"net/url"
	"strings"
)

// LinkType classifies a link by what its display text denotes.
type LinkType string

// Link classification constants.
const (
	LinkTypeURL     LinkType = "url"
	LinkTypeMention LinkType = "mention"
	LinkTypeHashtag LinkType = "hashtag"
)

// Link is one anchor extracted from a status body, in document order.
type Link struct {
	URL           *url.URL // resolved target, never nil
	DisplayString string   // exactly the text rendered for the anchor
	Type          LinkType
	Title         string // precomputed display title, see newLink
}

// newLink classifies an anchor by the first character of its display text:
// @ marks a mention, # a hashtag, anything else a generic URL. The title is
// what a client shows in link previews: the tag without its #, the full
// mention handle, or the host with a leading www. stripped.
func newLink(u *url.URL, display string) Link {
	link := Link{URL: u, DisplayString: display}
	switch {
	case strings.HasPrefix(display, "@"):
		link.Type = LinkTypeMention
		link.Title = display
	case strings.HasPrefix(display, "#"):
		link.Type = LinkTypeHashtag
		link.Title = strings.TrimPrefix(display, "#")
	default:
		link.Type = LinkTypeURL
		link.Title = strings.TrimPrefix(u.Host, "www.")
	}
	return link
}

// Content is the immutable result of converting one status body. All fields
// are derived once at construction; treat the value as read-only afterwards
// and it is safe for concurrent reads.
type Content struct {
	// HTML is the original input, retained for fallback and re-encoding.
	HTML string

	// Markdown is the rendering used for styled display. It never begins
	// with a newline.
	Markdown string

	// RawText is the plain-text rendering used for search, accessibility
	// and notifications.
	RawText string

	// StatusURLs lists links that appear to point at other posts, in
	// document order, duplicates preserved. Used for reply and quote
	// detection.
	StatusURLs []*url.URL

	// Links holds one entry per resolvable anchor, in document order.
	Links []Link

	// HadTrailingTags reports that a trailing hashtag-cloud paragraph was
	// found and removed.
	HadTrailingTags bool
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	keepTrailingTags bool
}

// WithTrailingTags keeps the trailing hashtag-cloud paragraph in the
// Markdown and raw-text renderings instead of stripping it. Content
// converted this way always reports HadTrailingTags == false, since
// nothing was removed.
func WithTrailingTags() Option {
	return func(c *Converter) {
		c.cfg.keepTrailingTags = true
	}
}
