package feditext

import (
	"net/url"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// contentRecord is the structured persisted shape of a Content. Encoding
// always writes every modern key; decoding also accepts the older
// markdown/rawText spellings found in records written before the rename.
type contentRecord struct {
	HTML            string       `json:"htmlValue"`
	Markdown        string       `json:"asMarkdown"`
	RawText         string       `json:"asRawText"`
	StatusURLs      []string     `json:"statusesURLs"`
	Links           []linkRecord `json:"links"`
	HadTrailingTags bool         `json:"hadTrailingTags"`

	LegacyMarkdown string `json:"markdown,omitempty"`
	LegacyRawText  string `json:"rawText,omitempty"`
}

// linkRecord is the persisted shape of a Link.
type linkRecord struct {
	URL           string `json:"url"`
	DisplayString string `json:"displayString"`
	Type          string `json:"type"`
	Title         string `json:"title"`
}

// MarshalJSON encodes the structured persisted shape. Every field is
// present in the output, so decoding reproduces the Content exactly
// without re-deriving anything from the HTML.
func (c Content) MarshalJSON() ([]byte, error) {
	statusURLs := make([]string, 0, len(c.StatusURLs))
	for _, u := range c.StatusURLs {
		statusURLs = append(statusURLs, u.String())
	}

	links := make([]linkRecord, 0, len(c.Links))
	for _, l := range c.Links {
		links = append(links, linkRecord{
			URL:           l.URL.String(),
			DisplayString: l.DisplayString,
			Type:          string(l.Type),
			Title:         l.Title,
		})
	}

	return json.Marshal(contentRecord{
		HTML:            c.HTML,
		Markdown:        c.Markdown,
		RawText:         c.RawText,
		StatusURLs:      statusURLs,
		Links:           links,
		HadTrailingTags: c.HadTrailingTags,
	})
}

// UnmarshalJSON decodes either historical persisted shape, chosen by the
// leading JSON token: a bare string holds raw HTML and triggers a full
// re-conversion, an object is the structured record and is restored
// field-for-field. Anything else, including a corrupt record, resets the
// value to its empty state; decoding never returns an error, so a cache
// load always yields a usable value.
func (c *Content) UnmarshalJSON(data []byte) error {
	switch leadingToken(data) {
	case '"':
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			*c = Content{}
			return nil
		}
		*c = *Convert(raw)
	case '{':
		var rec contentRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			*c = Content{}
			return nil
		}
		*c = rec.content()
	default:
		*c = Content{}
	}
	return nil
}

// leadingToken returns the first byte of data that is not JSON whitespace,
// or 0 when there is none.
func leadingToken(data []byte) byte {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}

// content rebuilds a Content from a decoded record. Stored URL strings
// that no longer parse are skipped rather than failing the whole record.
// hadTrailingTags is absent from records written before tag stripping
// existed and defaults to false.
func (r contentRecord) content() Content {
	markdown := r.Markdown
	if markdown == "" {
		markdown = r.LegacyMarkdown
	}
	rawText := r.RawText
	if rawText == "" {
		rawText = r.LegacyRawText
	}

	statusURLs := make([]*url.URL, 0, len(r.StatusURLs))
	for _, s := range r.StatusURLs {
		u, err := url.Parse(s)
		if err != nil {
			continue
		}
		statusURLs = append(statusURLs, u)
	}

	links := make([]Link, 0, len(r.Links))
	for _, lr := range r.Links {
		u, err := url.Parse(lr.URL)
		if err != nil {
			continue
		}
		links = append(links, Link{
			URL:           u,
			DisplayString: lr.DisplayString,
			Type:          LinkType(lr.Type),
			Title:         lr.Title,
		})
	}

	return Content{
		HTML:            r.HTML,
		Markdown:        markdown,
		RawText:         rawText,
		StatusURLs:      statusURLs,
		Links:           links,
		HadTrailingTags: r.HadTrailingTags,
	}
}
