package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	feditext "github.com/alnah/go-feditext"
)

// outputFormat describes one output rendering.
type outputFormat struct {
	name string
	ext  string
}

// outputFormats maps --format values to their descriptors.
var outputFormats = map[string]outputFormat{
	"markdown": {name: "markdown", ext: ".md"},
	"text":     {name: "text", ext: ".txt"},
	"json":     {name: "json", ext: ".json"},
	"links":    {name: "links", ext: ".links"},
	"html":     {name: "html", ext: ".preview.html"},
}

// formatByName returns the descriptor for a validated format name.
func formatByName(name string) outputFormat {
	return outputFormats[name]
}

// renderContent converts one HTML document and renders it in the selected
// format. Text formats end with a newline.
func renderContent(ctx context.Context, params *conversionParams, input string) ([]byte, error) {
	content := params.converter.Convert(input)

	switch params.format.name {
	case "markdown":
		return []byte(content.Markdown + "\n"), nil
	case "text":
		return []byte(content.RawText + "\n"), nil
	case "json":
		return renderJSON(content, params.pretty)
	case "links":
		return renderLinks(content), nil
	case "html":
		rendered, err := params.previewer.Preview(ctx, content)
		if err != nil {
			return nil, err
		}
		return []byte(rendered), nil
	default:
		return nil, fmt.Errorf("unknown format %q", params.format.name)
	}
}

// renderJSON encodes the full conversion result.
func renderJSON(content *feditext.Content, pretty bool) ([]byte, error) {
	var (
		out []byte
		err error
	)
	if pretty {
		out, err = json.MarshalIndent(content, "", "  ")
	} else {
		out, err = json.Marshal(content)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding JSON: %w", err)
	}
	return append(out, '\n'), nil
}

// renderLinks writes one tab-separated "type url display title" row per
// link. Tabs and newlines inside fields are flattened to spaces so rows
// stay parseable.
func renderLinks(content *feditext.Content) []byte {
	var b bytes.Buffer
	for _, link := range content.Links {
		fields := [4]string{
			string(link.Type),
			link.URL.String(),
			link.DisplayString,
			link.Title,
		}
		for i, field := range fields {
			if i > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(flattenField(field))
		}
		b.WriteByte('\n')
	}
	return b.Bytes()
}

func flattenField(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
