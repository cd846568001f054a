package pipeline

import (
	stdhtml "html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// textPolicy strips every tag and attribute, leaving only text content.
var textPolicy = bluemonday.StrictPolicy()

// ExtractText produces the plain-text rendition of a status body. This is
// an independent pass over the original HTML, not a de-markdowned version
// of the Markdown output: line structure is preserved by planting a newline
// marker after every <br> and a paragraph break after every <p> before the
// tags are stripped. Unparseable input comes back untouched.
func ExtractText(content string) string {
	root, isFragment, err := parseHTML(content)
	if err != nil {
		return content
	}

	// Collect first, insert after. Planting nodes mid-walk would rewrite
	// the sibling chains the walk is iterating.
	var breaks, paragraphs []*html.Node
	collectBreakpoints(root, &breaks, &paragraphs)

	for _, n := range breaks {
		insertMarkerAfter(n, "\n")
	}
	for _, n := range paragraphs {
		insertMarkerAfter(n, "\n\n")
	}

	rendered, err := renderHTML(root, isFragment)
	if err != nil {
		return content
	}

	text := textPolicy.Sanitize(rendered)
	text = stdhtml.UnescapeString(text)
	return strings.TrimSuffix(text, "\n\n")
}

func collectBreakpoints(n *html.Node, breaks, paragraphs *[]*html.Node) {
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "br":
			*breaks = append(*breaks, n)
		case "p":
			*paragraphs = append(*paragraphs, n)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectBreakpoints(c, breaks, paragraphs)
	}
}

// insertMarkerAfter places a text node holding marker immediately after n.
func insertMarkerAfter(n *html.Node, marker string) {
	if n.Parent == nil {
		return
	}
	n.Parent.InsertBefore(&html.Node{Type: html.TextNode, Data: marker}, n.NextSibling)
}
