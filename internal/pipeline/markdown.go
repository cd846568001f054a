package pipeline

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// LinkData is one anchor captured during rendering: the resolved target and
// the exact text that was displayed for it.
type LinkData struct {
	URL     *url.URL
	Display string
}

// RenderResult is the outcome of a single Markdown rendering pass over a
// parsed status body.
type RenderResult struct {
	Markdown   string
	Links      []LinkData
	StatusURLs []*url.URL
}

// renderer accumulates Markdown output and link metadata during a walk.
// indent and skipParagraph travel down the recursion as plain values so a
// deeper level can never leak state back to its parent; only the output
// buffer, the link slices and the ordered-list counters are shared.
type renderer struct {
	buf          strings.Builder
	links        []LinkData
	statusURLs   []*url.URL
	listCounters []int
}

// RenderMarkdown walks a parsed HTML tree and produces Markdown in the
// dialect fediverse clients expect, plus the anchors and status references
// encountered along the way. The walk never fails: unknown elements render
// their children, unresolvable hrefs degrade to their raw text.
func RenderMarkdown(root *html.Node) *RenderResult {
	r := &renderer{}
	r.walkChildren(root, 0, false)

	markdown := strings.TrimLeft(r.buf.String(), "\n")
	markdown = strings.TrimRight(markdown, " \n")

	return &RenderResult{
		Markdown:   markdown,
		Links:      r.links,
		StatusURLs: r.statusURLs,
	}
}

// walk renders a single node. skipParagraph is set while inside a list item,
// where paragraph spacing would break the item layout.
func (r *renderer) walk(n *html.Node, indent int, skipParagraph bool) {
	switch n.Type {
	case html.TextNode:
		r.writeText(n.Data)
		return
	case html.DocumentNode:
		r.walkChildren(n, indent, skipParagraph)
		return
	case html.ElementNode:
		// handled below
	default:
		// comments and doctypes produce no output
		return
	}

	// Mastodon decorates anchors with helper spans: "invisible" hides the
	// scheme and trailing path of a shortened URL, "ellipsis" marks the
	// truncation point. Class handling runs before tag dispatch.
	switch attr(n, "class") {
	case "invisible":
		return
	case "ellipsis":
		r.walkChildren(n, indent, skipParagraph)
		r.buf.WriteString("…")
		return
	}

	switch strings.ToLower(n.Data) {
	case "p":
		if r.buf.Len() > 0 && !skipParagraph {
			r.buf.WriteString("\n\n")
		}
	case "br":
		// A leading <br> that some servers emit must not open the post
		// with a blank line.
		if r.buf.Len() > 0 {
			r.buf.WriteString("\n")
		}
		if indent > 0 {
			r.buf.WriteString("\n")
		}
	case "a":
		r.writeAnchor(n, indent, skipParagraph)
		return
	case "blockquote":
		r.buf.WriteString("\n\n`")
		r.walkChildren(n, indent, skipParagraph)
		r.buf.WriteString("`")
		return
	case "strong", "b":
		r.buf.WriteString("**")
		r.walkChildren(n, indent, skipParagraph)
		r.buf.WriteString("**")
		return
	case "em", "i":
		r.buf.WriteString("_")
		r.walkChildren(n, indent, skipParagraph)
		r.buf.WriteString("_")
		return
	case "ul", "ol":
		if skipParagraph {
			r.buf.WriteString("\n")
		} else {
			r.buf.WriteString("\n\n")
		}
		ordered := strings.EqualFold(n.Data, "ol")
		if ordered {
			r.listCounters = append(r.listCounters, 1)
		}
		r.walkChildren(n, indent+1, skipParagraph)
		if ordered {
			r.listCounters = r.listCounters[:len(r.listCounters)-1]
		}
		return
	case "li":
		r.writeListItem(n, indent)
		return
	}

	r.walkChildren(n, indent, skipParagraph)
}

func (r *renderer) walkChildren(n *html.Node, indent int, skipParagraph bool) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.walk(c, indent, skipParagraph)
	}
}

// writeText emits a text node. The parser already decoded HTML entities;
// what remains is escaping Markdown specials and dropping literal line
// breaks, which must come from <br> and <p> only.
func (r *renderer) writeText(text string) {
	escaped := EscapeMarkdown(text)
	escaped = strings.ReplaceAll(escaped, "\n", "")
	escaped = strings.ReplaceAll(escaped, "\u2028", "")
	r.buf.WriteString(escaped)
}

// writeAnchor renders an <a> element as [display](reference).
//
// The href is classified as a status reference before the children render,
// using the plain parse only. Resolution for the link reference is more
// forgiving: a failed parse gets one repair attempt, and if that also fails
// the raw href text is emitted so no content is lost, it just stops being
// a live link.
func (r *renderer) writeAnchor(n *html.Node, indent int, skipParagraph bool) {
	href := attr(n, "href")

	var resolved *url.URL
	if href != "" {
		u, err := url.Parse(href)
		if err != nil {
			u, err = RepairURL(href)
		} else if isStatusReference(u) {
			r.statusURLs = append(r.statusURLs, u)
		}
		if err == nil {
			resolved = u
		}
	}

	r.buf.WriteString("[")
	start := r.buf.Len()
	r.walkChildren(n, indent, skipParagraph)
	display := r.buf.String()[start:]

	reference := href
	if resolved != nil {
		reference = resolved.String()
	}
	r.buf.WriteString("](")
	r.buf.WriteString(reference)
	r.buf.WriteString(")")

	if resolved != nil {
		r.links = append(r.links, LinkData{URL: resolved, Display: display})
	}
}

// writeListItem renders an <li>. Top-level items use the active ordered
// counter or a bullet; items nested deeper than one level render as plain
// dashes with three spaces of indentation per level.
func (r *renderer) writeListItem(n *html.Node, indent int) {
	r.buf.WriteString("   ")
	if indent > 1 {
		for i := 0; i < indent; i++ {
			r.buf.WriteString("   ")
		}
		r.buf.WriteString("- ")
	} else if len(r.listCounters) > 0 {
		top := len(r.listCounters) - 1
		r.buf.WriteString(strconv.Itoa(r.listCounters[top]))
		r.buf.WriteString(". ")
		r.listCounters[top]++
	} else {
		r.buf.WriteString("• ")
	}
	r.walkChildren(n, indent, true)
	r.buf.WriteString("\n")
}

// isStatusReference reports whether a link target looks like an individual
// status: either its last path segment is purely numeric (the id convention
// Mastodon-compatible servers share), or it is a Threads post permalink.
func isStatusReference(u *url.URL) bool {
	if isNumeric(u.Path[strings.LastIndex(u.Path, "/")+1:]) {
		return true
	}
	if u.Host == "threads.net" || u.Host == "www.threads.net" {
		parts := strings.Split(u.Path, "/")
		return len(parts) == 4 && parts[2] == "post"
	}
	return false
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
