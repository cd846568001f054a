package pipeline

import (
	"fmt"
	"net/url"
	"strings"
)

// RepairURL attempts to salvage an http(s) URL that the standard parser
// rejected, typically because the author pasted raw spaces, non-ASCII
// characters or stray percent signs into the path. Each path segment is
// percent-encoded in place and the query, if any, is encoded with the
// query-safe character set. Scheme and host are never touched: a host the
// parser cannot digest is not worth repairing.
func RepairURL(raw string) (*url.URL, error) {
	scheme := "http://"
	rest, ok := strings.CutPrefix(raw, scheme)
	if !ok {
		scheme = "https://"
		rest, ok = strings.CutPrefix(raw, scheme)
	}
	if !ok {
		return nil, fmt.Errorf("unsupported scheme in %q", raw)
	}

	slash := strings.Index(rest, "/")
	if slash < 0 {
		return nil, fmt.Errorf("no path to repair in %q", raw)
	}
	host := rest[:slash]

	path, query, hasQuery := strings.Cut(rest[slash:], "?")

	segments := strings.Split(path, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}

	repaired := scheme + host + strings.Join(segments, "/")
	if hasQuery {
		repaired += "?" + escapeQuery(query)
	}

	u, err := url.Parse(repaired)
	if err != nil {
		return nil, fmt.Errorf("still unparseable after repair: %v", err)
	}
	return u, nil
}

// escapeQuery percent-encodes bytes that may not appear raw in a URL query,
// leaving structural characters (=, &, and friends) and existing percent
// escapes alone.
func escapeQuery(query string) string {
	var b strings.Builder
	b.Grow(len(query))
	for i := 0; i < len(query); i++ {
		c := query[i]
		if queryByteAllowed(c) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}

// queryByteAllowed reports whether c may appear unencoded in a query per
// RFC 3986 (query = pchar / "/" / "?"). Percent stays allowed so that
// already-encoded input is not double-encoded.
func queryByteAllowed(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '-', '.', '_', '~', // unreserved
		'!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=', // sub-delims
		':', '@', '/', '?', '%':
		return true
	}
	return false
}
