package pipeline

import (
	"regexp"
	"strings"
)

// Escaping patterns are compiled once at package load. Compilation uses
// regexp.Compile rather than MustCompile: a conversion must never panic,
// so a pattern that fails to compile disables escaping (text passes
// through unescaped) instead of taking the whole pipeline down.
var (
	// markdownSpecials matches characters that would change Markdown
	// structure if left bare in post text: *, `, ~ and [.
	markdownSpecials, _ = regexp.Compile("([*`~\\[])")

	// emojiShortcodes matches :shortcode: custom-emoji tokens. Underscores
	// inside them are part of the emoji name and must survive unescaped.
	emojiShortcodes, _ = regexp.Compile(`:\w+:`)
)

// EscapeMarkdown escapes Markdown-special characters in plain post text so
// that literal *, `, ~, [ and _ survive a later Markdown rendering pass.
//
// Underscores get special treatment: an underscore strictly between the two
// colons of a :shortcode: token is left alone, because escaping it would
// break custom-emoji lookup on the client. A shortcode whose opening colon
// is itself escaped does not count.
func EscapeMarkdown(text string) string {
	if markdownSpecials == nil || emojiShortcodes == nil {
		return text
	}

	escaped := markdownSpecials.ReplaceAllString(text, `\$1`)
	if !strings.Contains(escaped, "_") {
		return escaped
	}

	spans := emojiShortcodes.FindAllStringIndex(escaped, -1)

	var b strings.Builder
	b.Grow(len(escaped) + 8)

	pos := 0
	for _, span := range spans {
		if span[0] > 0 && escaped[span[0]-1] == '\\' {
			continue
		}
		b.WriteString(escapeUnderscores(escaped[pos:span[0]]))
		b.WriteString(escaped[span[0]:span[1]])
		pos = span[1]
	}
	b.WriteString(escapeUnderscores(escaped[pos:]))

	return b.String()
}

func escapeUnderscores(segment string) string {
	return strings.ReplaceAll(segment, "_", `\_`)
}
