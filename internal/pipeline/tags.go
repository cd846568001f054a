package pipeline

import (
	"regexp"
	"strings"
)

// hashtagLink matches one Markdown hashtag link exactly as the walker emits
// them: a [#tag](url) pair. A plain-text #tag the author typed outside an
// anchor does not match.
var hashtagLink = regexp.MustCompile(`\[#[^\]]+\]\([^)]+\)`)

// StripTrailingHashtags removes the tag-cloud paragraph many posts end
// with: a final paragraph consisting of nothing but hashtag links and
// whitespace. Hashtags woven into running text never qualify, and only the
// last content-bearing paragraph is ever considered. Reports whether a
// paragraph was removed.
func StripTrailingHashtags(markdown string) (string, bool) {
	paragraphs := strings.Split(markdown, "\n\n")

	last := lastContentParagraph(paragraphs)
	if last < 0 || !isHashtagCloud(paragraphs[last]) {
		return markdown, false
	}

	return strings.Join(removeParagraph(paragraphs, last), "\n\n"), true
}

// StripTrailingTagText mirrors StripTrailingHashtags on the raw-text side.
// Raw text carries no link syntax, so the check is deliberately looser: the
// last content-bearing paragraph is dropped when it contains a # at all.
// Callers invoke this only after the Markdown side actually stripped.
func StripTrailingTagText(text string) string {
	paragraphs := strings.Split(text, "\n\n")

	last := lastContentParagraph(paragraphs)
	if last < 0 || !strings.Contains(paragraphs[last], "#") {
		return text
	}

	return strings.Join(removeParagraph(paragraphs, last), "\n\n")
}

// isHashtagCloud reports whether a paragraph consists solely of hashtag
// links separated by whitespace.
func isHashtagCloud(paragraph string) bool {
	matches := hashtagLink.FindAllStringIndex(paragraph, -1)
	if len(matches) == 0 {
		return false
	}

	pos := 0
	for _, m := range matches {
		if strings.TrimSpace(paragraph[pos:m[0]]) != "" {
			return false
		}
		pos = m[1]
	}
	return strings.TrimSpace(paragraph[pos:]) == ""
}

// lastContentParagraph returns the index of the last paragraph holding
// non-whitespace content, or -1 if there is none.
func lastContentParagraph(paragraphs []string) int {
	for i := len(paragraphs) - 1; i >= 0; i-- {
		if strings.TrimSpace(paragraphs[i]) != "" {
			return i
		}
	}
	return -1
}

// removeParagraph drops paragraph i plus any empty paragraphs that end up
// trailing afterwards.
func removeParagraph(paragraphs []string, i int) []string {
	paragraphs = append(paragraphs[:i], paragraphs[i+1:]...)
	for len(paragraphs) > 0 && strings.TrimSpace(paragraphs[len(paragraphs)-1]) == "" {
		paragraphs = paragraphs[:len(paragraphs)-1]
	}
	return paragraphs
}
