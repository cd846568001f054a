package feditext

// Notes:
// - Tests Converter.Convert end to end on real fediverse markup shapes:
//   fragments, full documents, Mastodon anchor decorations, tag clouds
// - No mocks: the pipeline is pure CPU, so tests drive the real thing
// - net/html recovers every in-memory input, so the degraded path cannot
//   be provoked through Convert; fallbackContent is pinned directly

import (
	"sync"
	"testing"
)

// ---------------------------------------------------------------------------
// TestConvertBasic - Paragraphs, inline styles, breaks, entities
// ---------------------------------------------------------------------------

func TestConvertBasic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantMarkdown string
		wantRawText  string
	}{
		{
			name:         "plain paragraph",
			input:        "<p>Hello world</p>",
			wantMarkdown: "Hello world",
			wantRawText:  "Hello world",
		},
		{
			name:         "two paragraphs",
			input:        "<p>One</p><p>Two</p>",
			wantMarkdown: "One\n\nTwo",
			wantRawText:  "One\n\nTwo",
		},
		{
			name:         "inline styles",
			input:        "<p><strong>Bold</strong> and <em>italic</em></p>",
			wantMarkdown: "**Bold** and _italic_",
			wantRawText:  "Bold and italic",
		},
		{
			name:         "line break",
			input:        "<p>One<br>Two</p>",
			wantMarkdown: "One\nTwo",
			wantRawText:  "One\nTwo",
		},
		{
			name:         "entities decoded",
			input:        "<p>Fish &amp; chips</p>",
			wantMarkdown: "Fish & chips",
			wantRawText:  "Fish & chips",
		},
		{
			name:         "markdown specials escaped",
			input:        "<p>star *text* and [bracket]</p>",
			wantMarkdown: `star \*text\* and \[bracket]`,
			wantRawText:  "star *text* and [bracket]",
		},
		{
			name:         "full document",
			input:        "<!DOCTYPE html><html><body><p>Doc body</p></body></html>",
			wantMarkdown: "Doc body",
			wantRawText:  "Doc body",
		},
		{
			name:         "empty input",
			input:        "",
			wantMarkdown: "",
			wantRawText:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			content := Convert(tt.input)

			if content.Markdown != tt.wantMarkdown {
				t.Errorf("Convert().Markdown = %q, want %q", content.Markdown, tt.wantMarkdown)
			}
			if content.RawText != tt.wantRawText {
				t.Errorf("Convert().RawText = %q, want %q", content.RawText, tt.wantRawText)
			}
			if content.HTML != tt.input {
				t.Errorf("Convert().HTML = %q, want original input", content.HTML)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConvertAnchors - Link extraction and classification
// ---------------------------------------------------------------------------

func TestConvertAnchors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantMarkdown string
		wantLinks    int
		wantType     LinkType
		wantTitle    string
		wantDisplay  string
	}{
		{
			name:         "mention with h-card wrapper",
			input:        `<p><span class="h-card"><a href="https://hachyderm.io/@kelsey" class="u-url mention">@<span>kelsey</span></a></span> announced it</p>`,
			wantMarkdown: "[@kelsey](https://hachyderm.io/@kelsey) announced it",
			wantLinks:    1,
			wantType:     LinkTypeMention,
			wantTitle:    "@kelsey",
			wantDisplay:  "@kelsey",
		},
		{
			name:         "hashtag in running text",
			input:        `<p>love <a href="https://mastodon.social/tags/golang" class="mention hashtag" rel="tag">#<span>golang</span></a></p>`,
			wantMarkdown: "love [#golang](https://mastodon.social/tags/golang)",
			wantLinks:    1,
			wantType:     LinkTypeHashtag,
			wantTitle:    "golang",
			wantDisplay:  "#golang",
		},
		{
			name:         "generic url drops www from title",
			input:        `<p><a href="https://www.example.com/blog/post">great read</a></p>`,
			wantMarkdown: "[great read](https://www.example.com/blog/post)",
			wantLinks:    1,
			wantType:     LinkTypeURL,
			wantTitle:    "example.com",
			wantDisplay:  "great read",
		},
		{
			name:         "shortened url with invisible and ellipsis spans",
			input:        `<p><a href="https://example.com/articles/how-to-write-go"><span class="invisible">https://</span><span class="ellipsis">example.com/articles/how</span><span class="invisible">-to-write-go</span></a></p>`,
			wantMarkdown: "[example.com/articles/how…](https://example.com/articles/how-to-write-go)",
			wantLinks:    1,
			wantType:     LinkTypeURL,
			wantTitle:    "example.com",
			wantDisplay:  "example.com/articles/how…",
		},
		{
			name:         "empty href renders text without a link entry",
			input:        `<p><a>just text</a></p>`,
			wantMarkdown: "[just text]()",
			wantLinks:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			content := Convert(tt.input)

			if content.Markdown != tt.wantMarkdown {
				t.Errorf("Convert().Markdown = %q, want %q", content.Markdown, tt.wantMarkdown)
			}
			if len(content.Links) != tt.wantLinks {
				t.Fatalf("len(Links) = %d, want %d", len(content.Links), tt.wantLinks)
			}
			if tt.wantLinks == 0 {
				return
			}

			link := content.Links[0]
			if link.Type != tt.wantType {
				t.Errorf("Links[0].Type = %q, want %q", link.Type, tt.wantType)
			}
			if link.Title != tt.wantTitle {
				t.Errorf("Links[0].Title = %q, want %q", link.Title, tt.wantTitle)
			}
			if link.DisplayString != tt.wantDisplay {
				t.Errorf("Links[0].DisplayString = %q, want %q", link.DisplayString, tt.wantDisplay)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConvertStatusReferences - Reply and quote target detection
// ---------------------------------------------------------------------------

func TestConvertStatusReferences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		wantStatus []string
	}{
		{
			name:       "numeric status id",
			input:      `<p>re: <a href="https://mastodon.social/@user/109372045693389811">this post</a></p>`,
			wantStatus: []string{"https://mastodon.social/@user/109372045693389811"},
		},
		{
			name:       "threads post permalink",
			input:      `<p><a href="https://www.threads.net/@zuck/post/C8xyzABC">thread</a></p>`,
			wantStatus: []string{"https://www.threads.net/@zuck/post/C8xyzABC"},
		},
		{
			name:       "profile link is not a status",
			input:      `<p><a href="https://mastodon.social/@user">profile</a></p>`,
			wantStatus: nil,
		},
		{
			name:       "trailing slash hides the id",
			input:      `<p><a href="https://mastodon.social/@user/123/">post</a></p>`,
			wantStatus: nil,
		},
		{
			name:       "repaired href is never a status reference",
			input:      `<p><a href="https://example.com/statuses/123%zz/456">broken</a></p>`,
			wantStatus: nil,
		},
		{
			name: "duplicates and order preserved",
			input: `<p><a href="https://a.example/@x/1">one</a>` +
				` <a href="https://b.example/@y/2">two</a>` +
				` <a href="https://a.example/@x/1">one again</a></p>`,
			wantStatus: []string{
				"https://a.example/@x/1",
				"https://b.example/@y/2",
				"https://a.example/@x/1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			content := Convert(tt.input)

			if len(content.StatusURLs) != len(tt.wantStatus) {
				t.Fatalf("len(StatusURLs) = %d, want %d", len(content.StatusURLs), len(tt.wantStatus))
			}
			for i, want := range tt.wantStatus {
				if got := content.StatusURLs[i].String(); got != want {
					t.Errorf("StatusURLs[%d] = %q, want %q", i, got, want)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConvertTrailingTags - Tag-cloud stripping on both renditions
// ---------------------------------------------------------------------------

func TestConvertTrailingTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantMarkdown string
		wantRawText  string
		wantHadTags  bool
		wantLinks    int
	}{
		{
			name:         "cloud stripped",
			input:        `<p>Hello world</p><p><a href="u1">#a</a> <a href="u2">#b</a></p>`,
			wantMarkdown: "Hello world",
			wantRawText:  "Hello world",
			wantHadTags:  true,
			wantLinks:    2,
		},
		{
			name:         "inline tag kept",
			input:        `<p>Hello <a href="u1">#a</a> world</p>`,
			wantMarkdown: "Hello [#a](u1) world",
			wantRawText:  "Hello #a world",
			wantHadTags:  false,
			wantLinks:    1,
		},
		{
			name:         "only the last paragraph is considered",
			input:        `<p>Text</p><p><a href="u1">#a</a></p><p><a href="u2">#b</a></p>`,
			wantMarkdown: "Text\n\n[#a](u1)",
			wantRawText:  "Text\n\n#a",
			wantHadTags:  true,
			wantLinks:    2,
		},
		{
			name:         "plain-text hashtags are not a cloud",
			input:        `<p>Tags</p><p>#a #b</p>`,
			wantMarkdown: "Tags\n\n#a #b",
			wantRawText:  "Tags\n\n#a #b",
			wantHadTags:  false,
			wantLinks:    0,
		},
		{
			name:         "whitespace between tags tolerated",
			input:        `<p>Post</p><p> <a href="u1">#x</a>  <a href="u2">#y</a> </p>`,
			wantMarkdown: "Post",
			wantRawText:  "Post",
			wantHadTags:  true,
			wantLinks:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			content := Convert(tt.input)

			if content.Markdown != tt.wantMarkdown {
				t.Errorf("Convert().Markdown = %q, want %q", content.Markdown, tt.wantMarkdown)
			}
			if content.RawText != tt.wantRawText {
				t.Errorf("Convert().RawText = %q, want %q", content.RawText, tt.wantRawText)
			}
			if content.HadTrailingTags != tt.wantHadTags {
				t.Errorf("Convert().HadTrailingTags = %v, want %v", content.HadTrailingTags, tt.wantHadTags)
			}
			if len(content.Links) != tt.wantLinks {
				t.Errorf("len(Links) = %d, want %d", len(content.Links), tt.wantLinks)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConverterWithTrailingTags - Option keeps the cloud in place
// ---------------------------------------------------------------------------

func TestConverterWithTrailingTags(t *testing.T) {
	t.Parallel()

	input := `<p>Hello world</p><p><a href="u1">#a</a> <a href="u2">#b</a></p>`
	conv := NewConverter(WithTrailingTags())

	content := conv.Convert(input)

	wantMarkdown := "Hello world\n\n[#a](u1) [#b](u2)"
	if content.Markdown != wantMarkdown {
		t.Errorf("Convert().Markdown = %q, want %q", content.Markdown, wantMarkdown)
	}
	wantRawText := "Hello world\n\n#a #b"
	if content.RawText != wantRawText {
		t.Errorf("Convert().RawText = %q, want %q", content.RawText, wantRawText)
	}
	if content.HadTrailingTags {
		t.Error("Convert().HadTrailingTags = true, want false when nothing is stripped")
	}
}

// ---------------------------------------------------------------------------
// TestConvertCollections - Slices are always non-nil for persistence
// ---------------------------------------------------------------------------

func TestConvertCollections(t *testing.T) {
	t.Parallel()

	content := Convert("<p>plain</p>")

	if content.StatusURLs == nil {
		t.Error("Convert().StatusURLs = nil, want empty slice")
	}
	if content.Links == nil {
		t.Error("Convert().Links = nil, want empty slice")
	}
}

// ---------------------------------------------------------------------------
// TestFallbackContent - Degraded result keeps input as HTML and raw text
// ---------------------------------------------------------------------------

func TestFallbackContent(t *testing.T) {
	t.Parallel()

	content := fallbackContent("<p>unrecoverable")

	if content.HTML != "<p>unrecoverable" {
		t.Errorf("fallbackContent().HTML = %q, want original input", content.HTML)
	}
	if content.RawText != "<p>unrecoverable" {
		t.Errorf("fallbackContent().RawText = %q, want original input", content.RawText)
	}
	if content.Markdown != "" {
		t.Errorf("fallbackContent().Markdown = %q, want empty", content.Markdown)
	}
	if content.StatusURLs == nil || len(content.StatusURLs) != 0 {
		t.Errorf("fallbackContent().StatusURLs = %v, want empty slice", content.StatusURLs)
	}
	if content.Links == nil || len(content.Links) != 0 {
		t.Errorf("fallbackContent().Links = %v, want empty slice", content.Links)
	}
}

// ---------------------------------------------------------------------------
// TestConvertConcurrent - One Converter shared across goroutines
// ---------------------------------------------------------------------------

func TestConvertConcurrent(t *testing.T) {
	t.Parallel()

	const input = `<p>Hello <strong>world</strong></p><p><a href="https://mastodon.social/tags/go">#go</a></p>`
	want := Convert(input)

	conv := NewConverter()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				got := conv.Convert(input)
				if got.Markdown != want.Markdown {
					t.Errorf("Convert().Markdown = %q, want %q", got.Markdown, want.Markdown)
				}
				if got.HadTrailingTags != want.HadTrailingTags {
					t.Errorf("Convert().HadTrailingTags = %v, want %v", got.HadTrailingTags, want.HadTrailingTags)
				}
				if len(got.Links) != len(want.Links) {
					t.Errorf("len(Links) = %d, want %d", len(got.Links), len(want.Links))
				}
			}
		}()
	}
	wg.Wait()
}
