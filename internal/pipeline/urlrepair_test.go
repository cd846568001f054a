package pipeline

import "testing"

// ---------------------------------------------------------------------------
// TestRepairURL - Successful Repairs
// ---------------------------------------------------------------------------

func TestRepairURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "space in path",
			raw:  "https://example.com/my path/doc",
			want: "https://example.com/my%20path/doc",
		},
		{
			name: "non-ascii path",
			raw:  "https://example.com/café",
			want: "https://example.com/caf%C3%A9",
		},
		{
			name: "stray percent at end",
			raw:  "https://example.com/100%",
			want: "https://example.com/100%25",
		},
		{
			name: "newline in path",
			raw:  "https://example.com/bad\nsegment",
			want: "https://example.com/bad%0Asegment",
		},
		{
			name: "at sign in path kept readable",
			raw:  "https://mastodon.social/@user name/media",
			want: "https://mastodon.social/@user%20name/media",
		},
		{
			name: "http scheme",
			raw:  "http://example.com/a b",
			want: "http://example.com/a%20b",
		},
		{
			name: "query space encoded structure kept",
			raw:  "https://example.com/search?q=two words&page=1",
			want: "https://example.com/search?q=two%20words&page=1",
		},
		{
			name: "question marks inside query survive",
			raw:  "https://example.com/p?a=1?b=2",
			want: "https://example.com/p?a=1?b=2",
		},
		{
			name: "existing path escape gets re-encoded",
			raw:  "https://example.com/a%20b/c d",
			want: "https://example.com/a%2520b/c%20d",
		},
		{
			name: "clean url passes through",
			raw:  "https://example.com/already/fine",
			want: "https://example.com/already/fine",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RepairURL(tt.raw)
			if err != nil {
				t.Fatalf("RepairURL(%q) error: %v", tt.raw, err)
			}
			if got.String() != tt.want {
				t.Errorf("RepairURL(%q) = %q, want %q", tt.raw, got.String(), tt.want)
			}
		})
	}
}

// TestRepairURLKeepsHost verifies repair never rewrites the authority part,
// only path and query.
func TestRepairURLKeepsHost(t *testing.T) {
	t.Parallel()

	got, err := RepairURL("https://sub.example.com:8443/two words")
	if err != nil {
		t.Fatalf("RepairURL() error: %v", err)
	}
	if got.Host != "sub.example.com:8443" {
		t.Errorf("Host = %q, want %q", got.Host, "sub.example.com:8443")
	}
	if got.EscapedPath() != "/two%20words" {
		t.Errorf("EscapedPath() = %q, want %q", got.EscapedPath(), "/two%20words")
	}
}

// ---------------------------------------------------------------------------
// TestRepairURL - Refused Inputs
// ---------------------------------------------------------------------------

func TestRepairURLRefusals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "no scheme", raw: "example.com/a b"},
		{name: "unsupported scheme", raw: "ftp://example.com/file name"},
		{name: "scheme only", raw: "https://"},
		{name: "host without path", raw: "https://example.com"},
		{name: "query but no path", raw: "https://example.com?q=1"},
		{name: "empty string", raw: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got, err := RepairURL(tt.raw); err == nil {
				t.Errorf("RepairURL(%q) = %q, want error", tt.raw, got.String())
			}
		})
	}
}
