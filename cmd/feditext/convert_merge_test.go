package main

// Notes:
// - mergeFlags: we test all flag override scenarios. Each flag is tested
//   for both override and preserve behavior.
// - Precedence: one test layers applyEnvConfig and mergeFlags the way
//   runConvert does, verifying flags > env > config file > defaults.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"testing"

	"github.com/alnah/go-feditext/internal/config"
)

// ---------------------------------------------------------------------------
// TestMergeFlags - CLI flags override config values
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		flags *convertFlags
		cfg   config.Config
		check func(t *testing.T, cfg *config.Config)
	}{
		{
			name:  "empty flags preserve config format",
			flags: &convertFlags{},
			cfg:   config.Config{Format: config.FormatConfig{Name: "text"}},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Format.Name != "text" {
					t.Errorf("Format.Name = %q, want %q", cfg.Format.Name, "text")
				}
			},
		},
		{
			name:  "format overrides config",
			flags: &convertFlags{format: formatFlags{name: "json"}},
			cfg:   config.Config{Format: config.FormatConfig{Name: "text"}},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Format.Name != "json" {
					t.Errorf("Format.Name = %q, want %q", cfg.Format.Name, "json")
				}
			},
		},
		{
			name:  "pretty enables JSON indentation",
			flags: &convertFlags{format: formatFlags{pretty: true}},
			cfg:   config.Config{},
			check: func(t *testing.T, cfg *config.Config) {
				if !cfg.Format.Pretty {
					t.Error("Format.Pretty should be true")
				}
			},
		},
		{
			name:  "unset pretty preserves config",
			flags: &convertFlags{},
			cfg:   config.Config{Format: config.FormatConfig{Pretty: true}},
			check: func(t *testing.T, cfg *config.Config) {
				if !cfg.Format.Pretty {
					t.Error("Format.Pretty should remain true")
				}
			},
		},
		{
			name:  "style overrides config",
			flags: &convertFlags{style: styleFlags{style: "cli-style"}},
			cfg:   config.Config{Preview: config.PreviewConfig{Style: "config-style"}},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Preview.Style != "cli-style" {
					t.Errorf("Preview.Style = %q, want %q", cfg.Preview.Style, "cli-style")
				}
			},
		},
		{
			name:  "no-style disables preview styling",
			flags: &convertFlags{style: styleFlags{noStyle: true}},
			cfg:   config.Config{},
			check: func(t *testing.T, cfg *config.Config) {
				if !cfg.Preview.NoStyle {
					t.Error("Preview.NoStyle should be true")
				}
			},
		},
		{
			name:  "assets overrides config",
			flags: &convertFlags{style: styleFlags{assetPath: "/cli/assets"}},
			cfg:   config.Config{Assets: config.AssetsConfig{BasePath: "/config/assets"}},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Assets.BasePath != "/cli/assets" {
					t.Errorf("Assets.BasePath = %q, want %q", cfg.Assets.BasePath, "/cli/assets")
				}
			},
		},
		{
			name:  "keep-trailing-tags enables tag preservation",
			flags: &convertFlags{keepTrailingTags: true},
			cfg:   config.Config{},
			check: func(t *testing.T, cfg *config.Config) {
				if !cfg.Convert.KeepTrailingTags {
					t.Error("Convert.KeepTrailingTags should be true")
				}
			},
		},
		{
			name:  "workers overrides config",
			flags: &convertFlags{workers: 4},
			cfg:   config.Config{Workers: config.WorkersConfig{Count: 2}},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Workers.Count != 4 {
					t.Errorf("Workers.Count = %d, want 4", cfg.Workers.Count)
				}
			},
		},
		{
			name:  "zero workers preserves config",
			flags: &convertFlags{workers: 0},
			cfg:   config.Config{Workers: config.WorkersConfig{Count: 2}},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Workers.Count != 2 {
					t.Errorf("Workers.Count = %d, want 2", cfg.Workers.Count)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := tt.cfg
			mergeFlags(tt.flags, &cfg)
			tt.check(t, &cfg)
		})
	}
}

// ---------------------------------------------------------------------------
// TestPrecedenceLayering - flags > env > config file > defaults
// ---------------------------------------------------------------------------

func TestPrecedenceLayering(t *testing.T) {
	t.Parallel()

	t.Run("flag beats env beats file", func(t *testing.T) {
		t.Parallel()

		// Config file sets text, env sets json, flag sets links.
		cfg := config.DefaultConfig()
		cfg.Format.Name = "text"

		env := &envConfig{Format: "json"}
		flags := &convertFlags{format: formatFlags{name: "links"}}

		applyEnvConfig(env, &cfg)
		mergeFlags(flags, &cfg)

		if cfg.Format.Name != "links" {
			t.Errorf("Format.Name = %q, want links (flag wins)", cfg.Format.Name)
		}
	})

	t.Run("env beats file when flag absent", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Format.Name = "text"

		env := &envConfig{Format: "json"}
		flags := &convertFlags{}

		applyEnvConfig(env, &cfg)
		mergeFlags(flags, &cfg)

		if cfg.Format.Name != "json" {
			t.Errorf("Format.Name = %q, want json (env wins over file)", cfg.Format.Name)
		}
	})

	t.Run("file survives when env and flag absent", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Format.Name = "text"

		applyEnvConfig(&envConfig{}, &cfg)
		mergeFlags(&convertFlags{}, &cfg)

		if cfg.Format.Name != "text" {
			t.Errorf("Format.Name = %q, want text (file value kept)", cfg.Format.Name)
		}
	})

	t.Run("workers layer the same way", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Workers.Count = 2

		env := &envConfig{Workers: 4}
		flags := &convertFlags{workers: 6}

		applyEnvConfig(env, &cfg)
		mergeFlags(flags, &cfg)

		if cfg.Workers.Count != 6 {
			t.Errorf("Workers.Count = %d, want 6 (flag wins)", cfg.Workers.Count)
		}
	})
}
