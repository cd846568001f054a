package main

// Notes:
// - Tests use black-box approach: testing through runDoctorCmd() observable outputs
// - Config and asset detection tests modify environment variables, cannot use t.Parallel()
// - Internal functions (checkConfig, checkStyles, checkSystem) are not tested directly
//   as they are implementation details; behavior is verified through command output
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// runDoctorJSON runs the doctor command with --json and decodes the result.
func runDoctorJSON(t *testing.T) (*doctorResult, int) {
	t.Helper()

	env, stdout, _ := testEnv()
	exitCode := runDoctorCmd([]string{"--json"}, env)

	var result doctorResult
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput was: %s", err, stdout.String())
	}
	return &result, exitCode
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd_JSONOutput - Verifies JSON output format and structure
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_JSONOutput(t *testing.T) {
	t.Parallel()

	result, exitCode := runDoctorJSON(t)

	// Verify required fields are present
	if result.Env.OS == "" {
		t.Error("JSON should contain OS")
	}
	if result.Env.Arch == "" {
		t.Error("JSON should contain Arch")
	}
	if result.Status == "" {
		t.Error("JSON should contain status")
	}

	// Status must be one of the valid values
	validStatuses := map[string]bool{"ready": true, "warnings": true, "errors": true}
	if !validStatuses[result.Status] {
		t.Errorf("Invalid status %q, expected ready/warnings/errors", result.Status)
	}

	// Exit code should be consistent with status
	if result.Status == "errors" && exitCode != ExitGeneral {
		t.Errorf("Expected exit code %d for errors status, got %d", ExitGeneral, exitCode)
	}
	if result.Status != "errors" && exitCode != ExitSuccess {
		t.Errorf("Expected exit code %d for non-error status, got %d", ExitSuccess, exitCode)
	}

	// Platform should match runtime
	if result.Env.OS != runtime.GOOS {
		t.Errorf("OS = %q, want %q", result.Env.OS, runtime.GOOS)
	}
	if result.Env.Arch != runtime.GOARCH {
		t.Errorf("Arch = %q, want %q", result.Env.Arch, runtime.GOARCH)
	}

	// Embedded stylesheets ship with the binary
	if len(result.Styles.Embedded) == 0 {
		t.Error("JSON should list embedded stylesheets")
	}

	// Temp directory should be writable in any sane test environment
	if !result.System.TempWritable {
		t.Error("Temp directory should be writable")
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd_HumanOutput - Verifies human-readable output format
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_HumanOutput(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv()

	runDoctorCmd([]string{}, env)

	output := stdout.String()

	// Should contain required section headers
	requiredSections := []string{
		"feditext doctor",
		"Configuration",
		"Stylesheets",
		"Environment",
		"System",
		"Status:",
	}
	for _, section := range requiredSections {
		if !strings.Contains(output, section) {
			t.Errorf("Output should contain section %q", section)
		}
	}

	// Should contain platform info
	platformStr := runtime.GOOS + "/" + runtime.GOARCH
	if !strings.Contains(output, platformStr) {
		t.Errorf("Output should contain platform %q", platformStr)
	}

	// Embedded stylesheets are always reported
	if !strings.Contains(output, "Embedded:") {
		t.Error("Output should report embedded stylesheets")
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd_ExplicitConfig - FEDITEXT_CONFIG handling
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_ExplicitConfig(t *testing.T) {
	// NO t.Parallel() - modifies environment variables

	t.Run("valid explicit config is found", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		content := "format:\n  name: json\n  pretty: true\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}
		t.Setenv("FEDITEXT_CONFIG", path)
		t.Setenv("FEDITEXT_ASSETS", "")

		result, exitCode := runDoctorJSON(t)

		if !result.Config.Found {
			t.Error("Config.Found = false, want true")
		}
		if result.Config.Path != path {
			t.Errorf("Config.Path = %q, want %q", result.Config.Path, path)
		}
		if exitCode != ExitSuccess {
			t.Errorf("Exit code = %d, want %d", exitCode, ExitSuccess)
		}
	})

	t.Run("invalid explicit config is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.yaml")
		if err := os.WriteFile(path, []byte("format: [unclosed\n"), 0644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}
		t.Setenv("FEDITEXT_CONFIG", path)

		result, exitCode := runDoctorJSON(t)

		if result.Status != "errors" {
			t.Errorf("Status = %q, want %q", result.Status, "errors")
		}
		if exitCode != ExitGeneral {
			t.Errorf("Exit code = %d, want %d", exitCode, ExitGeneral)
		}
		if !containsSubstring(result.Errors, "is invalid") {
			t.Errorf("Errors should mention invalid config, got: %v", result.Errors)
		}
	})

	t.Run("missing explicit config is an error", func(t *testing.T) {
		t.Setenv("FEDITEXT_CONFIG", "definitely-missing-config")

		result, exitCode := runDoctorJSON(t)

		if result.Status != "errors" {
			t.Errorf("Status = %q, want %q", result.Status, "errors")
		}
		if exitCode != ExitGeneral {
			t.Errorf("Exit code = %d, want %d", exitCode, ExitGeneral)
		}
		if !containsSubstring(result.Errors, "no config file found") {
			t.Errorf("Errors should mention missing config, got: %v", result.Errors)
		}
		if len(result.Config.Searched) == 0 {
			t.Error("Config.Searched should list the paths that were tried")
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd_DiscoveredInvalidConfig - Broken default config is a warning
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_DiscoveredInvalidConfig(t *testing.T) {
	// NO t.Parallel() - changes working directory and environment

	dir := t.TempDir()
	path := filepath.Join(dir, "feditext.yaml")
	if err := os.WriteFile(path, []byte("format: [unclosed\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	t.Chdir(dir)
	t.Setenv("FEDITEXT_CONFIG", "")
	t.Setenv("FEDITEXT_ASSETS", "")

	result, exitCode := runDoctorJSON(t)

	// convert ignores a broken discovered config unless it is named,
	// so doctor reports it as a warning, not an error.
	if result.Status != "warnings" {
		t.Errorf("Status = %q, want %q", result.Status, "warnings")
	}
	if exitCode != ExitSuccess {
		t.Errorf("Exit code = %d, want %d", exitCode, ExitSuccess)
	}
	if !containsSubstring(result.Warnings, "is invalid") {
		t.Errorf("Warnings should mention invalid config, got: %v", result.Warnings)
	}
	if result.Config.Found {
		t.Error("Config.Found = true, want false for invalid config")
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd_CustomAssets - FEDITEXT_ASSETS handling
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_CustomAssets(t *testing.T) {
	// NO t.Parallel() - modifies environment variables

	t.Run("valid asset directory", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("FEDITEXT_ASSETS", dir)

		result, _ := runDoctorJSON(t)

		if result.Styles.AssetPath != dir {
			t.Errorf("Styles.AssetPath = %q, want %q", result.Styles.AssetPath, dir)
		}
		if !result.Styles.AssetOK {
			t.Error("Styles.AssetOK = false, want true")
		}
	})

	t.Run("nonexistent asset directory is an error", func(t *testing.T) {
		t.Setenv("FEDITEXT_ASSETS", "/nonexistent/assets/dir")

		result, exitCode := runDoctorJSON(t)

		if result.Status != "errors" {
			t.Errorf("Status = %q, want %q", result.Status, "errors")
		}
		if exitCode != ExitGeneral {
			t.Errorf("Exit code = %d, want %d", exitCode, ExitGeneral)
		}
		if !containsSubstring(result.Errors, "unusable") {
			t.Errorf("Errors should mention unusable assets, got: %v", result.Errors)
		}
		if result.Styles.AssetOK {
			t.Error("Styles.AssetOK = true, want false")
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd_CIDetection - CI environment detection
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_CIDetection(t *testing.T) {
	// NO t.Parallel() - modifies environment variables

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

	t.Run("CI variable detected", func(t *testing.T) {
		t.Setenv("CI", "1")

		result, _ := runDoctorJSON(t)

		if !result.Env.CI {
			t.Error("Env.CI = false, want true when CI=1")
		}
	})

	t.Run("no CI variables set", func(t *testing.T) {
		for _, v := range ciVars {
			t.Setenv(v, "")
		}

		result, _ := runDoctorJSON(t)

		if result.Env.CI {
			t.Error("Env.CI = true, want false with no CI variables")
		}
	})
}

// containsSubstring reports whether any element of list contains substr.
func containsSubstring(list []string, substr string) bool {
	for _, s := range list {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
