package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/alnah/go-feditext/internal/assets"
	"github.com/alnah/go-feditext/internal/config"
	"github.com/alnah/go-feditext/internal/fileutil"
)

// defaultConfigName is the config name doctor searches for when
// FEDITEXT_CONFIG is not set.
const defaultConfigName = "feditext"

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Config   configInfo `json:"config"`
	Styles   stylesInfo `json:"styles"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// configInfo holds config file detection results.
type configInfo struct {
	Found    bool     `json:"found"`
	Path     string   `json:"path,omitempty"`
	Searched []string `json:"searched,omitempty"`
}

// stylesInfo holds stylesheet detection results.
type stylesInfo struct {
	Embedded  []string `json:"embedded"`
	AssetPath string   `json:"asset_path,omitempty"`
	AssetOK   bool     `json:"asset_ok"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	CI        bool   `json:"ci"`
	ConfigVar string `json:"feditext_config,omitempty"`
	AssetsVar string `json:"feditext_assets,omitempty"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	result := runDoctor()

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor() *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:        runtime.GOOS,
			Arch:      runtime.GOARCH,
			ConfigVar: os.Getenv("FEDITEXT_CONFIG"),
			AssetsVar: os.Getenv("FEDITEXT_ASSETS"),
		},
	}

	checkConfig(result)
	checkStyles(result)
	checkEnvironment(result)
	checkSystem(result)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkConfig resolves the configuration file the same way convert does:
// FEDITEXT_CONFIG names it explicitly, otherwise the default name is
// searched. A broken explicit config is an error; a broken discovered one
// is only a warning because convert ignores it unless it is named.
func checkConfig(result *doctorResult) {
	name := result.Env.ConfigVar
	explicit := name != ""
	if !explicit {
		name = defaultConfigName
	}

	if fileutil.IsFilePath(name) || fileutil.FileExists(name) {
		result.Config.Path = name
	} else {
		result.Config.Searched = config.SearchPaths(name)
		for _, p := range result.Config.Searched {
			if fileutil.FileExists(p) {
				result.Config.Path = p
				break
			}
		}
	}

	if result.Config.Path == "" {
		if explicit {
			result.Errors = append(result.Errors,
				fmt.Sprintf("FEDITEXT_CONFIG=%s but no config file found", name))
		}
		return
	}

	if _, err := config.LoadConfig(result.Config.Path); err != nil {
		if explicit {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Config %s is invalid: %v", result.Config.Path, err))
		} else {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Config %s is invalid: %v", result.Config.Path, err))
		}
		return
	}

	result.Config.Found = true
}

// checkStyles verifies the embedded stylesheets and the custom asset
// directory when one is configured.
func checkStyles(result *doctorResult) {
	loader := assets.NewEmbeddedLoader()

	result.Styles.Embedded = loader.StyleNames()
	if len(result.Styles.Embedded) == 0 {
		result.Errors = append(result.Errors, "No embedded stylesheets found")
	} else if _, err := loader.LoadStyle(assets.DefaultStyleName); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Default stylesheet failed to load: %v", err))
	}

	assetPath := result.Env.AssetsVar
	if assetPath == "" {
		return
	}

	result.Styles.AssetPath = assetPath
	if _, err := assets.NewStyleResolver(assetPath); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("FEDITEXT_ASSETS=%s is unusable: %v", assetPath, err))
		return
	}
	result.Styles.AssetOK = true
}

// checkEnvironment detects CI environments.
func checkEnvironment(result *doctorResult) {
	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}
}

// checkSystem verifies system requirements.
func checkSystem(result *doctorResult) {
	// Check temp directory is writable
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "feditext-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "feditext doctor")
	fmt.Fprintln(w)

	// Config section
	fmt.Fprintln(w, "Configuration")
	switch {
	case r.Config.Found:
		fmt.Fprintf(w, "  [OK] Config: %s\n", r.Config.Path)
	case r.Config.Path != "":
		fmt.Fprintf(w, "  [ERROR] Config: %s (invalid)\n", r.Config.Path)
	case r.Env.ConfigVar != "":
		fmt.Fprintln(w, "  [ERROR] Config: not found")
	default:
		fmt.Fprintln(w, "  [OK] Config: none (using defaults)")
	}
	fmt.Fprintln(w)

	// Styles section
	fmt.Fprintln(w, "Stylesheets")
	if len(r.Styles.Embedded) > 0 {
		fmt.Fprintf(w, "  [OK] Embedded: %d available\n", len(r.Styles.Embedded))
	} else {
		fmt.Fprintln(w, "  [ERROR] Embedded: none found")
	}
	if r.Styles.AssetPath != "" {
		if r.Styles.AssetOK {
			fmt.Fprintf(w, "  [OK] Custom assets: %s\n", r.Styles.AssetPath)
		} else {
			fmt.Fprintf(w, "  [ERROR] Custom assets: %s (unusable)\n", r.Styles.AssetPath)
		}
	}
	fmt.Fprintln(w)

	// Environment section
	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	// System section
	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	// Warnings
	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	// Errors
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	// Final status
	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to convert")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
