package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	feditext "github.com/alnah/go-feditext"
	"github.com/alnah/go-feditext/internal/assets"
	"github.com/alnah/go-feditext/internal/config"
	"github.com/alnah/go-feditext/internal/fileutil"
	"github.com/alnah/go-feditext/internal/hints"
)

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	// Environment variables: warn about typos, then load overrides.
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}
	envCfg := loadEnvConfig()

	// Load configuration. The config location itself follows the same
	// precedence as everything else: flag first, then environment.
	cfg := config.DefaultConfig()
	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	if configName != "" {
		loaded, err := config.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return fmt.Errorf("loading config: %w%s",
					err, hints.ForConfigNotFound(config.SearchPaths(configName)))
			}
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	// Merge precedence: CLI flags > env vars > config file > defaults.
	applyEnvConfig(envCfg, &cfg)
	mergeFlags(flags, &cfg)
	if cfg.Format.Name == "" {
		cfg.Format.Name = "markdown"
	}

	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrInvalidFormat) {
			return fmt.Errorf("%w%s", err, hints.ForUnknownFormat(config.ValidFormats()))
		}
		return err
	}

	format := formatByName(cfg.Format.Name)

	// One converter serves the whole batch; it is safe for concurrent use.
	var opts []feditext.Option
	if cfg.Convert.KeepTrailingTags {
		opts = append(opts, feditext.WithTrailingTags())
	}

	params := &conversionParams{
		converter: feditext.NewConverter(opts...),
		format:    format,
		pretty:    cfg.Format.Pretty,
	}

	// The previewer is only needed for HTML output.
	if format.name == "html" {
		previewer, err := buildPreviewer(&cfg, env)
		if err != nil {
			return err
		}
		params.previewer = previewer
	}

	inputPaths, err := resolveInputPaths(positionalArgs, &cfg)
	if err != nil {
		return fmt.Errorf("%w%s", err, hints.ForInputNotFound())
	}

	outputTarget := resolveOutputTarget(flags.output, &cfg)

	// Stdin: a single document, written to stdout or the explicit output.
	if len(inputPaths) == 1 && inputPaths[0] == "-" {
		return convertStdin(ctx, env, params, outputTarget)
	}
	for _, p := range inputPaths {
		if p == "-" {
			return ErrMixedStdin
		}
	}

	files, err := discoverFiles(inputPaths, outputTarget, format.ext)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no HTML files found in %s", joinPaths(inputPaths))
	}

	// Explicit stdout target: convert sequentially so output order is
	// deterministic.
	if outputTarget == "-" {
		return convertToStdout(ctx, env, files, params)
	}

	workers := resolveWorkerCount(flags.workers, &cfg)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Workers: %d\n", workers)
	}

	results := convertBatch(ctx, workers, files, params)

	failed := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if failed > 0 {
		err := fmt.Errorf("%d conversion(s) failed", failed)
		if anyWriteFailure(results) {
			return fmt.Errorf("%v%s", err, hints.ForOutputDirectory())
		}
		return err
	}
	return nil
}

// mergeFlags merges CLI flags into config. Flag values override everything.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.format.name != "" {
		cfg.Format.Name = flags.format.name
	}
	if flags.format.pretty {
		cfg.Format.Pretty = true
	}
	if flags.style.style != "" {
		cfg.Preview.Style = flags.style.style
	}
	if flags.style.noStyle {
		cfg.Preview.NoStyle = true
	}
	if flags.style.assetPath != "" {
		cfg.Assets.BasePath = flags.style.assetPath
	}
	if flags.keepTrailingTags {
		cfg.Convert.KeepTrailingTags = true
	}
	if flags.workers > 0 {
		cfg.Workers.Count = flags.workers
	}
}

// resolveInputPaths determines the inputs from args or config.
func resolveInputPaths(args []string, cfg *config.Config) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if cfg.Input.DefaultDir != "" {
		return []string{cfg.Input.DefaultDir}, nil
	}
	return nil, ErrNoInput
}

// resolveOutputTarget determines the output file or directory from flag or
// config. "-" selects stdout.
func resolveOutputTarget(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// buildPreviewer constructs the HTML previewer from the resolved style.
func buildPreviewer(cfg *config.Config, env *Environment) (*feditext.Previewer, error) {
	if cfg.Preview.NoStyle {
		return feditext.NewPreviewer(feditext.WithoutPreviewStyle()), nil
	}

	css, err := resolveStyleContent(cfg.Preview.Style, cfg.Assets.BasePath, env)
	if err != nil {
		return nil, err
	}
	if css == "" {
		// Embedded default, resolved by the previewer itself.
		return feditext.NewPreviewer(), nil
	}
	return feditext.NewPreviewer(feditext.WithPreviewStyle(css)), nil
}

// resolveStyleContent turns the style setting into CSS content. The setting
// may be inline CSS, a path to a CSS file, or a style name resolved through
// the asset loaders (custom directory first when configured).
func resolveStyleContent(style, basePath string, env *Environment) (string, error) {
	if style == "" {
		return "", nil
	}

	if fileutil.IsCSS(style) {
		return style, nil
	}

	if fileutil.IsFilePath(style) {
		content, err := os.ReadFile(style) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrReadStyle, err)
		}
		return string(content), nil
	}

	loader := env.Styles
	if basePath != "" {
		resolver, err := assets.NewStyleResolver(basePath)
		if err != nil {
			return "", err
		}
		loader = resolver
	}

	css, err := loader.LoadStyle(style)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) {
			return "", fmt.Errorf("%w%s",
				err, hints.ForStyleNotFound(assets.NewEmbeddedLoader().StyleNames()))
		}
		return "", err
	}
	return css, nil
}

// convertStdin reads one document from stdin and writes the result to
// stdout, or to the output path when one is given.
func convertStdin(ctx context.Context, env *Environment, params *conversionParams, outputTarget string) error {
	input, err := io.ReadAll(env.Stdin)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	out, err := renderContent(ctx, params, string(input))
	if err != nil {
		return err
	}

	if outputTarget == "" || outputTarget == "-" {
		if _, err := env.Stdout.Write(out); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return nil
	}

	if err := writeOutputFile(outputTarget, out); err != nil {
		return fmt.Errorf("%w%s", err, hints.ForOutputDirectory())
	}
	return nil
}

// convertToStdout converts files sequentially, streaming results to stdout.
func convertToStdout(ctx context.Context, env *Environment, files []FileToConvert, params *conversionParams) error {
	var failed int
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
		if err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", f.InputPath, err)
			continue
		}

		out, err := renderContent(ctx, params, string(content))
		if err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", f.InputPath, err)
			continue
		}

		if _, err := env.Stdout.Write(out); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d conversion(s) failed", failed)
	}
	return nil
}

// joinPaths renders input paths for error messages.
func joinPaths(paths []string) string {
	if len(paths) == 1 {
		return paths[0]
	}
	out := paths[0]
	for _, p := range paths[1:] {
		out += ", " + p
	}
	return out
}
