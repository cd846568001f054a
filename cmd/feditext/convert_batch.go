package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	feditext "github.com/alnah/go-feditext"
	"github.com/alnah/go-feditext/internal/config"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// maxAutoWorkers caps the worker count derived from GOMAXPROCS. Explicit
// flag or config values may go higher, up to config.MaxWorkers.
const maxAutoWorkers = 8

// Sentinel errors for batch operations.
var (
	ErrNoInput     = errors.New("no input specified")
	ErrReadInput   = errors.New("failed to read input file")
	ErrReadStyle   = errors.New("failed to read CSS file")
	ErrWriteOutput = errors.New("failed to write output file")
)

// conversionParams groups parameters shared across batch conversion.
type conversionParams struct {
	converter *feditext.Converter
	previewer *feditext.Previewer
	format    outputFormat
	pretty    bool
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// resolveWorkerCount determines the batch parallelism.
// Priority: explicit flag > config > GOMAXPROCS-based default
// (automaxprocs-adjusted in containers).
func resolveWorkerCount(flagWorkers int, cfg *config.Config) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	if cfg.Workers.Count > 0 {
		return cfg.Workers.Count
	}

	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	if n > maxAutoWorkers {
		return maxAutoWorkers
	}
	return n
}

// convertBatch processes files concurrently with a bounded worker set.
// The converter inside params is safe for concurrent use, so workers share
// it instead of pooling per-worker instances.
func convertBatch(ctx context.Context, workers int, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	if workers > len(files) {
		workers = len(files)
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadInput, err)
		result.Duration = time.Since(start)
		return result
	}

	out, err := renderContent(ctx, params, string(content))
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	if err := writeOutputFile(f.OutputPath, out); err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	result.Duration = time.Since(start)
	return result
}

// writeOutputFile writes converted output, creating parent directories.
func writeOutputFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	// #nosec G306 -- converted text is meant to be readable
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// anyWriteFailure reports whether any result failed writing its output.
func anyWriteFailure(results []ConversionResult) bool {
	for _, r := range results {
		if errors.Is(r.Err, ErrWriteOutput) {
			return true
		}
	}
	return false
}

// printResultsWithWriter outputs conversion results using the provided
// writers and returns the failure count.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
