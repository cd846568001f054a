package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-feditext/internal/config"
	"github.com/alnah/go-feditext/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .html or .htm extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrMixedStdin         = errors.New("cannot mix - with file inputs")
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds all HTML files under the given inputs. outExt is the
// extension of the selected output format.
func discoverFiles(inputPaths []string, outputTarget, outExt string) ([]FileToConvert, error) {
	var files []FileToConvert
	for _, inputPath := range inputPaths {
		found, err := discoverPath(inputPath, outputTarget, outExt)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

// discoverPath expands one input path into files to convert. A plain file
// must carry an HTML extension; a directory is walked recursively.
func discoverPath(inputPath, outputTarget, outExt string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !fileutil.IsHTML(inputPath) {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(inputPath))
		}
		outPath := resolveOutputPath(inputPath, outputTarget, "", outExt)
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		if !fileutil.IsHTML(path) {
			return nil
		}
		outPath := resolveOutputPath(path, outputTarget, inputPath, outExt)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the output path for one input file.
// An empty target puts the output next to its input; a target ending in the
// format extension names the output file directly; anything else is treated
// as a directory, mirroring the input tree under it for directory inputs.
func resolveOutputPath(inputPath, outputTarget, baseInputDir, outExt string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	if outputTarget == "" {
		return filepath.Join(filepath.Dir(inputPath), base+outExt)
	}

	if strings.HasSuffix(outputTarget, outExt) {
		return outputTarget
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			relDir := filepath.Dir(relPath)
			return filepath.Join(outputTarget, relDir, base+outExt)
		}
	}

	return filepath.Join(outputTarget, base+outExt)
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}
