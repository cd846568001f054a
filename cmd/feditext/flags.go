package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// formatFlags holds output format selection flags.
type formatFlags struct {
	name   string
	pretty bool
}

// styleFlags holds preview styling flags.
type styleFlags struct {
	style     string
	assetPath string
	noStyle   bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common           commonFlags
	format           formatFlags
	style            styleFlags
	output           string
	workers          int
	keepTrailingTags bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addFormatFlags adds format selection flags to a FlagSet.
func addFormatFlags(fs *flag.FlagSet, f *formatFlags) {
	fs.StringVarP(&f.name, "format", "f", "", "output format: markdown, text, json, links, html")
	fs.BoolVar(&f.pretty, "pretty", false, "indent JSON output")
}

// addStyleFlags adds preview styling flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.style, "style", "", "preview style name, CSS file path, or inline CSS")
	fs.StringVar(&f.assetPath, "assets", "", "custom asset directory with styles/*.css")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable preview styling")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory (- for stdout)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.keepTrailingTags, "keep-trailing-tags", false, "keep the trailing hashtag paragraph")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addFormatFlags(fs, &f.format)
	addStyleFlags(fs, &f.style)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
