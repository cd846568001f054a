package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: feditext <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert     Convert fediverse HTML to text formats (default)")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  doctor      Check the local setup")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'feditext help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: feditext convert <input>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert fediverse status HTML to markdown, plain text, JSON, link")
	fmt.Fprintln(w, "tables, or styled HTML previews.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    HTML file, directory (searched recursively for .html/.htm),")
	fmt.Fprintln(w, "           or - for stdin (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>        Output file or directory (- for stdout)")
	fmt.Fprintln(w, "  -c, --config <name>        Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>          Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Format:")
	fmt.Fprintln(w, "  -f, --format <s>           Output format: markdown, text, json, links, html")
	fmt.Fprintln(w, "      --pretty               Indent JSON output")
	fmt.Fprintln(w, "      --keep-trailing-tags   Keep the trailing hashtag paragraph")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Preview styling (html format):")
	fmt.Fprintln(w, "      --style <s>            Style name, CSS file path, or inline CSS")
	fmt.Fprintln(w, "      --assets <dir>         Custom asset directory with styles/*.css")
	fmt.Fprintln(w, "      --no-style             Disable preview styling")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                Only show errors")
	fmt.Fprintln(w, "  -v, --verbose              Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  FEDITEXT_CONFIG, FEDITEXT_FORMAT, FEDITEXT_STYLE, FEDITEXT_INPUT_DIR,")
	fmt.Fprintln(w, "  FEDITEXT_OUTPUT_DIR, FEDITEXT_ASSETS, FEDITEXT_WORKERS, FEDITEXT_PRETTY,")
	fmt.Fprintln(w, "  FEDITEXT_NO_STYLE, FEDITEXT_KEEP_TRAILING_TAGS")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Precedence: flags > environment > config file > defaults.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: feditext version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "completion":
		printCompletionUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: feditext doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check config resolution, styles, and the local environment.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: feditext help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
