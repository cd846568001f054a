package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	env := DefaultEnv()
	os.Exit(runMain(os.Args[1:], env))
}

// runMain dispatches to a subcommand and returns the process exit code.
// Unrecognized first arguments are treated as convert inputs, so
// "feditext post.html" works without naming the command.
func runMain(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	switch args[0] {
	case "convert":
		return runConvertCmd(args[1:], env)
	case "version":
		fmt.Fprintf(env.Stdout, "feditext %s\n", Version)
		return ExitSuccess
	case "help", "--help", "-h":
		runHelp(args[1:], env)
		return ExitSuccess
	case "completion":
		if err := runCompletion(args[1:], env); err != nil {
			fmt.Fprintln(env.Stderr, err)
			return exitCodeFor(err)
		}
		return ExitSuccess
	case "doctor":
		return runDoctorCmd(args[1:], env)
	default:
		return runConvertCmd(args, env)
	}
}

// runConvertCmd parses convert flags, configures the runtime, and executes
// the conversion under a signal-aware context.
func runConvertCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		// pflag already printed the parse error and usage.
		return ExitUsage
	}

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues.
	if flags.common.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, positional, flags, env); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}
