package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	ctx, stop := notifyContext(context.Background())
	code := run(ctx, os.Args, DefaultEnv())
	stop()
	os.Exit(code)
}

// run dispatches to a command and returns the process exit code.
// A first argument that is not a command name runs build.
func run(ctx context.Context, args []string, env *Environment) int {
	if len(args) == 0 {
		args = []string{"policypdf"}
	}
	rest := args[1:]
	cmd := "build"
	if len(rest) > 0 && !strings.HasPrefix(rest[0], "-") {
		cmd, rest = rest[0], rest[1:]
		if !isCommand(cmd) {
			// policypdf a.tsx b.tsx builds from those sources.
			cmd, rest = "build", args[1:]
		}
	}

	var err error
	switch cmd {
	case "build":
		err = runBuild(ctx, rest, env)
	case "extract":
		err = runExtract(ctx, rest, env)
	case "config":
		err = runConfig(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "policypdf %s\n", Version)
		return ExitSuccess
	case "help":
		return runHelp(rest, env)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintln(env.Stderr, "error:", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

var commands = map[string]bool{
	"build":   true,
	"extract": true,
	"config":  true,
	"doctor":  true,
	"version": true,
	"help":    true,
}

func isCommand(name string) bool {
	return commands[name]
}

// hasVerboseFlag scans for -v/--verbose before flags are parsed.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}
