package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-inkcost"
	"github.com/alnah/go-inkcost/internal/fileutil"
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

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches the command line and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := cancelOnStop(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]
	var err error

	switch cmd {
	case "estimate":
		err = runEstimateCmd(ctx, rest, env)
	case "analyze":
		err = runAnalyzeCmd(rest, env)
	case "tiers":
		err = runTiersCmd(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "inkcost %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(rest, env)
	default:
		switch {
		case looksLikeDocument(cmd):
			err = runEstimateCmd(ctx, args[1:], env)
		case looksLikeImage(cmd):
			err = runAnalyzeCmd(args[1:], env)
		default:
			fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", cmd)
			printUsage(env.Stderr)
			return ExitUsage
		}
	}

	return reportError(env, err)
}

// reportError prints err with its hint and maps it to an exit code.
func reportError(env *Environment, err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, errHelpShown) {
		return ExitSuccess
	}
	fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
	return exitCodeFor(err)
}

// looksLikeDocument reports whether arg names a source the estimate
// command accepts, so "inkcost report.docx" works without a command.
func looksLikeDocument(arg string) bool {
	ext := fileutil.Ext(arg)
	if ext == "" {
		return false
	}
	for _, supported := range inkcost.SupportedExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// imageExtensions are the raster formats LoadImage decodes.
var imageExtensions = []string{".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp"}

// looksLikeImage reports whether arg names a raster image.
func looksLikeImage(arg string) bool {
	ext := fileutil.Ext(arg)
	for _, supported := range imageExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// hasVerboseFlag scans raw arguments before any flag set is parsed.
func hasVerboseFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if arg == "-v" || arg == "--verbose" {
			return true
		}
		// Combined short flags, e.g. -qv.
		if len(arg) > 2 && arg[0] == '-' && arg[1] != '-' && strings.ContainsRune(arg[1:], 'v') {
			return true
		}
	}
	return false
}
