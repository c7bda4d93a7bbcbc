package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-inkcost"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: inkcost <command> [flags] [args]")
	fmt.Fprintln(w, "       inkcost <document>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  estimate   Estimate the printing cost of a document")
	fmt.Fprintln(w, "  analyze    Estimate the printing cost of page images")
	fmt.Fprintln(w, "  tiers      Show the active price list")
	fmt.Fprintln(w, "  doctor     Check that soffice, pdftoppm, and Chrome are available")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'inkcost help <command>' for details on a specific command.")
}

// printEstimateUsage prints usage for the estimate command.
func printEstimateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: inkcost estimate <document> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render every page, measure ink coverage, and price each page.")
	fmt.Fprintln(w, "The intermediate PDF is kept next to the document.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintf(w, "  document    %s\n", strings.Join(inkcost.SupportedExtensions(), " "))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --dpi <n>             Render resolution (36-1200, default: 200)")
	fmt.Fprintln(w, "      --format <s>          Page image format: png, tiff")
	fmt.Fprintln(w, "  -p, --page-size <s>       Paper for Markdown/HTML: letter, a4, legal")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-tool timeout (e.g., 30s, 2m; 0 = none)")
	fmt.Fprintln(w)
	printPricingFlags(w)
	printCommonFlags(w)
}

// printAnalyzeUsage prints usage for the analyze command.
func printAnalyzeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: inkcost analyze <image>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Price PNG, JPEG, TIFF, or BMP images as single pages.")
	fmt.Fprintln(w)
	printPricingFlags(w)
	printCommonFlags(w)
}

// printTiersUsage prints usage for the tiers command.
func printTiersUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: inkcost tiers [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show the coverage tiers and per-page prices in effect.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --currency <s>        Currency label")
	fmt.Fprintln(w, "      --yaml                Print the effective configuration as YAML")
}

func printPricingFlags(w io.Writer) {
	fmt.Fprintln(w, "Pricing:")
	fmt.Fprintln(w, "      --threshold <n>       Luminance below this is ink (1-255, default: 240)")
	fmt.Fprintln(w, "      --currency <s>        Currency label (default: PHP)")
	fmt.Fprintln(w, "      --json                Print the report as JSON")
	fmt.Fprintln(w)
}

func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Config and Logging:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only log errors")
	fmt.Fprintln(w, "  -v, --verbose             Log each page")
	fmt.Fprintln(w, "      --log-json            Log as JSON lines")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "estimate":
		printEstimateUsage(env.Stdout)
	case "analyze":
		printAnalyzeUsage(env.Stdout)
	case "tiers":
		printTiersUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: inkcost doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check that the external tools are installed.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: inkcost version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: inkcost help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
