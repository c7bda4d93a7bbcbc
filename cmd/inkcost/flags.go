package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage     = errors.New("invalid usage")
	ErrNoInput   = errors.New("no input specified")
	errHelpShown = errors.New("help shown")
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	logJSON bool
}

// pricingFlags holds flags that change how pages are priced.
type pricingFlags struct {
	threshold int
	currency  string
	json      bool
}

// estimateFlags holds all flags for the estimate command.
type estimateFlags struct {
	common      commonFlags
	pricing     pricingFlags
	dpi         int
	imageFormat string
	timeout     string
	pageSize    string
}

// analyzeFlags holds all flags for the analyze command.
type analyzeFlags struct {
	common  commonFlags
	pricing pricingFlags
}

// tiersFlags holds all flags for the tiers command.
type tiersFlags struct {
	config   string
	currency string
	yaml     bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only log errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log each page")
	fs.BoolVar(&f.logJSON, "log-json", false, "log as JSON lines")
}

// addPricingFlags adds pricing flags to a FlagSet.
func addPricingFlags(fs *flag.FlagSet, f *pricingFlags) {
	fs.IntVar(&f.threshold, "threshold", 0, "ink luminance threshold (1-255, default: 240)")
	fs.StringVar(&f.currency, "currency", "", "currency label (default: PHP)")
	fs.BoolVar(&f.json, "json", false, "print the report as JSON")
}

// newFlagSet creates a silent FlagSet; errors are reported by runMain.
func newFlagSet(name string, usage func(io.Writer), out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { usage(out) }
	return fs
}

// parseFlagSet parses args and normalizes pflag errors.
func parseFlagSet(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.Usage()
			return errHelpShown
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// parseEstimateFlags parses flags for the estimate command.
func parseEstimateFlags(args []string, out io.Writer) (*estimateFlags, []string, error) {
	f := &estimateFlags{}
	fs := newFlagSet("estimate", printEstimateUsage, out)

	fs.IntVar(&f.dpi, "dpi", 0, "render resolution (36-1200, default: 200)")
	fs.StringVar(&f.imageFormat, "format", "", "page image format: png, tiff")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-tool timeout (e.g., 30s, 2m; 0 = none)")
	fs.StringVarP(&f.pageSize, "page-size", "p", "", "paper for Markdown/HTML: letter, a4, legal")
	addCommonFlags(fs, &f.common)
	addPricingFlags(fs, &f.pricing)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseAnalyzeFlags parses flags for the analyze command.
func parseAnalyzeFlags(args []string, out io.Writer) (*analyzeFlags, []string, error) {
	f := &analyzeFlags{}
	fs := newFlagSet("analyze", printAnalyzeUsage, out)

	addCommonFlags(fs, &f.common)
	addPricingFlags(fs, &f.pricing)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseTiersFlags parses flags for the tiers command.
func parseTiersFlags(args []string, out io.Writer) (*tiersFlags, []string, error) {
	f := &tiersFlags{}
	fs := newFlagSet("tiers", printTiersUsage, out)

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.currency, "currency", "", "currency label (default: PHP)")
	fs.BoolVar(&f.yaml, "yaml", false, "print the effective configuration as YAML")

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
