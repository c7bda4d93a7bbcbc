package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/alnah/go-inkcost"
)

// runTiersCmd prints the active price list.
func runTiersCmd(args []string, env *Environment) error {
	flags, positional, err := parseTiersFlags(args, env.Stdout)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: tiers takes no arguments, got %q", ErrUsage, positional[0])
	}

	cfg, err := loadConfig(flags.config, env)
	if err != nil {
		return err
	}
	if flags.currency != "" {
		cfg.Pricing.Currency = flags.currency
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if flags.yaml {
		data, err := cfg.Marshal()
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		_, err = env.Stdout.Write(data)
		return err
	}

	list := priceListFrom(cfg.Pricing)
	if err := list.Validate(); err != nil {
		return err
	}
	return printTiers(env.Stdout, list, cfg.Pricing.Currency)
}

// printTiers writes one row per tier with the per-page totals.
func printTiers(w io.Writer, list inkcost.PriceList, currency string) error {
	fmt.Fprintf(w, "Paper: %s %d per page\n\n", currency, list.PaperPrice)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIER\tCOVERAGE\tB&W INK\tCOLOR INK\tB&W PAGE\tCOLOR PAGE")

	lower := 0.0
	for _, t := range list.Tiers {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s %d\t%s %d\n",
			t.Name, coverageRange(lower, t),
			t.BWInk, t.ColorInk,
			currency, list.PaperPrice+t.BWInk,
			currency, list.PaperPrice+t.ColorInk)
		lower = t.MaxCoverage
	}
	return tw.Flush()
}

// coverageRange describes the bracket (lower, t.MaxCoverage].
func coverageRange(lower float64, t inkcost.Tier) string {
	if t.Unbounded() {
		return fmt.Sprintf("over %g%%", lower)
	}
	return fmt.Sprintf("up to %g%%", t.MaxCoverage)
}
