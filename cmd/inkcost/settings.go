package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-inkcost"
	"github.com/alnah/go-inkcost/internal/config"
	"github.com/alnah/go-inkcost/internal/hints"
	"github.com/alnah/go-inkcost/internal/logger"
)

// loadConfig returns the config named by --config, or the environment
// config when the flag is empty.
func loadConfig(nameOrPath string, env *Environment) (*config.Config, error) {
	if nameOrPath == "" {
		return env.baseConfig(), nil
	}

	cfg, err := config.LoadConfig(nameOrPath)
	if err != nil {
		hint := ""
		if errors.Is(err, config.ErrConfigNotFound) {
			var searched []string
			if !strings.ContainsAny(nameOrPath, "/\\") {
				searched = config.SearchPaths(nameOrPath)
			}
			hint = hints.ForConfigNotFound(searched)
		}
		return nil, fmt.Errorf("loading config: %w%s", err, hint)
	}
	return cfg, nil
}

// mergeEstimateFlags applies estimate flags over cfg (CLI wins).
func mergeEstimateFlags(f *estimateFlags, cfg *config.Config) {
	if f.dpi != 0 {
		cfg.Analysis.DPI = f.dpi
	}
	if f.imageFormat != "" {
		cfg.Analysis.ImageFormat = f.imageFormat
	}
	if f.timeout != "" {
		cfg.Converters.Timeout = f.timeout
	}
	if f.pageSize != "" {
		cfg.Page.Size = f.pageSize
	}
	mergePricingFlags(&f.pricing, cfg)
}

// mergePricingFlags applies pricing flags over cfg (CLI wins).
func mergePricingFlags(f *pricingFlags, cfg *config.Config) {
	if f.threshold != 0 {
		cfg.Analysis.InkThreshold = f.threshold
	}
	if f.currency != "" {
		cfg.Pricing.Currency = f.currency
	}
}

// priceListFrom converts the configured tiers. A tier without maxCoverage
// is unbounded.
func priceListFrom(p config.PricingConfig) inkcost.PriceList {
	list := inkcost.PriceList{
		PaperPrice: p.PaperPrice,
		Tiers:      make([]inkcost.Tier, 0, len(p.Tiers)),
	}
	for _, t := range p.Tiers {
		maxCoverage := math.Inf(1)
		if t.MaxCoverage != nil {
			maxCoverage = *t.MaxCoverage
		}
		list.Tiers = append(list.Tiers, inkcost.Tier{
			Name:        t.Name,
			MaxCoverage: maxCoverage,
			BWInk:       t.BWInk,
			ColorInk:    t.ColorInk,
		})
	}
	return list
}

// serviceOptions builds the service options for a validated config.
func serviceOptions(cfg *config.Config, log logrus.FieldLogger) ([]inkcost.Option, error) {
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}

	priceList := priceListFrom(cfg.Pricing)
	if err := priceList.Validate(); err != nil {
		return nil, err
	}

	return []inkcost.Option{
		inkcost.WithDPI(cfg.Analysis.DPI),
		inkcost.WithImageFormat(cfg.Analysis.ImageFormat),
		inkcost.WithInkThreshold(uint8(cfg.Analysis.InkThreshold)), // #nosec G115 -- range checked by Validate
		inkcost.WithCurrency(cfg.Pricing.Currency),
		inkcost.WithPriceList(priceList),
		inkcost.WithTimeout(timeout),
		inkcost.WithOfficeBinary(cfg.Converters.Office),
		inkcost.WithRasterizerBinary(cfg.Converters.Rasterizer),
		inkcost.WithPageSize(cfg.Page.Size),
		inkcost.WithLogger(log),
	}, nil
}

// newLogger creates the diagnostic logger. Reports go to stdout; logs to w.
func newLogger(f commonFlags, w io.Writer) *logrus.Logger {
	level := "warn"
	switch {
	case f.verbose:
		level = "debug"
	case f.quiet:
		level = "error"
	}
	return logger.New(w, logger.Options{Level: level, JSON: f.logJSON})
}

// writeReport prints r as text or JSON.
func writeReport(w io.Writer, r *inkcost.Report, asJSON bool) error {
	if asJSON {
		return inkcost.WriteReportJSON(w, r)
	}
	return inkcost.WriteReport(w, r)
}
