package main

import (
	"fmt"

	"github.com/alnah/go-inkcost"
)

// runAnalyzeCmd prices image files as single pages.
func runAnalyzeCmd(args []string, env *Environment) error {
	flags, positional, err := parseAnalyzeFlags(args, env.Stdout)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return fmt.Errorf("%w: analyze needs at least one image path", ErrNoInput)
	}

	cfg, err := loadConfig(flags.common.config, env)
	if err != nil {
		return err
	}
	mergePricingFlags(&flags.pricing, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := newLogger(flags.common, env.Stderr)
	opts, err := serviceOptions(cfg, log)
	if err != nil {
		return err
	}

	svc := env.service(opts...)
	defer func() { _ = svc.Close() }()

	for _, path := range positional {
		raster, err := inkcost.LoadImage(path)
		if err != nil {
			return err
		}
		page, err := svc.EstimateImage(raster)
		if err != nil {
			return fmt.Errorf("analyzing %s: %w", path, err)
		}
		log.WithField("image", path).Debug("image priced")

		report := &inkcost.Report{
			Source:     path,
			TotalPages: 1,
			Pages:      []inkcost.PageResult{page},
			Currency:   cfg.Pricing.Currency,
		}
		report.Total.Add(page.Pricing)

		if err := writeReport(env.Stdout, report, flags.pricing.json); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}
	return nil
}
