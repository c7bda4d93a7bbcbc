package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// runEstimateCmd prices every page of one document.
func runEstimateCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseEstimateFlags(args, env.Stdout)
	if err != nil {
		return err
	}
	switch len(positional) {
	case 0:
		return fmt.Errorf("%w: estimate needs a document path", ErrNoInput)
	case 1:
	default:
		return fmt.Errorf("%w: estimate takes one document, got %d", ErrUsage, len(positional))
	}

	cfg, err := loadConfig(flags.common.config, env)
	if err != nil {
		return err
	}
	mergeEstimateFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := newLogger(flags.common, env.Stderr)
	opts, err := serviceOptions(cfg, log)
	if err != nil {
		return err
	}

	svc := env.service(opts...)
	defer func() {
		if err := svc.Close(); err != nil {
			log.WithError(err).Warn("closing browser")
		}
	}()

	start := env.now()
	report, err := svc.Estimate(ctx, positional[0])
	if err != nil && (report == nil || len(report.Pages) == 0) {
		return err
	}

	// A canceled run still prints the pages priced so far.
	if werr := writeReport(env.Stdout, report, flags.pricing.json); werr != nil {
		return fmt.Errorf("writing report: %w", werr)
	}
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"pages":   report.TotalPages,
		"skipped": report.Skipped(),
		"elapsed": env.now().Sub(start).Round(time.Millisecond),
	}).Info("estimate complete")
	return nil
}
