package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/alnah/go-inkcost"
	"github.com/alnah/go-inkcost/internal/config"
)

// Estimator is the part of the estimation service the CLI uses.
type Estimator interface {
	Estimate(ctx context.Context, srcPath string) (*inkcost.Report, error)
	EstimateImage(r inkcost.Raster) (inkcost.PageResult, error)
	Close() error
}

// Compile-time interface implementation check.
var _ Estimator = (*inkcost.Service)(nil)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, configuration, and the service constructor.
type Environment struct {
	Now        func() time.Time
	Stdout     io.Writer
	Stderr     io.Writer
	Config     *config.Config // Used when no --config is given
	NewService func(opts ...inkcost.Option) Estimator
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:        time.Now,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Config:     config.DefaultConfig(),
		NewService: newService,
	}
}

func newService(opts ...inkcost.Option) Estimator {
	return inkcost.New(opts...)
}

// now returns the current time, tolerating a partially filled Environment.
func (e *Environment) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// service builds an Estimator, tolerating a partially filled Environment.
func (e *Environment) service(opts ...inkcost.Option) Estimator {
	if e.NewService == nil {
		return newService(opts...)
	}
	return e.NewService(opts...)
}

// baseConfig returns a copy of the environment config, or the defaults.
func (e *Environment) baseConfig() *config.Config {
	if e.Config == nil {
		return config.DefaultConfig()
	}
	cfg := *e.Config
	cfg.Pricing.Tiers = append([]config.TierConfig(nil), e.Config.Pricing.Tiers...)
	return &cfg
}
