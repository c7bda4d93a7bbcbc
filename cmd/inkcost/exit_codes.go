package main

import (
	"context"
	"errors"
	"os"

	"github.com/alnah/go-inkcost"
	"github.com/alnah/go-inkcost/internal/config"
)

// Exit codes for the inkcost CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Estimate printed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitTool    = 4 // soffice, pdftoppm, or Chrome failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// External tool errors (exit 4)
	if errors.Is(err, inkcost.ErrConversion) ||
		errors.Is(err, inkcost.ErrRasterize) ||
		errors.Is(err, inkcost.ErrBrowserConnect) ||
		errors.Is(err, inkcost.ErrPageLoad) ||
		errors.Is(err, inkcost.ErrPDFGeneration) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitTool
	}

	// I/O errors (exit 3)
	if errors.Is(err, inkcost.ErrFileNotFound) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, inkcost.ErrUnsupportedFormat) ||
		errors.Is(err, inkcost.ErrInvalidDPI) ||
		errors.Is(err, inkcost.ErrInvalidFormat) ||
		errors.Is(err, inkcost.ErrInvalidPriceList) {
		return ExitUsage
	}

	return ExitGeneral
}
