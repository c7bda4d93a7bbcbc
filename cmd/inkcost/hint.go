package main

import (
	"context"
	"errors"

	"github.com/alnah/go-inkcost"
	"github.com/alnah/go-inkcost/internal/hints"
)

// hintFor returns an actionable hint for err, or "".
// Config hints are attached where the config name is known.
func hintFor(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, inkcost.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, inkcost.ErrPageLoad), errors.Is(err, inkcost.ErrPDFGeneration):
		return ""
	case errors.Is(err, inkcost.ErrRasterize):
		return hints.ForRasterizer()
	case errors.Is(err, inkcost.ErrConversion):
		return hints.ForOfficeConverter()
	case errors.Is(err, inkcost.ErrUnsupportedFormat):
		return hints.ForUnsupportedFormat(inkcost.SupportedExtensions())
	default:
		return ""
	}
}
