package inkcost

import "errors"

// Sentinel errors for library operations.
var (
	ErrFileNotFound      = errors.New("source document not found")
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrConversion        = errors.New("document to PDF conversion failed")
	ErrRasterize         = errors.New("PDF rasterization failed")
	ErrInvalidDPI        = errors.New("invalid DPI")
	ErrInvalidFormat     = errors.New("invalid raster image format")

	// Browser errors (Markdown and HTML sources).
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")

	// Analysis errors.
	ErrAnalysis        = errors.New("page analysis failed")
	ErrMalformedRaster = errors.New("malformed raster buffer")
	ErrChannelMismatch = errors.New("unsupported channel count")

	// Pricing errors.
	ErrCoverageOutOfRange = errors.New("coverage percentage out of range")
	ErrInvalidPriceList   = errors.New("invalid price list")
)
