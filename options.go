package inkcost

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	dpi            int
	imageFormat    string
	currency       string
	officeBinary   string
	rasterBinary   string
	pageSize       string
	timeout        time.Duration // 0 = none
	inkThreshold   uint8
	priceList      PriceList
	customAnalyzer *Analyzer
}

// Default external tools.
const (
	DefaultOfficeBinary     = "soffice"
	DefaultRasterizerBinary = "pdftoppm"
	DefaultPageSize         = "letter"
)

func defaultServiceConfig() serviceConfig {
	return serviceConfig{
		dpi:          DefaultDPI,
		imageFormat:  ImageFormatPNG,
		currency:     DefaultCurrency,
		officeBinary: DefaultOfficeBinary,
		rasterBinary: DefaultRasterizerBinary,
		pageSize:     DefaultPageSize,
		inkThreshold: DefaultInkThreshold,
		priceList:    DefaultPriceList(),
	}
}

// WithPriceList replaces the tier table and paper price.
// The list is validated when a document is estimated.
func WithPriceList(p PriceList) Option {
	return func(s *Service) {
		s.cfg.priceList = p
	}
}

// WithAnalyzer sets the coverage analyzer.
func WithAnalyzer(a *Analyzer) Option {
	return func(s *Service) {
		s.cfg.customAnalyzer = a
	}
}

// WithInkThreshold sets the luminance below which a pixel counts as ink.
func WithInkThreshold(threshold uint8) Option {
	return func(s *Service) {
		s.cfg.inkThreshold = threshold
	}
}

// WithDPI sets the page rendering resolution.
func WithDPI(dpi int) Option {
	return func(s *Service) {
		s.cfg.dpi = dpi
	}
}

// WithImageFormat selects the page image format requested from pdftoppm:
// "png" or "tiff".
func WithImageFormat(format string) Option {
	return func(s *Service) {
		s.cfg.imageFormat = strings.ToLower(format)
	}
}

// WithCurrency sets the label printed next to prices.
func WithCurrency(label string) Option {
	return func(s *Service) {
		s.cfg.currency = label
	}
}

// WithLogger sets the diagnostic logger. Page failures are logged at warn
// level, progress at debug level.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Service) {
		s.log = l
	}
}

// WithTimeout bounds each external tool call: the document conversion and
// each page render. Zero disables the timeout.
// Panics if d < 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d < 0 {
		panic("inkcost: WithTimeout duration must not be negative")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithOfficeBinary sets the LibreOffice executable.
func WithOfficeBinary(path string) Option {
	return func(s *Service) {
		s.cfg.officeBinary = path
	}
}

// WithRasterizerBinary sets the pdftoppm executable.
func WithRasterizerBinary(path string) Option {
	return func(s *Service) {
		s.cfg.rasterBinary = path
	}
}

// WithPageSize sets the paper used to print Markdown and HTML sources:
// "letter", "a4" or "legal".
func WithPageSize(size string) Option {
	return func(s *Service) {
		s.cfg.pageSize = strings.ToLower(size)
	}
}

// withConverters replaces the document converters (for testing).
func withConverters(c *converterSet) Option {
	return func(s *Service) {
		s.converters = c
	}
}

// withRasterizer replaces the PDF rasterizer (for testing).
func withRasterizer(r rasterizer) Option {
	return func(s *Service) {
		s.raster = r
	}
}
