package inkcost

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-inkcost/internal/fileutil"
	"github.com/alnah/go-inkcost/internal/logger"
)

// Service estimates the printing cost of documents.
// Pages are processed one at a time, in order.
type Service struct {
	cfg        serviceConfig
	analyzer   *Analyzer
	log        logrus.FieldLogger
	converters *converterSet
	raster     rasterizer
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithDPI, WithPriceList).
func New(opts ...Option) *Service {
	s := &Service{cfg: defaultServiceConfig()}

	for _, opt := range opts {
		opt(s)
	}

	if s.cfg.customAnalyzer != nil {
		s.analyzer = s.cfg.customAnalyzer
	} else {
		s.analyzer = NewAnalyzer(s.cfg.inkThreshold)
	}
	if s.log == nil {
		s.log = logger.Discard()
	}

	// Create converters and rasterizer if not injected (e.g., by tests)
	if s.converters == nil {
		renderer := newRodRenderer(s.cfg.pageSize)
		s.converters = &converterSet{
			office:   newOfficeConverter(s.cfg.officeBinary),
			markdown: newMarkdownConverter(renderer),
			html:     newHTMLConverter(renderer),
		}
	}
	if s.raster == nil {
		s.raster = newPopplerRasterizer(s.cfg.rasterBinary, s.cfg.dpi, s.cfg.imageFormat)
	}

	return s
}

// PriceList returns the active price list.
func (s *Service) PriceList() PriceList {
	return s.cfg.priceList
}

// Currency returns the currency label used in reports.
func (s *Service) Currency() string {
	return s.cfg.currency
}

// Estimate converts the document at srcPath to PDF, analyzes every page and
// prices it.
//
// The returned report is never nil. When the document cannot be converted
// or opened, the report has zero totals and the error says why. Pages that
// fail to render or analyze are recorded in the report, logged, and left
// out of the totals; they do not make Estimate fail. When ctx is canceled
// between pages, the partial report is returned with ctx.Err().
//
// The intermediate PDF is written next to the source and kept.
func (s *Service) Estimate(ctx context.Context, srcPath string) (*Report, error) {
	report := &Report{Source: srcPath, Currency: s.cfg.currency, Pages: []PageResult{}}

	if !fileutil.FileExists(srcPath) {
		return report, fmt.Errorf("%w: %s", ErrFileNotFound, srcPath)
	}
	if err := s.validate(); err != nil {
		return report, err
	}

	conv, err := s.converters.forPath(srcPath)
	if err != nil {
		return report, err
	}

	pdfPath := fileutil.PDFPathFor(srcPath)
	if conv != nil {
		s.log.WithFields(logrus.Fields{"source": srcPath, "pdf": pdfPath}).Debug("converting document")
		if err := s.withTimeout(ctx, func(ctx context.Context) error {
			return conv.ToPDF(ctx, srcPath, pdfPath)
		}); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return report, ctxErr
			}
			if !errors.Is(err, ErrConversion) {
				err = fmt.Errorf("%w: %w", ErrConversion, err)
			}
			return report, err
		}
	}
	report.PDFPath = pdfPath

	pages, err := s.raster.Open(ctx, pdfPath)
	if err != nil {
		return report, err
	}
	defer func() { _ = pages.Close() }()

	report.TotalPages = pages.NumPages()
	s.log.WithFields(logrus.Fields{"pdf": pdfPath, "pages": report.TotalPages, "dpi": s.cfg.dpi}).Debug("analyzing pages")

	for n := 1; n <= report.TotalPages; n++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		var raster Raster
		err := s.withTimeout(ctx, func(ctx context.Context) error {
			var renderErr error
			raster, renderErr = pages.Page(ctx, n)
			return renderErr
		})
		if ctxErr := ctx.Err(); ctxErr != nil {
			return report, ctxErr
		}

		var page PageResult
		if err != nil {
			page = PageResult{Number: n, Err: err}
		} else {
			page = s.pricePage(n, raster)
		}
		report.Pages = append(report.Pages, page)

		if !page.OK() {
			s.log.WithFields(logrus.Fields{"page": n, "error": page.Err}).Warn("page skipped")
			continue
		}
		report.Total.Add(page.Pricing)
		s.log.WithFields(logrus.Fields{
			"page":     n,
			"type":     page.Analysis.DocumentType.String(),
			"coverage": fmt.Sprintf("%.2f", page.Analysis.CoveragePercentage),
			"tier":     page.Pricing.TierName,
		}).Debug("page priced")
	}

	return report, nil
}

// EstimateImage analyzes and prices a single page raster.
func (s *Service) EstimateImage(r Raster) (PageResult, error) {
	if err := s.cfg.priceList.Validate(); err != nil {
		return PageResult{}, err
	}
	page := s.pricePage(1, r)
	return page, page.Err
}

// pricePage runs the analyzer and the pricing engine on one page.
func (s *Service) pricePage(n int, r Raster) PageResult {
	analysis, err := s.analyzer.Analyze(r)
	if err != nil {
		return PageResult{Number: n, Err: err}
	}
	pricing, err := s.cfg.priceList.Price(analysis.CoveragePercentage)
	if err != nil {
		return PageResult{Number: n, Err: err}
	}
	return PageResult{Number: n, Analysis: analysis, Pricing: pricing}
}

// withTimeout runs fn under the configured per-call timeout, if any.
func (s *Service) withTimeout(ctx context.Context, fn func(context.Context) error) error {
	if s.cfg.timeout <= 0 {
		return fn(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.timeout)
	defer cancel()
	return fn(ctx)
}

// validate checks the settings that options cannot reject up front.
func (s *Service) validate() error {
	if s.cfg.dpi < MinDPI || s.cfg.dpi > MaxDPI {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidDPI, s.cfg.dpi, MinDPI, MaxDPI)
	}
	if !validImageFormat(s.cfg.imageFormat) {
		return fmt.Errorf("%w: %q (must be png or tiff)", ErrInvalidFormat, s.cfg.imageFormat)
	}
	return s.cfg.priceList.Validate()
}

// Close releases resources (headless Chrome browser, if one was started).
func (s *Service) Close() error {
	if s.converters != nil {
		return s.converters.Close()
	}
	return nil
}
