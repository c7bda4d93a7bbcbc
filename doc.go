// Package inkcost estimates the printing cost of a document from its ink
// coverage.
//
// # Quick Start
//
// Create a service, estimate a document, and close when done:
//
//	svc := inkcost.New()
//	defer svc.Close()
//
//	report, err := svc.Estimate(ctx, "thesis.docx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	inkcost.WriteReport(os.Stdout, report)
//
// # Pipeline
//
// Each document goes through three stages, one page at a time:
//
//  1. Rendering: the source is converted to PDF (LibreOffice for office
//     documents, headless Chrome for Markdown and HTML) and each page is
//     rasterized by poppler's pdftoppm at 200 DPI.
//  2. Coverage analysis: a page is Color if any pixel has differing red and
//     green channels; its coverage is the share of pixels whose luminance is
//     below 240.
//  3. Pricing: coverage selects a tier; the page costs paper plus the tier's
//     ink price, for black-and-white and for color printing.
//
// The intermediate PDF is written next to the source and kept.
//
// # Failures
//
// A page that cannot be rendered or analyzed is reported and left out of
// the totals; the run continues. A missing source or a failed conversion
// aborts the run with zero totals. Errors wrap the sentinels in errors.go
// and can be tested with errors.Is.
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc := inkcost.New(
//	    inkcost.WithDPI(300),
//	    inkcost.WithInkThreshold(230),
//	    inkcost.WithPriceList(myPrices),
//	    inkcost.WithTimeout(2*time.Minute),
//	)
//
// The analyzer and the price list also work on their own:
//
//	result, err := inkcost.NewAnalyzer(inkcost.DefaultInkThreshold).Analyze(raster)
//	breakdown, err := inkcost.DefaultPriceList().Price(result.CoveragePercentage)
package inkcost
