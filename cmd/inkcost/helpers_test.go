package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alnah/go-inkcost"
	"github.com/alnah/go-inkcost/internal/config"
)

// fakeEstimator returns a canned report for Estimate and delegates
// EstimateImage to a real service built from the same options.
type fakeEstimator struct {
	report *inkcost.Report
	err    error
	src    string
	svc    *inkcost.Service
	closed bool
}

func (f *fakeEstimator) Estimate(_ context.Context, srcPath string) (*inkcost.Report, error) {
	f.src = srcPath
	return f.report, f.err
}

func (f *fakeEstimator) EstimateImage(r inkcost.Raster) (inkcost.PageResult, error) {
	return f.svc.EstimateImage(r)
}

func (f *fakeEstimator) Close() error {
	f.closed = true
	return f.svc.Close()
}

// newTestEnv returns an environment whose service is fake, plus the
// buffers standing in for stdout and stderr.
func newTestEnv(fake *fakeEstimator) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:    func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
		Stdout: &stdout,
		Stderr: &stderr,
		Config: config.DefaultConfig(),
		NewService: func(opts ...inkcost.Option) Estimator {
			fake.svc = inkcost.New(opts...)
			return fake
		},
	}
	return env, &stdout, &stderr
}

// twoPageReport is a priced Tier 1 B&W page followed by a skipped page.
func twoPageReport(src string) *inkcost.Report {
	page := inkcost.PageResult{
		Number:   1,
		Analysis: inkcost.AnalysisResult{DocumentType: inkcost.BlackAndWhite, CoveragePercentage: 4.5},
		Pricing: inkcost.PricingBreakdown{
			TierName: "Tier 1: Light (0-25%)", PaperPrice: 1, BWInkPrice: 1, ColorInkPrice: 2,
			FinalBWPrice: 2, FinalColorPrice: 3,
		},
	}
	r := &inkcost.Report{
		Source:     src,
		PDFPath:    "doc.pdf",
		TotalPages: 2,
		Pages:      []inkcost.PageResult{page, {Number: 2, Err: inkcost.ErrRasterize}},
		Currency:   "PHP",
	}
	r.Total.Add(page.Pricing)
	return r
}

// writeFile writes content under dir and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// writePNG writes a 10x10 white image with the given pixels set to c.
func writePNG(t *testing.T, dir, name string, c color.Color, points ...image.Point) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	for _, p := range points {
		img.Set(p.X, p.Y, c)
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path) // #nosec G304 -- test temp dir
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding %s: %v", name, err)
	}
	return path
}
