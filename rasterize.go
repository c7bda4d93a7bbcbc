package inkcost

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/alnah/go-inkcost/internal/fileutil"
)

// DefaultDPI is the resolution pages are rendered at.
const DefaultDPI = 200

// DPI limits accepted by WithDPI.
const (
	MinDPI = 36
	MaxDPI = 1200
)

// Page image formats requested from the rasterizer.
const (
	ImageFormatPNG  = "png"
	ImageFormatTIFF = "tiff"
)

// rasterizer opens a PDF for page-by-page rendering.
type rasterizer interface {
	Open(ctx context.Context, pdfPath string) (pageSource, error)
}

// pageSource renders the pages of one opened PDF. Page numbers are 1-based.
type pageSource interface {
	NumPages() int
	Page(ctx context.Context, number int) (Raster, error)
	Close() error
}

var (
	_ rasterizer = (*popplerRasterizer)(nil)
	_ pageSource = (*popplerPages)(nil)
)

// popplerRasterizer counts pages natively and renders each one with
// poppler's pdftoppm.
type popplerRasterizer struct {
	binary string
	dpi    int
	format string
	runner commandRunner
}

func newPopplerRasterizer(binary string, dpi int, format string) *popplerRasterizer {
	return &popplerRasterizer{binary: binary, dpi: dpi, format: format, runner: &execRunner{}}
}

// Open reads the page count and prepares a working directory for page images.
func (r *popplerRasterizer) Open(ctx context.Context, pdfPath string) (pageSource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n, err := countPages(pdfPath)
	if err != nil {
		return nil, err
	}

	dir, cleanup, err := fileutil.TempDir("pages")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRasterize, err)
	}

	return &popplerPages{r: r, pdfPath: pdfPath, numPages: n, dir: dir, cleanup: cleanup}, nil
}

// countPages reads the page tree of a PDF.
// The PDF reader panics on some damaged files; that is reported as an error.
func countPages(pdfPath string) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: reading %s: %v", ErrRasterize, pdfPath, r)
		}
	}()

	f, reader, err := pdf.Open(pdfPath)
	if err != nil {
		return 0, fmt.Errorf("%w: opening %s: %v", ErrRasterize, pdfPath, err)
	}
	defer func() { _ = f.Close() }()

	n = reader.NumPage()
	if n <= 0 {
		return 0, fmt.Errorf("%w: %s has no pages", ErrRasterize, pdfPath)
	}
	return n, nil
}

// popplerPages is an opened PDF. Each page image lives in dir only until it
// has been decoded.
type popplerPages struct {
	r        *popplerRasterizer
	pdfPath  string
	numPages int
	dir      string
	cleanup  func()
}

func (p *popplerPages) NumPages() int { return p.numPages }

// Page renders one page and decodes it into an RGB raster.
func (p *popplerPages) Page(ctx context.Context, number int) (Raster, error) {
	if number < 1 || number > p.numPages {
		return Raster{}, fmt.Errorf("%w: page %d out of 1-%d", ErrRasterize, number, p.numPages)
	}

	prefix := filepath.Join(p.dir, "page-"+strconv.Itoa(number))
	page := strconv.Itoa(number)
	_, stderr, err := p.r.runner.Run(ctx, p.r.binary, p.r.args(page, prefix, p.pdfPath)...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Raster{}, ctxErr
		}
		return Raster{}, toolError(ErrRasterize, p.r.binary, stderr, err)
	}

	out := prefix + p.r.outputExt()
	defer func() { _ = os.Remove(out) }()

	raster, err := LoadImage(out)
	if err != nil {
		return Raster{}, fmt.Errorf("%w: page %d: %w", ErrRasterize, number, err)
	}
	return raster, nil
}

// Close removes the working directory.
func (p *popplerPages) Close() error {
	if p.cleanup != nil {
		p.cleanup()
		p.cleanup = nil
	}
	return nil
}

// args builds the pdftoppm command line for a single page.
func (r *popplerRasterizer) args(page, outPrefix, pdfPath string) []string {
	formatFlag := "-png"
	if r.format == ImageFormatTIFF {
		formatFlag = "-tiff"
	}
	return []string{
		"-r", strconv.Itoa(r.dpi),
		"-f", page,
		"-l", page,
		"-singlefile",
		formatFlag,
		pdfPath,
		outPrefix,
	}
}

// outputExt is the extension pdftoppm appends in -singlefile mode.
func (r *popplerRasterizer) outputExt() string {
	if r.format == ImageFormatTIFF {
		return ".tif"
	}
	return ".png"
}

// validImageFormat reports whether format can be requested from pdftoppm.
func validImageFormat(format string) bool {
	switch strings.ToLower(format) {
	case ImageFormatPNG, ImageFormatTIFF:
		return true
	default:
		return false
	}
}
