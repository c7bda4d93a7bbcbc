package inkcost

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string) ([]byte, error)
	Close() error
}

var _ pdfRenderer = (*rodRenderer)(nil)

// Page sizes in inches.
var pageDimensions = map[string]struct{ width, height float64 }{
	"letter": {8.5, 11},
	"a4":     {8.27, 11.69},
	"legal":  {8.5, 14},
}

// Page margins in inches.
const marginInches = 0.5

// defaultPageTimeout bounds page loading when the context has no deadline.
const defaultPageTimeout = 30 * time.Second

// rodRenderer implements pdfRenderer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	browser  *rod.Browser
	pageSize string
}

// newRodRenderer creates a rodRenderer for the given paper size. Unknown
// sizes fall back to letter.
func newRodRenderer(pageSize string) *rodRenderer {
	return &rodRenderer{pageSize: strings.ToLower(pageSize)}
}

// ensureBrowser lazily connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (r *rodRenderer) Close() error {
	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// RenderFromFile opens a local HTML file in headless Chrome and prints it to PDF.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: fileURL(filePath)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	defer page.Close()

	timeout := defaultPageTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(r.printOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// printOptions builds the Chrome print settings for the configured paper.
func (r *rodRenderer) printOptions() *proto.PagePrintToPDF {
	dim, ok := pageDimensions[r.pageSize]
	if !ok {
		dim = pageDimensions["letter"]
	}
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(dim.width),
		PaperHeight:     floatPtr(dim.height),
		MarginTop:       floatPtr(marginInches),
		MarginBottom:    floatPtr(marginInches),
		MarginLeft:      floatPtr(marginInches),
		MarginRight:     floatPtr(marginInches),
		PrintBackground: true,
	}
}

// fileURL converts a local path to a file:// URL Chrome can open.
func fileURL(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	abs = filepath.ToSlash(abs)
	if !strings.HasPrefix(abs, "/") {
		abs = "/" + abs // Windows drive letter
	}
	return "file://" + abs
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// htmlConverter prints HTML documents to PDF with headless Chrome.
type htmlConverter struct {
	renderer pdfRenderer
}

func newHTMLConverter(renderer pdfRenderer) *htmlConverter {
	return &htmlConverter{renderer: renderer}
}

// ToPDF renders srcPath and writes the PDF to pdfPath.
func (c *htmlConverter) ToPDF(ctx context.Context, srcPath, pdfPath string) error {
	data, err := c.renderer.RenderFromFile(ctx, srcPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConversion, err)
	}
	return writePDF(pdfPath, data)
}

// Close releases the shared renderer.
func (c *htmlConverter) Close() error {
	return c.renderer.Close()
}

// writePDF stores rendered PDF bytes at path.
func writePDF(path string, data []byte) error {
	// #nosec G306 -- PDF output files are intended to be readable
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrConversion, path, err)
	}
	return nil
}
