package inkcost

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-inkcost/internal/assets"
	"github.com/alnah/go-inkcost/internal/fileutil"
	"github.com/alnah/go-inkcost/internal/pipeline"
)

// markdownConverter renders Markdown to styled HTML, then prints it with
// headless Chrome.
type markdownConverter struct {
	source   pipeline.SourceRenderer
	renderer pdfRenderer
	style    string
}

func newMarkdownConverter(renderer pdfRenderer) *markdownConverter {
	return &markdownConverter{
		source:   pipeline.NewGoldmark(),
		renderer: renderer,
		style:    assets.DefaultStyle,
	}
}

// ToPDF converts the Markdown file at srcPath and writes the PDF to pdfPath.
func (c *markdownConverter) ToPDF(ctx context.Context, srcPath, pdfPath string) error {
	content, err := os.ReadFile(srcPath) // #nosec G304 -- source path is user-provided
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrConversion, srcPath, err)
	}

	base := filepath.Base(srcPath)
	title := strings.TrimSuffix(base, filepath.Ext(base))

	htmlDoc, err := c.source.Render(ctx, title, string(content))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConversion, err)
	}
	css, err := assets.LoadStyle(c.style)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConversion, err)
	}
	htmlDoc = pipeline.InjectCSS(htmlDoc, css)

	htmlDoc, err = pipeline.ResolveImagePaths(htmlDoc, filepath.Dir(srcPath))
	if err != nil {
		return fmt.Errorf("%w: resolving image paths: %v", ErrConversion, err)
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlDoc, "html")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConversion, err)
	}
	defer cleanup()

	data, err := c.renderer.RenderFromFile(ctx, tmpPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConversion, err)
	}
	return writePDF(pdfPath, data)
}

// Close releases the shared renderer.
func (c *markdownConverter) Close() error {
	return c.renderer.Close()
}
