package inkcost

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alnah/go-inkcost/internal/fileutil"
)

// documentConverter produces a PDF from a source document.
type documentConverter interface {
	ToPDF(ctx context.Context, srcPath, pdfPath string) error
	Close() error
}

// Compile-time interface checks
var (
	_ documentConverter = (*officeConverter)(nil)
	_ documentConverter = (*markdownConverter)(nil)
	_ documentConverter = (*htmlConverter)(nil)
)

// documentKind groups source extensions by the converter that handles them.
type documentKind int

const (
	kindUnsupported documentKind = iota
	kindPDF
	kindOffice
	kindMarkdown
	kindHTML
)

var extensionKinds = map[string]documentKind{
	".pdf":      kindPDF,
	".docx":     kindOffice,
	".doc":      kindOffice,
	".docm":     kindOffice,
	".odt":      kindOffice,
	".ott":      kindOffice,
	".rtf":      kindOffice,
	".wps":      kindOffice,
	".fodt":     kindOffice,
	".md":       kindMarkdown,
	".markdown": kindMarkdown,
	".html":     kindHTML,
	".htm":      kindHTML,
}

// SupportedExtensions returns the source extensions that can be estimated,
// sorted.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(extensionKinds))
	for ext := range extensionKinds {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func kindOf(path string) documentKind {
	return extensionKinds[fileutil.Ext(path)]
}

// converterSet holds one converter per document kind. Converters are
// created eagerly but start external resources lazily.
type converterSet struct {
	office   documentConverter
	markdown documentConverter
	html     documentConverter
}

// forPath selects the converter for a source path. A nil converter with a
// nil error means the source already is a PDF.
func (c *converterSet) forPath(path string) (documentConverter, error) {
	switch kindOf(path) {
	case kindPDF:
		return nil, nil
	case kindOffice:
		return c.office, nil
	case kindMarkdown:
		return c.markdown, nil
	case kindHTML:
		return c.html, nil
	default:
		ext := filepath.Ext(path)
		if ext == "" {
			ext = "(none)"
		}
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// Close releases every converter, returning the first error.
func (c *converterSet) Close() error {
	var first error
	for _, conv := range []documentConverter{c.office, c.markdown, c.html} {
		if conv == nil {
			continue
		}
		if err := conv.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// officeConverter converts word-processing documents with LibreOffice in
// headless mode.
type officeConverter struct {
	binary string
	runner commandRunner
}

func newOfficeConverter(binary string) *officeConverter {
	return &officeConverter{binary: binary, runner: &execRunner{}}
}

// ToPDF runs soffice into a private output directory, then moves the
// result to pdfPath.
func (c *officeConverter) ToPDF(ctx context.Context, srcPath, pdfPath string) error {
	outDir, cleanup, err := fileutil.TempDir("office")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConversion, err)
	}
	defer cleanup()

	_, stderr, err := c.runner.Run(ctx, c.binary,
		"--headless",
		"--norestore",
		"--convert-to", "pdf",
		"--outdir", outDir,
		srcPath,
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return toolError(ErrConversion, c.binary, stderr, err)
	}

	base := filepath.Base(srcPath)
	produced := filepath.Join(outDir, strings.TrimSuffix(base, filepath.Ext(base))+".pdf")
	if !fileutil.FileExists(produced) {
		return toolError(ErrConversion, c.binary, stderr, fmt.Errorf("no PDF produced for %s", base))
	}
	if err := fileutil.MoveFile(produced, pdfPath); err != nil {
		return fmt.Errorf("%w: %v", ErrConversion, err)
	}
	return nil
}

// Close is a no-op: each conversion is a separate process.
func (c *officeConverter) Close() error { return nil }
