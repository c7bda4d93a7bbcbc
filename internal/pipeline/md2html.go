package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// ErrMarkdownRender is returned when a Markdown source cannot be turned
// into a printable page.
var ErrMarkdownRender = errors.New("markdown render failed")

// pageShell is the document a Markdown body is printed from. The stylesheet
// is injected into its head later.
const pageShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s
</body>
</html>`

// SourceRenderer turns a Markdown source into an HTML page ready to print.
type SourceRenderer interface {
	Render(ctx context.Context, title, markdown string) (string, error)
}

var _ SourceRenderer = (*Goldmark)(nil)

// Goldmark renders Markdown sources with goldmark.
type Goldmark struct {
	md goldmark.Markdown
}

// NewGoldmark returns a renderer with GFM, footnotes, heading ids and
// highlighted code blocks. Highlight colors are inlined so they reach
// the printed page.
func NewGoldmark() *Goldmark {
	return &Goldmark{md: goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
				highlighting.WithFormatOptions(chromahtml.WithClasses(false)),
			),
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(gmhtml.WithXHTML()),
	)}
}

// Render returns the full page for markdown. goldmark cannot be
// interrupted, so a canceled ctx returns at once and the render goroutine
// finishes in the background.
func (g *Goldmark) Render(ctx context.Context, title, markdown string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type page struct {
		doc string
		err error
	}
	out := make(chan page, 1)
	go func() {
		doc, err := g.page(title, markdown)
		out <- page{doc, err}
	}()

	select {
	case p := <-out:
		return p.doc, p.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (g *Goldmark) page(title, markdown string) (string, error) {
	var body bytes.Buffer
	if err := g.md.Convert([]byte(markdown), &body); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMarkdownRender, err)
	}
	return fmt.Sprintf(pageShell, html.EscapeString(title), body.String()), nil
}
