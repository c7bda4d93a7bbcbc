package inkcost

// Notes:
// - pdftoppm itself is replaced by fakeRunner hooks that write the image it
//   would produce; page counting runs against generated PDFs.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// minimalPDF builds a valid PDF with n empty letter pages.
func minimalPDF(n int) []byte {
	var buf bytes.Buffer
	var offsets []int

	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")
	obj("<< /Type /Catalog /Pages 2 0 R >>")
	kids := ""
	for i := 0; i < n; i++ {
		kids += fmt.Sprintf("%d 0 R ", i+3)
	}
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids, n))
	for i := 0; i < n; i++ {
		obj("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>")
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}

func writePDFFixture(t *testing.T, pages int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, minimalPDF(pages), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// fakePdftoppm writes a 3x2 PNG with one black pixel at the output prefix.
func fakePdftoppm(_ string, args []string) error {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.SetNRGBA(1, 1, color.NRGBA{A: 255})

	f, err := os.Create(args[len(args)-1] + ".png")
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// ---------------------------------------------------------------------------
// TestPopplerRasterizer - Page counting and rendering
// ---------------------------------------------------------------------------

func TestPopplerRasterizer_Args(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format  string
		wantArg string
		wantExt string
	}{
		{ImageFormatPNG, "-png", ".png"},
		{ImageFormatTIFF, "-tiff", ".tif"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			r := newPopplerRasterizer("pdftoppm", 200, tt.format)
			got := r.args("4", "/tmp/x/page-4", "doc.pdf")
			want := []string{"-r", "200", "-f", "4", "-l", "4", "-singlefile", tt.wantArg, "doc.pdf", "/tmp/x/page-4"}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
			if ext := r.outputExt(); ext != tt.wantExt {
				t.Errorf("outputExt() = %q, want %q", ext, tt.wantExt)
			}
		})
	}
}

func TestPopplerRasterizer_OpenAndRender(t *testing.T) {
	t.Parallel()

	pdfPath := writePDFFixture(t, 3)
	runner := &fakeRunner{hook: fakePdftoppm}
	r := &popplerRasterizer{binary: "pdftoppm", dpi: 200, format: ImageFormatPNG, runner: runner}

	pages, err := r.Open(context.Background(), pdfPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if pages.NumPages() != 3 {
		t.Errorf("NumPages() = %d, want 3", pages.NumPages())
	}

	raster, err := pages.Page(context.Background(), 2)
	if err != nil {
		t.Fatalf("Page(2) error = %v", err)
	}
	if raster.Width != 3 || raster.Height != 2 || raster.Channels != ChannelsRGB {
		t.Errorf("raster = %dx%dx%d, want 3x2x3", raster.Width, raster.Height, raster.Channels)
	}

	call := runner.calls[0]
	if call[0] != "pdftoppm" || call[4] != "2" || call[6] != "2" {
		t.Errorf("command = %v, want page 2 only", call)
	}
	out := call[len(call)-1] + ".png"
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("page image %s not removed after decoding", out)
	}

	workDir := filepath.Dir(out)
	if err := pages.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := os.Stat(workDir); !os.IsNotExist(err) {
		t.Errorf("work dir %s not removed on Close", workDir)
	}
}

func TestPopplerRasterizer_Open_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.pdf")
	if err := os.WriteFile(garbage, []byte("not a pdf at all"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.pdf")},
		{"not a PDF", garbage},
	}

	r := newPopplerRasterizer("pdftoppm", DefaultDPI, ImageFormatPNG)
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := r.Open(context.Background(), tt.path); !errors.Is(err, ErrRasterize) {
				t.Errorf("Open() error = %v, want ErrRasterize", err)
			}
		})
	}
}

func TestPopplerPages_Page_Errors(t *testing.T) {
	t.Parallel()

	pdfPath := writePDFFixture(t, 1)

	tests := []struct {
		name   string
		page   int
		runner *fakeRunner
	}{
		{"page zero", 0, &fakeRunner{hook: fakePdftoppm}},
		{"page past end", 2, &fakeRunner{hook: fakePdftoppm}},
		{"tool fails", 1, &fakeRunner{err: errors.New("exit status 99"), stderr: "Syntax Error"}},
		{"no image written", 1, &fakeRunner{}},
		{"undecodable image", 1, &fakeRunner{hook: func(_ string, args []string) error {
			return os.WriteFile(args[len(args)-1]+".png", []byte("junk"), 0o600)
		}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := &popplerRasterizer{binary: "pdftoppm", dpi: 200, format: ImageFormatPNG, runner: tt.runner}
			pages, err := r.Open(context.Background(), pdfPath)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			defer pages.Close()

			if _, err := pages.Page(context.Background(), tt.page); !errors.Is(err, ErrRasterize) {
				t.Errorf("Page(%d) error = %v, want ErrRasterize", tt.page, err)
			}
		})
	}
}

func TestValidImageFormat(t *testing.T) {
	t.Parallel()

	for format, want := range map[string]bool{"png": true, "TIFF": true, "jpeg": false, "": false} {
		if got := validImageFormat(format); got != want {
			t.Errorf("validImageFormat(%q) = %v, want %v", format, got, want)
		}
	}
}
