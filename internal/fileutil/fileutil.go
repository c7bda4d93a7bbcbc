// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

// tempPrefix names temp files and directories created by inkcost.
const tempPrefix = "inkcost-"

// WriteTempFile creates a temporary file with the given content and extension.
// Returns the file path and a cleanup function to remove the file.
func WriteTempFile(content, extension string) (path string, cleanup func(), err error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	tmpFile, err := os.CreateTemp("", tempPrefix+"*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}

	path = tmpFile.Name()
	cleanup = func() { _ = os.Remove(path) }

	if _, writeErr := tmpFile.WriteString(content); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", closeErr)
	}

	return path, cleanup, nil
}

// TempDir creates a private working directory for an external tool.
// The cleanup function removes it with everything inside.
func TempDir(purpose string) (dir string, cleanup func(), err error) {
	dir, err = os.MkdirTemp("", tempPrefix+purpose+"-*")
	if err != nil {
		return "", nil, fmt.Errorf("creating temp dir: %w", err)
	}
	return dir, func() { _ = os.RemoveAll(dir) }, nil
}

// ValidateExtension checks that the extension is safe for use in temp file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// PDFPathFor derives the intermediate PDF path by replacing the source
// extension with .pdf, keeping the file next to its source.
//
// Examples:
//   - "report.docx" -> "report.pdf"
//   - "dir/notes.md" -> "dir/notes.pdf"
//   - "README" -> "README.pdf"
//   - "scan.PDF" -> "scan.PDF"
func PDFPathFor(source string) string {
	ext := filepath.Ext(source)
	if strings.EqualFold(ext, ".pdf") {
		return source
	}
	return strings.TrimSuffix(source, ext) + ".pdf"
}

// Ext returns the lower-cased extension of path, including the dot.
func Ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// MoveFile renames src to dst, falling back to copy+remove when they live
// on different filesystems.
func MoveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	data, err := os.ReadFile(src) // #nosec G304 -- src is a file produced by us
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}
	// #nosec G306 -- PDF output files are intended to be readable
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	_ = os.Remove(src)
	return nil
}
