// Package pipeline turns Markdown sources into self-contained HTML pages
// ready to be printed by headless Chrome:
//   - Markdown to HTML conversion via Goldmark
//   - stylesheet injection
//   - relative image paths resolved against the source directory
//
// Printing to PDF is handled by the root inkcost package (go-rod).
package pipeline
