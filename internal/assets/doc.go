// Package assets provides the stylesheets embedded in the binary.
//
// Markdown and HTML sources are printed by headless Chrome before their
// pages are rasterized. The stylesheet decides how much of each page is
// covered, so it is part of the estimate and lives here rather than on disk.
//
//	styles/
//	└── {name}.css
package assets
