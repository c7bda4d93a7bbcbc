package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// ResolveImagePaths rewrites relative image sources to absolute file:// URLs
// so pictures still print once the HTML is moved to a temp directory.
// Only img[src] is touched: images are what put ink on the page.
// Paths escaping sourceDir are left unchanged.
func ResolveImagePaths(htmlDoc, sourceDir string) (string, error) {
	if sourceDir == "" {
		return htmlDoc, nil
	}

	absDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	doc, err := html.Parse(strings.NewReader(htmlDoc))
	if err != nil {
		return "", err
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "img" {
			for i, attr := range n.Attr {
				if attr.Key == "src" {
					if resolved, ok := resolveLocal(attr.Val, absDir); ok {
						n.Attr[i].Val = resolved
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	var buf strings.Builder
	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// resolveLocal maps a relative reference under dir to a file:// URL.
func resolveLocal(ref, dir string) (string, bool) {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return "", false
	}
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		return "", false // http:, https:, data:, file:; one-letter schemes are drive letters
	}
	if filepath.IsAbs(ref) {
		return "", false
	}

	abs := filepath.Join(dir, filepath.FromSlash(ref))
	rel, err := filepath.Rel(dir, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}

	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	if !strings.HasPrefix(u.Path, "/") {
		u.Path = "/" + u.Path
	}
	return u.String(), true
}
