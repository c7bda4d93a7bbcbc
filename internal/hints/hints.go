// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"runtime"
	"strings"

	"github.com/alnah/go-inkcost/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForOfficeConverter returns hints when LibreOffice cannot convert a document.
func ForOfficeConverter() string {
	hints := []string{"install LibreOffice and make sure soffice is on PATH"}
	if runtime.GOOS == "darwin" {
		hints = append(hints, "or set converters.office to /Applications/LibreOffice.app/Contents/MacOS/soffice")
	}
	hints = append(hints, "close other LibreOffice windows using the same profile")
	return formatHints(hints)
}

// ForRasterizer returns hints when pdftoppm is missing or fails.
func ForRasterizer() string {
	switch runtime.GOOS {
	case "darwin":
		return format("install poppler (brew install poppler)")
	case "windows":
		return format("install poppler for Windows and add its bin directory to PATH")
	default:
		return format("install poppler-utils (provides pdftoppm)")
	}
}

// ForUnsupportedFormat lists the source formats that can be estimated.
func ForUnsupportedFormat(supported []string) string {
	if len(supported) == 0 {
		return ""
	}
	return format("supported: " + strings.Join(supported, ", "))
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-inkcost/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-inkcost") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForTimeout returns a hint about increasing timeout for slow conversions.
func ForTimeout() string {
	return format("for large documents, raise --timeout or set 0 to disable it")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
