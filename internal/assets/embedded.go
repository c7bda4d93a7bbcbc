package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// DefaultStyle is applied to Markdown sources.
const DefaultStyle = "print"

//go:embed styles/*.css
var styles embed.FS

// LoadStyle returns an embedded stylesheet by name, without the .css
// extension.
func LoadStyle(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return string(content), nil
}

// Styles lists the embedded stylesheet names.
func Styles() []string {
	entries, _ := fs.ReadDir(styles, "styles")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".css"))
	}
	sort.Strings(names)
	return names
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
