package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		styleName   string
		wantErr     error
		wantContain string
	}{
		{
			name:        "loads default style",
			styleName:   DefaultStyle,
			wantContain: "font-family",
		},
		{
			name:      "nonexistent style",
			styleName: "nonexistent-style-xyz",
			wantErr:   ErrStyleNotFound,
		},
		{
			name:      "empty name",
			styleName: "",
			wantErr:   ErrInvalidAssetName,
		},
		{
			name:      "path traversal",
			styleName: "../secret",
			wantErr:   ErrInvalidAssetName,
		},
		{
			name:      "extension included",
			styleName: "print.css",
			wantErr:   ErrInvalidAssetName,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := LoadStyle(tt.styleName)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("LoadStyle(%q) error = %v, want %v", tt.styleName, err, tt.wantErr)
			}
			if tt.wantContain != "" && !strings.Contains(got, tt.wantContain) {
				t.Errorf("LoadStyle(%q) missing %q", tt.styleName, tt.wantContain)
			}
		})
	}
}

func TestStyles(t *testing.T) {
	t.Parallel()

	names := Styles()
	found := false
	for _, n := range names {
		if n == DefaultStyle {
			found = true
		}
	}
	if !found {
		t.Errorf("Styles() = %v, want to include %q", names, DefaultStyle)
	}
}
