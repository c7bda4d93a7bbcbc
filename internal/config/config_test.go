package config

// Notes:
// - resolveConfigPath user directory branch: covered only for the current
//   directory because os.UserConfigDir depends on HOME/XDG_CONFIG_HOME; the
//   user-dir case is exercised with t.Setenv in a non-parallel test.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	inkcost "github.com/alnah/go-inkcost"
)

// ---------------------------------------------------------------------------
// TestDefaultConfig - Built-in constants
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Analysis.DPI != 200 {
		t.Errorf("Analysis.DPI = %d, want 200", cfg.Analysis.DPI)
	}
	if cfg.Analysis.InkThreshold != 240 {
		t.Errorf("Analysis.InkThreshold = %d, want 240", cfg.Analysis.InkThreshold)
	}
	if cfg.Pricing.Currency != "PHP" {
		t.Errorf("Pricing.Currency = %q, want PHP", cfg.Pricing.Currency)
	}
	if cfg.Pricing.PaperPrice != 1 {
		t.Errorf("Pricing.PaperPrice = %d, want 1", cfg.Pricing.PaperPrice)
	}
	if len(cfg.Pricing.Tiers) != 4 {
		t.Fatalf("len(Pricing.Tiers) = %d, want 4", len(cfg.Pricing.Tiers))
	}
	if cfg.Pricing.Tiers[3].MaxCoverage != nil {
		t.Error("last tier should be unbounded")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestDefaultTiers_Independent(t *testing.T) {
	t.Parallel()

	a := DefaultTiers()
	*a[0].MaxCoverage = 99
	b := DefaultTiers()
	if *b[0].MaxCoverage != 25 {
		t.Errorf("DefaultTiers shares bounds between calls: %v", *b[0].MaxCoverage)
	}
}

func TestDefaultConfig_MatchesEstimatorDefaults(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"dpi", cfg.Analysis.DPI, inkcost.DefaultDPI},
		{"ink threshold", cfg.Analysis.InkThreshold, int(inkcost.DefaultInkThreshold)},
		{"image format", cfg.Analysis.ImageFormat, inkcost.ImageFormatPNG},
		{"currency", cfg.Pricing.Currency, inkcost.DefaultCurrency},
		{"paper price", cfg.Pricing.PaperPrice, inkcost.DefaultPaperPrice},
		{"office", cfg.Converters.Office, inkcost.DefaultOfficeBinary},
		{"rasterizer", cfg.Converters.Rasterizer, inkcost.DefaultRasterizerBinary},
		{"page size", cfg.Page.Size, inkcost.DefaultPageSize},
		{"min dpi", MinDPI, inkcost.MinDPI},
		{"max dpi", MaxDPI, inkcost.MaxDPI},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	list := inkcost.DefaultPriceList()
	if len(cfg.Pricing.Tiers) != len(list.Tiers) {
		t.Fatalf("len(Tiers) = %d, want %d", len(cfg.Pricing.Tiers), len(list.Tiers))
	}
	for i, want := range list.Tiers {
		got := cfg.Pricing.Tiers[i]
		if got.Name != want.Name || got.BWInk != want.BWInk || got.ColorInk != want.ColorInk {
			t.Errorf("tier %d = %+v, want %+v", i, got, want)
		}
		if want.Unbounded() != (got.MaxCoverage == nil) {
			t.Errorf("tier %d bound = %v, want unbounded=%v", i, got.MaxCoverage, want.Unbounded())
		} else if got.MaxCoverage != nil && *got.MaxCoverage != want.MaxCoverage {
			t.Errorf("tier %d MaxCoverage = %v, want %v", i, *got.MaxCoverage, want.MaxCoverage)
		}
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate - Range and length checks
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"defaults", func(c *Config) {}, nil},
		{"dpi too low", func(c *Config) { c.Analysis.DPI = 10 }, ErrInvalidValue},
		{"dpi too high", func(c *Config) { c.Analysis.DPI = 4800 }, ErrInvalidValue},
		{"threshold zero", func(c *Config) { c.Analysis.InkThreshold = 0 }, ErrInvalidValue},
		{"threshold above 255", func(c *Config) { c.Analysis.InkThreshold = 256 }, ErrInvalidValue},
		{"tiff format", func(c *Config) { c.Analysis.ImageFormat = "TIFF" }, nil},
		{"jpeg format", func(c *Config) { c.Analysis.ImageFormat = "jpeg" }, ErrInvalidValue},
		{"empty currency", func(c *Config) { c.Pricing.Currency = "" }, ErrInvalidValue},
		{"long currency", func(c *Config) { c.Pricing.Currency = "PHILIPPINE PESO" }, ErrFieldTooLong},
		{"negative paper", func(c *Config) { c.Pricing.PaperPrice = -1 }, ErrInvalidValue},
		{"no tiers", func(c *Config) { c.Pricing.Tiers = nil }, ErrInvalidValue},
		{"unnamed tier", func(c *Config) { c.Pricing.Tiers[1].Name = "" }, ErrInvalidValue},
		{"long tier name", func(c *Config) { c.Pricing.Tiers[0].Name = strings.Repeat("t", 101) }, ErrFieldTooLong},
		{"negative ink", func(c *Config) { c.Pricing.Tiers[2].ColorInk = -6 }, ErrInvalidValue},
		{"bad timeout", func(c *Config) { c.Converters.Timeout = "soon" }, ErrInvalidValue},
		{"negative timeout", func(c *Config) { c.Converters.Timeout = "-5s" }, ErrInvalidValue},
		{"a4 page", func(c *Config) { c.Page.Size = "A4" }, nil},
		{"tabloid page", func(c *Config) { c.Page.Size = "tabloid" }, ErrInvalidValue},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	if err := validateFieldLength("f", "1234567890", 10); err != nil {
		t.Errorf("value at limit: unexpected error %v", err)
	}
	if err := validateFieldLength("f", "12345678901", 10); !errors.Is(err, ErrFieldTooLong) {
		t.Errorf("value over limit: error = %v, want ErrFieldTooLong", err)
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Timeout - Duration parsing
// ---------------------------------------------------------------------------

func TestConfig_Timeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", 0},
		{"0", 0},
		{"90s", 90 * time.Second},
		{" 2m ", 2 * time.Minute},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			cfg.Converters.Timeout = tt.value
			got, err := cfg.Timeout()
			if err != nil {
				t.Fatalf("Timeout() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Timeout() = %v, want %v", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestParse - YAML decoding on top of defaults
// ---------------------------------------------------------------------------

func TestParse_PartialKeepsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte("pricing:\n  currency: USD\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Pricing.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", cfg.Pricing.Currency)
	}
	if cfg.Analysis.DPI != DefaultDPI {
		t.Errorf("DPI = %d, want default %d", cfg.Analysis.DPI, DefaultDPI)
	}
	if cfg.Pricing.PaperPrice != DefaultPaperPrice {
		t.Errorf("PaperPrice = %d, want default %d", cfg.Pricing.PaperPrice, DefaultPaperPrice)
	}
	if len(cfg.Pricing.Tiers) != 4 {
		t.Errorf("len(Tiers) = %d, want default 4", len(cfg.Pricing.Tiers))
	}
}

func TestParse_TiersReplaceDefaults(t *testing.T) {
	t.Parallel()

	data := []byte(`
pricing:
  paperPrice: 2
  tiers:
    - name: Text
      maxCoverage: 40
      bwInk: 1
      colorInk: 3
    - name: Graphics
      bwInk: 5
      colorInk: 12
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(cfg.Pricing.Tiers) != 2 {
		t.Fatalf("len(Tiers) = %d, want 2", len(cfg.Pricing.Tiers))
	}
	if cfg.Pricing.Tiers[0].MaxCoverage == nil || *cfg.Pricing.Tiers[0].MaxCoverage != 40 {
		t.Errorf("Tiers[0].MaxCoverage = %v, want 40", cfg.Pricing.Tiers[0].MaxCoverage)
	}
	if cfg.Pricing.Tiers[1].MaxCoverage != nil {
		t.Errorf("Tiers[1].MaxCoverage = %v, want nil", *cfg.Pricing.Tiers[1].MaxCoverage)
	}
	if cfg.Pricing.PaperPrice != 2 {
		t.Errorf("PaperPrice = %d, want 2", cfg.Pricing.PaperPrice)
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"unknown key", "pricing:\n  locale: fil\n", ErrConfigParse},
		{"empty document", "", ErrConfigParse},
		{"out of range dpi", "analysis:\n  dpi: 5\n", ErrInvalidValue},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Parse([]byte(tt.data)); !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_MarshalParse(t *testing.T) {
	t.Parallel()

	data, err := DefaultConfig().Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(Marshal()) error = %v\n%s", err, data)
	}
	if len(cfg.Pricing.Tiers) != 4 || cfg.Pricing.Tiers[3].MaxCoverage != nil {
		t.Errorf("tiers did not survive encoding: %+v", cfg.Pricing.Tiers)
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File resolution
// ---------------------------------------------------------------------------

func TestLoadConfig_Path(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "shop.yaml")
	if err := os.WriteFile(path, []byte("pricing:\n  currency: EUR\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Pricing.Currency != "EUR" {
		t.Errorf("Currency = %q, want EUR", cfg.Pricing.Currency)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing.yaml")

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty name", "", ErrEmptyConfigName},
		{"missing path", missing, ErrConfigNotFound},
		{"missing name", "inkcost-no-such-config-name", ErrConfigNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := LoadConfig(tt.input); !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadConfig(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_UserConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("AppData", dir)

	userDir, err := os.UserConfigDir()
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	target := filepath.Join(userDir, "go-inkcost", "shop-test.yml")
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(target, []byte("pricing:\n  currency: JPY\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig("shop-test")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Pricing.Currency != "JPY" {
		t.Errorf("Currency = %q, want JPY", cfg.Pricing.Currency)
	}
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("shop")
	if len(paths) < 2 {
		t.Fatalf("SearchPaths() = %v, want at least local paths", paths)
	}
	if paths[0] != "shop.yaml" || paths[1] != "shop.yml" {
		t.Errorf("local paths = %v, want shop.yaml, shop.yml first", paths[:2])
	}
}
