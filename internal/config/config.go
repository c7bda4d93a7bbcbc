package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	inkcost "github.com/alnah/go-inkcost"
	"github.com/alnah/go-inkcost/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Default values, taken from the estimator package.
const (
	DefaultDPI          = inkcost.DefaultDPI
	DefaultInkThreshold = int(inkcost.DefaultInkThreshold)
	DefaultImageFormat  = inkcost.ImageFormatPNG
	DefaultCurrency     = inkcost.DefaultCurrency
	DefaultPaperPrice   = inkcost.DefaultPaperPrice
	DefaultOffice       = inkcost.DefaultOfficeBinary
	DefaultRasterizer   = inkcost.DefaultRasterizerBinary
	DefaultPageSize     = inkcost.DefaultPageSize
)

// Value bounds.
const (
	MinDPI            = inkcost.MinDPI
	MaxDPI            = inkcost.MaxDPI
	MinInkThreshold   = 1
	MaxInkThreshold   = 255
	MaxCurrencyLength = 10  // "PHP", "USD", "€"
	MaxTierNameLength = 100 // "Tier 4: Dense/Full (76-100%)"
	MaxBinaryLength   = 4096
	MaxTiers          = 32
)

// Config holds all configuration for cost estimation.
type Config struct {
	Analysis   AnalysisConfig   `yaml:"analysis"`
	Pricing    PricingConfig    `yaml:"pricing"`
	Converters ConvertersConfig `yaml:"converters"`
	Page       PageConfig       `yaml:"page"`
}

// AnalysisConfig defines rasterization and coverage settings.
type AnalysisConfig struct {
	DPI          int    `yaml:"dpi"`          // render resolution (default: 200)
	InkThreshold int    `yaml:"inkThreshold"` // luminance below this is ink (default: 240)
	ImageFormat  string `yaml:"imageFormat"`  // "png" or "tiff" (default: "png")
}

// PricingConfig defines the price list.
type PricingConfig struct {
	Currency   string       `yaml:"currency"`
	PaperPrice int          `yaml:"paperPrice"`
	Tiers      []TierConfig `yaml:"tiers"`
}

// TierConfig is one coverage bracket. MaxCoverage is omitted for the last,
// unbounded tier.
type TierConfig struct {
	Name        string   `yaml:"name"`
	MaxCoverage *float64 `yaml:"maxCoverage,omitempty"`
	BWInk       int      `yaml:"bwInk"`
	ColorInk    int      `yaml:"colorInk"`
}

// ConvertersConfig defines the external tools.
type ConvertersConfig struct {
	Office     string `yaml:"office"`     // LibreOffice binary (default: "soffice")
	Rasterizer string `yaml:"rasterizer"` // poppler pdftoppm binary (default: "pdftoppm")
	Timeout    string `yaml:"timeout"`    // Go duration; empty or "0" = no timeout
}

// PageConfig defines the paper used when rendering Markdown and HTML sources.
type PageConfig struct {
	Size string `yaml:"size"` // "letter", "a4", "legal" (default: "letter")
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			DPI:          DefaultDPI,
			InkThreshold: DefaultInkThreshold,
			ImageFormat:  DefaultImageFormat,
		},
		Pricing: PricingConfig{
			Currency:   DefaultCurrency,
			PaperPrice: DefaultPaperPrice,
			Tiers:      DefaultTiers(),
		},
		Converters: ConvertersConfig{
			Office:     DefaultOffice,
			Rasterizer: DefaultRasterizer,
		},
		Page: PageConfig{Size: DefaultPageSize},
	}
}

// DefaultTiers returns the built-in tiers of inkcost.DefaultPriceList.
// The unbounded last tier has a nil MaxCoverage.
func DefaultTiers() []TierConfig {
	list := inkcost.DefaultPriceList()
	tiers := make([]TierConfig, 0, len(list.Tiers))
	for _, t := range list.Tiers {
		tc := TierConfig{Name: t.Name, BWInk: t.BWInk, ColorInk: t.ColorInk}
		if !t.Unbounded() {
			tc.MaxCoverage = bound(t.MaxCoverage)
		}
		tiers = append(tiers, tc)
	}
	return tiers
}

func bound(v float64) *float64 { return &v }

// Timeout parses Converters.Timeout. Zero means no timeout.
func (c *Config) Timeout() (time.Duration, error) {
	s := strings.TrimSpace(c.Converters.Timeout)
	if s == "" || s == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: converters.timeout %q: %v", ErrInvalidValue, c.Converters.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: converters.timeout must not be negative, got %s", ErrInvalidValue, d)
	}
	return d, nil
}

// Validate checks value ranges and field lengths. Tier ordering is checked
// when the price list is built.
func (c *Config) Validate() error {
	if c.Analysis.DPI < MinDPI || c.Analysis.DPI > MaxDPI {
		return fmt.Errorf("%w: analysis.dpi must be between %d and %d, got %d",
			ErrInvalidValue, MinDPI, MaxDPI, c.Analysis.DPI)
	}
	if c.Analysis.InkThreshold < MinInkThreshold || c.Analysis.InkThreshold > MaxInkThreshold {
		return fmt.Errorf("%w: analysis.inkThreshold must be between %d and %d, got %d",
			ErrInvalidValue, MinInkThreshold, MaxInkThreshold, c.Analysis.InkThreshold)
	}
	switch strings.ToLower(c.Analysis.ImageFormat) {
	case "png", "tiff":
	default:
		return fmt.Errorf("%w: analysis.imageFormat %q (must be png or tiff)", ErrInvalidValue, c.Analysis.ImageFormat)
	}

	if c.Pricing.Currency == "" {
		return fmt.Errorf("%w: pricing.currency is required", ErrInvalidValue)
	}
	if err := validateFieldLength("pricing.currency", c.Pricing.Currency, MaxCurrencyLength); err != nil {
		return err
	}
	if c.Pricing.PaperPrice < 0 {
		return fmt.Errorf("%w: pricing.paperPrice must not be negative, got %d", ErrInvalidValue, c.Pricing.PaperPrice)
	}
	if len(c.Pricing.Tiers) == 0 || len(c.Pricing.Tiers) > MaxTiers {
		return fmt.Errorf("%w: pricing.tiers must have 1 to %d entries, got %d",
			ErrInvalidValue, MaxTiers, len(c.Pricing.Tiers))
	}
	for i, t := range c.Pricing.Tiers {
		field := fmt.Sprintf("pricing.tiers[%d]", i)
		if t.Name == "" {
			return fmt.Errorf("%w: %s.name is required", ErrInvalidValue, field)
		}
		if err := validateFieldLength(field+".name", t.Name, MaxTierNameLength); err != nil {
			return err
		}
		if t.BWInk < 0 || t.ColorInk < 0 {
			return fmt.Errorf("%w: %s ink prices must not be negative", ErrInvalidValue, field)
		}
	}

	if err := validateFieldLength("converters.office", c.Converters.Office, MaxBinaryLength); err != nil {
		return err
	}
	if err := validateFieldLength("converters.rasterizer", c.Converters.Rasterizer, MaxBinaryLength); err != nil {
		return err
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}

	switch strings.ToLower(c.Page.Size) {
	case "letter", "a4", "legal":
	default:
		return fmt.Errorf("%w: page.size %q (must be letter, a4, or legal)", ErrInvalidValue, c.Page.Size)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Values missing from the file keep their defaults; a tiers list replaces
// the default tiers entirely.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML config data on top of the defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var file Config
	if err := yamlutil.UnmarshalStrict(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	cfg := DefaultConfig()
	cfg.merge(&file)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// merge overlays the values set in other. Zero values mean "not set".
// A file that lists tiers owns its paper price, so a free-paper list with
// paperPrice 0 is honored.
func (c *Config) merge(other *Config) {
	if other.Analysis.DPI != 0 {
		c.Analysis.DPI = other.Analysis.DPI
	}
	if other.Analysis.InkThreshold != 0 {
		c.Analysis.InkThreshold = other.Analysis.InkThreshold
	}
	if other.Analysis.ImageFormat != "" {
		c.Analysis.ImageFormat = other.Analysis.ImageFormat
	}
	if other.Pricing.Currency != "" {
		c.Pricing.Currency = other.Pricing.Currency
	}
	if other.Pricing.PaperPrice != 0 || len(other.Pricing.Tiers) > 0 {
		c.Pricing.PaperPrice = other.Pricing.PaperPrice
	}
	if len(other.Pricing.Tiers) > 0 {
		c.Pricing.Tiers = other.Pricing.Tiers
	}
	if other.Converters.Office != "" {
		c.Converters.Office = other.Converters.Office
	}
	if other.Converters.Rasterizer != "" {
		c.Converters.Rasterizer = other.Converters.Rasterizer
	}
	if other.Converters.Timeout != "" {
		c.Converters.Timeout = other.Converters.Timeout
	}
	if other.Page.Size != "" {
		c.Page.Size = other.Page.Size
	}
}

// Marshal encodes the configuration as YAML, suitable as a starting point
// for a custom config file.
func (c *Config) Marshal() ([]byte, error) {
	return yamlutil.Marshal(c)
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SearchPaths lists the locations tried for a config name, in order:
// current directory, then the user config directory, each with .yaml and .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-inkcost", name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
