package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rapidophilia/policypdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength        = 4096
	MaxURLLength         = 2048
	MaxTitleLength       = 200
	MaxSubtitleLength    = 200
	MaxDateLength        = 50 // "auto:MMMM Do, YYYY" or "April 18th, 2025"
	MaxTextLength        = 500
	MaxStyleLength       = 100
	MaxCustomCSSLength   = 64 << 10
	MaxPageSizeLength    = 10
	MaxOrientationLength = 10
	MaxTOCTitleLength    = 100
	MaxSources           = 32
	MaxMargin            = 3.0 // inches
)

// Defaults reproduce the combined policies document served by the site.
const (
	DefaultOutputPath    = "policies_combined.pdf"
	DefaultCopyTo        = "public/policies_combined.pdf"
	DefaultStyle         = "default"
	DefaultCoverTitle    = "Rapidophilia — Policies"
	DefaultCoverSubtitle = "Combined Terms of Use · Privacy Policy · Cancellation/Refund Policy"
	DefaultCoverDate     = "April 18th, 2025"
	DefaultPageSize      = "a4"
	DefaultOrientation   = "portrait"
	DefaultMarginX       = 50.0 / 72 // 50pt
	DefaultMarginY       = 60.0 / 72 // 60pt
	DefaultFooterAlign   = "center"
	DefaultTimeout       = 30 * time.Second
	DefaultTOCTitle      = "Contents"
	DefaultTOCMaxDepth   = 1
)

// DefaultSources are the policy pages, relative to the site root.
var DefaultSources = []SourceConfig{
	{Path: "src/pages/TermsOfUsePage.tsx"},
	{Path: "src/pages/PrivacyPolicyPage.tsx"},
	{Path: "src/pages/RefundPolicyPage.tsx"},
}

// Config holds all configuration for building the policies document.
type Config struct {
	Root    string         `yaml:"root"`    // base for relative paths (default ".")
	Timeout string         `yaml:"timeout"` // Go duration, e.g. "45s"
	Sources []SourceConfig `yaml:"sources"`
	Output  OutputConfig   `yaml:"output"`
	CSS     CSSConfig      `yaml:"css"`
	Assets  AssetsConfig   `yaml:"assets"`
	Page    PageConfig     `yaml:"page"`
	Cover   CoverConfig    `yaml:"cover"`
	Footer  FooterConfig   `yaml:"footer"`
	TOC     TOCConfig      `yaml:"toc"`
}

// SourceConfig is one policy page.
type SourceConfig struct {
	Path   string `yaml:"path"`
	Title  string `yaml:"title,omitempty"`  // empty = inferred from file name
	Format string `yaml:"format,omitempty"` // "markup", "html", empty = by extension
}

// OutputConfig defines where the document is written.
type OutputConfig struct {
	Path   string `yaml:"path"`
	CopyTo string `yaml:"copyTo"` // second location for serving
	NoCopy bool   `yaml:"noCopy"`
	HTML   bool   `yaml:"html"` // also write the intermediate HTML
}

// CSSConfig defines styling.
type CSSConfig struct {
	Style  string `yaml:"style"`  // name, path, or inline CSS
	Custom string `yaml:"custom"` // extra CSS appended after the style
}

// AssetsConfig points at a directory overriding the embedded assets.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"`
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "a4", "letter", "legal"
	Orientation string  `yaml:"orientation"` // "portrait", "landscape"
	MarginX     float64 `yaml:"marginX"`     // inches, left and right
	MarginY     float64 `yaml:"marginY"`     // inches, top and bottom
}

// CoverConfig defines the cover sheet. A nil Enabled means on.
type CoverConfig struct {
	Enabled  *bool  `yaml:"enabled"`
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Date     string `yaml:"date"` // literal, "auto", or "auto:FORMAT"
	Logo     string `yaml:"logo"`
}

// FooterConfig defines the page footer. A nil Enabled means on.
type FooterConfig struct {
	Enabled   *bool  `yaml:"enabled"`
	Position  string `yaml:"position"`  // "left", "center", "right"
	ShowTotal bool   `yaml:"showTotal"` // "Page N of M"
	Text      string `yaml:"text"`
}

// TOCConfig defines the optional table of contents.
type TOCConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Title    string `yaml:"title"`
	MaxDepth int    `yaml:"maxDepth"` // 1-6
}

// CoverEnabled reports whether the cover sheet is rendered.
func (c *Config) CoverEnabled() bool {
	return c.Cover.Enabled == nil || *c.Cover.Enabled
}

// FooterEnabled reports whether page footers are rendered.
func (c *Config) FooterEnabled() bool {
	return c.Footer.Enabled == nil || *c.Footer.Enabled
}

// TimeoutDuration returns the parsed timeout, or DefaultTimeout when unset.
// Validate has already rejected malformed values.
func (c *Config) TimeoutDuration() time.Duration {
	if c.Timeout == "" {
		return DefaultTimeout
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return DefaultTimeout
	}
	return d
}

// Resolve joins a relative path onto Root. Absolute paths are unchanged.
func (c *Config) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	root := c.Root
	if root == "" {
		root = "."
	}
	return filepath.Join(root, path)
}

// DefaultConfig returns the configuration that reproduces the published
// policies document.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills every unset field. Fields already set are kept, so a
// partial config file only overrides what it names.
func (c *Config) ApplyDefaults() {
	if c.Root == "" {
		c.Root = "."
	}
	if len(c.Sources) == 0 {
		c.Sources = append([]SourceConfig(nil), DefaultSources...)
	}
	if c.Output.Path == "" {
		c.Output.Path = DefaultOutputPath
	}
	if c.Output.CopyTo == "" {
		c.Output.CopyTo = DefaultCopyTo
	}
	if c.CSS.Style == "" {
		c.CSS.Style = DefaultStyle
	}
	if c.Page.Size == "" {
		c.Page.Size = DefaultPageSize
	}
	if c.Page.Orientation == "" {
		c.Page.Orientation = DefaultOrientation
	}
	if c.Page.MarginX == 0 {
		c.Page.MarginX = DefaultMarginX
	}
	if c.Page.MarginY == 0 {
		c.Page.MarginY = DefaultMarginY
	}
	if c.Cover.Title == "" {
		c.Cover.Title = DefaultCoverTitle
	}
	if c.Cover.Subtitle == "" {
		c.Cover.Subtitle = DefaultCoverSubtitle
	}
	if c.Cover.Date == "" {
		c.Cover.Date = DefaultCoverDate
	}
	if c.Footer.Position == "" {
		c.Footer.Position = DefaultFooterAlign
	}
	if c.TOC.Title == "" {
		c.TOC.Title = DefaultTOCTitle
	}
	if c.TOC.MaxDepth == 0 {
		c.TOC.MaxDepth = DefaultTOCMaxDepth
	}
}

// Validate checks values and field lengths. LoadConfig calls it; callers
// building a Config by hand should too.
func (c *Config) Validate() error {
	if len(c.Sources) > MaxSources {
		return fmt.Errorf("%w: sources: %d entries (max %d)", ErrInvalidValue, len(c.Sources), MaxSources)
	}
	for i, s := range c.Sources {
		field := fmt.Sprintf("sources[%d]", i)
		if strings.TrimSpace(s.Path) == "" {
			return fmt.Errorf("%w: %s.path: required", ErrInvalidValue, field)
		}
		if err := validateFieldLength(field+".path", s.Path, MaxPathLength); err != nil {
			return err
		}
		if err := validateFieldLength(field+".title", s.Title, MaxTitleLength); err != nil {
			return err
		}
		switch strings.ToLower(s.Format) {
		case "", "markup", "html":
		default:
			return fmt.Errorf("%w: %s.format: %q (must be markup or html)", ErrInvalidValue, field, s.Format)
		}
	}

	// Style may be inline CSS, bounded like custom CSS.
	styleMax := MaxStyleLength
	if strings.Contains(c.CSS.Style, "{") {
		styleMax = MaxCustomCSSLength
	}

	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"root", c.Root, MaxPathLength},
		{"output.path", c.Output.Path, MaxPathLength},
		{"output.copyTo", c.Output.CopyTo, MaxPathLength},
		{"css.style", c.CSS.Style, styleMax},
		{"css.custom", c.CSS.Custom, MaxCustomCSSLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
		{"cover.title", c.Cover.Title, MaxTitleLength},
		{"cover.subtitle", c.Cover.Subtitle, MaxSubtitleLength},
		{"cover.date", c.Cover.Date, MaxDateLength},
		{"cover.logo", c.Cover.Logo, MaxURLLength},
		{"footer.text", c.Footer.Text, MaxTextLength},
		{"toc.title", c.TOC.Title, MaxTOCTitleLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: timeout: %q (use a positive duration like 30s or 2m)", ErrInvalidValue, c.Timeout)
		}
	}

	if c.Page.MarginX < 0 || c.Page.MarginX > MaxMargin {
		return fmt.Errorf("%w: page.marginX: %.3f (max %.1f inches)", ErrInvalidValue, c.Page.MarginX, MaxMargin)
	}
	if c.Page.MarginY < 0 || c.Page.MarginY > MaxMargin {
		return fmt.Errorf("%w: page.marginY: %.3f (max %.1f inches)", ErrInvalidValue, c.Page.MarginY, MaxMargin)
	}

	switch strings.ToLower(c.Footer.Position) {
	case "", "left", "center", "right":
	default:
		return fmt.Errorf("%w: footer.position: %q (must be left, center, or right)", ErrInvalidValue, c.Footer.Position)
	}

	if c.TOC.MaxDepth != 0 && (c.TOC.MaxDepth < 1 || c.TOC.MaxDepth > 6) {
		return fmt.Errorf("%w: toc.maxDepth: must be between 1 and 6, got %d", ErrInvalidValue, c.TOC.MaxDepth)
	}

	return nil
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads a config by file path or by name. A name (no path
// separator) is searched as name.yaml / name.yml in the working directory,
// then in the user config directory under policypdf/. The returned config
// has defaults applied and is validated.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
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

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrConfigParse, configPath, yamlutil.Describe(err))
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SearchPaths lists the files LoadConfig tries for a config name.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, "policypdf", name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}

func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
