package policypdf

import (
	"fmt"
	"strings"
	"time"
)

// Section is one policy: a heading and its paragraphs, in reading order.
type Section struct {
	Title      string
	Paragraphs []string
}

// Validate rejects an empty title or any paragraph that is blank after
// trimming. Zero paragraphs is valid.
func (s Section) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return ErrEmptySectionTitle
	}
	for i, p := range s.Paragraphs {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("%w: %q paragraph %d", ErrEmptyParagraph, s.Title, i)
		}
	}
	return nil
}

// Page size constants.
const (
	PageSizeA4     = "a4"
	PageSizeLetter = "letter"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds and defaults in inches. The defaults are 50pt and 60pt.
const (
	MinMargin      = 0.25
	MaxMargin      = 3.0
	DefaultMarginX = 50.0 / 72
	DefaultMarginY = 60.0 / 72
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "a4", "letter", "legal"
	Orientation string  // "portrait", "landscape"
	MarginX     float64 // inches, left and right
	MarginY     float64 // inches, top and bottom
}

// DefaultPageSettings returns A4 portrait with 50pt/60pt margins.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeA4,
		Orientation: OrientationPortrait,
		MarginX:     DefaultMarginX,
		MarginY:     DefaultMarginY,
	}
}

// Validate checks page settings. A nil receiver means defaults.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}
	if _, ok := pageDimensions[strings.ToLower(p.Size)]; !ok {
		return fmt.Errorf("%w: %q (must be a4, letter, or legal)", ErrInvalidPageSize, p.Size)
	}
	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q (must be portrait or landscape)", ErrInvalidOrientation, p.Orientation)
	}
	for _, m := range []float64{p.MarginX, p.MarginY} {
		if m < MinMargin || m > MaxMargin {
			return fmt.Errorf("%w: %.3f (must be between %.2f and %.2f)", ErrInvalidMargin, m, MinMargin, MaxMargin)
		}
	}
	return nil
}

// Footer configures Chrome's native page footer.
type Footer struct {
	Position       string // "left", "center", "right" (default: "center")
	ShowPageNumber bool   // "Page N"
	ShowTotal      bool   // "Page N of M"
	Text           string
}

// Validate checks the footer position. A nil receiver means no footer.
func (f *Footer) Validate() error {
	if f == nil {
		return nil
	}
	switch strings.ToLower(f.Position) {
	case "", "left", "center", "right":
		return nil
	default:
		return fmt.Errorf("%w: %q (must be left, center, or right)", ErrInvalidFooterPosition, f.Position)
	}
}

// Cover configures the cover sheet. Its page always breaks after it.
type Cover struct {
	Title    string
	Subtitle string
	Date     string // printed as "Last updated: <Date>"
	Logo     string // URL, absolute path, or path relative to Input.SourceDir
}

// Validate requires a title. A nil receiver means no cover.
func (c *Cover) Validate() error {
	if c == nil {
		return nil
	}
	if strings.TrimSpace(c.Title) == "" {
		return ErrEmptyCoverTitle
	}
	return nil
}

// TOC configures an optional table of contents after the cover.
type TOC struct {
	Title    string
	MaxDepth int // 0 = sections only
}

// Validate checks depth bounds. A nil receiver means no TOC.
func (t *TOC) Validate() error {
	if t == nil {
		return nil
	}
	if t.MaxDepth < 0 || t.MaxDepth > 6 {
		return fmt.Errorf("%w: %d (must be between 1 and 6)", ErrInvalidTOCDepth, t.MaxDepth)
	}
	return nil
}

// Input contains conversion parameters.
type Input struct {
	Sections  []Section     // required, rendered in order
	CSS       string        // appended after the converter style
	SourceDir string        // base for a relative cover logo
	Page      *PageSettings // nil = DefaultPageSettings
	Cover     *Cover        // nil = no cover
	Footer    *Footer       // nil = no footer
	TOC       *TOC          // nil = no table of contents
	HTMLOnly  bool          // skip PDF rendering
}

// Validate checks every part of the input. Sections come first so a
// scraping problem is reported before layout problems.
func (in Input) Validate() error {
	if len(in.Sections) == 0 {
		return ErrNoSections
	}
	for _, s := range in.Sections {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	if err := in.Page.Validate(); err != nil {
		return err
	}
	if err := in.Footer.Validate(); err != nil {
		return err
	}
	if err := in.Cover.Validate(); err != nil {
		return err
	}
	return in.TOC.Validate()
}

// ConvertResult holds the rendered document.
type ConvertResult struct {
	HTML []byte
	PDF  []byte // nil when Input.HTMLOnly is set
}

// Option configures a Converter.
type Option func(*Converter)

type converterConfig struct {
	timeout   time.Duration
	style     string
	assetPath string
}

const defaultTimeout = 30 * time.Second

// WithTimeout bounds page loading in the browser.
// Panics if d <= 0 (programmer error, like time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("policypdf: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithStyle selects the base CSS: an asset name, a file path, or inline CSS.
// The default is the embedded "default" style.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.style = style
	}
}

// WithAssetPath overrides embedded styles and the cover template with files
// from dir (styles/{name}.css, templates/cover.html).
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}
