package policypdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rapidophilia/policypdf/internal/assets"
	"github.com/rapidophilia/policypdf/internal/fileutil"
	"github.com/rapidophilia/policypdf/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector   = (*pipeline.CSSInjection)(nil)
	_ pipeline.CoverInjector = (*pipeline.CoverInjection)(nil)
	_ pipeline.TOCInjector   = (*pipeline.TOCInjection)(nil)
	_ pdfConverter           = (*rodConverter)(nil)
	_ pdfRenderer            = (*rodRenderer)(nil)
)

// Converter turns sections into a laid-out PDF.
// Create with NewConverter, call Convert, and Close when done.
// A Converter is not safe for concurrent use.
type Converter struct {
	cfg           converterConfig
	assetLoader   assets.AssetLoader
	style         string // resolved CSS
	htmlConverter pipeline.HTMLConverter
	cssInjector   pipeline.CSSInjector
	coverInjector pipeline.CoverInjector
	tocInjector   pipeline.TOCInjector
	pdfConverter  pdfConverter
}

// NewConverter creates a Converter. The browser is not started until the
// first PDF is rendered.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:           converterConfig{timeout: defaultTimeout, style: assets.DefaultStyleName},
		htmlConverter: pipeline.NewGoldmarkConverter(),
		cssInjector:   &pipeline.CSSInjection{},
		tocInjector:   pipeline.NewTOCInjection(),
	}

	for _, opt := range opts {
		opt(c)
	}

	resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	if c.assetLoader == nil {
		c.assetLoader = resolver
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	if c.coverInjector == nil {
		tmpl, err := c.assetLoader.LoadTemplate(assets.CoverTemplate)
		if err != nil {
			return nil, fmt.Errorf("loading cover template: %w", err)
		}
		c.coverInjector, err = pipeline.NewCoverInjection(tmpl)
		if err != nil {
			return nil, fmt.Errorf("initializing cover injector: %w", err)
		}
	}

	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// Convert renders the input. The context bounds the whole conversion.
// Internal panics are recovered and returned as errors.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	markdown := pipeline.ComposeMarkdown(toSectionData(input.Sections))

	title := pipeline.DefaultDocumentTitle
	if input.Cover != nil {
		title = input.Cover.Title
	}
	htmlContent, err := c.htmlConverter.ToHTML(ctx, title, markdown)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	// Layout rules first so the style and user CSS can override them.
	css := buildLayoutCSS() + c.style
	if input.CSS != "" {
		css += "\n" + input.CSS
	}
	htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, css)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	htmlContent, err = c.coverInjector.InjectCover(ctx, htmlContent, toCoverData(input.Cover))
	if err != nil {
		return nil, fmt.Errorf("injecting cover: %w", err)
	}

	htmlContent, err = c.tocInjector.InjectTOC(ctx, htmlContent, toTOCData(input.TOC))
	if err != nil {
		return nil, fmt.Errorf("injecting TOC: %w", err)
	}

	// After the cover, whose logo may be relative.
	htmlContent, err = pipeline.RewriteImagePaths(htmlContent, input.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("rewriting image paths: %w", err)
	}

	res := &ConvertResult{HTML: []byte(htmlContent)}
	if input.HTMLOnly {
		return res, nil
	}

	page := input.Page
	if page == nil {
		page = DefaultPageSettings()
	}
	pdf, err := c.pdfConverter.ToPDF(ctx, htmlContent, &pdfOptions{
		Footer: toFooterData(input.Footer),
		Page:   page,
	})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	res.PDF = pdf
	return res, nil
}

// Close releases the headless browser.
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// resolveStyle turns the style option (file path, inline CSS, or asset
// name) into CSS content.
func (c *Converter) resolveStyle() error {
	input := c.cfg.style
	switch {
	case input == "":
		return nil
	case fileutil.IsFilePath(input) && !fileutil.IsCSS(input):
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.style = string(content)
	case fileutil.IsCSS(input):
		c.style = input
	default:
		css, err := c.assetLoader.LoadStyle(input)
		if err != nil {
			if errors.Is(err, assets.ErrStyleNotFound) {
				return fmt.Errorf("%w: %q", ErrStyleNotFound, input)
			}
			return fmt.Errorf("loading style %q: %w", input, err)
		}
		c.style = css
	}
	return nil
}

// validateInput is the trust boundary for library callers that build Input
// by hand. The CLI has already validated its config by this point.
func (c *Converter) validateInput(input Input) error {
	if err := input.Validate(); err != nil {
		return err
	}
	if input.Cover != nil && input.Cover.Logo != "" {
		return checkLogo(input.Cover.Logo, input.SourceDir)
	}
	return nil
}

// checkLogo verifies that a local logo file exists. URLs are not fetched.
func checkLogo(logo, sourceDir string) error {
	if fileutil.IsURL(logo) {
		return nil
	}
	path := logo
	if !filepath.IsAbs(path) && sourceDir != "" {
		path = filepath.Join(sourceDir, path)
	}
	if !fileutil.FileExists(path) {
		return fmt.Errorf("%w: %s", ErrCoverLogoNotFound, logo)
	}
	return nil
}

func toSectionData(sections []Section) []pipeline.SectionData {
	out := make([]pipeline.SectionData, len(sections))
	for i, s := range sections {
		out[i] = pipeline.SectionData{Title: s.Title, Paragraphs: s.Paragraphs}
	}
	return out
}

func toCoverData(c *Cover) *pipeline.CoverData {
	if c == nil {
		return nil
	}
	return &pipeline.CoverData{
		Title:    c.Title,
		Subtitle: c.Subtitle,
		Date:     c.Date,
		Logo:     c.Logo,
	}
}

func toFooterData(f *Footer) *pipeline.FooterData {
	if f == nil {
		return nil
	}
	return &pipeline.FooterData{
		Position:       f.Position,
		ShowPageNumber: f.ShowPageNumber,
		ShowTotal:      f.ShowTotal,
		Text:           f.Text,
	}
}

func toTOCData(t *TOC) *pipeline.TOCData {
	if t == nil {
		return nil
	}
	depth := t.MaxDepth
	if depth == 0 {
		depth = 1
	}
	return &pipeline.TOCData{Title: t.Title, MaxDepth: depth}
}
