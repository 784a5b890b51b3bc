package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rapidophilia/policypdf"
	"github.com/rapidophilia/policypdf/internal/assets"
	"github.com/rapidophilia/policypdf/internal/config"
	"github.com/rapidophilia/policypdf/internal/dateutil"
	"github.com/rapidophilia/policypdf/internal/extract"
	"github.com/rapidophilia/policypdf/internal/fileutil"
	"github.com/rapidophilia/policypdf/internal/hints"
)

// runBuild extracts every source, renders the document, writes it and
// copies it to the serving location.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(&flags.common, env)
	if err != nil {
		return err
	}
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	date, err := dateutil.ResolveDate(cfg.Cover.Date, env.Now())
	if err != nil {
		return fmt.Errorf("cover date: %w", err)
	}

	start := time.Now()
	extracted, err := extract.LoadAll(ctx, sourcesFor(cfg, positional))
	if err != nil {
		return fmt.Errorf("extracting sources: %w", withSourceHint(err, cfg.Root))
	}
	sections := make([]policypdf.Section, len(extracted))
	for i, ex := range extracted {
		if len(ex.Paragraphs) == 0 && !flags.common.quiet {
			fmt.Fprintf(env.Stderr, "warning: no text extracted from %s%s\n", ex.Path, hints.ForNoParagraphs())
		}
		sections[i] = policypdf.Section{Title: ex.Title, Paragraphs: ex.Paragraphs}
	}
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Extracted %d sections in %v\n", len(sections), time.Since(start).Round(time.Millisecond))
	}

	htmlOnly := flags.output.htmlOnly
	outPath := cfg.Resolve(cfg.Output.Path)
	target := outPath
	if htmlOnly {
		target = htmlPathFor(outPath)
	}

	if !flags.common.quiet {
		if htmlOnly {
			fmt.Fprintln(env.Stdout, "Generating HTML to", target)
		} else {
			fmt.Fprintln(env.Stdout, "Generating PDF to", target)
		}
	}

	conv, err := env.NewConverter(converterOptions(cfg)...)
	if err != nil {
		return withConvertHint(err)
	}
	defer func() { _ = conv.Close() }()

	start = time.Now()
	result, err := conv.Convert(ctx, buildInput(cfg, sections, date, htmlOnly))
	if err != nil {
		return withConvertHint(err)
	}
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Rendered in %v\n", time.Since(start).Round(time.Millisecond))
	}

	if htmlOnly || cfg.Output.HTML {
		htmlPath := htmlPathFor(outPath)
		if err := fileutil.WriteFile(htmlPath, result.HTML); err != nil {
			return fmt.Errorf("%w: %s: %v%s", ErrWriteOutput, htmlPath, err, hints.ForOutputDirectory())
		}
		if !flags.common.quiet && !htmlOnly {
			fmt.Fprintln(env.Stdout, "HTML written to", htmlPath)
		}
	}

	if htmlOnly {
		if !flags.common.quiet {
			fmt.Fprintln(env.Stdout, "Done. HTML at", target)
		}
		return nil
	}

	if err := fileutil.WriteFile(outPath, result.PDF); err != nil {
		return fmt.Errorf("%w: %s: %v%s", ErrWriteOutput, outPath, err, hints.ForOutputDirectory())
	}

	if !cfg.Output.NoCopy {
		copyToPublic(env, outPath, cfg.Resolve(cfg.Output.CopyTo), flags.common.quiet)
	}

	if !flags.common.quiet {
		fmt.Fprintln(env.Stdout, "Done. PDF at", outPath)
	}
	return nil
}

// copyToPublic duplicates the PDF for serving. A failure is reported and
// the build carries on.
func copyToPublic(env *Environment, src, dst string, quiet bool) {
	if err := fileutil.CopyFile(src, dst); err != nil {
		fmt.Fprintln(env.Stderr, "Failed copying to public:", err)
		return
	}
	if !quiet {
		fmt.Fprintln(env.Stdout, "Copied to public:", dst)
	}
}

// mergeFlags applies explicitly set flags on top of cfg.
func mergeFlags(f *buildFlags, cfg *config.Config) {
	if f.timeout != "" {
		cfg.Timeout = f.timeout
	}

	if f.output.path != "" {
		cfg.Output.Path = f.output.path
	}
	if f.output.copyTo != "" {
		cfg.Output.CopyTo = f.output.copyTo
	}
	if f.output.noCopy {
		cfg.Output.NoCopy = true
	}
	if f.output.html {
		cfg.Output.HTML = true
	}

	if f.layout.style != "" {
		cfg.CSS.Style = f.layout.style
	}
	if f.layout.assetPath != "" {
		cfg.Assets.BasePath = f.layout.assetPath
	}
	if f.layout.pageSize != "" {
		cfg.Page.Size = f.layout.pageSize
	}
	if f.layout.orientation != "" {
		cfg.Page.Orientation = f.layout.orientation
	}

	if f.cover.title != "" {
		cfg.Cover.Title = f.cover.title
	}
	if f.cover.subtitle != "" {
		cfg.Cover.Subtitle = f.cover.subtitle
	}
	if f.cover.date != "" {
		cfg.Cover.Date = f.cover.date
	}
	if f.cover.disabled {
		cfg.Cover.Enabled = boolPtr(false)
	}

	if f.noFooter {
		cfg.Footer.Enabled = boolPtr(false)
	}

	if f.toc.enabled {
		cfg.TOC.Enabled = true
	}
	if f.toc.title != "" {
		cfg.TOC.Title = f.toc.title
	}
}

// converterOptions maps config onto converter options. Style and asset
// paths are relative to the site root.
func converterOptions(cfg *config.Config) []policypdf.Option {
	style := cfg.CSS.Style
	if fileutil.IsFilePath(style) && !fileutil.IsCSS(style) {
		style = cfg.Resolve(style)
	}
	return []policypdf.Option{
		policypdf.WithTimeout(cfg.TimeoutDuration()),
		policypdf.WithStyle(style),
		policypdf.WithAssetPath(cfg.Resolve(cfg.Assets.BasePath)),
	}
}

// buildInput assembles the converter input from config and sections.
func buildInput(cfg *config.Config, sections []policypdf.Section, date string, htmlOnly bool) policypdf.Input {
	input := policypdf.Input{
		Sections:  sections,
		CSS:       cfg.CSS.Custom,
		SourceDir: cfg.Root,
		Page: &policypdf.PageSettings{
			Size:        strings.ToLower(cfg.Page.Size),
			Orientation: strings.ToLower(cfg.Page.Orientation),
			MarginX:     cfg.Page.MarginX,
			MarginY:     cfg.Page.MarginY,
		},
		HTMLOnly: htmlOnly,
	}

	if cfg.CoverEnabled() {
		input.Cover = &policypdf.Cover{
			Title:    cfg.Cover.Title,
			Subtitle: cfg.Cover.Subtitle,
			Date:     date,
			Logo:     cfg.Cover.Logo,
		}
	}
	if cfg.FooterEnabled() {
		input.Footer = &policypdf.Footer{
			Position:       cfg.Footer.Position,
			ShowPageNumber: true,
			ShowTotal:      cfg.Footer.ShowTotal,
			Text:           cfg.Footer.Text,
		}
	}
	if cfg.TOC.Enabled {
		input.TOC = &policypdf.TOC{
			Title:    cfg.TOC.Title,
			MaxDepth: cfg.TOC.MaxDepth,
		}
	}
	return input
}

// withConvertHint appends hints for errors users can act on.
func withConvertHint(err error) error {
	switch {
	case errors.Is(err, policypdf.ErrBrowserConnect):
		return fmt.Errorf("%w%s", err, hints.ForBrowserConnect())
	case errors.Is(err, policypdf.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	case errors.Is(err, policypdf.ErrStyleNotFound):
		return fmt.Errorf("%w%s", err, hints.ForStyleNotFound([]string{assets.DefaultStyleName}))
	}
	return err
}

// htmlPathFor swaps the output extension for .html.
func htmlPathFor(pdfPath string) string {
	return strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath)) + ".html"
}

func boolPtr(b bool) *bool {
	return &b
}
