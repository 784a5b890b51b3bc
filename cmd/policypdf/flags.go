package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	root    string
	quiet   bool
	verbose bool
}

// outputFlags holds where the document goes.
type outputFlags struct {
	path     string
	copyTo   string
	noCopy   bool
	html     bool // write HTML alongside the PDF
	htmlOnly bool // write HTML only, skip the browser
}

// layoutFlags holds page and styling flags.
type layoutFlags struct {
	style       string
	assetPath   string
	pageSize    string
	orientation string
}

// coverFlags holds cover sheet flags.
type coverFlags struct {
	title    string
	subtitle string
	date     string
	disabled bool
}

// tocFlags holds table of contents flags.
type tocFlags struct {
	enabled bool
	title   string
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common   commonFlags
	timeout  string
	output   outputFlags
	layout   layoutFlags
	cover    coverFlags
	noFooter bool
	toc      tocFlags
}

// extractFlags holds flags for the extract command.
type extractFlags struct {
	common commonFlags
	limit  int
	json   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.root, "root", "", "site root for relative paths (default \".\")")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.path, "output", "o", "", "output PDF path")
	fs.StringVar(&f.copyTo, "copy-to", "", "second location the PDF is copied to")
	fs.BoolVar(&f.noCopy, "no-copy", false, "skip the copy step")
	fs.BoolVar(&f.html, "html", false, "write HTML alongside the PDF")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "write HTML only, skip PDF")
}

// addLayoutFlags adds page and style flags to a FlagSet.
func addLayoutFlags(fs *flag.FlagSet, f *layoutFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name, file path, or inline CSS")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVarP(&f.pageSize, "page-size", "p", "", "page size: a4, letter, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
}

// addCoverFlags adds cover flags to a FlagSet.
func addCoverFlags(fs *flag.FlagSet, f *coverFlags) {
	fs.StringVar(&f.title, "cover-title", "", "cover title")
	fs.StringVar(&f.subtitle, "cover-subtitle", "", "cover subtitle")
	fs.StringVar(&f.date, "date", "", "\"Last updated\" date (\"auto\" = today)")
	fs.BoolVar(&f.disabled, "no-cover", false, "disable cover page")
}

// addTOCFlags adds TOC flags to a FlagSet.
func addTOCFlags(fs *flag.FlagSet, f *tocFlags) {
	fs.BoolVar(&f.enabled, "toc", false, "add a table of contents after the cover")
	fs.StringVar(&f.title, "toc-title", "", "table of contents heading")
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string, usage io.Writer) (*buildFlags, []string, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &buildFlags{}

	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.noFooter, "no-footer", false, "disable page footer")

	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.output)
	addLayoutFlags(fs, &f.layout)
	addCoverFlags(fs, &f.cover)
	addTOCFlags(fs, &f.toc)

	fs.Usage = func() { printBuildUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}

// parseExtractFlags parses extract command flags and returns positional args.
func parseExtractFlags(args []string, usage io.Writer) (*extractFlags, []string, error) {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &extractFlags{}

	addCommonFlags(fs, &f.common)
	fs.IntVar(&f.limit, "limit", defaultExtractLimit, "characters printed per source (0 = all)")
	fs.BoolVar(&f.json, "json", false, "print sections as JSON")

	fs.Usage = func() { printExtractUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}

// parseConfigFlags parses config command flags.
func parseConfigFlags(args []string, usage io.Writer) (*commonFlags, error) {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &commonFlags{}

	addCommonFlags(fs, f)

	fs.Usage = func() { printConfigUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, usageError(err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: config takes no arguments", ErrUsage)
	}
	return f, nil
}

// usageError tags a parse failure so it maps to ExitUsage. --help is
// passed through untouched.
func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUsage, err)
}
