package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for extraction.
var (
	ErrEmptyPath         = errors.New("source path cannot be empty")
	ErrUnsupportedFormat = errors.New("unsupported source format")
	ErrReadSource        = errors.New("failed to read source")
	ErrParseHTML         = errors.New("failed to parse HTML source")
)

// Source formats.
const (
	FormatAuto   = ""
	FormatMarkup = "markup"
	FormatHTML   = "html"
)

// Default section titles, chosen from the source file name.
const (
	TitleTerms   = "Terms of Use"
	TitlePrivacy = "Privacy Policy"
	TitleRefund  = "Cancellation / Refund Policy"
)

// markupExtensions lists file extensions scraped with FromMarkup.
var markupExtensions = map[string]bool{
	".tsx": true,
	".jsx": true,
	".ts":  true,
	".js":  true,
}

// Source describes one policy page to extract.
type Source struct {
	Path   string // file path (required)
	Title  string // section title; empty = inferred from file name
	Format string // "markup", "html", or empty to detect from extension
}

// Extracted is the text of one source, ready to become a document section.
type Extracted struct {
	Path       string
	Title      string
	Paragraphs []string
}

// InferTitle derives a section title from a source file name.
func InferTitle(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	switch {
	case strings.Contains(base, "Terms"):
		return TitleTerms
	case strings.Contains(base, "Privacy"):
		return TitlePrivacy
	default:
		return TitleRefund
	}
}

// DetectFormat resolves the extractor for a source.
// An explicit format wins; otherwise the file extension decides.
func DetectFormat(src Source) (string, error) {
	switch strings.ToLower(src.Format) {
	case FormatMarkup:
		return FormatMarkup, nil
	case FormatHTML:
		return FormatHTML, nil
	case FormatAuto:
		// detect below
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, src.Format)
	}

	ext := strings.ToLower(filepath.Ext(src.Path))
	switch {
	case markupExtensions[ext]:
		return FormatMarkup, nil
	case ext == ".html" || ext == ".htm":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("%w: %q (use .tsx, .jsx, .ts, .js, .html or set a format)", ErrUnsupportedFormat, filepath.Base(src.Path))
}

// Load reads and extracts a single source.
func Load(ctx context.Context, src Source) (*Extracted, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if src.Path == "" {
		return nil, ErrEmptyPath
	}

	format, err := DetectFormat(src)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(src.Path) // #nosec G304 -- source paths come from config or flags
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadSource, err)
	}

	var paragraphs []string
	switch format {
	case FormatHTML:
		paragraphs, err = FromHTML(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", src.Path, err)
		}
	default:
		paragraphs = FromMarkup(string(data))
	}

	title := strings.TrimSpace(src.Title)
	if title == "" {
		title = InferTitle(src.Path)
	}

	return &Extracted{
		Path:       src.Path,
		Title:      title,
		Paragraphs: paragraphs,
	}, nil
}

// LoadAll extracts every source in order and stops at the first failure.
func LoadAll(ctx context.Context, sources []Source) ([]*Extracted, error) {
	out := make([]*Extracted, 0, len(sources))
	for _, src := range sources {
		ex, err := Load(ctx, src)
		if err != nil {
			return nil, err
		}
		out = append(out, ex)
	}
	return out, nil
}
