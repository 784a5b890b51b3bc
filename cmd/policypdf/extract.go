package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rapidophilia/policypdf/internal/extract"
)

// defaultExtractLimit is how many characters of each source are printed.
const defaultExtractLimit = 2000

// extractedSection is the JSON shape printed by extract --json.
type extractedSection struct {
	Path       string   `json:"path"`
	Title      string   `json:"title"`
	Paragraphs []string `json:"paragraphs"`
}

// runExtract prints the scraped text of every source, for checking what
// the build will put in the document.
func runExtract(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseExtractFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if flags.limit < 0 {
		return fmt.Errorf("%w: --limit must be >= 0, got %d", ErrUsage, flags.limit)
	}

	cfg, err := resolveConfig(&flags.common, env)
	if err != nil {
		return err
	}

	extracted, err := extract.LoadAll(ctx, sourcesFor(cfg, positional))
	if err != nil {
		return fmt.Errorf("extracting sources: %w", withSourceHint(err, cfg.Root))
	}

	if flags.json {
		return printExtractedJSON(env.Stdout, extracted)
	}
	for _, ex := range extracted {
		printExtracted(env.Stdout, ex, flags.limit)
	}
	return nil
}

// printExtracted writes one source: a "--- name ---" banner, its
// paragraphs separated by blank lines and cut at limit characters.
func printExtracted(w io.Writer, ex *extract.Extracted, limit int) {
	fmt.Fprintln(w, "---", filepath.Base(ex.Path), "---")
	fmt.Fprintln(w, truncateRunes(strings.Join(ex.Paragraphs, "\n\n"), limit))
	fmt.Fprint(w, "\n\n\n")
}

func printExtractedJSON(w io.Writer, extracted []*extract.Extracted) error {
	out := make([]extractedSection, len(extracted))
	for i, ex := range extracted {
		paragraphs := ex.Paragraphs
		if paragraphs == nil {
			paragraphs = []string{}
		}
		out[i] = extractedSection{Path: ex.Path, Title: ex.Title, Paragraphs: paragraphs}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// truncateRunes cuts s to at most n characters. n = 0 means no limit.
func truncateRunes(s string, n int) string {
	if n == 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
