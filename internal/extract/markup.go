package extract

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Line filter thresholds.
const (
	// minLabelWords is the word count below which a line containing ':' is
	// treated as a label ("Last updated: ...") rather than prose.
	minLabelWords = 6

	// minLineRunes drops stray punctuation and closing braces.
	minLineRunes = 3
)

// Precompiled patterns, applied in declaration order by FromMarkup.
var (
	lineEndings    = regexp.MustCompile(`\r\n?`)
	importStmt     = regexp.MustCompile(`(?m)^\s*import\b[\s\S]*?;?\n`)
	defaultExport  = regexp.MustCompile(`(?m)^\s*export default .*`)
	markupTag      = regexp.MustCompile(`<[^>]+>`)
	embeddedExpr   = regexp.MustCompile(`{[^}]*}`)
	newlineRuns    = regexp.MustCompile(`\n+`)
	markupLeadChar = regexp.MustCompile(`^[<>/]`)

	// declarationLine matches component scaffolding that survives tag and
	// expression stripping, e.g. "const Page: React.FC = () =>".
	declarationLine = regexp.MustCompile(`^(?:const|let|var|function|return)\s|=>$`)
)

// FromMarkup scrapes the visible text of a markup-embedded page.
// Each returned element is one paragraph. Input holding only markup and
// expressions yields nil.
func FromMarkup(src string) []string {
	s := lineEndings.ReplaceAllString(src, "\n")
	s = importStmt.ReplaceAllString(s, "")
	s = defaultExport.ReplaceAllString(s, "")

	// Tags become line breaks so sibling text nodes stay separate.
	s = markupTag.ReplaceAllString(s, "\n")
	s = embeddedExpr.ReplaceAllString(s, "")

	s = newlineRuns.ReplaceAllString(s, "\n")
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	var paragraphs []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if !keepLine(line) {
			continue
		}
		if p := normalizeParagraph(html.UnescapeString(line)); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// keepLine reports whether a trimmed line carries prose worth keeping.
func keepLine(line string) bool {
	switch {
	case line == "":
		return false
	case markupLeadChar.MatchString(line):
		return false
	case declarationLine.MatchString(line):
		return false
	case strings.Contains(line, ":") && len(strings.Fields(line)) < minLabelWords:
		return false
	case utf8.RuneCountInString(line) < minLineRunes:
		return false
	}
	return true
}

// normalizeParagraph collapses all whitespace runs (including non-breaking
// spaces from decoded entities) to a single space.
func normalizeParagraph(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
