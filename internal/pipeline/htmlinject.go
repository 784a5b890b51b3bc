package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"html/template"
	"regexp"
	"strconv"
	"strings"
)

// ErrCoverRender indicates the cover template failed to execute.
var ErrCoverRender = errors.New("cover template rendering failed")

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block before </head>, after <body>, or at the
// start of the document, whichever is found first.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" || ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}
	if pos := afterBodyOpen(htmlContent, lowerHTML); pos != -1 {
		return htmlContent[:pos] + styleBlock + htmlContent[pos:]
	}
	return styleBlock + htmlContent
}

// sanitizeCSS escapes "</" so user CSS cannot close the <style> element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// afterBodyOpen returns the index just past the <body ...> tag, or -1.
func afterBodyOpen(htmlContent, lowerHTML string) int {
	idx := strings.Index(lowerHTML, "<body")
	if idx == -1 {
		return -1
	}
	closeIdx := strings.Index(htmlContent[idx:], ">")
	if closeIdx == -1 {
		return -1
	}
	return idx + closeIdx + 1
}

// CoverData holds cover sheet content.
type CoverData struct {
	Title    string
	Subtitle string
	Date     string // rendered as "Last updated: <Date>"
	Logo     string // path or URL; relative paths are rewritten later
}

// CoverInjector defines the contract for cover injection into HTML.
type CoverInjector interface {
	InjectCover(ctx context.Context, htmlContent string, data *CoverData) (string, error)
}

// CoverInjection renders and injects a cover page into HTML content.
type CoverInjection struct {
	tmpl *template.Template
}

// NewCoverInjection parses the cover template.
func NewCoverInjection(tmplContent string) (*CoverInjection, error) {
	tmpl, err := template.New("cover").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing cover template: %w", err)
	}
	return &CoverInjection{tmpl: tmpl}, nil
}

// InjectCover renders the cover template right after <body>.
// A nil data leaves the document unchanged.
func (c *CoverInjection) InjectCover(ctx context.Context, htmlContent string, data *CoverData) (string, error) {
	if data == nil {
		return htmlContent, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := c.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCoverRender, err)
	}

	if pos := afterBodyOpen(htmlContent, strings.ToLower(htmlContent)); pos != -1 {
		return htmlContent[:pos] + buf.String() + htmlContent[pos:], nil
	}
	return buf.String() + htmlContent, nil
}

// FooterData holds the Chrome footer configuration.
type FooterData struct {
	Position       string // "left", "center", "right" (default: "center")
	ShowPageNumber bool   // "Page N"
	ShowTotal      bool   // "Page N of M"; implies the page number
	Text           string // free text appended after the page number
}

// TOCData holds table of contents configuration.
type TOCData struct {
	Title    string
	MaxDepth int // deepest heading level listed; sections are level 1
}

// TOCInjector defines the contract for TOC injection into HTML.
type TOCInjector interface {
	InjectTOC(ctx context.Context, htmlContent string, data *TOCData) (string, error)
}

// headingInfo is one heading found in the rendered HTML.
type headingInfo struct {
	Level int
	ID    string
	Text  string
}

var (
	// headingPattern captures level, id and inner HTML of h1-h6 with an id.
	headingPattern = regexp.MustCompile(`(?is)<h([1-6])[^>]*\bid="([^"]*)"[^>]*>(.*?)</h[1-6]>`)

	// htmlTagPattern matches tags stripped from heading text.
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

	// coverEndPattern finds the marker span closing the cover template.
	coverEndPattern = regexp.MustCompile(`(?i)<span[^>]*data-cover-end[^>]*>\s*</span>`)
)

// stripHTMLTags removes tags and decodes entities so the text is not
// double-encoded when escaped again.
func stripHTMLTags(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(html.UnescapeString(s))
}

// extractHeadings returns headings up to maxDepth that carry an id.
func extractHeadings(htmlContent string, maxDepth int) []headingInfo {
	var headings []headingInfo
	for _, m := range headingPattern.FindAllStringSubmatch(htmlContent, -1) {
		level, _ := strconv.Atoi(m[1])
		if level > maxDepth {
			continue
		}
		headings = append(headings, headingInfo{Level: level, ID: m[2], Text: stripHTMLTags(m[3])})
	}
	return headings
}

// generateTOC renders a numbered list linking to each heading.
// Deeper headings are indented under their section.
func generateTOC(headings []headingInfo, title string) string {
	if len(headings) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString(`<nav class="toc">`)
	if title != "" {
		buf.WriteString(`<h2 class="toc-title">`)
		buf.WriteString(html.EscapeString(title))
		buf.WriteString(`</h2>`)
	}
	buf.WriteString(`<div class="toc-list">`)

	section := 0
	for _, h := range headings {
		label := ""
		if h.Level == 1 {
			section++
			label = strconv.Itoa(section) + ". "
		}

		buf.WriteString(`<div class="toc-item"`)
		if h.Level > 1 {
			fmt.Fprintf(&buf, ` style="padding-left:%.1fem"`, float64(h.Level-1)*1.5)
		}
		buf.WriteString(`><a href="#`)
		buf.WriteString(html.EscapeString(h.ID))
		buf.WriteString(`">`)
		buf.WriteString(label)
		buf.WriteString(html.EscapeString(h.Text))
		buf.WriteString(`</a></div>`)
	}

	buf.WriteString(`</div></nav>`)
	return buf.String()
}

// TOCInjection implements TOCInjector.
type TOCInjection struct{}

// NewTOCInjection creates a TOC injector.
func NewTOCInjection() *TOCInjection {
	return &TOCInjection{}
}

// InjectTOC inserts a table of contents after the cover page, or right after
// <body> when there is no cover. Documents without headings are unchanged.
func (t *TOCInjection) InjectTOC(ctx context.Context, htmlContent string, data *TOCData) (string, error) {
	if data == nil {
		return htmlContent, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	maxDepth := data.MaxDepth
	if maxDepth < 1 {
		maxDepth = 1
	}
	tocHTML := generateTOC(extractHeadings(htmlContent, maxDepth), data.Title)
	if tocHTML == "" {
		return htmlContent, nil
	}

	// html/template strips comments, so the cover ends with a marker span.
	if loc := coverEndPattern.FindStringIndex(htmlContent); loc != nil {
		return htmlContent[:loc[1]] + tocHTML + htmlContent[loc[1]:], nil
	}
	if pos := afterBodyOpen(htmlContent, strings.ToLower(htmlContent)); pos != -1 {
		return htmlContent[:pos] + tocHTML + htmlContent[pos:], nil
	}
	return tocHTML + htmlContent, nil
}
