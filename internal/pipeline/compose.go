package pipeline

import "strings"

// SectionData is one titled group of paragraphs.
type SectionData struct {
	Title      string
	Paragraphs []string
}

// markdownSpecial lists the ASCII punctuation that can start or close
// Markdown syntax. Quotes are left alone so the typographer can curl them.
const markdownSpecial = "\\`*_{}[]<>#+-.!|~&="

// ComposeMarkdown renders sections as Markdown: a level-one heading per
// section followed by its paragraphs. All text is escaped so it renders
// literally. Blank paragraphs are skipped.
func ComposeMarkdown(sections []SectionData) string {
	var buf strings.Builder
	for i, s := range sections {
		if i > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString("# ")
		buf.WriteString(EscapeMarkdown(singleLine(s.Title)))
		buf.WriteString("\n")

		for _, p := range s.Paragraphs {
			p = singleLine(p)
			if p == "" {
				continue
			}
			buf.WriteString("\n")
			buf.WriteString(EscapeMarkdown(p))
			buf.WriteString("\n")
		}
	}
	return buf.String()
}

// EscapeMarkdown backslash-escapes every Markdown-significant character.
func EscapeMarkdown(s string) string {
	var buf strings.Builder
	buf.Grow(len(s) + len(s)/8)
	for _, r := range s {
		if r < 0x80 && strings.ContainsRune(markdownSpecial, r) {
			buf.WriteByte('\\')
		}
		buf.WriteRune(r)
	}
	return buf.String()
}

// singleLine collapses whitespace, including newlines, so a paragraph can
// never split into two blocks.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
