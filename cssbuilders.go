package policypdf

import (
	"fmt"
	"strings"
)

const (
	defaultFontFamily = "Helvetica, Arial, sans-serif"
	defaultOrphans    = 2
	defaultWidows     = 2
)

// buildLayoutCSS returns the page-flow rules the document depends on:
// every section after the first starts a new page, the cover fills its own
// page, and headings never end a page.
func buildLayoutCSS() string {
	var buf strings.Builder

	buf.WriteString(`
/* Sections: one page break between consecutive sections */
h1 ~ h1 {
  break-before: page;
  page-break-before: always;
}

/* Cover sheet stands alone */
.cover {
  break-after: page;
  page-break-after: always;
}

/* Headings stay with the following paragraph */
h1, h2, h3, h4, h5, h6 {
  break-after: avoid;
  page-break-after: avoid;
  break-inside: avoid;
  page-break-inside: avoid;
}
`)

	fmt.Fprintf(&buf, `
/* Orphan/widow control */
p, li, blockquote {
  orphans: %d;
  widows: %d;
}
`, defaultOrphans, defaultWidows)

	return buf.String()
}
