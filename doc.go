// Package policypdf renders policy pages, already reduced to titled lists
// of paragraphs, into a single PDF with a cover sheet, one heading per
// section and page-numbered footers.
//
// # Quick Start
//
//	conv, err := policypdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, policypdf.Input{
//	    Sections: []policypdf.Section{
//	        {Title: "Terms of Use", Paragraphs: []string{"..."}},
//	        {Title: "Privacy Policy", Paragraphs: []string{"..."}},
//	    },
//	    Cover:  &policypdf.Cover{Title: "Rapidophilia — Policies"},
//	    Footer: &policypdf.Footer{ShowPageNumber: true},
//	})
//
// The result holds the PDF bytes and the intermediate HTML. Set
// Input.HTMLOnly to skip the browser.
//
// # Pipeline
//
//  1. Sections are composed into escaped Markdown, one heading each
//  2. Markdown is converted to HTML with goldmark
//  3. Layout CSS, the cover sheet and an optional table of contents are
//     injected
//  4. Headless Chrome (go-rod) prints the page with its native footer
//
// Text is escaped before conversion, so a paragraph can never turn into
// markup, a list or a heading.
//
// # Browser Requirements
//
// go-rod downloads a managed Chromium on first use. Set ROD_BROWSER_BIN to
// use an installed Chrome and ROD_NO_SANDBOX=1 inside containers.
package policypdf
