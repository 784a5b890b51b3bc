package policypdf

import (
	"context"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/rapidophilia/policypdf/internal/fileutil"
	"github.com/rapidophilia/policypdf/internal/pipeline"
	"github.com/rapidophilia/policypdf/internal/process"
)

// pdfConverter abstracts HTML to PDF conversion so tests need no browser.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pdfRenderer renders an HTML file on disk to PDF.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pdfOptions holds options for PDF generation.
type pdfOptions struct {
	Footer *pipeline.FooterData
	Page   *PageSettings
}

// pageDimensions holds portrait paper sizes in inches.
var pageDimensions = map[string]struct{ width, height float64 }{
	PageSizeA4:     {8.27, 11.69},
	PageSizeLetter: {8.5, 11},
	PageSizeLegal:  {8.5, 14},
}

// Footer text is 9pt grey.
const (
	footerFontSize = "9pt"
	footerColor    = "#6b7280"
)

// rodRenderer implements pdfRenderer with go-rod.
// Rod downloads Chromium on first run if none is found.
type rodRenderer struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
}

func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser launches Chrome on first use.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	bin := os.Getenv("ROD_BROWSER_BIN")
	if bin != "" {
		l = l.Bin(bin)
	}
	// Containers and CI runners have no user namespace for the sandbox.
	if os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("CI") == "true" || bin != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		r.killLauncher()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.browser = browser
	return nil
}

// Close shuts the browser down and kills any leftover Chrome children.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.killLauncher()
	return err
}

func (r *rodRenderer) killLauncher() {
	if r.launcher == nil {
		return
	}
	process.KillProcessGroup(r.launcher.PID())
	r.launcher.Kill()
	r.launcher = nil
}

// RenderFromFile opens a local HTML file in headless Chrome and prints it.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: fileURL(filePath)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(buildPDFOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdf, nil
}

// fileURL turns an absolute path into a file:// URL Chrome accepts.
func fileURL(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return "file://" + p
}

// buildPDFOptions maps page settings and footer onto Chrome's print call.
func buildPDFOptions(opts *pdfOptions) *proto.PagePrintToPDF {
	page := DefaultPageSettings()
	var footer *pipeline.FooterData
	if opts != nil {
		if opts.Page != nil {
			page = opts.Page
		}
		footer = opts.Footer
	}

	dims, ok := pageDimensions[strings.ToLower(page.Size)]
	if !ok {
		dims = pageDimensions[PageSizeA4]
	}
	width, height := dims.width, dims.height
	if strings.EqualFold(page.Orientation, OrientationLandscape) {
		width, height = height, width
	}

	pdfOpts := &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(page.MarginY),
		MarginBottom:    floatPtr(page.MarginY),
		MarginLeft:      floatPtr(page.MarginX),
		MarginRight:     floatPtr(page.MarginX),
		PrintBackground: true,
	}

	if footer != nil {
		pdfOpts.DisplayHeaderFooter = true
		pdfOpts.HeaderTemplate = "<span></span>"
		pdfOpts.FooterTemplate = buildFooterTemplate(footer, page.MarginX)
	}
	return pdfOpts
}

// buildFooterTemplate renders Chrome's footer. The pageNumber and
// totalPages classes are filled in by Chrome on every page.
func buildFooterTemplate(data *pipeline.FooterData, marginX float64) string {
	if data == nil {
		return "<span></span>"
	}

	var parts []string
	if data.ShowPageNumber || data.ShowTotal {
		number := `Page <span class="pageNumber"></span>`
		if data.ShowTotal {
			number += ` of <span class="totalPages"></span>`
		}
		parts = append(parts, number)
	}
	if data.Text != "" {
		parts = append(parts, html.EscapeString(data.Text))
	}
	if len(parts) == 0 {
		return "<span></span>"
	}

	align := "center"
	switch strings.ToLower(data.Position) {
	case "left", "right":
		align = strings.ToLower(data.Position)
	}

	return fmt.Sprintf(
		`<div style="font-size: %s; font-family: %s; color: %s; width: 100%%; text-align: %s; padding: 0 %.3fin;">%s</div>`,
		footerFontSize, defaultFontFamily, footerColor, align, marginX, strings.Join(parts, " · "),
	)
}

func floatPtr(v float64) *float64 {
	return &v
}

// rodConverter writes the HTML to a temp file and hands it to the renderer,
// so relative file:// references and large documents load like a page.
type rodConverter struct {
	renderer pdfRenderer
}

func newRodConverter(timeout time.Duration) *rodConverter {
	return &rodConverter{renderer: newRodRenderer(timeout)}
}

// ToPDF converts HTML content to PDF bytes.
func (c *rodConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, tmpPath, opts)
}

// Close releases browser resources.
func (c *rodConverter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}
