package docx2pdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing
// without a browser.
type pdfRenderer interface {
	RenderFile(ctx context.Context, htmlPath string, opts *renderOptions) ([]byte, error)
}

// Compile-time interface check.
var _ pdfRenderer = (*rodRenderer)(nil)

// renderOptions carries page geometry into the render pass.
type renderOptions struct {
	Format          string
	Margin          Margin
	PreserveHeaders bool
}

// pixelsPerInch is Chrome's CSS pixel density for print measurement.
const pixelsPerInch = 96.0

// paperSize returns paper dimensions in inches for a page format.
func paperSize(format string) (width, height float64) {
	switch strings.ToLower(format) {
	case "letter":
		return 8.5, 11
	case "legal":
		return 8.5, 14
	default: // A4
		return 8.27, 11.69
	}
}

// measureScript reads the rendered heights of the header/footer
// placeholders so margins can make room for them.
const measureScript = `() => {
	const h = document.querySelector(".docx-header");
	const f = document.querySelector(".docx-footer");
	return { header: h ? h.offsetHeight : 0, footer: f ? f.offsetHeight : 0 };
}`

// rodRenderer renders HTML files to PDF with headless Chrome via go-rod.
// Each call launches and tears down its own browser process, so calls are
// fully isolated and the renderer itself holds no state.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	timeout time.Duration
}

// newRodRenderer creates a rodRenderer with the given page-load timeout.
func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// launch starts a browser for a single render call.
func (r *rodRenderer) launch() (*rod.Browser, error) {
	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return browser, nil
}

// RenderFile opens a local HTML file in headless Chrome and renders it to
// PDF bytes. When header preservation is on, the placeholder heights are
// measured first and folded into the margins before the final render pass.
func (r *rodRenderer) RenderFile(ctx context.Context, htmlPath string, opts *renderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := r.launch()
	if err != nil {
		return nil, err
	}
	defer func() { _ = browser.Close() }()

	page, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + htmlPath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	timeout, err := resolveTimeout(ctx, r.timeout)
	if err != nil {
		return nil, err
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	headerPx, footerPx := 0.0, 0.0
	if opts != nil && opts.PreserveHeaders {
		headerPx, footerPx = measurePlaceholders(page)
	}

	pdfOpts := buildPrintOptions(opts, headerPx, footerPx)

	reader, err := page.PDF(pdfOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdfBuf, nil
}

// resolveTimeout picks the page-load timeout: the context deadline only
// tightens the configured timeout, never extends it.
func resolveTimeout(ctx context.Context, fallback time.Duration) (time.Duration, error) {
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return 0, context.DeadlineExceeded
		}
		if remaining < fallback {
			return remaining, nil
		}
	}
	return fallback, nil
}

// measurePlaceholders queries the rendered header/footer heights in pixels.
// Measurement failure is non-fatal: the render proceeds with plain margins.
func measurePlaceholders(page *rod.Page) (headerPx, footerPx float64) {
	obj, err := page.Eval(measureScript)
	if err != nil {
		return 0, 0
	}
	return obj.Value.Get("header").Num(), obj.Value.Get("footer").Num()
}

// buildPrintOptions constructs proto.PagePrintToPDF from render options and
// measured placeholder heights.
func buildPrintOptions(opts *renderOptions, headerPx, footerPx float64) *proto.PagePrintToPDF {
	format := ""
	margin := DefaultMargins()
	if opts != nil {
		format = opts.Format
		margin = opts.Margin
	}

	width, height := paperSize(format)
	marginTop := margin.Top + headerPx/pixelsPerInch
	marginBottom := margin.Bottom + footerPx/pixelsPerInch

	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(marginTop),
		MarginBottom:    floatPtr(marginBottom),
		MarginLeft:      floatPtr(margin.Left),
		MarginRight:     floatPtr(margin.Right),
		PrintBackground: true,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
