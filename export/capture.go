package export

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
)

// A4 paper size in inches for Page.printToPDF.
const (
	a4WidthIn  = 8.27
	a4HeightIn = 11.69
)

// captureWidth is the viewport width for the template screenshot: 2× the A4
// width at 96dpi, same oversampling the ficha always used for print quality.
const captureWidth = 1588

// Capturer is the capture-and-paginate engine: it rasterizes a populated
// template page and wraps a raster page into the single-page A4 document.
type Capturer interface {
	Capture(ctx context.Context, htmlPath string) ([]byte, error)
	Paginate(ctx context.Context, htmlPath string) ([]byte, error)
}

// ChromeCapturer drives a headless Chrome/Chromium binary.
type ChromeCapturer struct {
	execPath string
	logger   zerolog.Logger
}

// NewChromeCapturer locates the browser binary. A missing binary is not an
// error here: it only becomes one when an export is actually attempted.
func NewChromeCapturer(explicitBin string, logger zerolog.Logger) *ChromeCapturer {
	return &ChromeCapturer{
		execPath: findChromeBinary(explicitBin),
		logger:   logger.With().Str("component", "capture").Logger(),
	}
}

// Capture screenshots the full populated template at fixed width and returns
// the raster bytes (JPEG).
func (c *ChromeCapturer) Capture(ctx context.Context, htmlPath string) ([]byte, error) {
	if c.execPath == "" {
		return nil, ErrCaptureUnavailable
	}

	var buf []byte
	err := c.run(ctx,
		chromedp.EmulateViewport(captureWidth, 1200),
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.FullScreenshot(&buf, 95),
	)
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	return buf, nil
}

// Paginate prints the wrapper page as a single A4 PDF page.
func (c *ChromeCapturer) Paginate(ctx context.Context, htmlPath string) ([]byte, error) {
	if c.execPath == "" {
		return nil, ErrCaptureUnavailable
	}

	var buf []byte
	err := c.run(ctx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().
				WithPaperWidth(a4WidthIn).
				WithPaperHeight(a4HeightIn).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPrintBackground(true).
				WithPageRanges("1").
				Do(ctx)
			if err != nil {
				return err
			}
			buf = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print to pdf: %w", err)
	}
	return buf, nil
}

func (c *ChromeCapturer) run(ctx context.Context, actions ...chromedp.Action) error {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.ExecPath(c.execPath),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	tabCtx, cancelTab := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelTab()

	return chromedp.Run(tabCtx, actions...)
}

// findChromeBinary locates a Chrome/Chromium binary, preferring the explicit
// configuration.
func findChromeBinary(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
