// Package export turns a NormalizedView into the single-page A4 document.
// It populates an HTML template, resolves every referenced image to
// completion, captures the page as a raster and paginates it into the PDF.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"ficha-generator/models"
)

// ErrCaptureUnavailable means no Chrome/Chromium binary could be found. It is
// fatal to the export action only; card and message generation keep working.
var ErrCaptureUnavailable = errors.New("capture engine unavailable: no Chrome/Chromium binary found")

// ExportError wraps a failure of the capture or paginate stage. Image load
// failures never produce one; they are absorbed as blank tiles.
type ExportError struct {
	Stage string
	Err   error
}

func (e *ExportError) Error() string { return "export " + e.Stage + ": " + e.Err.Error() }
func (e *ExportError) Unwrap() error { return e.Err }

// Result is a finished export.
type Result struct {
	PDF      []byte
	Filename string
}

// Output page size in CSS pixels at 96dpi (A4 portrait).
const (
	pageWidthPx  = 794
	pageHeightPx = 1123
)

// sideTileCount is how many side-gallery photos follow the hero in the
// document layout.
const sideTileCount = 3

// Exporter orchestrates the export pipeline. One Exporter serves many
// exports; all per-export state lives in the Export call.
type Exporter struct {
	capturer Capturer
	images   *ImageResolver
	logger   zerolog.Logger
}

// New creates an Exporter on top of a capture engine and an image resolver.
func New(capturer Capturer, images *ImageResolver, logger zerolog.Logger) *Exporter {
	return &Exporter{
		capturer: capturer,
		images:   images,
		logger:   logger.With().Str("component", "export").Logger(),
	}
}

// Export produces the A4 PDF for a view. It fails only when the capture or
// paginate stage fails, or when the capture engine is unavailable; missing
// fields and unloadable photos degrade to fallbacks and blank tiles.
func (e *Exporter) Export(ctx context.Context, view *models.NormalizedView) (*Result, error) {
	st := newExportState(e.logger)

	st.enter(phasePopulating)
	data := newTemplateData(view)

	// Hero first: its bitmap must be settled before anything else happens.
	st.enter(phaseAwaitingHero)
	if view.HeroImageURL != "" {
		if uri, ok := e.images.Resolve(ctx, view.HeroImageURL); ok {
			data.Hero = uri
		}
	}

	// Side gallery, strictly one image at a time. Image i+1 must not start
	// until image i has settled: the capture step downstream needs every
	// bitmap decoded, and concurrent loads used to leave blank tiles.
	st.enter(phaseAwaitingGallery)
	for i, u := range sideGallery(view) {
		uri, ok := e.images.Resolve(ctx, u)
		if !ok {
			st.galleryProgress(i, false)
			data.Tiles = append(data.Tiles, "")
			continue
		}
		st.galleryProgress(i, true)
		data.Tiles = append(data.Tiles, uri)
	}

	html, err := e.renderDocument(data)
	if err != nil {
		st.fail(err)
		return nil, &ExportError{Stage: "populate", Err: err}
	}

	workDir, err := os.MkdirTemp("", "ficha-export-")
	if err != nil {
		st.fail(err)
		return nil, &ExportError{Stage: "populate", Err: err}
	}
	defer os.RemoveAll(workDir)

	fichaPath := filepath.Join(workDir, "ficha.html")
	if err := os.WriteFile(fichaPath, html, 0600); err != nil {
		st.fail(err)
		return nil, &ExportError{Stage: "populate", Err: err}
	}

	st.enter(phaseCapturing)
	raster, err := e.capturer.Capture(ctx, fichaPath)
	if err != nil {
		st.fail(err)
		if errors.Is(err, ErrCaptureUnavailable) {
			return nil, err
		}
		return nil, &ExportError{Stage: "capture", Err: err}
	}

	st.enter(phasePaginating)
	pageHTML, err := buildPage(raster)
	if err != nil {
		st.fail(err)
		return nil, &ExportError{Stage: "paginate", Err: err}
	}
	pagePath := filepath.Join(workDir, "page.html")
	if err := os.WriteFile(pagePath, pageHTML, 0600); err != nil {
		st.fail(err)
		return nil, &ExportError{Stage: "paginate", Err: err}
	}

	pdf, err := e.capturer.Paginate(ctx, pagePath)
	if err != nil {
		st.fail(err)
		if errors.Is(err, ErrCaptureUnavailable) {
			return nil, err
		}
		return nil, &ExportError{Stage: "paginate", Err: err}
	}

	st.enter(phaseDone)
	return &Result{
		PDF:      pdf,
		Filename: Filename(view.Titulo) + ".pdf",
	}, nil
}

// renderDocument tries the primary layout and degrades to the legacy one
// rather than failing the export outright.
func (e *Exporter) renderDocument(data *templateData) ([]byte, error) {
	html, err := renderTemplate("ficha.html", data)
	if err == nil {
		return html, nil
	}
	e.logger.Warn().Err(err).Msg("primary template failed, falling back to legacy layout")
	return renderTemplate("ficha_legacy.html", data)
}

// buildPage wraps the captured raster in the A4 wrapper page: uniform scale
// to fit (minimum of width-fit and height-fit), centered.
func buildPage(raster []byte) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raster))
	if err != nil {
		return nil, fmt.Errorf("decode raster: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("raster has no pixels")
	}

	scale := float64(pageWidthPx) / float64(cfg.Width)
	if h := float64(pageHeightPx) / float64(cfg.Height); h < scale {
		scale = h
	}

	return renderPage(pageData{
		Src:    rasterDataURI(raster),
		Width:  int(float64(cfg.Width) * scale),
		Height: int(float64(cfg.Height) * scale),
	})
}

// sideGallery picks the photos shown as tiles under the hero.
func sideGallery(view *models.NormalizedView) []string {
	if len(view.GalleryImages) <= 1 {
		return nil
	}
	rest := view.GalleryImages[1:]
	if len(rest) > sideTileCount {
		rest = rest[:sideTileCount]
	}
	return rest
}
