package services

import (
	"strings"

	"ficha-generator/models"
)

// Fallback texts used when the backend gives us nothing to show.
const (
	FallbackTitle       = "Propiedad en venta"
	FallbackDescription = "Descripción no disponible"
	FallbackMatch       = "Ficha pensada para ayudar al equipo a calzar la propiedad con el perfil adecuado de cliente."
)

// maxHighlights caps the AI highlight list; earlier variants of the ficha let
// it grow unbounded and the PDF layout broke past five entries.
const maxHighlights = 5

// BuildView projects a ListingRecord into its display-safe NormalizedView.
// It never fails: every field has a defined fallback, a nil record behaves
// like an empty one.
func BuildView(rec *models.ListingRecord) *models.NormalizedView {
	if rec == nil {
		rec = &models.ListingRecord{}
	}

	hero := rec.MainImageURL
	if hero == "" && len(rec.ImageURLs) > 0 {
		hero = rec.ImageURLs[0]
	}

	return &models.NormalizedView{
		Titulo:           Normalize(rec.Titulo.String(), FallbackTitle),
		FormattedPrice:   FormatPrice(rec.PrecioUF.String()),
		ItemCode:         ExtractItemCode(rec.SourceURL),
		Programa:         Normalize(rec.Programa.String(), FallbackND),
		M2Utile:          Normalize(rec.M2Utile.String(), FallbackND),
		M2Total:          Normalize(rec.M2Total.String(), FallbackND),
		M2Terraza:        Normalize(rec.M2Terraza.String(), FallbackND),
		Estacionamientos: Normalize(rec.Estacionamientos.String(), FallbackND),
		Bodegas:          Normalize(rec.Bodegas.String(), FallbackND),
		GastosComunes:    Normalize(rec.GastosComunes.String(), FallbackND),
		Orientacion:      Normalize(rec.Orientacion.String(), FallbackND),
		Piso:             Normalize(rec.Piso.String(), FallbackND),
		Antiguedad:       Normalize(rec.Antiguedad.String(), FallbackND),

		ExecutiveDescription: buildDescription(rec),
		Highlights:           buildHighlights(rec),
		ClientMatchNarrative: buildMatchNarrative(rec),

		HeroImageURL:  hero,
		GalleryImages: buildGallery(hero, rec.ImageURLs),

		SourceURL:  rec.SourceURL,
		Indicators: DeriveIndicators(rec.PrecioUF.String(), rec.M2Utile.String(), rec.M2Total.String()),
	}
}

func buildDescription(rec *models.ListingRecord) string {
	if rec.AI != nil && rec.AI.DescripcionEjecutiva != "" {
		return rec.AI.DescripcionEjecutiva
	}
	return Normalize(rec.DescripcionRaw.String(), FallbackDescription)
}

func buildHighlights(rec *models.ListingRecord) []string {
	if rec.AI == nil || len(rec.AI.Highlights) == 0 {
		return nil
	}
	out := make([]string, 0, len(rec.AI.Highlights))
	for _, h := range rec.AI.Highlights {
		if strings.TrimSpace(h) == "" {
			continue
		}
		out = append(out, h)
		if len(out) == maxHighlights {
			break
		}
	}
	return out
}

func buildMatchNarrative(rec *models.ListingRecord) string {
	if rec.AI != nil && rec.AI.MatchCliente != "" {
		return rec.AI.MatchCliente
	}
	return FallbackMatch
}

// buildGallery de-duplicates the photo sequence by URL, keeping order and
// guaranteeing the hero image is present and first when it exists.
func buildGallery(hero string, urls []string) []string {
	seen := make(map[string]struct{}, len(urls)+1)
	var out []string

	if hero != "" {
		seen[hero] = struct{}{}
		out = append(out, hero)
	}
	for _, u := range urls {
		if u == "" {
			continue
		}
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
