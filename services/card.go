package services

import (
	"ficha-generator/models"
)

// CardDisclaimer is shown in the card footer on every ficha.
const CardDisclaimer = "Uso interno Flipeame. No reenviar esta ficha tal cual al cliente sin revisión."

// maxThumbnails limits the gallery strip of the on-screen card.
const maxThumbnails = 8

// ComposeCard assembles the structured view model for the on-screen summary
// card. Composing twice from the same view yields an identical model; no
// state survives between calls.
func ComposeCard(view *models.NormalizedView) *models.CardViewModel {
	gastos := FallbackND
	if view.GastosComunes != FallbackND {
		gastos = "$ " + view.GastosComunes
	}

	facts := []models.Fact{
		{Label: "Programa", Value: view.Programa},
		{Label: "Útil (m²)", Value: view.M2Utile},
		{Label: "Total (m²)", Value: view.M2Total},
		{Label: "Terraza (m²)", Value: view.M2Terraza},
		{Label: "Estac. / Bodegas", Value: view.Estacionamientos + " estac · " + view.Bodegas + " bod"},
		{Label: "G. comunes aprox", Value: gastos},
		{Label: "Orientación", Value: view.Orientacion},
		{Label: "Piso", Value: view.Piso},
		{Label: "Antigüedad", Value: view.Antiguedad},
	}

	// No strip at all with fewer than two photos; the hero stands alone.
	var thumbs []string
	if len(view.GalleryImages) > 1 {
		n := len(view.GalleryImages)
		if n > maxThumbnails {
			n = maxThumbnails
		}
		thumbs = append(thumbs, view.GalleryImages[:n]...)
	}

	var highlights []string
	if len(view.Highlights) > 0 {
		highlights = append(highlights, view.Highlights...)
	}

	return &models.CardViewModel{
		Title:                view.Titulo,
		ItemCode:             view.ItemCode,
		FormattedPrice:       view.FormattedPrice,
		Facts:                facts,
		ExecutiveDescription: view.ExecutiveDescription,
		Highlights:           highlights,
		ClientMatchNarrative: view.ClientMatchNarrative,
		Disclaimer:           CardDisclaimer,
		SourceURL:            view.SourceURL,
		HeroImageURL:         view.HeroImageURL,
		Thumbnails:           thumbs,
	}
}
