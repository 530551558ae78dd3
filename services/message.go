package services

import (
	"fmt"
	"strings"

	"ficha-generator/models"
)

// ComposeMessage builds the paste-ready WhatsApp summary: a fixed-order
// sequence of plain-text lines joined with single newlines. No markup — the
// whole point of this output is that it survives any messaging client.
func ComposeMessage(view *models.NormalizedView) string {
	lines := []string{
		"Te comparto el resumen de esta propiedad:",
		"",
		view.Titulo,
		"Precio: " + view.FormattedPrice,
		"Programa: " + view.Programa,
		fmt.Sprintf("Superficies: %s m² útiles, %s m² totales, %s m² terraza",
			view.M2Utile, view.M2Total, view.M2Terraza),
		fmt.Sprintf("Estac/Bodegas: %s estac, %s bodegas",
			view.Estacionamientos, view.Bodegas),
	}

	if v := view.Indicators.UFPerUsableM2; v != nil {
		lines = append(lines, fmt.Sprintf("Indicadores: ~ %s UF/m² útil",
			FormatGroupedNumber(float64(*v))))
	}

	lines = append(lines, "")

	// The message omits the description block entirely when the backend gave
	// us nothing real; the card shows the fallback instead.
	if view.ExecutiveDescription != "" && view.ExecutiveDescription != FallbackDescription {
		lines = append(lines, "Descripción ejecutiva:", view.ExecutiveDescription, "")
	}

	if view.SourceURL != "" {
		lines = append(lines, "Link: "+view.SourceURL)
	}

	return strings.Join(lines, "\n")
}
