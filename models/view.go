package models

import (
	"time"

	"github.com/google/uuid"
)

// Indicators holds the UF-per-m² ratios derived from price and areas.
// A ratio is nil whenever either operand did not parse as a finite number —
// never zero, never the result of a division by zero.
type Indicators struct {
	UFPerUsableM2 *int `json:"uf_per_usable_m2,omitempty"`
	UFPerTotalM2  *int `json:"uf_per_total_m2,omitempty"`
}

// NormalizedView is the display-safe projection of a ListingRecord.
// It is built once per record and treated as immutable by every consumer:
// card, WhatsApp message and PDF export all read from the same view.
type NormalizedView struct {
	Titulo           string `json:"titulo"`
	FormattedPrice   string `json:"formatted_price"`
	ItemCode         string `json:"item_code"`
	Programa         string `json:"programa"`
	M2Utile          string `json:"m2_utile"`
	M2Total          string `json:"m2_total"`
	M2Terraza        string `json:"m2_terraza"`
	Estacionamientos string `json:"estacionamientos"`
	Bodegas          string `json:"bodegas"`
	GastosComunes    string `json:"gastos_comunes"`
	Orientacion      string `json:"orientacion"`
	Piso             string `json:"piso"`
	Antiguedad       string `json:"antiguedad"`

	ExecutiveDescription string   `json:"executive_description"`
	Highlights           []string `json:"highlights,omitempty"`
	ClientMatchNarrative string   `json:"client_match_narrative"`

	HeroImageURL  string   `json:"hero_image_url"`
	GalleryImages []string `json:"gallery_images,omitempty"`

	SourceURL  string     `json:"source_url"`
	Indicators Indicators `json:"indicators"`
}

// Fact is one label/value cell of the card's fact grid.
type Fact struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// CardViewModel is the structured model behind the on-screen summary card.
// It carries no markup; the rendering layer decides presentation.
type CardViewModel struct {
	Title          string `json:"title"`
	ItemCode       string `json:"item_code,omitempty"`
	FormattedPrice string `json:"formatted_price"`

	Facts []Fact `json:"facts"`

	ExecutiveDescription string   `json:"executive_description"`
	Highlights           []string `json:"highlights,omitempty"`
	ClientMatchNarrative string   `json:"client_match_narrative"`

	Disclaimer string `json:"disclaimer"`
	SourceURL  string `json:"source_url,omitempty"`

	HeroImageURL string   `json:"hero_image_url,omitempty"`
	Thumbnails   []string `json:"thumbnails,omitempty"`
}

// FichaRecord is one row of the generation history kept in PostgreSQL.
type FichaRecord struct {
	ID             uuid.UUID `json:"id"`
	ItemCode       string    `json:"item_code"`
	Title          string    `json:"title"`
	FormattedPrice string    `json:"formatted_price"`
	SourceURL      string    `json:"source_url"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"created_at"`
}
