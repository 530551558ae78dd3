package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexString is a scalar field from the backend that may arrive as a JSON
// string, a number, a boolean or null. The upstream scraper is not consistent
// about types, so everything is coerced to its textual form on decode.
type FlexString string

// UnmarshalJSON accepts any JSON scalar and stores its display text.
// null, false and numeric zero all mean "no value" upstream and become the
// empty string; the string "0" stays a real value.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte("false")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	tok := strings.TrimSpace(string(data))
	if n, err := strconv.ParseFloat(tok, 64); err == nil && n == 0 {
		*f = ""
		return nil
	}
	*f = FlexString(tok)
	return nil
}

func (f FlexString) String() string { return string(f) }

// ListingRecord is the listing object produced by the scraping backend.
// Any field may be absent, null, or carry the "N/D" sentinel; all three mean
// "not available" and every downstream derivation has a fallback for them.
type ListingRecord struct {
	Titulo           FlexString `json:"titulo"`
	PrecioUF         FlexString `json:"precio_uf"`
	Programa         FlexString `json:"programa"`
	M2Utile          FlexString `json:"m2_utile"`
	M2Total          FlexString `json:"m2_total"`
	M2Terraza        FlexString `json:"m2_terraza"`
	Estacionamientos FlexString `json:"estacionamientos"`
	Bodegas          FlexString `json:"bodegas"`
	GastosComunes    FlexString `json:"gastos_comunes"`
	Orientacion      FlexString `json:"orientacion"`
	Piso             FlexString `json:"piso"`
	Antiguedad       FlexString `json:"antiguedad"`
	MainImageURL     string     `json:"main_image_url"`
	ImageURLs        []string   `json:"image_urls"`
	SourceURL        string     `json:"sourceUrl"`
	DescripcionRaw   FlexString `json:"descripcion_raw"`
	AI               *AIContent `json:"ai,omitempty"`
}

// AIContent is the optional enrichment block the backend attaches when its
// AI pass succeeded.
type AIContent struct {
	DescripcionEjecutiva string   `json:"descripcion_ejecutiva"`
	Highlights           []string `json:"highlights"`
	MatchCliente         string   `json:"match_cliente"`
}
