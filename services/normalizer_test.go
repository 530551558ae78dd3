package services

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw      string
		fallback string
		want     string
	}{
		{"", "N/D", "N/D"},
		{"N/D", "N/D", "N/D"},
		{"No disponible", "N/D", "N/D"},
		{"", "Propiedad en venta", "Propiedad en venta"},
		{"3D 2B", "N/D", "3D 2B"},
		{"  con espacios  ", "N/D", "  con espacios  "}, // no trimming
	}

	for _, tt := range tests {
		if got := Normalize(tt.raw, tt.fallback); got != tt.want {
			t.Errorf("Normalize(%q, %q) = %q; want %q", tt.raw, tt.fallback, got, tt.want)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"15.000", "UF 15.000"},
		{"5.990", "UF 5.990"},
		{"990", "UF 990"},
		{"N/D", "N/D"},
		{"No disponible", "N/D"},
		{"", "N/D"},
		{"abc", "UF abc"},
		{"12.345.678", "UF 12.345.678"},
	}

	for _, tt := range tests {
		if got := FormatPrice(tt.raw); got != tt.want {
			t.Errorf("FormatPrice(%q) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestExtractItemCode(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://x/MLC-1234567-depto", "MLC-1234567"},
		{"https://portal.cl/mlc-99-casa", "mlc-99"},
		{"https://portal.cl/sin-codigo", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ExtractItemCode(tt.url); got != tt.want {
			t.Errorf("ExtractItemCode(%q) = %q; want %q", tt.url, got, tt.want)
		}
	}
}
