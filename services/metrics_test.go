package services

import "testing"

func TestParseAreaPriceNumber(t *testing.T) {
	tests := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{"15.000", 15000, true},
		{"50", 50, true},
		{"89,5", 89.5, true},
		{"1.234,5", 1234.5, true},
		{"N/D", 0, false},
		{"No disponible", 0, false},
		{"", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseAreaPriceNumber(tt.raw)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseAreaPriceNumber(%q) = (%v, %v); want (%v, %v)",
				tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestDeriveIndicatorsBothAreas(t *testing.T) {
	ind := DeriveIndicators("15.000", "50", "60")

	if ind.UFPerUsableM2 == nil || *ind.UFPerUsableM2 != 300 {
		t.Errorf("UFPerUsableM2 = %v; want 300", ind.UFPerUsableM2)
	}
	if ind.UFPerTotalM2 == nil || *ind.UFPerTotalM2 != 250 {
		t.Errorf("UFPerTotalM2 = %v; want 250", ind.UFPerTotalM2)
	}
}

func TestDeriveIndicatorsMissingOperands(t *testing.T) {
	if ind := DeriveIndicators("N/D", "50", "60"); ind.UFPerUsableM2 != nil || ind.UFPerTotalM2 != nil {
		t.Error("ratios must be absent when the price does not parse")
	}
	if ind := DeriveIndicators("15.000", "N/D", ""); ind.UFPerUsableM2 != nil || ind.UFPerTotalM2 != nil {
		t.Error("ratios must be absent when the areas do not parse")
	}
}

func TestDeriveIndicatorsZeroArea(t *testing.T) {
	ind := DeriveIndicators("15.000", "0", "60")
	if ind.UFPerUsableM2 != nil {
		t.Error("a zero area must not produce a ratio")
	}
	if ind.UFPerTotalM2 == nil || *ind.UFPerTotalM2 != 250 {
		t.Errorf("UFPerTotalM2 = %v; want 250", ind.UFPerTotalM2)
	}
}

func TestDeriveIndicatorsRounding(t *testing.T) {
	ind := DeriveIndicators("10.000", "33", "")
	if ind.UFPerUsableM2 == nil || *ind.UFPerUsableM2 != 303 {
		t.Errorf("UFPerUsableM2 = %v; want 303", ind.UFPerUsableM2)
	}
}
