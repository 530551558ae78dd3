package services

import (
	"reflect"
	"testing"

	"ficha-generator/models"
)

func TestComposeCardFactGrid(t *testing.T) {
	card := ComposeCard(BuildView(fullRecord()))

	if len(card.Facts) != 9 {
		t.Fatalf("fact grid has %d cells; want 9", len(card.Facts))
	}

	byLabel := make(map[string]string, len(card.Facts))
	for _, f := range card.Facts {
		byLabel[f.Label] = f.Value
	}

	if got := byLabel["Estac. / Bodegas"]; got != "2 estac · 1 bod" {
		t.Errorf("Estac. / Bodegas = %q", got)
	}
	if got := byLabel["G. comunes aprox"]; got != "$ 350.000" {
		t.Errorf("G. comunes aprox = %q", got)
	}
	if got := byLabel["Programa"]; got != "3D 2B" {
		t.Errorf("Programa = %q", got)
	}
}

func TestComposeCardMissingGastos(t *testing.T) {
	card := ComposeCard(BuildView(&models.ListingRecord{GastosComunes: "N/D"}))
	for _, f := range card.Facts {
		if f.Label == "G. comunes aprox" && f.Value != FallbackND {
			t.Errorf("G. comunes aprox = %q; want %q", f.Value, FallbackND)
		}
	}
}

func TestComposeCardIdempotent(t *testing.T) {
	view := BuildView(fullRecord())
	first := ComposeCard(view)
	second := ComposeCard(view)

	if !reflect.DeepEqual(first, second) {
		t.Error("composing twice from the same view must yield identical models")
	}
}

func TestComposeCardNoStripForSinglePhoto(t *testing.T) {
	card := ComposeCard(BuildView(&models.ListingRecord{
		MainImageURL: "https://img/only.jpg",
	}))

	if card.HeroImageURL != "https://img/only.jpg" {
		t.Errorf("HeroImageURL = %q", card.HeroImageURL)
	}
	if len(card.Thumbnails) != 0 {
		t.Errorf("single photo must not render a gallery strip, got %d thumbs", len(card.Thumbnails))
	}
}

func TestComposeCardThumbnailCap(t *testing.T) {
	urls := make([]string, 12)
	for i := range urls {
		urls[i] = "https://img/" + string(rune('a'+i)) + ".jpg"
	}
	card := ComposeCard(BuildView(&models.ListingRecord{ImageURLs: urls}))

	if len(card.Thumbnails) != 8 {
		t.Errorf("thumbnail count = %d; want 8", len(card.Thumbnails))
	}
}

func TestComposeCardOmitsEmptyHighlights(t *testing.T) {
	card := ComposeCard(BuildView(&models.ListingRecord{}))
	if card.Highlights != nil {
		t.Errorf("Highlights = %v; want nil so the section is omitted", card.Highlights)
	}
}

func TestGallerySelection(t *testing.T) {
	g := NewGallery(BuildView(fullRecord()))

	if g.Selected() != "https://img/hero.jpg" {
		t.Fatalf("initial selection = %q; want the hero", g.Selected())
	}

	if !g.Select("https://img/2.jpg") {
		t.Fatal("selecting a gallery image must succeed")
	}
	if !g.IsActive("https://img/2.jpg") || g.IsActive("https://img/hero.jpg") {
		t.Error("exactly the selected thumbnail must be active")
	}

	if g.Select("https://img/unknown.jpg") {
		t.Error("selecting a URL outside the gallery must be ignored")
	}
	if g.Selected() != "https://img/2.jpg" {
		t.Errorf("selection changed to %q after an ignored Select", g.Selected())
	}

	if g.Select("https://img/2.jpg") {
		t.Error("re-selecting the active image must report no change")
	}
}

func TestGalleryEmptyView(t *testing.T) {
	g := NewGallery(BuildView(nil))
	if g.Selected() != "" {
		t.Errorf("empty gallery selected = %q; want empty", g.Selected())
	}
	if g.Select("https://img/x.jpg") {
		t.Error("empty gallery must ignore selections")
	}
}
