package services

import "ficha-generator/models"

// Gallery is the selection state of the card's thumbnail strip: the image
// set is fixed at construction and exactly one entry is active at any time.
// The rendering layer subscribes to the selected URL instead of wiring
// handlers into markup.
type Gallery struct {
	images   []string
	selected string
}

// NewGallery builds the selection state for a view, initially selecting the
// hero image. With zero or one photo the gallery still works; Select simply
// has nothing new to pick.
func NewGallery(view *models.NormalizedView) *Gallery {
	g := &Gallery{
		images:   append([]string(nil), view.GalleryImages...),
		selected: view.HeroImageURL,
	}
	if g.selected == "" && len(g.images) > 0 {
		g.selected = g.images[0]
	}
	return g
}

// Select makes url the active image. It reports whether the selection
// changed; URLs outside the gallery are ignored.
func (g *Gallery) Select(url string) bool {
	if url == "" || url == g.selected {
		return false
	}
	for _, u := range g.images {
		if u == url {
			g.selected = url
			return true
		}
	}
	return false
}

// Selected returns the URL of the active image, or "" for an empty gallery.
func (g *Gallery) Selected() string { return g.selected }

// IsActive reports whether url is the active thumbnail.
func (g *Gallery) IsActive(url string) bool { return url != "" && url == g.selected }

// Images returns the gallery's image URLs in display order.
func (g *Gallery) Images() []string { return append([]string(nil), g.images...) }
