package export

import (
	"regexp"
	"strings"

	"ficha-generator/services"
)

// DefaultFilename is used when the title slugs down to nothing.
const DefaultFilename = "ficha-propiedad"

var (
	slugDropRegexp       = regexp.MustCompile(`[^a-zA-Z0-9\- ]`)
	slugWhitespaceRegexp = regexp.MustCompile(`\s+`)
)

// Filename derives the output file name (without extension) from a listing
// title: keep letters/digits/spaces/hyphens, collapse whitespace to hyphens,
// lowercase.
func Filename(title string) string {
	// The display fallback is not a real title; it names the file the same
	// way a missing title does.
	if title == services.FallbackTitle {
		title = ""
	}
	s := services.Normalize(title, DefaultFilename)
	s = slugDropRegexp.ReplaceAllString(s, "")
	s = slugWhitespaceRegexp.ReplaceAllString(strings.TrimSpace(s), "-")
	s = strings.ToLower(s)
	if s == "" {
		return DefaultFilename
	}
	return s
}
