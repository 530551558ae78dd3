package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FallbackND is the uniform "value not available" marker. The backend emits
// it literally ("N/D" or the long form "No disponible"); both are treated the
// same as an absent field.
const FallbackND = "N/D"

const sentinelLong = "No disponible"

// itemCodeRegexp recovers the portal listing code from a source URL.
var itemCodeRegexp = regexp.MustCompile(`(?i)MLC-\d+`)

// clPrinter renders numbers with es-CL grouping ("15.000").
var clPrinter = message.NewPrinter(language.MustParse("es-CL"))

// Normalize returns fallback when raw is empty or carries one of the
// "not available" sentinels, and raw itself otherwise. No trimming or other
// coercion happens here: the backend already emits display text.
func Normalize(raw, fallback string) string {
	if raw == "" || raw == FallbackND || raw == sentinelLong {
		return fallback
	}
	return raw
}

// FormatPrice renders a raw UF amount with the "UF " prefix and es-CL
// thousands grouping. Sentinel or empty input yields "N/D"; input that does
// not parse as a number after stripping "." separators is passed through
// verbatim behind the prefix, so a weird backend value still shows up
// instead of disappearing.
func FormatPrice(raw string) string {
	if Normalize(raw, "") == "" {
		return FallbackND
	}
	cleaned := strings.ReplaceAll(raw, ".", "")
	num, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(num, 0) || math.IsNaN(num) {
		return "UF " + raw
	}
	return "UF " + FormatGroupedNumber(num)
}

// FormatGroupedNumber renders a finite number with es-CL locale grouping.
// Integral values print without decimals.
func FormatGroupedNumber(n float64) string {
	if n == math.Trunc(n) {
		return clPrinter.Sprintf("%d", int64(n))
	}
	return clPrinter.Sprintf("%.1f", n)
}

// ExtractItemCode pulls the MLC-<digits> listing code out of a source URL.
// Returns the first match as it appears, or "" when there is none.
func ExtractItemCode(sourceURL string) string {
	return itemCodeRegexp.FindString(sourceURL)
}
