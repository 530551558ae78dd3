package services

import (
	"math"
	"strconv"
	"strings"

	"ficha-generator/models"
)

// ParseAreaPriceNumber parses a backend numeric field written in Chilean
// notation: "." as thousands separator, "," as decimal separator.
// The bool is false for sentinel/empty input and for anything that does not
// end up a finite number.
func ParseAreaPriceNumber(raw string) (float64, bool) {
	if Normalize(raw, "") == "" {
		return 0, false
	}
	cleaned := strings.ReplaceAll(raw, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

// DeriveIndicators computes the UF/m² ratios. Each ratio is present only when
// the price and the respective area both parse and the area is positive.
func DeriveIndicators(priceUF, usableArea, totalArea string) models.Indicators {
	var ind models.Indicators

	price, ok := ParseAreaPriceNumber(priceUF)
	if !ok {
		return ind
	}

	if area, ok := ParseAreaPriceNumber(usableArea); ok && area > 0 {
		v := int(math.Round(price / area))
		ind.UFPerUsableM2 = &v
	}
	if area, ok := ParseAreaPriceNumber(totalArea); ok && area > 0 {
		v := int(math.Round(price / area))
		ind.UFPerTotalM2 = &v
	}
	return ind
}
