package variant

import (
	"regexp"
	"strings"
)

// lengthTokenRe matches an embedded cable-length token such as "6ft", "2m", "100cm".
var lengthTokenRe = regexp.MustCompile(`(?i)\d+\s*(ft|feet|m|meter|meters|cm|in)\b`)

func hasLengthToken(s string) bool {
	return lengthTokenRe.MatchString(s)
}

// mergeImageURLs returns the set-union of existing and parsed, preserving the
// order existing URLs were first seen in and appending new ones from parsed.
func mergeImageURLs(existing, parsed []string) []string {
	seen := make(map[string]bool, len(existing)+len(parsed))
	out := make([]string, 0, len(existing)+len(parsed))
	for _, u := range existing {
		if !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}
	for _, u := range parsed {
		if !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}
	return out
}

// mergeModel prefers the title without an embedded length token; if both have
// or both lack one, the longer string wins.
func mergeModel(existing, parsed string) string {
	existingHasLen := hasLengthToken(existing)
	parsedHasLen := hasLengthToken(parsed)

	if existingHasLen && !parsedHasLen {
		return parsed
	}
	if parsedHasLen && !existingHasLen {
		return existing
	}
	if len(parsed) > len(existing) {
		return parsed
	}
	return existing
}

// mergeSKU keeps the existing SKU unless it is absent.
func mergeSKU(existing, parsed string) string {
	if strings.TrimSpace(existing) != "" {
		return existing
	}
	return parsed
}

// mergeVariantLabel prefers the non-placeholder label, where a placeholder is
// defined as equal to the variant's current SKU. If both are placeholders or
// both are descriptive, the longer string wins.
func mergeVariantLabel(existing, parsed, sku string) string {
	existingIsPlaceholder := existing == sku
	parsedIsPlaceholder := parsed == sku

	if existingIsPlaceholder && !parsedIsPlaceholder {
		return parsed
	}
	if parsedIsPlaceholder && !existingIsPlaceholder {
		return existing
	}
	if len(parsed) > len(existing) {
		return parsed
	}
	return existing
}
