package rank

import (
	"regexp"
	"strings"
)

var lengthTokenRe = regexp.MustCompile(`(?i)\d+\s*(ft|feet|m|meter|meters|cm|in)\b`)

func hasLengthToken(s string) bool {
	return lengthTokenRe.MatchString(s)
}

// PickBestSpecPerVariant keeps, for each distinct variant, the row with the
// higher score, breaking ties by the newer spec.
func PickBestSpecPerVariant(rows []TopCableRow) []TopCableRow {
	best := map[string]TopCableRow{}
	for _, r := range rows {
		cur, ok := best[r.VariantID]
		if !ok || betterSpec(r, cur) {
			best[r.VariantID] = r
		}
	}
	out := make([]TopCableRow, 0, len(best))
	for _, r := range best {
		out = append(out, r)
	}
	return out
}

func betterSpec(a, b TopCableRow) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.SpecCreatedAt.After(b.SpecCreatedAt)
}

// legacyGroupKey groups rows sharing a productUrl, falling back to
// (brand, connectorFrom, connectorTo) when productUrl is absent.
func legacyGroupKey(r TopCableRow) string {
	if r.ProductURL != "" {
		return "url:" + r.ProductURL
	}
	return "bcc:" + strings.ToLower(r.Brand) + "|" + r.ConnectorFrom + "|" + r.ConnectorTo
}

func isDescriptiveModel(model string) bool {
	lower := strings.ToLower(model)
	return strings.ContainsAny(model, " \t") || strings.Contains(lower, "usb") || strings.Contains(lower, "cable")
}

// PruneLegacyRows groups rows by legacyGroupKey and, within each group, drops
// rows that lack variant-specific signals when sibling rows have them, and
// drops non-descriptive model strings when a descriptive sibling exists.
func PruneLegacyRows(rows []TopCableRow) []TopCableRow {
	groups := map[string][]TopCableRow{}
	var order []string
	for _, r := range rows {
		key := legacyGroupKey(r)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], r)
	}

	var out []TopCableRow
	for _, key := range order {
		group := groups[key]

		hasSpecificSignal := false
		for _, r := range group {
			if r.SKU != "" || r.Variant != "" {
				hasSpecificSignal = true
				break
			}
		}

		var descriptiveModel string
		for _, r := range group {
			if isDescriptiveModel(r.Model) {
				descriptiveModel = r.Model
				break
			}
		}

		for _, r := range group {
			if hasSpecificSignal && r.SKU == "" && r.Variant == "" {
				continue
			}
			if descriptiveModel != "" && !isDescriptiveModel(r.Model) && r.Model != descriptiveModel {
				continue
			}
			out = append(out, r)
		}
	}
	return out
}

// skuGroupKey groups rows by (brand, sku) when sku is present; rows without
// a sku are never grouped (each is its own group) and pass through untouched.
func skuGroupKey(r TopCableRow) (string, bool) {
	if r.SKU == "" {
		return "", false
	}
	return strings.ToLower(r.Brand) + "|" + r.SKU, true
}

// DedupeBySKU keeps one row per (brand, sku): the highest score, ties broken
// by a length-neutral model, then newer evidence fetch, then longer model.
func DedupeBySKU(rows []TopCableRow) []TopCableRow {
	groups := map[string][]TopCableRow{}
	var order []string
	var passthrough []TopCableRow

	for _, r := range rows {
		key, grouped := skuGroupKey(r)
		if !grouped {
			passthrough = append(passthrough, r)
			continue
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], r)
	}

	out := append([]TopCableRow{}, passthrough...)
	for _, key := range order {
		out = append(out, bestOfSKUGroup(groups[key]))
	}
	return out
}

func bestOfSKUGroup(group []TopCableRow) TopCableRow {
	best := group[0]
	for _, r := range group[1:] {
		if skuGroupWinner(r, best) {
			best = r
		}
	}
	return best
}

func skuGroupWinner(r, best TopCableRow) bool {
	if r.Score != best.Score {
		return r.Score > best.Score
	}
	rLenNeutral, bestLenNeutral := !hasLengthToken(r.Model), !hasLengthToken(best.Model)
	if rLenNeutral != bestLenNeutral {
		return rLenNeutral
	}
	if !r.EvidenceFetchedAt.Equal(best.EvidenceFetchedAt) {
		return r.EvidenceFetchedAt.After(best.EvidenceFetchedAt)
	}
	return len(r.Model) > len(best.Model)
}

// FilterReady keeps only rows whose quality state is "ready", the gate
// applied before the final public list is returned.
func FilterReady(rows []TopCableRow) []TopCableRow {
	out := make([]TopCableRow, 0, len(rows))
	for _, r := range rows {
		if r.QualityState == "ready" {
			out = append(out, r)
		}
	}
	return out
}
