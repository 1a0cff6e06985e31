package extract

import (
	"regexp"
	"strings"

	"github.com/cableintel/catalog/pkg/normalize"
)

// toFromRe matches "X to Y" connector-pair phrasing in a product title.
var toFromRe = regexp.MustCompile(`(?i)\b([\w-]+(?:\s+[\w-]+)?)\s+to\s+([\w-]+(?:\s+[\w-]+)?)\b`)

// lengthHintRe matches a cable-length token used as a last-resort variant label.
var lengthHintRe = regexp.MustCompile(`(?i)\d+\s*(ft|m|cm|in)\b`)

// thunderboltRe detects a Thunderbolt mention in a title, used as the
// "X to Y" fallback default of USB-C to USB-C.
var thunderboltRe = regexp.MustCompile(`(?i)thunderbolt|\btb[3-5]\b`)

// negativeVideoRe / positiveVideoRe implement the "negative wins" rule.
var negativeVideoRe = regexp.MustCompile(`(?i)(not\s+support|does\s+not\s+support)\s+(screen\s+mirroring|video|display)`)
var positiveVideoHintRe = regexp.MustCompile(`(?i)\b(4k|8k|displayport|alt\s*mode|monitor|\d{3,4}p)\b`)

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = regexp.MustCompile(`[^a-z0-9]+`).ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ResolveBrand prefers vendor; falls back to templateName when vendor is
// empty, and normalizes a vendor that merely slug-prefixes the template name
// (e.g. "beta-anker") to the canonical brand.
func ResolveBrand(vendor, templateName string) string {
	vendor = strings.TrimSpace(vendor)
	if vendor == "" {
		return templateName
	}
	vs, ts := slug(vendor), slug(templateName)
	if vs == ts || strings.HasPrefix(vs, ts+"-") || strings.HasPrefix(vs, ts) || strings.HasSuffix(vs, "-"+ts) {
		return templateName
	}
	return vendor
}

// ResolveModel ensures the product title carries the brand as a prefix.
func ResolveModel(title, brand string) string {
	title = strings.TrimSpace(title)
	if brand == "" || strings.HasPrefix(strings.ToLower(title), strings.ToLower(brand)) {
		return title
	}
	return brand + " " + title
}

// ConnectorPairResult carries a resolved connector pair plus the evidence
// snippet both ends were read from.
type ConnectorPairResult struct {
	From, To normalize.Connector
	Snippet  string
}

// ResolveConnectorPair runs a fallback chain: "X to Y" regex on
// title, then context text, then a Thunderbolt title default, then deduped
// connector tokens found anywhere in the full text.
func ResolveConnectorPair(title, fullText string) ConnectorPairResult {
	// A two-word capture may carry a non-connector word ("Lightning Braided");
	// retry with the single word next to "to" before giving up on the phrase.
	pair := func(m []string) (normalize.Connector, normalize.Connector) {
		from, to := normalize.NormalizeConnector(m[1]), normalize.NormalizeConnector(m[2])
		if f := strings.Fields(m[1]); from == normalize.ConnectorUnknown {
			from = normalize.NormalizeConnector(f[len(f)-1])
		}
		if f := strings.Fields(m[2]); to == normalize.ConnectorUnknown {
			to = normalize.NormalizeConnector(f[0])
		}
		return from, to
	}
	if m := toFromRe.FindStringSubmatch(title); m != nil {
		from, to := pair(m)
		if from != normalize.ConnectorUnknown && to != normalize.ConnectorUnknown {
			return ConnectorPairResult{From: from, To: to, Snippet: m[0]}
		}
	}
	if m := toFromRe.FindStringSubmatch(fullText); m != nil {
		from, to := pair(m)
		if from != normalize.ConnectorUnknown && to != normalize.ConnectorUnknown {
			return ConnectorPairResult{From: from, To: to, Snippet: m[0]}
		}
	}
	if thunderboltRe.MatchString(title) {
		return ConnectorPairResult{From: normalize.ConnectorUSBC, To: normalize.ConnectorUSBC, Snippet: title}
	}

	found := dedupeConnectorTokens(fullText)
	switch len(found) {
	case 0:
		return ConnectorPairResult{From: normalize.ConnectorUnknown, To: normalize.ConnectorUnknown}
	case 1:
		return ConnectorPairResult{From: found[0], To: found[0], Snippet: fullText}
	default:
		return ConnectorPairResult{From: found[0], To: found[1], Snippet: fullText}
	}
}

func dedupeConnectorTokens(text string) []normalize.Connector {
	aliases := []string{"usb-c", "usb c", "type-c", "lightning", "lightening", "usb-a", "type-a", "micro-usb", "micro usb"}
	seen := map[normalize.Connector]bool{}
	var out []normalize.Connector
	lower := strings.ToLower(text)
	for _, a := range aliases {
		if strings.Contains(lower, a) {
			c := normalize.NormalizeConnector(a)
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}

// ResolvePower returns the maximum non-negative wattage (<=500W) across texts,
// plus whether PD/EPR are explicitly claimed, and the snippet the winning
// number came from.
func ResolvePower(texts []string, variantLabelWatts *float64) (maxWatts *float64, pd, epr *bool, snippet string) {
	var best float64
	found := false
	for _, t := range texts {
		if v, ok := normalize.ParsePositiveNumber(wattsOnly(t)); ok && v <= 500 {
			if !found || v > best {
				best, found, snippet = v, true, t
			}
		}
		lower := strings.ToLower(t)
		if strings.Contains(lower, "power delivery") || regexp.MustCompile(`(?i)\bpd\b`).MatchString(t) {
			b := true
			pd = &b
		}
		if strings.Contains(lower, "epr") || strings.Contains(lower, "extended power range") {
			b := true
			epr = &b
		}
	}
	// Per-variant wattage overrides the product-level default for this spec.
	if variantLabelWatts != nil {
		best, found = *variantLabelWatts, true
	}
	if !found {
		return nil, pd, epr, ""
	}
	return &best, pd, epr, snippet
}

var wattsTokenRe = regexp.MustCompile(`(?i)\d+(\.\d+)?\s*(w\b|watts?)`)

// wattsOnly strips text down to just the watt-bearing tokens so
// ParsePositiveNumber does not pick up unrelated numbers (prices, SKUs).
func wattsOnly(t string) string {
	matches := wattsTokenRe.FindAllString(t, -1)
	return strings.Join(matches, ", ")
}

// ResolveData returns the max Gbps (explicit tokens, else inferred from
// generation hints) and the usbGeneration string, clamped per connector pair.
func ResolveData(texts []string, from, to normalize.Connector) (usbGeneration *string, maxGbps *float64, snippet string) {
	var bestGbps float64
	var bestGen string
	haveGbps := false
	for _, t := range texts {
		if gbps, ok := normalize.InferMaxGbpsFromGeneration(t); ok {
			if !haveGbps || gbps > bestGbps {
				bestGbps, haveGbps = gbps, true
				bestGen, snippet = t, t
			}
		}
	}

	clamped, clampedHave, genOverride := normalize.ClampDataCapabilityByConnector(from, to, bestGbps, haveGbps, bestGen)
	if genOverride != "" {
		bestGen = genOverride
	}
	if !clampedHave {
		if bestGen == "" {
			return nil, nil, ""
		}
		return &bestGen, nil, snippet
	}
	if bestGen == "" {
		bestGen = "Unknown"
	}
	return &bestGen, &clamped, snippet
}

// ResolveVideo implements the negative-wins rule and resolution/refresh parse.
func ResolveVideo(texts []string) (explicit *bool, resolution *string, refreshHz *int, snippet string) {
	for _, t := range texts {
		if negativeVideoRe.MatchString(t) {
			b := false
			return &b, nil, nil, negativeVideoRe.FindString(t)
		}
	}

	var resRank int
	var resLabel string
	var foundRes bool
	var refresh int
	var foundRefresh bool
	var winningSnippet string

	for _, t := range texts {
		if rank, label, ok := normalize.ResolutionRank(t); ok {
			if !foundRes || rank > resRank {
				resRank, resLabel, foundRes = rank, label, true
				winningSnippet = t
			}
		}
		if m := regexp.MustCompile(`(?i)(\d{2,3})\s*hz`).FindStringSubmatch(t); m != nil {
			var hz int
			fscanInt(m[1], &hz)
			if !foundRefresh || hz > refresh {
				refresh, foundRefresh = hz, true
				if winningSnippet == "" {
					winningSnippet = t
				}
			}
		}
		if positiveVideoHintRe.MatchString(t) && winningSnippet == "" {
			winningSnippet = positiveVideoHintRe.FindString(t)
		}
	}

	if foundRes {
		resolution = &resLabel
	}
	if foundRefresh {
		refreshHz = &refresh
	}
	if foundRes || foundRefresh {
		b := true
		explicit = &b
	}
	return explicit, resolution, refreshHz, winningSnippet
}

func fscanInt(s string, out *int) {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return
		}
		n = n*10 + int(r-'0')
	}
	*out = n
}

// ResolveVariantLabel runs the variant-label fallback chain.
func ResolveVariantLabel(variantName, model, sku string, optionValues []string) string {
	if variantName != "" && !strings.EqualFold(variantName, "Default Title") {
		return variantName
	}
	if len(optionValues) > 0 {
		nonEmpty := make([]string, 0, len(optionValues))
		for _, v := range optionValues {
			if strings.TrimSpace(v) != "" && !strings.EqualFold(v, "Default Title") {
				nonEmpty = append(nonEmpty, v)
			}
		}
		if len(nonEmpty) > 0 {
			return strings.Join(nonEmpty, " / ")
		}
	}
	if m := regexp.MustCompile(`\(([^)]+)\)`).FindStringSubmatch(model); m != nil {
		return m[1]
	}
	if m := lengthHintRe.FindString(model); m != "" {
		return m
	}
	return sku
}

// MergeImages deduplicates the variant image (if any) followed by the
// product image list, normalizing protocol-relative URLs to https.
func MergeImages(variantImage string, productImages []string) []string {
	seen := map[string]bool{}
	var out []string
	add := func(u string) {
		u = normalizeImageURL(u)
		if u == "" || seen[u] {
			return
		}
		seen[u] = true
		out = append(out, u)
	}
	add(variantImage)
	for _, u := range productImages {
		add(u)
	}
	return out
}

func normalizeImageURL(u string) string {
	u = strings.TrimSpace(u)
	if strings.HasPrefix(u, "//") {
		return "https:" + u
	}
	return u
}
