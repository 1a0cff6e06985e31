package inference

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cableintel/catalog/pkg/normalize"
)

// DeterministicResult is the outcome of running the deterministic parser over
// a prompt: a draft patch, the uncertainties it could not resolve, its
// human-readable notes, and its seed confidence.
type DeterministicResult struct {
	Patch         Draft
	Uncertainties []Uncertainty
	Notes         []string
	Confidence    float64
}

var (
	arrowRe       = regexp.MustCompile(`->|\x{2192}|\x{2194}`)
	wattsRe       = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:w\b|watts?\b)`)
	explicitGbps  = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*gbps`)
	refreshHzRe   = regexp.MustCompile(`(?i)(\d+)\s*hz\b`)
	dataOnlyRe    = regexp.MustCompile(`(?i)data[-\s]?only|sync[-\s]?only|no\s+charg`)
	chargeTokenRe = regexp.MustCompile(`(?i)charg(e|ing)`)
	negativeVideo = regexp.MustCompile(`(?i)no\s+video|charge\s+only|charging\s+only`)
	positiveVideo = regexp.MustCompile(`(?i)4k|8k|displayport|dp\s*alt|alt\s*mode|monitor|\bvideo\b`)

	connectorTokenRe = regexp.MustCompile(`(?i)usb[-\s]?c|usb[-\s]?a|type[-\s]?[ac]|lightning|lightening|micro[-\s]?(?:usb|b)`)
)

// collapse lower-cases and collapses whitespace, the shape every deterministic rule operates on.
func collapse(prompt string) string {
	return strings.Join(strings.Fields(strings.ToLower(prompt)), " ")
}

// ParseDeterministic runs every deterministic rule over the prompt text and
// returns the resulting patch, uncertainties, notes, and seed confidence.
func ParseDeterministic(prompt string) DeterministicResult {
	text := collapse(prompt)

	var notes []string
	var patch Draft
	resolvedCategories := 0
	singleConnectorMention := false

	from, to, connectorResolved, singleMention := parseConnectorPair(text)
	if connectorResolved {
		patch.ConnectorFrom = string(from)
		patch.ConnectorTo = string(to)
		resolvedCategories++
		notes = append(notes, fmt.Sprintf("detected connector pair %s to %s", from, to))
	}
	singleConnectorMention = singleMention

	isLightning := strings.Contains(text, "lightning") || strings.Contains(text, "lightening")
	if isLightning {
		patch.USBGeneration = "USB 2.0"
		patch.Gbps = "0.48"
		patch.VideoSupport = "no"
		notes = append(notes, "lightning cables are fixed to USB 2.0 / 0.48 Gbps / no video")
	}

	if watts, ok := parseMaxWatts(text); ok {
		patch.MaxWatts = &watts
		patch.DataOnly = false
		resolvedCategories++
		notes = append(notes, fmt.Sprintf("detected max wattage %.0fW", watts))
	}

	if dataOnlyRe.MatchString(text) {
		patch.DataOnly = true
		notes = append(notes, "detected data-only / sync-only phrasing")
	} else if chargeTokenRe.MatchString(text) {
		patch.DataOnly = false
	}

	if !isLightning {
		if gen, gbps, ok := parseGenerationHint(text); ok {
			patch.USBGeneration = gen
			resolvedCategories++
			notes = append(notes, fmt.Sprintf("detected %s generation hint", gen))
			if explicit, hasExplicit := parseExplicitGbps(text); hasExplicit {
				patch.Gbps = explicit
			} else {
				patch.Gbps = gbps
			}
		} else if explicit, hasExplicit := parseExplicitGbps(text); hasExplicit {
			patch.Gbps = explicit
			resolvedCategories++
			notes = append(notes, "detected explicit Gbps token")
		}
	}

	if !isLightning {
		videoSupport, resolution, refreshHz, videoNote := parseVideo(text)
		if videoSupport != "" {
			patch.VideoSupport = videoSupport
			resolvedCategories++
		}
		if resolution != "" {
			patch.MaxResolution = resolution
		}
		if refreshHz != "" {
			patch.MaxRefreshHz = refreshHz
		}
		if videoNote != "" {
			notes = append(notes, videoNote)
		}
	}

	confidence := 0.23 + 0.17*float64(resolvedCategories)
	if singleConnectorMention {
		confidence -= 0.06
	}
	if len(notes) > 0 {
		confidence += 0.06
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 0.99 {
		confidence = 0.99
	}

	return DeterministicResult{
		Patch:         patch,
		Uncertainties: deriveUncertaintiesFromPatch(patch),
		Notes:         notes,
		Confidence:    confidence,
	}
}

// parseConnectorPair detects "X to Y", arrows, or "/" separated connector
// mentions. A single connector mention never fills both ends.
func parseConnectorPair(text string) (from, to normalize.Connector, resolved, singleMention bool) {
	mentions := connectorTokenRe.FindAllString(text, -1)
	if len(mentions) == 0 {
		return "", "", false, false
	}
	if len(mentions) == 1 {
		return "", "", false, true
	}

	if idx := strings.Index(text, " to "); idx >= 0 {
		left, right := text[:idx], text[idx+4:]
		if f := connectorTokenRe.FindString(left); f != "" {
			if t := connectorTokenRe.FindString(right); t != "" {
				return normalize.NormalizeConnector(f), normalize.NormalizeConnector(t), true, false
			}
		}
	}

	if arrowRe.MatchString(text) {
		parts := arrowRe.Split(text, 2)
		if len(parts) == 2 {
			if f := connectorTokenRe.FindString(parts[0]); f != "" {
				if t := connectorTokenRe.FindString(parts[1]); t != "" {
					return normalize.NormalizeConnector(f), normalize.NormalizeConnector(t), true, false
				}
			}
		}
	}

	if strings.Contains(text, "/") {
		parts := strings.SplitN(text, "/", 2)
		if f := connectorTokenRe.FindString(parts[0]); f != "" {
			if t := connectorTokenRe.FindString(parts[1]); t != "" {
				return normalize.NormalizeConnector(f), normalize.NormalizeConnector(t), true, false
			}
		}
	}

	f := normalize.NormalizeConnector(mentions[0])
	t := normalize.NormalizeConnector(mentions[1])
	return f, t, true, false
}

func parseMaxWatts(text string) (float64, bool) {
	matches := wattsRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return 0, false
	}
	max := 0.0
	found := false
	for _, m := range matches {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if v > max {
			max = v
			found = true
		}
	}
	return max, found
}

func parseExplicitGbps(text string) (string, bool) {
	m := explicitGbps.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// parseGenerationHint runs normalize.InferMaxGbpsFromGeneration and
// additionally reports the canonical generation label for the draft.
func parseGenerationHint(text string) (label string, gbps string, ok bool) {
	v, matched := normalize.InferMaxGbpsFromGeneration(text)
	if !matched {
		return "", "", false
	}
	label = generationLabel(v)
	return label, formatGbps(v), true
}

func generationLabel(v float64) string {
	switch v {
	case 80:
		return "USB4 v2 / Thunderbolt 5"
	case 40:
		return "USB4 / Thunderbolt 4"
	case 20:
		return "USB 3.2 Gen 2x2"
	case 10:
		return "USB 3.2 Gen 2"
	case 5:
		return "USB 3.0 / 3.2 Gen 1"
	case 0.48:
		return "USB 2.0"
	default:
		return ""
	}
}

func formatGbps(v float64) string {
	if v == float64(int(v)) {
		return strconv.Itoa(int(v))
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseVideo(text string) (support, resolution, refreshHz, note string) {
	if negativeVideo.MatchString(text) {
		return "no", "", "", "detected explicit no-video phrasing"
	}

	rank, name, hasResolution := normalize.ResolutionRank(text)
	_ = rank
	var hz string
	if m := refreshHzRe.FindStringSubmatch(text); m != nil {
		hz = m[1]
	}

	if positiveVideo.MatchString(text) {
		return "yes", name, hz, "detected positive video support phrasing"
	}
	if hasResolution || hz != "" {
		return "yes", name, hz, "resolution or refresh-rate mention upgraded video support to yes"
	}
	return "", name, hz, ""
}

// deriveUncertaintiesFromPatch reports categories the deterministic pass left unset.
func deriveUncertaintiesFromPatch(patch Draft) []Uncertainty {
	var out []Uncertainty
	if patch.ConnectorFrom == "" || patch.ConnectorTo == "" {
		out = append(out, UncertaintyConnector)
	}
	if patch.MaxWatts == nil {
		out = append(out, UncertaintyPower)
	}
	if patch.USBGeneration == "" && patch.Gbps == "" {
		out = append(out, UncertaintyData)
	}
	if patch.VideoSupport == "" {
		out = append(out, UncertaintyVideo)
	}
	return out
}
