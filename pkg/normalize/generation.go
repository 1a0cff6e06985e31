package normalize

import (
	"regexp"
	"strconv"
)

// generationHint pairs a regex matching a generation mention with its implied max Gbps.
type generationHint struct {
	re   *regexp.Regexp
	gbps float64
}

// generationHints is ordered highest-to-lowest so earlier entries take priority when
// multiple hints of equal specificity match, but InferMaxGbpsFromGeneration always
// keeps the maximum match regardless of order.
var generationHints = []generationHint{
	{regexp.MustCompile(`(?i)usb4\s*v2|thunderbolt\s*5|\btb\s*5\b`), 80},
	{regexp.MustCompile(`(?i)usb4|thunderbolt\s*4|\btb\s*4\b|thunderbolt\s*3|\btb\s*3\b`), 40},
	{regexp.MustCompile(`(?i)3\.2\s*gen\s*2x2|3\.2\s*gen\s*2×2|3\.2\s*gen2x2`), 20},
	{regexp.MustCompile(`(?i)3\.2\s*gen\s*2(?:\s|$|[^x×0-9])|3\.2\s*gen2(?:\s|$|[^x×0-9])`), 10},
	{regexp.MustCompile(`(?i)usb\s*3\.0|usb\s*3\.1\s*gen\s*1|usb\s*3\s*gen\s*1|\busb\s*3(?:$|[^.\d]|\.(?:$|[^2]))`), 5},
	{regexp.MustCompile(`(?i)usb\s*2(\.0)?\b`), 0.48},
}

var explicitGbpsRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*gbps`)

// InferMaxGbpsFromGeneration runs a two-pass generation inference:
// (a) match the generation hint table and keep the maximum implied value;
// (b) if an explicit "NN Gbps" token is present, return max(explicit, inferred).
// Returns (0, false) when nothing matches at all.
func InferMaxGbpsFromGeneration(s string) (float64, bool) {
	var inferred float64
	haveInferred := false
	for _, h := range generationHints {
		if h.re.MatchString(s) && h.gbps > inferred {
			inferred = h.gbps
			haveInferred = true
		}
	}

	var explicitMax float64
	haveExplicit := false
	for _, m := range explicitGbpsRe.FindAllStringSubmatch(s, -1) {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if !haveExplicit || v > explicitMax {
			explicitMax = v
			haveExplicit = true
		}
	}

	switch {
	case haveExplicit && haveInferred:
		if explicitMax > inferred {
			return explicitMax, true
		}
		return inferred, true
	case haveExplicit:
		return explicitMax, true
	case haveInferred:
		return inferred, true
	default:
		return 0, false
	}
}
