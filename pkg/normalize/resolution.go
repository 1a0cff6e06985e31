package normalize

import (
	"regexp"
	"strconv"
)

// resolutionOrdinals maps canonical resolution tokens to their ordinal rank (1..6).
var resolutionOrdinals = []struct {
	re   *regexp.Regexp
	rank int
	name string
}{
	{regexp.MustCompile(`(?i)8k`), 6, "8K"},
	{regexp.MustCompile(`(?i)5k`), 5, "5K"},
	{regexp.MustCompile(`(?i)4k|2160p`), 4, "4K"},
	{regexp.MustCompile(`(?i)1440p|2k\b`), 3, "1440p"},
	{regexp.MustCompile(`(?i)1080p|fhd|full\s*hd`), 2, "1080p"},
	{regexp.MustCompile(`(?i)720p`), 1, "720p"},
}

var genericPRe = regexp.MustCompile(`(?i)(\d{3,4})p\b`)

// ResolutionRank returns the ordinal rank (1..6) of the highest resolution mentioned
// in s, and the canonical name for it. Returns (0, "", false) if none found.
func ResolutionRank(s string) (int, string, bool) {
	bestRank := 0
	bestName := ""
	for _, ord := range resolutionOrdinals {
		if ord.re.MatchString(s) && ord.rank > bestRank {
			bestRank = ord.rank
			bestName = ord.name
		}
	}
	if bestRank > 0 {
		return bestRank, bestName, true
	}

	// Fall back to bucketed <number>p thresholds.
	for _, m := range genericPRe.FindAllStringSubmatch(s, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		rank, name := bucketPResolution(n)
		if rank > bestRank {
			bestRank = rank
			bestName = name
		}
	}
	if bestRank > 0 {
		return bestRank, bestName, true
	}
	return 0, "", false
}

func bucketPResolution(n int) (int, string) {
	switch {
	case n >= 4320:
		return 6, "8K"
	case n >= 2160:
		return 4, "4K"
	case n >= 1440:
		return 3, "1440p"
	case n >= 1080:
		return 2, "1080p"
	case n >= 720:
		return 1, "720p"
	default:
		return 0, ""
	}
}
