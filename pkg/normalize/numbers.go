package normalize

import (
	"regexp"
	"strconv"
)

var numberTokenRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ParsePositiveNumber returns the maximum non-negative numeric token found in s.
// Returns (0, false) if s contains no numeric tokens.
func ParsePositiveNumber(s string) (float64, bool) {
	matches := numberTokenRe.FindAllString(s, -1)
	if len(matches) == 0 {
		return 0, false
	}

	var max float64
	found := false
	for _, m := range matches {
		v, err := strconv.ParseFloat(m, 64)
		if err != nil {
			continue
		}
		if !found || v > max {
			max = v
			found = true
		}
	}
	return max, found
}
