package rank

// Score computes the spec-completeness score used to pick the best spec per
// variant and to order the final list.
func Score(c Candidate) int {
	score := 0
	if c.MaxWatts != nil && *c.MaxWatts > 0 {
		score += 5
	}
	if c.PDSupported != nil && *c.PDSupported {
		score += 2
	}
	if c.EPRSupported != nil && *c.EPRSupported {
		score += 1
	}
	if c.MaxGbps != nil && *c.MaxGbps > 0 {
		score += 4
	}
	if c.USBGeneration != nil && *c.USBGeneration != "" {
		score += 3
	}
	if c.VideoExplicit != nil && *c.VideoExplicit {
		score += 2
	}
	if c.MaxResolution != nil && *c.MaxResolution != "" {
		score += 1
	}
	if c.MaxRefreshHz != nil && *c.MaxRefreshHz > 0 {
		score += 1
	}
	if c.HasEvidence {
		score += 1
	}
	return score
}
