package inference

import "dario.cat/mergo"

// MergeResult is the outcome of combining the deterministic and (optional)
// LLM passes into one draft, confidence, and uncertainty set.
type MergeResult struct {
	Draft         Draft
	Uncertainties []Uncertainty
	Confidence    float64
	Band          ConfidenceBand
	Notes         []string
}

// Merge combines the deterministic result with an optional LLM result: the
// deterministic patch wins field by field, the LLM patch fills whatever
// remains unset, uncertainties are the union plus anything still unset on
// the merged draft, and confidence blends 0.35/0.65 when an LLM result is
// present, else falls back to the deterministic confidence alone.
func Merge(det DeterministicResult, llm *LLMResult) MergeResult {
	draft := Draft{}
	draft = applyPatch(draft, det.Patch)

	notes := append([]string{}, det.Notes...)

	var uncertainties []Uncertainty
	var confidence float64

	if llm != nil {
		draft = applyPatchFillOnly(draft, llm.Patch)
		uncertainties = unionUncertainties(det.Uncertainties, llm.Uncertainties)
		confidence = det.Confidence*0.35 + llm.Confidence*0.65
		if llm.Notes != "" {
			notes = append(notes, llm.Notes)
		}
	} else {
		uncertainties = append([]Uncertainty{}, det.Uncertainties...)
		confidence = det.Confidence
	}

	uncertainties = unionUncertainties(uncertainties, deriveUncertaintiesFromPatch(draft))

	if confidence < 0 {
		confidence = 0
	}
	if confidence > 0.99 {
		confidence = 0.99
	}

	return MergeResult{
		Draft:         draft,
		Uncertainties: uncertainties,
		Confidence:    confidence,
		Band:          Band(confidence),
		Notes:         notes,
	}
}

// applyPatchFillOnly merges patch into d only for fields d does not already have set.
func applyPatchFillOnly(d, patch Draft) Draft {
	_ = mergo.Merge(&d, patch)
	return d
}

func unionUncertainties(a, b []Uncertainty) []Uncertainty {
	seen := make(map[Uncertainty]bool, len(a)+len(b))
	var out []Uncertainty
	for _, u := range a {
		if !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}
	for _, u := range b {
		if !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}
	return out
}
