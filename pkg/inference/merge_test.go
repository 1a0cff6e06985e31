package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge_DeterministicPatchWinsOverLLM(t *testing.T) {
	detWatts := 100.0
	llmWatts := 60.0
	det := DeterministicResult{Patch: Draft{MaxWatts: &detWatts}, Confidence: 0.5}
	llm := &LLMResult{Patch: Draft{MaxWatts: &llmWatts, Brand: "Anker"}, Confidence: 0.9}

	merged := Merge(det, llm)
	assert.Equal(t, 100.0, *merged.Draft.MaxWatts)
	assert.Equal(t, "Anker", merged.Draft.Brand)
}

func TestMerge_ConfidenceBlendsDeterministicAndLLM(t *testing.T) {
	det := DeterministicResult{Patch: Draft{}, Confidence: 0.4}
	llm := &LLMResult{Patch: Draft{}, Confidence: 0.8}

	merged := Merge(det, llm)
	assert.InDelta(t, 0.4*0.35+0.8*0.65, merged.Confidence, 0.0001)
}

func TestMerge_NoLLMUsesDeterministicConfidenceAlone(t *testing.T) {
	det := DeterministicResult{Patch: Draft{}, Confidence: 0.42}
	merged := Merge(det, nil)
	assert.InDelta(t, 0.42, merged.Confidence, 0.0001)
}

func TestMerge_UncertaintiesIncludeDerivedFromDraft(t *testing.T) {
	det := DeterministicResult{Patch: Draft{}, Confidence: 0.3}
	merged := Merge(det, nil)
	assert.Contains(t, merged.Uncertainties, UncertaintyPower)
	assert.Contains(t, merged.Uncertainties, UncertaintyData)
	assert.Contains(t, merged.Uncertainties, UncertaintyVideo)
	assert.Contains(t, merged.Uncertainties, UncertaintyConnector)
}

func TestBand_Thresholds(t *testing.T) {
	assert.Equal(t, BandLow, Band(0.1))
	assert.Equal(t, BandLow, Band(0.54))
	assert.Equal(t, BandMedium, Band(0.55))
	assert.Equal(t, BandMedium, Band(0.77))
	assert.Equal(t, BandHigh, Band(0.78))
	assert.Equal(t, BandHigh, Band(1.0))
}
