package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildFollowUpQuestions_PicksFirstThreeInPriorityOrder(t *testing.T) {
	uncertainties := []Uncertainty{UncertaintyConnector, UncertaintyVideo, UncertaintyData, UncertaintyPower}
	qs := BuildFollowUpQuestions(uncertainties)
	assert.Len(t, qs, 3)
	assert.Equal(t, UncertaintyPower, qs[0].Category)
	assert.Equal(t, UncertaintyData, qs[1].Category)
	assert.Equal(t, UncertaintyVideo, qs[2].Category)
}

func TestBuildFollowUpQuestions_FewerThanThreeUncertainties(t *testing.T) {
	qs := BuildFollowUpQuestions([]Uncertainty{UncertaintyVideo})
	assert.Len(t, qs, 1)
	assert.Equal(t, UncertaintyVideo, qs[0].Category)
}

func TestBuildFollowUpQuestions_NoUncertaintiesYieldsNoQuestions(t *testing.T) {
	qs := BuildFollowUpQuestions(nil)
	assert.Empty(t, qs)
}
