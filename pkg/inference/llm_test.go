package inference

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cableintel/catalog/pkg/llmgateway"
)

func TestRunLLMPass_CoercesStringifiedNumbers(t *testing.T) {
	fake := &llmgateway.Fake{
		Responses: []json.RawMessage{json.RawMessage(`{
			"confidence": "0.8",
			"draftPatch": {"maxWatts": "100", "gbps": "40", "maxRefreshHz": "60"},
			"uncertainties": ["power-level"]
		}`)},
	}
	res, err := RunLLMPass(context.Background(), fake, "test-model", "usb-c cable")
	require.NoError(t, err)
	assert.InDelta(t, 0.8, res.Confidence, 0.0001)
	require.NotNil(t, res.Patch.MaxWatts)
	assert.Equal(t, 100.0, *res.Patch.MaxWatts)
	assert.Equal(t, "40", res.Patch.Gbps)
	assert.Equal(t, "60", res.Patch.MaxRefreshHz)
}

func TestRunLLMPass_CoercesUnknownUncertaintyCategories(t *testing.T) {
	fake := &llmgateway.Fake{
		Responses: []json.RawMessage{json.RawMessage(`{
			"confidence": 0.5,
			"draftPatch": {},
			"uncertainties": ["watt-level", "video-support", "nonsense-category"]
		}`)},
	}
	res, err := RunLLMPass(context.Background(), fake, "test-model", "cable")
	require.NoError(t, err)
	assert.Contains(t, res.Uncertainties, UncertaintyPower)
	assert.Contains(t, res.Uncertainties, UncertaintyVideo)
	assert.Len(t, res.Uncertainties, 2)
}

func TestRunLLMPass_RetriesOnceOnFirstFailure(t *testing.T) {
	fake := &llmgateway.Fake{
		Errs:      []error{assertErr{}},
		Responses: []json.RawMessage{nil, json.RawMessage(`{"confidence":0.6,"draftPatch":{},"uncertainties":[]}`)},
	}
	res, err := RunLLMPass(context.Background(), fake, "test-model", "cable")
	require.NoError(t, err)
	assert.InDelta(t, 0.6, res.Confidence, 0.0001)
	assert.Len(t, fake.Requests, 2)
}

func TestRunLLMPass_NormalizesMisspelledConnectorTokens(t *testing.T) {
	fake := &llmgateway.Fake{
		Responses: []json.RawMessage{json.RawMessage(`{
			"confidence": 0.7,
			"draftPatch": {"connectorFrom": "usb type c", "connectorTo": "lightening"},
			"uncertainties": []
		}`)},
	}
	res, err := RunLLMPass(context.Background(), fake, "test-model", "cable")
	require.NoError(t, err)
	assert.Equal(t, "USB-C", res.Patch.ConnectorFrom)
	assert.Equal(t, "Lightning", res.Patch.ConnectorTo)
}

type assertErr struct{}

func (assertErr) Error() string { return "transient" }
