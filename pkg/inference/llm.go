package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cableintel/catalog/pkg/llmgateway"
	"github.com/cableintel/catalog/pkg/normalize"
	"github.com/cableintel/catalog/pkg/shared/apperrors"
)

const llmTimeout = 8 * time.Second

const llmSchema = `{
  "type": "object",
  "required": ["confidence", "draftPatch", "uncertainties"],
  "properties": {
    "confidence": {"type": "number"},
    "draftPatch": {"type": "object"},
    "uncertainties": {"type": "array", "items": {"type": "string"}},
    "notes": {"type": "string"}
  }
}`

// LLMResult is the coerced, validated outcome of the LLM pass.
type LLMResult struct {
	Patch         Draft
	Uncertainties []Uncertainty
	Notes         string
	Confidence    float64
}

// wireDraftPatch is the loosely-typed shape the gateway may return; numeric
// fields can arrive as JSON numbers or as numeric strings.
type wireDraftPatch struct {
	Brand         string          `json:"brand"`
	Model         string          `json:"model"`
	ConnectorFrom string          `json:"connectorFrom"`
	ConnectorTo   string          `json:"connectorTo"`
	MaxWatts      json.RawMessage `json:"maxWatts"`
	PDSupported   *bool           `json:"pdSupported"`
	EPRSupported  *bool           `json:"eprSupported"`
	USBGeneration string          `json:"usbGeneration"`
	Gbps          json.RawMessage `json:"gbps"`
	DataOnly      *bool           `json:"dataOnly"`
	VideoSupport  string          `json:"videoSupport"`
	MaxResolution string          `json:"maxResolution"`
	MaxRefreshHz  json.RawMessage `json:"maxRefreshHz"`
}

type wireLLMResponse struct {
	Confidence    json.RawMessage `json:"confidence"`
	DraftPatch    wireDraftPatch  `json:"draftPatch"`
	Uncertainties []string        `json:"uncertainties"`
	Notes         string          `json:"notes"`
}

// RunLLMPass calls the LLM gateway with an 8-second bound, temperature 0, and
// at most one retry, then coerces its response into an LLMResult tolerant of
// stringified numbers and misspelled or unknown uncertainty categories.
func RunLLMPass(ctx context.Context, client llmgateway.Client, model, prompt string) (*LLMResult, error) {
	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		raw, err := client.GenerateObject(ctx, llmgateway.GenerateObjectRequest{
			Model:       model,
			System:      "Extract cable specification fields from the operator's free-text description. Respond only with the requested JSON object.",
			Prompt:      prompt,
			Schema:      json.RawMessage(llmSchema),
			Temperature: 0,
		})
		if err == nil {
			return coerceLLMResponse(raw)
		}
		lastErr = err
	}
	return nil, apperrors.NewExtractionError("llm_inference", lastErr)
}

func coerceLLMResponse(raw json.RawMessage) (*LLMResult, error) {
	var wire wireLLMResponse
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, apperrors.NewExtractionError("llm_inference", fmt.Errorf("decode response: %w", err))
	}

	confidence, _ := coerceFloat(wire.Confidence)
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 0.99 {
		confidence = 0.99
	}

	patch := Draft{
		Brand:         wire.DraftPatch.Brand,
		Model:         wire.DraftPatch.Model,
		ConnectorFrom: coerceConnectorToken(wire.DraftPatch.ConnectorFrom),
		ConnectorTo:   coerceConnectorToken(wire.DraftPatch.ConnectorTo),
		PDSupported:   wire.DraftPatch.PDSupported,
		EPRSupported:  wire.DraftPatch.EPRSupported,
		USBGeneration: wire.DraftPatch.USBGeneration,
		VideoSupport:  strings.ToLower(strings.TrimSpace(wire.DraftPatch.VideoSupport)),
		MaxResolution: wire.DraftPatch.MaxResolution,
	}
	if wire.DraftPatch.DataOnly != nil {
		patch.DataOnly = *wire.DraftPatch.DataOnly
	}
	if watts, ok := coerceFloat(wire.DraftPatch.MaxWatts); ok {
		patch.MaxWatts = &watts
	}
	if gbps, ok := coerceFloat(wire.DraftPatch.Gbps); ok {
		patch.Gbps = formatGbps(gbps)
	}
	if refresh, ok := coerceFloat(wire.DraftPatch.MaxRefreshHz); ok {
		patch.MaxRefreshHz = strconv.Itoa(int(refresh))
	}

	var uncertainties []Uncertainty
	for _, u := range wire.Uncertainties {
		if mapped, ok := coerceUncertainty(u); ok {
			uncertainties = append(uncertainties, mapped)
		}
	}

	return &LLMResult{
		Patch:         patch,
		Uncertainties: uncertainties,
		Notes:         wire.Notes,
		Confidence:    confidence,
	}, nil
}

// coerceFloat accepts a JSON number or a quoted numeric string.
func coerceFloat(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false
		}
		v, err := strconv.ParseFloat(s, 64)
		if err == nil {
			return v, true
		}
	}
	return 0, false
}

// coerceConnectorToken normalizes a free-text connector mention the LLM
// returned, tolerating misspellings the same way the deterministic pass does.
func coerceConnectorToken(s string) string {
	if s == "" {
		return ""
	}
	c := connectorTokenRe.FindString(strings.ToLower(s))
	if c == "" {
		return s
	}
	return string(normalize.NormalizeConnector(c))
}

// coerceUncertainty maps an arbitrary uncertainty label onto the known set,
// tolerating misspellings and synonyms; unknown labels are dropped.
func coerceUncertainty(s string) (Uncertainty, bool) {
	lower := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.Contains(lower, "connect"):
		return UncertaintyConnector, true
	case strings.Contains(lower, "power") || strings.Contains(lower, "watt") || strings.Contains(lower, "pd") || strings.Contains(lower, "epr"):
		return UncertaintyPower, true
	case strings.Contains(lower, "data") || strings.Contains(lower, "gbps") || strings.Contains(lower, "usb") || strings.Contains(lower, "generation"):
		return UncertaintyData, true
	case strings.Contains(lower, "video") || strings.Contains(lower, "display") || strings.Contains(lower, "resolution") || strings.Contains(lower, "refresh"):
		return UncertaintyVideo, true
	default:
		return "", false
	}
}
