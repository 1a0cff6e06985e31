// Package inference implements the manual inference engine: a deterministic
// prompt parser, a bounded LLM pass, their field-by-field merge, and the
// follow-up question workflow that lets an operator resolve what neither
// pass was confident about.
package inference

import "dario.cat/mergo"

// Draft mirrors the cable spec inputs a session accumulates, plus the two
// raw-string fields (Gbps, MaxRefreshHz) that stay unparsed numbers until
// the draft is finalized, and the dataOnly flag.
type Draft struct {
	Brand         string `json:"brand,omitempty"`
	Model         string `json:"model,omitempty"`
	ConnectorFrom string `json:"connectorFrom,omitempty"`
	ConnectorTo   string `json:"connectorTo,omitempty"`

	MaxWatts     *float64 `json:"maxWatts,omitempty"`
	PDSupported  *bool    `json:"pdSupported,omitempty"`
	EPRSupported *bool    `json:"eprSupported,omitempty"`

	USBGeneration string `json:"usbGeneration,omitempty"`
	Gbps          string `json:"gbps,omitempty"`
	DataOnly      bool   `json:"dataOnly,omitempty"`

	VideoSupport  string `json:"videoSupport,omitempty"`
	MaxResolution string `json:"maxResolution,omitempty"`
	MaxRefreshHz  string `json:"maxRefreshHz,omitempty"`
}

// Uncertainty is one of the four draft areas the follow-up workflow can ask about.
type Uncertainty string

const (
	UncertaintyConnector Uncertainty = "connector"
	UncertaintyPower     Uncertainty = "power"
	UncertaintyData      Uncertainty = "data"
	UncertaintyVideo     Uncertainty = "video"
)

// followUpPriority is the fixed order follow-up questions are picked in.
var followUpPriority = []Uncertainty{UncertaintyPower, UncertaintyData, UncertaintyVideo, UncertaintyConnector}

// ConfidenceBand buckets a numeric confidence score.
type ConfidenceBand string

const (
	BandLow    ConfidenceBand = "low"
	BandMedium ConfidenceBand = "medium"
	BandHigh   ConfidenceBand = "high"
)

// Band classifies a confidence score per the fixed thresholds.
func Band(confidence float64) ConfidenceBand {
	switch {
	case confidence < 0.55:
		return BandLow
	case confidence < 0.78:
		return BandMedium
	default:
		return BandHigh
	}
}

// applyPatch merges non-zero fields from patch into d, patch values winning
// wherever they are set.
func applyPatch(d Draft, patch Draft) Draft {
	if err := mergo.Merge(&d, patch, mergo.WithOverride); err != nil {
		return d
	}
	return d
}
