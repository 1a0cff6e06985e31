// Package rank implements the top-cables ranking query: per-spec
// completeness scoring, best-spec-per-variant selection, legacy/placeholder
// pruning, sku dedupe, and quality filtering.
package rank

import "time"

// Candidate is the flat hydrated projection of one NormalizedSpec joined
// with its CableVariant, the unit the ranking pipeline scores and prunes
// over. EvidenceFetchedAt is whatever time the caller fills in.
type Candidate struct {
	VariantID     string   `json:"variantId"`
	SpecID        string   `json:"specId"`
	Brand         string   `json:"brand"`
	Model         string   `json:"model"`
	Variant       string   `json:"variant,omitempty"`
	SKU           string   `json:"sku,omitempty"`
	ConnectorFrom string   `json:"connectorFrom"`
	ConnectorTo   string   `json:"connectorTo"`
	ProductURL    string   `json:"productUrl,omitempty"`
	ImageURLs     []string `json:"imageUrls,omitempty"`
	QualityState  string   `json:"qualityState"`

	MaxWatts      *float64 `json:"maxWatts,omitempty"`
	PDSupported   *bool    `json:"pdSupported,omitempty"`
	EPRSupported  *bool    `json:"eprSupported,omitempty"`
	USBGeneration *string  `json:"usbGeneration,omitempty"`
	MaxGbps       *float64 `json:"maxGbps,omitempty"`
	VideoExplicit *bool    `json:"videoExplicitlySupported,omitempty"`
	MaxResolution *string  `json:"maxResolution,omitempty"`
	MaxRefreshHz  *int     `json:"maxRefreshHz,omitempty"`
	HasEvidence   bool     `json:"hasEvidence"`

	SpecCreatedAt     time.Time `json:"specCreatedAt"`
	EvidenceFetchedAt time.Time `json:"evidenceFetchedAt"`
}

// TopCableRow is the public projection returned by getTopCables.
type TopCableRow struct {
	Candidate
	Score int `json:"score"`
}
