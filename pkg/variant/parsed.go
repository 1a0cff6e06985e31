package variant

import "github.com/cableintel/catalog/ent/schema"

// ParsedPower is the power capability axis of one extracted candidate spec.
type ParsedPower struct {
	MaxWatts     *float64
	PDSupported  *bool
	EPRSupported *bool
}

// ParsedData is the data-throughput axis of one extracted candidate spec.
type ParsedData struct {
	USBGeneration *string
	MaxGbps       *float64
}

// ParsedVideo is the video axis of one extracted candidate spec.
type ParsedVideo struct {
	ExplicitlySupported *bool
	MaxResolution       *string
	MaxRefreshHz        *int
}

// ParsedCable is the canonical shape one source extractor emits per variant
// found on a product page (or per manual-inference draft commit).
type ParsedCable struct {
	Brand         string
	Model         string
	Variant       string
	SKU           string
	ConnectorFrom string
	ConnectorTo   string
	ProductURL    string
	ImageURLs     []string

	Power ParsedPower
	Data  ParsedData
	Video ParsedVideo

	EvidenceRefs []schema.EvidenceRef
}
