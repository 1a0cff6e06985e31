package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cableintel/catalog/ent/schema"
)

func watts(v float64) *float64 { return &v }

func TestAssessQuality_Ready(t *testing.T) {
	state, issues := AssessQuality(QualityInput{
		Brand:         "Anker",
		Model:         "Anker Prime USB-C Cable",
		ConnectorFrom: "USB-C",
		ConnectorTo:   "USB-C",
		ProductURL:    "https://www.anker.com/products/prime-cable",
		ImageURLs:     []string{"https://img/one.jpg"},
		MaxWatts:      watts(100),
		EvidenceRefs: []schema.EvidenceRef{
			{FieldPath: "brand"},
			{FieldPath: "model"},
			{FieldPath: "connectorPair.from"},
			{FieldPath: "connectorPair.to"},
		},
	})
	assert.Equal(t, "ready", state)
	assert.Empty(t, issues)
}

func TestAssessQuality_NeedsEnrichment(t *testing.T) {
	state, issues := AssessQuality(QualityInput{
		Brand:         "Unknown",
		Model:         "Anker Prime USB-C Cable",
		ConnectorFrom: "USB-C",
		ConnectorTo:   "USB-C",
		ProductURL:    "",
		ImageURLs:     nil,
		MaxWatts:      nil,
		EvidenceRefs: []schema.EvidenceRef{
			{FieldPath: "model"},
		},
	})
	assert.Equal(t, "needs_enrichment", state)
	assert.Contains(t, issues, "missing_brand")
	assert.Contains(t, issues, "missing_product_url")
	assert.Contains(t, issues, "missing_images")
	assert.Contains(t, issues, "missing_usb_c_power")
}

func TestAssessQuality_MissingCriticalEvidenceListsEveryMissingField(t *testing.T) {
	_, issues := AssessQuality(QualityInput{
		Brand:         "Anker",
		Model:         "Anker Prime USB-C Cable",
		ConnectorFrom: "USB-C",
		ConnectorTo:   "USB-C",
		ProductURL:    "https://www.anker.com/products/prime-cable",
		ImageURLs:     []string{"https://img/one.jpg"},
		MaxWatts:      watts(100),
		EvidenceRefs:  nil,
	})
	assert.Contains(t, issues, "missing_evidence")
	assert.Contains(t, issues, "missing_critical_evidence:brand,model,connectorPair.from,connectorPair.to")
}

func TestAssessQuality_PlaceholderValuesTreatedAsMissing(t *testing.T) {
	state, issues := AssessQuality(QualityInput{
		Brand:         "n/a",
		Model:         "NONE",
		ConnectorFrom: "Unknown",
		ConnectorTo:   "null",
	})
	assert.Equal(t, "needs_enrichment", state)
	assert.Contains(t, issues, "missing_brand")
	assert.Contains(t, issues, "missing_model")
	assert.Contains(t, issues, "missing_connector_from")
	assert.Contains(t, issues, "missing_connector_to")
}

func TestAssessQuality_USBCPowerIgnoredForNonUSBCPair(t *testing.T) {
	_, issues := AssessQuality(QualityInput{
		Brand:         "Anker",
		Model:         "Anker Cable",
		ConnectorFrom: "USB-C",
		ConnectorTo:   "Lightning",
		ProductURL:    "https://example.com/p",
		ImageURLs:     []string{"https://img/one.jpg"},
		MaxWatts:      nil,
		EvidenceRefs: []schema.EvidenceRef{
			{FieldPath: "brand"}, {FieldPath: "model"},
			{FieldPath: "connectorPair.from"}, {FieldPath: "connectorPair.to"},
		},
	})
	assert.NotContains(t, issues, "missing_usb_c_power")
}
