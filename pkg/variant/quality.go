// Package variant implements the deduplicated cable variant catalog: the
// quality assessor, the variant/spec upsert merge rules, and the per-variant
// enrichment job lifecycle.
package variant

import (
	"strings"

	"github.com/cableintel/catalog/ent/schema"
)

// placeholderValues are treated as "absent" for brand/model/connector checks.
var placeholderValues = map[string]bool{
	"":       true,
	"unknown": true,
	"n/a":    true,
	"none":   true,
	"null":   true,
}

func isPlaceholder(s string) bool {
	return placeholderValues[strings.ToLower(strings.TrimSpace(s))]
}

// QualityInput is the projection of a variant + its latest parsed power and
// evidence that the Quality Assessor reasons over.
type QualityInput struct {
	Brand         string
	Model         string
	ConnectorFrom string
	ConnectorTo   string
	ProductURL    string
	ImageURLs     []string
	MaxWatts      *float64
	EvidenceRefs  []schema.EvidenceRef
}

// AssessQuality is a pure function computing the quality state and issue list
// for a variant + its most recently ingested spec.
func AssessQuality(in QualityInput) (state string, issues []string) {
	if isPlaceholder(in.Brand) {
		issues = append(issues, "missing_brand")
	}
	if isPlaceholder(in.Model) {
		issues = append(issues, "missing_model")
	}
	if isPlaceholder(in.ConnectorFrom) {
		issues = append(issues, "missing_connector_from")
	}
	if isPlaceholder(in.ConnectorTo) {
		issues = append(issues, "missing_connector_to")
	}
	if strings.TrimSpace(in.ProductURL) == "" {
		issues = append(issues, "missing_product_url")
	}
	if len(in.ImageURLs) == 0 {
		issues = append(issues, "missing_images")
	}
	if len(in.EvidenceRefs) == 0 {
		issues = append(issues, "missing_evidence")
	}

	present := make(map[string]bool, len(in.EvidenceRefs))
	for _, ref := range in.EvidenceRefs {
		present[ref.FieldPath] = true
	}
	var missingCritical []string
	for _, fieldPath := range []string{"brand", "model", "connectorPair.from", "connectorPair.to"} {
		if !present[fieldPath] {
			missingCritical = append(missingCritical, fieldPath)
		}
	}
	if len(missingCritical) > 0 {
		issues = append(issues, "missing_critical_evidence:"+strings.Join(missingCritical, ","))
	}

	bothUSBC := strings.EqualFold(in.ConnectorFrom, "USB-C") && strings.EqualFold(in.ConnectorTo, "USB-C")
	if bothUSBC && (in.MaxWatts == nil || *in.MaxWatts <= 0) {
		issues = append(issues, "missing_usb_c_power")
	}

	if len(issues) == 0 {
		return "ready", nil
	}
	return "needs_enrichment", issues
}
