package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cableintel/catalog/ent/schema"
	"github.com/cableintel/catalog/pkg/evidence"
	"github.com/cableintel/catalog/pkg/llmgateway"
	"github.com/cableintel/catalog/pkg/shared/apperrors"
	"github.com/cableintel/catalog/pkg/variant"
	"github.com/cableintel/catalog/pkg/webfetch"
)

// maxMarkdownChars bounds the prompt markdown to a fixed character count
// before it is sent to the LLM gateway.
const maxMarkdownChars = 120_000

// genericSchema is the strict JSON schema the LLM response must validate
// against; the evidence array must include the four critical field paths or
// the extractor rejects the payload.
const genericSchema = `{
  "type": "object",
  "required": ["brand", "model", "connectorFrom", "connectorTo", "evidenceRefs"],
  "properties": {
    "brand": {"type": "string"},
    "model": {"type": "string"},
    "connectorFrom": {"type": "string"},
    "connectorTo": {"type": "string"},
    "sku": {"type": "string"},
    "variant": {"type": "string"},
    "productUrl": {"type": "string"},
    "imageUrls": {"type": "array", "items": {"type": "string"}},
    "maxWatts": {"type": "number"},
    "pdSupported": {"type": "boolean"},
    "eprSupported": {"type": "boolean"},
    "usbGeneration": {"type": "string"},
    "maxGbps": {"type": "number"},
    "videoExplicitlySupported": {"type": "boolean"},
    "maxResolution": {"type": "string"},
    "maxRefreshHz": {"type": "integer"},
    "evidenceRefs": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["fieldPath", "sourceId"],
        "properties": {
          "fieldPath": {"type": "string"},
          "sourceId": {"type": "string"},
          "snippet": {"type": "string"}
        }
      }
    }
  }
}`

var criticalFieldPaths = []string{"brand", "model", "connectorPair.from", "connectorPair.to"}

// GenericExtractor is the fallback extractor: scrape markdown/html and ask
// the LLM gateway for a schema-constrained candidate spec.
type GenericExtractor struct {
	fetch *webfetch.Client
	llm   llmgateway.Client
	model string
}

// NewGenericExtractor builds the fallback extractor.
func NewGenericExtractor(fetch *webfetch.Client, llm llmgateway.Client, model string) *GenericExtractor {
	return &GenericExtractor{fetch: fetch, llm: llm, model: model}
}

type genericLLMResponse struct {
	Brand                    string               `json:"brand"`
	Model                    string               `json:"model"`
	ConnectorFrom            string               `json:"connectorFrom"`
	ConnectorTo              string               `json:"connectorTo"`
	SKU                      string               `json:"sku"`
	Variant                  string               `json:"variant"`
	ProductURL               string               `json:"productUrl"`
	ImageURLs                []string             `json:"imageUrls"`
	MaxWatts                 *float64             `json:"maxWatts"`
	PDSupported              *bool                `json:"pdSupported"`
	EPRSupported             *bool                `json:"eprSupported"`
	USBGeneration            *string              `json:"usbGeneration"`
	MaxGbps                  *float64             `json:"maxGbps"`
	VideoExplicitlySupported *bool                `json:"videoExplicitlySupported"`
	MaxResolution            *string              `json:"maxResolution"`
	MaxRefreshHz             *int                 `json:"maxRefreshHz"`
	// EvidenceRefs carries whatever sourceId the LLM supplied, but that value
	// is never trusted: StampEvidenceSourceID overwrites it with the real
	// EvidenceSource id once the caller has persisted the page snapshot.
	EvidenceRefs []schema.EvidenceRef `json:"evidenceRefs"`
}

// Extract scrapes url, builds a prompt with the source URL, canonical URL,
// content hash, truncated markdown, and HTML, and calls the LLM gateway
// against the strict schema.
func (g *GenericExtractor) Extract(ctx context.Context, url, canonicalURL string) (*Result, error) {
	snap, err := g.fetch.Scrape(ctx, url)
	if err != nil {
		return nil, err
	}
	contentHash := evidence.ContentHash(canonicalURL, snap.Markdown, snap.HTML)

	markdown := snap.Markdown
	if len(markdown) > maxMarkdownChars {
		markdown = markdown[:maxMarkdownChars]
	}

	prompt := fmt.Sprintf(
		"Source URL: %s\nCanonical URL: %s\nContent hash: %s\n\nMarkdown:\n%s\n\nHTML:\n%s",
		url, canonicalURL, contentHash, markdown, snap.HTML,
	)

	raw, err := g.llm.GenerateObject(ctx, llmgateway.GenerateObjectRequest{
		Model:       g.model,
		System:      "Extract a single cable's capability spec from the page content. Respond only with the JSON object described by the schema.",
		Prompt:      prompt,
		Schema:      json.RawMessage(genericSchema),
		Temperature: 0,
	})
	if err != nil {
		return nil, err
	}

	var parsed genericLLMResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, apperrors.NewExtractionError("llm", fmt.Errorf("decode generic extraction payload: %w", err))
	}

	if err := requireCriticalEvidence(parsed.EvidenceRefs); err != nil {
		return nil, err
	}

	cable := variant.ParsedCable{
		Brand:         parsed.Brand,
		Model:         parsed.Model,
		Variant:       parsed.Variant,
		SKU:           parsed.SKU,
		ConnectorFrom: parsed.ConnectorFrom,
		ConnectorTo:   parsed.ConnectorTo,
		ProductURL:    firstNonEmpty(parsed.ProductURL, canonicalURL),
		ImageURLs:     parsed.ImageURLs,
		Power: variant.ParsedPower{
			MaxWatts:     parsed.MaxWatts,
			PDSupported:  parsed.PDSupported,
			EPRSupported: parsed.EPRSupported,
		},
		Data: variant.ParsedData{
			USBGeneration: parsed.USBGeneration,
			MaxGbps:       parsed.MaxGbps,
		},
		Video: variant.ParsedVideo{
			ExplicitlySupported: parsed.VideoExplicitlySupported,
			MaxResolution:       parsed.MaxResolution,
			MaxRefreshHz:        parsed.MaxRefreshHz,
		},
		EvidenceRefs: parsed.EvidenceRefs,
	}

	return &Result{
		Source: Snapshot{
			URL:          url,
			CanonicalURL: canonicalURL,
			Markdown:     snap.Markdown,
			HTML:         snap.HTML,
		},
		Cables: []variant.ParsedCable{cable},
	}, nil
}

func requireCriticalEvidence(refs []schema.EvidenceRef) error {
	present := make(map[string]bool, len(refs))
	for _, r := range refs {
		present[r.FieldPath] = true
	}
	var missing []string
	for _, fp := range criticalFieldPaths {
		if !present[fp] {
			missing = append(missing, fp)
		}
	}
	if len(missing) > 0 {
		return apperrors.NewExtractionError("llm", fmt.Errorf("missing critical evidence: %s", strings.Join(missing, ", ")))
	}
	return nil
}
