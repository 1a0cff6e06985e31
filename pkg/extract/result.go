// Package extract implements the per-vendor template adapters and the
// generic LLM-fallback extractor that turn a product page into one or more
// candidate cable specs.
package extract

import "github.com/cableintel/catalog/pkg/variant"

// Snapshot is the raw fetched page the Result was derived from, carried
// through so the workflow engine can hash and store it as evidence.
type Snapshot struct {
	URL          string
	CanonicalURL string
	Markdown     string
	HTML         string
}

// Result is what one extractor invocation returns for a single product URL.
type Result struct {
	Source Snapshot
	Cables []variant.ParsedCable
}
