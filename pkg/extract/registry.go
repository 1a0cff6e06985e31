package extract

import (
	"context"

	"github.com/cableintel/catalog/pkg/config"
)

// Registry dispatches a product URL to its matching vendor template adapter,
// falling back to the generic LLM extractor when no template matches.
type Registry struct {
	templates *config.TemplateRegistry
	vendor    *VendorExtractor
	generic   *GenericExtractor
}

// NewRegistry builds the dispatcher.
func NewRegistry(templates *config.TemplateRegistry, vendor *VendorExtractor, generic *GenericExtractor) *Registry {
	return &Registry{templates: templates, vendor: vendor, generic: generic}
}

// ExtractFromURL runs the matching vendor template adapter if templates has
// one for url, else the generic fallback.
func (r *Registry) ExtractFromURL(ctx context.Context, url, canonicalURL string) (*Result, error) {
	if tpl := r.templates.MatchByURL(url); tpl != nil {
		return r.vendor.ExtractFromProductURL(ctx, tpl, url)
	}
	return r.generic.Extract(ctx, url, canonicalURL)
}
