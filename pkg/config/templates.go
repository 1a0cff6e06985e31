package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cableintel/catalog/pkg/shared/apperrors"
)

// TemplateConfig declares one vendor's Shopify-style storefront shape: where
// to discover product URLs and how to recognize a product page URL.
type TemplateConfig struct {
	ID                string   `yaml:"id"`
	Name              string   `yaml:"name"`
	BaseURL           string   `yaml:"base_url"`
	SearchPath        string   `yaml:"search_path"`
	SearchQueryParam  string   `yaml:"search_query_param"`
	SearchTerms       []string `yaml:"search_terms"`
	ProductPathPrefix string   `yaml:"product_path_prefix"`
}

// MatchesProductURL reports whether url looks like one of this vendor's
// product pages.
func (t TemplateConfig) MatchesProductURL(url string) bool {
	if !strings.HasPrefix(url, t.BaseURL) {
		return false
	}
	rest := strings.TrimPrefix(url, t.BaseURL)
	return strings.HasPrefix(rest, t.ProductPathPrefix)
}

// IncludeCandidate reports whether a discovered {handle, title} pair looks
// like a cable product worth extracting, based on simple keyword matching
// against the template's declared search terms.
func (t TemplateConfig) IncludeCandidate(handle, title, summaryHTML string) bool {
	haystack := strings.ToLower(handle + " " + title + " " + summaryHTML)
	if len(t.SearchTerms) == 0 {
		return true
	}
	for _, term := range t.SearchTerms {
		if strings.Contains(haystack, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

// TemplateRegistry is process-wide immutable state initialized once at
// startup, analogous to the agent/chain/MCP registries it's grounded on.
type TemplateRegistry struct {
	templates map[string]*TemplateConfig
}

// NewTemplateRegistry builds a registry from the merged set of built-in and
// user-supplied templates.
func NewTemplateRegistry(templates map[string]*TemplateConfig) *TemplateRegistry {
	return &TemplateRegistry{templates: templates}
}

// Get returns the template with the given id.
func (r *TemplateRegistry) Get(id string) (*TemplateConfig, error) {
	tpl, ok := r.templates[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("template", id)
	}
	return tpl, nil
}

// MatchByURL returns the first template (by id, sorted for determinism)
// whose MatchesProductURL is true for url, or nil if none match.
func (r *TemplateRegistry) MatchByURL(url string) *TemplateConfig {
	ids := r.ids()
	for _, id := range ids {
		tpl := r.templates[id]
		if tpl.MatchesProductURL(url) {
			return tpl
		}
	}
	return nil
}

// List returns all registered templates, ordered by id.
func (r *TemplateRegistry) List() []*TemplateConfig {
	ids := r.ids()
	out := make([]*TemplateConfig, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.templates[id])
	}
	return out
}

func (r *TemplateRegistry) ids() []string {
	ids := make([]string, 0, len(r.templates))
	for id := range r.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// GetBuiltinTemplates returns the three illustrative Shopify-style vendor
// templates shipped with the service. Operators may override or extend
// these via the templates YAML file.
func GetBuiltinTemplates() map[string]TemplateConfig {
	return map[string]TemplateConfig{
		"anker": {
			ID:                "anker",
			Name:              "Anker",
			BaseURL:           "https://www.anker.com",
			SearchPath:        "/search",
			SearchQueryParam:  "q",
			SearchTerms:       []string{"cable", "usb-c", "usb c", "lightning", "thunderbolt"},
			ProductPathPrefix: "/products/",
		},
		"ugreen": {
			ID:                "ugreen",
			Name:              "UGREEN",
			BaseURL:           "https://www.ugreen.com",
			SearchPath:        "/search",
			SearchQueryParam:  "q",
			SearchTerms:       []string{"cable", "usb-c", "usb c", "lightning", "thunderbolt"},
			ProductPathPrefix: "/products/",
		},
		"belkin": {
			ID:                "belkin",
			Name:              "Belkin",
			BaseURL:           "https://www.belkin.com",
			SearchPath:        "/search",
			SearchQueryParam:  "q",
			SearchTerms:       []string{"cable", "usb-c", "usb c", "lightning", "thunderbolt"},
			ProductPathPrefix: "/products/",
		},
	}
}

func validateTemplates(templates map[string]*TemplateConfig) error {
	for id, tpl := range templates {
		if tpl.BaseURL == "" {
			return fmt.Errorf("template %q: base_url is required", id)
		}
		if tpl.ProductPathPrefix == "" {
			return fmt.Errorf("template %q: product_path_prefix is required", id)
		}
	}
	return nil
}
