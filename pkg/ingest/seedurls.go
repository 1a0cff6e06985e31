// Package ingest implements the workflow engine: seed URL normalization,
// per-item retries with exponential backoff, evidence insertion, variant/spec
// upsert, and workflow finalization.
package ingest

import (
	"net/url"
	"strings"
)

// CanonicalizeURL clears the fragment and strips a trailing slash from the
// path, the same canonicalization rule applied to discovered and seed URLs
// alike.
func CanonicalizeURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	u.Fragment = ""
	if u.Path != "/" {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}
	return u.String(), nil
}

// NormalizeSeedURLs drops URLs whose host is not in allowedDomains (empty
// list means allow all), canonicalizes the rest, deduplicates preserving
// first-seen order, and truncates to maxItems.
func NormalizeSeedURLs(seedURLs, allowedDomains []string, maxItems int) []string {
	allowed := make(map[string]bool, len(allowedDomains))
	for _, d := range allowedDomains {
		allowed[strings.ToLower(d)] = true
	}

	seen := map[string]bool{}
	var out []string
	for _, raw := range seedURLs {
		u, err := url.Parse(raw)
		if err != nil {
			continue
		}
		if len(allowed) > 0 && !allowed[strings.ToLower(u.Host)] {
			continue
		}
		canonical, err := CanonicalizeURL(raw)
		if err != nil {
			continue
		}
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		out = append(out, canonical)
		if maxItems > 0 && len(out) >= maxItems {
			break
		}
	}
	return out
}
