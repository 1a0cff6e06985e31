package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeURL_ClearsFragmentAndTrailingSlash(t *testing.T) {
	got, err := CanonicalizeURL("https://example.com/products/cable/#reviews")
	assert.NoError(t, err)
	assert.Equal(t, "https://example.com/products/cable", got)
}

func TestNormalizeSeedURLs_FiltersByAllowedDomains(t *testing.T) {
	got := NormalizeSeedURLs(
		[]string{"https://www.anker.com/a", "https://evil.example.com/b"},
		[]string{"www.anker.com"},
		0,
	)
	assert.Equal(t, []string{"https://www.anker.com/a"}, got)
}

func TestNormalizeSeedURLs_EmptyAllowListAllowsAll(t *testing.T) {
	got := NormalizeSeedURLs(
		[]string{"https://www.anker.com/a", "https://www.belkin.com/b"},
		nil,
		0,
	)
	assert.Len(t, got, 2)
}

func TestNormalizeSeedURLs_DedupesPreservingOrder(t *testing.T) {
	got := NormalizeSeedURLs(
		[]string{"https://www.anker.com/a/", "https://www.anker.com/a", "https://www.anker.com/b"},
		nil,
		0,
	)
	assert.Equal(t, []string{"https://www.anker.com/a", "https://www.anker.com/b"}, got)
}

func TestNormalizeSeedURLs_TruncatesToMaxItems(t *testing.T) {
	got := NormalizeSeedURLs(
		[]string{"https://www.anker.com/a", "https://www.anker.com/b", "https://www.anker.com/c"},
		nil,
		2,
	)
	assert.Len(t, got, 2)
}
