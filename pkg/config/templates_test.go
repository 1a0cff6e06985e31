package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateConfig_MatchesProductURL(t *testing.T) {
	tpl := TemplateConfig{
		ID:                "anker",
		BaseURL:           "https://www.anker.com",
		ProductPathPrefix: "/products/",
	}
	assert.True(t, tpl.MatchesProductURL("https://www.anker.com/products/prime-usb-c-cable"))
	assert.False(t, tpl.MatchesProductURL("https://www.anker.com/search?q=cable"))
	assert.False(t, tpl.MatchesProductURL("https://www.ugreen.com/products/foo"))
}

func TestTemplateConfig_IncludeCandidate(t *testing.T) {
	tpl := TemplateConfig{SearchTerms: []string{"cable", "usb-c"}}
	assert.True(t, tpl.IncludeCandidate("prime-cable", "Anker Prime Cable", ""))
	assert.True(t, tpl.IncludeCandidate("usb-c-hub", "USB-C Hub", ""))
	assert.False(t, tpl.IncludeCandidate("charger", "Anker Charger", "fast charging brick"))
}

func TestTemplateRegistry_MatchByURL(t *testing.T) {
	reg := NewTemplateRegistry(mergeTemplates(GetBuiltinTemplates(), nil))

	tpl := reg.MatchByURL("https://www.ugreen.com/products/100w-cable")
	require.NotNil(t, tpl)
	assert.Equal(t, "ugreen", tpl.ID)

	assert.Nil(t, reg.MatchByURL("https://example.com/products/unrelated"))
}

func TestTemplateRegistry_GetUnknown(t *testing.T) {
	reg := NewTemplateRegistry(mergeTemplates(GetBuiltinTemplates(), nil))
	_, err := reg.Get("does-not-exist")
	assert.Error(t, err)
}
