package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cableintel/catalog/pkg/config"
)

func testTemplate() *config.TemplateConfig {
	return &config.TemplateConfig{
		ID:                "anker",
		Name:              "Anker",
		BaseURL:            "https://www.anker.com",
		ProductPathPrefix: "/products/",
	}
}

func TestCanonicalProductURL_StripsTrailingSlash(t *testing.T) {
	got := canonicalProductURL(testTemplate(), "prime-cable/")
	assert.Equal(t, "https://www.anker.com/products/prime-cable", got)
}

func TestHandleFromURL_StripsQueryAndFragment(t *testing.T) {
	tpl := testTemplate()
	got := handleFromURL(tpl, "https://www.anker.com/products/prime-cable?variant=1#reviews")
	assert.Equal(t, "prime-cable", got)
}

func TestLooksLikeProduct_RequiresHandleTitleVariants(t *testing.T) {
	assert.True(t, looksLikeProduct(map[string]interface{}{
		"handle": "prime-cable", "title": "Prime Cable", "variants": []interface{}{},
	}))
	assert.True(t, looksLikeProduct(map[string]interface{}{
		"handle": "prime-cable", "name": "Prime Cable", "variants": []interface{}{},
	}))
	assert.False(t, looksLikeProduct(map[string]interface{}{
		"handle": "prime-cable", "title": "Prime Cable",
	}))
}

func TestCollectProductObjects_WalksNestedJSON(t *testing.T) {
	raw := `{"page":{"props":{"product":{"handle":"prime-cable","title":"Prime Cable","vendor":"Anker","variants":[{"id":1,"sku":"SKU1"}]}}}}`
	into := map[string]shopifyProduct{}
	collectProductObjects(raw, into)
	assert.Contains(t, into, "prime-cable")
	assert.Equal(t, "Anker", into["prime-cable"].Vendor)
}
