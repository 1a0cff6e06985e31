package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cableintel/catalog/pkg/normalize"
)

func TestResolveBrand_FallsBackToTemplateName(t *testing.T) {
	assert.Equal(t, "Anker", ResolveBrand("", "Anker"))
}

func TestResolveBrand_NormalizesSlugPrefixedVendor(t *testing.T) {
	assert.Equal(t, "Anker", ResolveBrand("beta-anker", "Anker"))
}

func TestResolveBrand_KeepsDistinctVendor(t *testing.T) {
	assert.Equal(t, "Belkin", ResolveBrand("Belkin", "Anker"))
}

func TestResolveModel_PrependsBrandWhenMissing(t *testing.T) {
	assert.Equal(t, "Anker Prime Cable", ResolveModel("Prime Cable", "Anker"))
	assert.Equal(t, "Anker Prime Cable", ResolveModel("Anker Prime Cable", "Anker"))
}

func TestResolveConnectorPair_TitleToFrom(t *testing.T) {
	got := ResolveConnectorPair("USB-C to Lightning Braided Cable", "")
	assert.Equal(t, normalize.ConnectorUSBC, got.From)
	assert.Equal(t, normalize.ConnectorLightning, got.To)
}

func TestResolveConnectorPair_ThunderboltDefaultsToUSBC(t *testing.T) {
	got := ResolveConnectorPair("Thunderbolt 4 Pro Cable", "")
	assert.Equal(t, normalize.ConnectorUSBC, got.From)
	assert.Equal(t, normalize.ConnectorUSBC, got.To)
}

func TestResolveConnectorPair_SingleMentionFillsBothEnds(t *testing.T) {
	got := ResolveConnectorPair("Braided Cable", "This cable has a USB-C connector")
	assert.Equal(t, got.From, got.To)
	assert.Equal(t, normalize.ConnectorUSBC, got.From)
}

func TestResolvePower_MaxAcrossTexts(t *testing.T) {
	maxWatts, _, _, _ := ResolvePower([]string{"Supports 60W", "Up to 100W fast charging"}, nil)
	assert.NotNil(t, maxWatts)
	assert.Equal(t, 100.0, *maxWatts)
}

func TestResolvePower_VariantOverridesProductDefault(t *testing.T) {
	override := 240.0
	maxWatts, _, _, _ := ResolvePower([]string{"Supports 60W"}, &override)
	assert.Equal(t, 240.0, *maxWatts)
}

func TestResolvePower_RejectsOverFiveHundredWatts(t *testing.T) {
	maxWatts, _, _, _ := ResolvePower([]string{"600W industrial power supply"}, nil)
	assert.Nil(t, maxWatts)
}

func TestResolveData_LightningClamps(t *testing.T) {
	gen, gbps, _ := ResolveData([]string{"Thunderbolt 3, 40Gbps"}, normalize.ConnectorUSBC, normalize.ConnectorLightning)
	assert.NotNil(t, gbps)
	assert.Equal(t, 0.48, *gbps)
	assert.Contains(t, *gen, "USB 2.0")
}

func TestResolveVideo_NegativeWinsOverPositive(t *testing.T) {
	explicit, _, _, _ := ResolveVideo([]string{"Supports 4K video but does not support screen mirroring"})
	assert.NotNil(t, explicit)
	assert.False(t, *explicit)
}

func TestResolveVideo_ResolutionUpgradesUnknownToYes(t *testing.T) {
	explicit, resolution, _, _ := ResolveVideo([]string{"Outputs 8K 60Hz video to an external monitor"})
	assert.NotNil(t, explicit)
	assert.True(t, *explicit)
	assert.NotNil(t, resolution)
}

func TestResolveVariantLabel_PrefersNonDefaultName(t *testing.T) {
	assert.Equal(t, "Black / 6ft", ResolveVariantLabel("Black / 6ft", "Anker Cable", "SKU1", nil))
}

func TestResolveVariantLabel_FallsBackToSKU(t *testing.T) {
	got := ResolveVariantLabel("Default Title", "Anker Cable", "SKU1", nil)
	assert.Equal(t, "SKU1", got)
}

func TestResolveVariantLabel_FallsBackToLengthHintInModel(t *testing.T) {
	got := ResolveVariantLabel("Default Title", "Anker Cable 6ft", "", nil)
	assert.Contains(t, got, "ft")
}

func TestMergeImages_DedupesAndNormalizesProtocol(t *testing.T) {
	got := MergeImages("//cdn.example.com/a.jpg", []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"})
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}, got)
}
