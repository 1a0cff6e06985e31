package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDeterministic_ConnectorPairViaToKeyword(t *testing.T) {
	r := ParseDeterministic("USB-C to USB-A charging cable")
	assert.Equal(t, "USB-C", r.Patch.ConnectorFrom)
	assert.Equal(t, "USB-A", r.Patch.ConnectorTo)
}

func TestParseDeterministic_SingleConnectorMentionNeverFillsBothEnds(t *testing.T) {
	r := ParseDeterministic("A basic USB-C cable")
	assert.Empty(t, r.Patch.ConnectorFrom)
	assert.Empty(t, r.Patch.ConnectorTo)
	assert.Contains(t, r.Uncertainties, UncertaintyConnector)
}

func TestParseDeterministic_LightningMisspellingNormalizes(t *testing.T) {
	r := ParseDeterministic("lightening to usb-a cable")
	assert.Equal(t, "USB 2.0", r.Patch.USBGeneration)
	assert.Equal(t, "0.48", r.Patch.Gbps)
	assert.Equal(t, "no", r.Patch.VideoSupport)
}

func TestParseDeterministic_WattsImpliesNotDataOnly(t *testing.T) {
	r := ParseDeterministic("usb-c to usb-c 100W cable")
	assert.NotNil(t, r.Patch.MaxWatts)
	assert.Equal(t, 100.0, *r.Patch.MaxWatts)
	assert.False(t, r.Patch.DataOnly)
}

func TestParseDeterministic_DataOnlyTokenSetsFlag(t *testing.T) {
	r := ParseDeterministic("usb-c to usb-a sync-only data cable")
	assert.True(t, r.Patch.DataOnly)
}

func TestParseDeterministic_GenerationHintFillsGbpsWhenNoExplicitToken(t *testing.T) {
	r := ParseDeterministic("usb-c to usb-c thunderbolt 4 cable")
	assert.Equal(t, "40", r.Patch.Gbps)
}

func TestParseDeterministic_ExplicitGbpsOverridesGenerationInference(t *testing.T) {
	r := ParseDeterministic("usb-c to usb-c usb4 cable rated at 20 gbps")
	assert.Equal(t, "20", r.Patch.Gbps)
}

func TestParseDeterministic_NegativeVideoWinsOverPositiveMention(t *testing.T) {
	r := ParseDeterministic("usb-c to usb-c charge only cable, no video, not for 4k monitors")
	assert.Equal(t, "no", r.Patch.VideoSupport)
}

func TestParseDeterministic_ResolutionUpgradesUnknownVideoToYes(t *testing.T) {
	r := ParseDeterministic("usb-c to usb-c cable supports 4k at 60hz")
	assert.Equal(t, "yes", r.Patch.VideoSupport)
	assert.Equal(t, "4K", r.Patch.MaxResolution)
	assert.Equal(t, "60", r.Patch.MaxRefreshHz)
}

func TestParseDeterministic_ConfidenceSeedFormula(t *testing.T) {
	r := ParseDeterministic("usb-c to usb-c 100w cable")
	assert.InDelta(t, 0.23+0.17*2+0.06, r.Confidence, 0.0001)
}

func TestParseDeterministic_SingleMentionPenalty(t *testing.T) {
	r := ParseDeterministic("usb-c cable 100w")
	assert.InDelta(t, 0.23+0.17*1-0.06+0.06, r.Confidence, 0.0001)
}
