package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeConnector(t *testing.T) {
	cases := []struct {
		in   string
		want Connector
	}{
		{"USB-C", ConnectorUSBC},
		{"  usb c ", ConnectorUSBC},
		{"Type-C", ConnectorUSBC},
		{"USB-A", ConnectorUSBA},
		{"Lightning", ConnectorLightning},
		{"lightening", ConnectorLightning},
		{"Micro-USB", ConnectorMicroUSB},
		{"HDMI", ConnectorUnknown},
		{"", ConnectorUnknown},
	}
	for _, tc := range cases {
		got := NormalizeConnector(tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}
