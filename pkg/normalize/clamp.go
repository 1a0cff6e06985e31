package normalize

import "strings"

// ClampDataCapabilityByConnector enforces the physical ceiling of the Lightning
// connector: if either end of a cable is Lightning, data throughput cannot exceed
// USB 2.0 speeds regardless of what a vendor page or LLM extraction claims.
func ClampDataCapabilityByConnector(from, to Connector, maxGbps float64, haveMaxGbps bool, usbGeneration string) (float64, bool, string) {
	if from != ConnectorLightning && to != ConnectorLightning {
		return maxGbps, haveMaxGbps, usbGeneration
	}

	if haveMaxGbps && maxGbps > 0.48 {
		maxGbps = 0.48
	} else if !haveMaxGbps {
		maxGbps = 0.48
		haveMaxGbps = true
	}

	if !strings.Contains(strings.ToLower(usbGeneration), "usb 2.0") {
		usbGeneration = "USB 2.0"
	}
	return maxGbps, haveMaxGbps, usbGeneration
}
