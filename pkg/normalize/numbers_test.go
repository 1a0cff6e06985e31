package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePositiveNumber(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantOk  bool
	}{
		{"60, 100, 240W", 240, true},
		{"100W", 100, true},
		{"no numbers here", 0, false},
		{"", 0, false},
		{"3.5A / 5V", 5, true},
	}
	for _, tc := range cases {
		got, ok := ParsePositiveNumber(tc.in)
		assert.Equal(t, tc.wantOk, ok, "input %q", tc.in)
		if tc.wantOk {
			assert.Equal(t, tc.want, got, "input %q", tc.in)
		}
	}
}
