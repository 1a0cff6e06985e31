package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferMaxGbpsFromGeneration(t *testing.T) {
	cases := []struct {
		in     string
		want   float64
		wantOk bool
	}{
		{"USB 3.2 Gen 2 / USB4 / TB4", 40, true},
		{"USB 3.2 Gen 2, 20Gbps", 20, true},
		{"USB4 v2", 80, true},
		{"Thunderbolt 3", 40, true},
		{"USB 3.2 Gen 2x2", 20, true},
		{"USB 3.0", 5, true},
		{"USB 2.0", 0.48, true},
		{"nothing relevant here", 0, false},
	}
	for _, tc := range cases {
		got, ok := InferMaxGbpsFromGeneration(tc.in)
		assert.Equal(t, tc.wantOk, ok, "input %q", tc.in)
		if tc.wantOk {
			assert.Equal(t, tc.want, got, "input %q", tc.in)
		}
	}
}
