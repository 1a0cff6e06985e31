package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeImageURLs_UnionPreservesOrder(t *testing.T) {
	got := mergeImageURLs(
		[]string{"a", "b"},
		[]string{"b", "c"},
	)
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestMergeModel_PrefersNoLengthToken(t *testing.T) {
	assert.Equal(t, "Anker Prime Cable", mergeModel("Anker Prime Cable 6ft", "Anker Prime Cable"))
	assert.Equal(t, "Anker Prime Cable", mergeModel("Anker Prime Cable", "Anker Prime Cable 2m"))
}

func TestMergeModel_BothHaveLengthKeepsLonger(t *testing.T) {
	got := mergeModel("Anker Cable 6ft", "Anker Prime USB-C Cable 6ft")
	assert.Equal(t, "Anker Prime USB-C Cable 6ft", got)
}

func TestMergeSKU_ExistingWinsUnlessAbsent(t *testing.T) {
	assert.Equal(t, "SKU1", mergeSKU("SKU1", "SKU2"))
	assert.Equal(t, "SKU2", mergeSKU("", "SKU2"))
}

func TestMergeVariantLabel_PrefersNonPlaceholder(t *testing.T) {
	assert.Equal(t, "Black / 6ft", mergeVariantLabel("SKU1", "Black / 6ft", "SKU1"))
	assert.Equal(t, "Black / 6ft", mergeVariantLabel("Black / 6ft", "SKU1", "SKU1"))
}

func TestMergeVariantLabel_BothDescriptiveKeepsLonger(t *testing.T) {
	got := mergeVariantLabel("Black", "Black / 6ft", "SKU1")
	assert.Equal(t, "Black / 6ft", got)
}
