package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cableintel/catalog/ent/schema"
	"github.com/cableintel/catalog/pkg/variant"
)

func TestStampEvidenceSourceID_OverwritesEveryRef(t *testing.T) {
	cables := []variant.ParsedCable{
		{
			Model: "cable-a",
			EvidenceRefs: []schema.EvidenceRef{
				{FieldPath: "brand", SourceID: "", Snippet: "Acme"},
				{FieldPath: "model", SourceID: "llm-guessed-id", Snippet: "Cable A"},
			},
		},
		{
			Model:        "cable-b",
			EvidenceRefs: []schema.EvidenceRef{{FieldPath: "model", SourceID: "", Snippet: "Cable B"}},
		},
	}

	StampEvidenceSourceID(cables, "evidence-source-123")

	for _, cable := range cables {
		for _, ref := range cable.EvidenceRefs {
			assert.Equal(t, "evidence-source-123", ref.SourceID)
		}
	}
}

func TestEvidenceBuilder_MandatoryAndOptional(t *testing.T) {
	eb := &evidenceBuilder{}
	eb.mandatory("brand", "", "")
	eb.optional("power.maxWatts", "", "")
	eb.optional("data.maxGbps", "", "60W")

	refs := eb.build()
	assert.Len(t, refs, 2)
	assert.Equal(t, "brand", refs[0].FieldPath)
	assert.Equal(t, "data.maxGbps", refs[1].FieldPath)
}
