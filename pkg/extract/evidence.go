package extract

import (
	"github.com/cableintel/catalog/ent/schema"
	"github.com/cableintel/catalog/pkg/variant"
)

// evidenceBuilder accumulates evidence pointers for one candidate spec.
// Mandatory fields are always appended even with an empty snippet; optional
// fields are dropped when their snippet is empty. sourceID is always the
// empty-string placeholder at construction time: the evidence source row
// does not exist yet (it is created from the page snapshot these refs
// describe), so every ref is stamped with the real id by
// StampEvidenceSourceID once the caller has persisted it.
type evidenceBuilder struct {
	refs []schema.EvidenceRef
}

func (b *evidenceBuilder) mandatory(fieldPath, sourceID, snippet string) {
	b.refs = append(b.refs, schema.EvidenceRef{FieldPath: fieldPath, SourceID: sourceID, Snippet: snippet})
}

func (b *evidenceBuilder) optional(fieldPath, sourceID, snippet string) {
	if snippet == "" {
		return
	}
	b.refs = append(b.refs, schema.EvidenceRef{FieldPath: fieldPath, SourceID: sourceID, Snippet: snippet})
}

func (b *evidenceBuilder) build() []schema.EvidenceRef {
	return b.refs
}

// StampEvidenceSourceID overwrites SourceID on every evidence ref of every
// cable with sourceID, the id of the EvidenceSource row the caller just
// persisted for the page these cables were extracted from. Both extractors
// emit refs before that row exists (vendor.go leaves SourceID blank,
// generic.go trusts whatever the LLM supplied), so this is the single point
// that guarantees NormalizedSpec.evidenceRefs[*].sourceId always matches the
// real evidence source id.
func StampEvidenceSourceID(cables []variant.ParsedCable, sourceID string) {
	for i := range cables {
		for j := range cables[i].EvidenceRefs {
			cables[i].EvidenceRefs[j].SourceID = sourceID
		}
	}
}
