package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// NormalizedSpec holds the schema definition for a single per-ingest capability record.
type NormalizedSpec struct {
	ent.Schema
}

// Fields of the NormalizedSpec.
func (NormalizedSpec) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Unique().
			Immutable(),
		field.String("workflow_id").
			Immutable(),
		field.String("variant_id").
			Immutable(),
		field.Strings("evidence_source_ids").
			Immutable(),

		// power
		field.Float("max_watts").
			Optional().
			Nillable(),
		field.Bool("pd_supported").
			Optional().
			Nillable(),
		field.Bool("epr_supported").
			Optional().
			Nillable(),

		// data
		field.String("usb_generation").
			Optional().
			Nillable(),
		field.Float("max_gbps").
			Optional().
			Nillable(),

		// video
		field.Bool("video_explicitly_supported").
			Optional().
			Nillable(),
		field.String("max_resolution").
			Optional().
			Nillable(),
		field.Int("max_refresh_hz").
			Optional().
			Nillable(),

		// evidence pointers: [{field_path, source_id, snippet}]
		field.JSON("evidence_refs", []EvidenceRef{}).
			Optional(),

		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

// EvidenceRef is a single evidence pointer tying an extracted field to a raw source.
type EvidenceRef struct {
	FieldPath string `json:"fieldPath"`
	SourceID  string `json:"sourceId"`
	Snippet   string `json:"snippet,omitempty"`
}

// Edges of the NormalizedSpec.
func (NormalizedSpec) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("variant", CableVariant.Type).
			Ref("normalized_specs").
			Field("variant_id").
			Unique().
			Required().
			Immutable(),
	}
}

// Indexes of the NormalizedSpec.
func (NormalizedSpec) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("variant_id"),
		index.Fields("workflow_id"),
		index.Fields("created_at"),
	}
}
