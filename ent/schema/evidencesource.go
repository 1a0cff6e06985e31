package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// EvidenceSource holds the schema definition for an append-only raw fetched snapshot.
type EvidenceSource struct {
	ent.Schema
}

// Fields of the EvidenceSource.
func (EvidenceSource) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Unique().
			Immutable(),
		field.String("workflow_id").
			Immutable(),
		field.String("url").
			Immutable(),
		field.String("canonical_url").
			Immutable(),
		field.Time("fetched_at").
			Default(time.Now).
			Immutable(),
		field.String("content_hash").
			Immutable().
			Comment("sha-256 over canonical URL + markdown + html"),
		field.Text("html").
			Immutable(),
		field.Text("markdown").
			Immutable(),
	}
}

// Edges of the EvidenceSource.
func (EvidenceSource) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("workflow", Workflow.Type).
			Ref("evidence_sources").
			Field("workflow_id").
			Unique().
			Required().
			Immutable(),
	}
}

// Indexes of the EvidenceSource.
func (EvidenceSource) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("canonical_url"),
		index.Fields("content_hash"),
		index.Fields("workflow_id"),
	}
}
