package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Workflow holds the schema definition for a seed-ingestion run.
type Workflow struct {
	ent.Schema
}

// Fields of the Workflow.
func (Workflow) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Unique().
			Immutable(),
		field.Enum("status").
			Values("running", "completed", "failed").
			Default("running"),
		field.Strings("allowed_domains").
			Optional().
			Comment("Empty means all hosts allowed"),
		field.Strings("seed_urls"),
		field.Time("started_at").
			Default(time.Now).
			Immutable(),
		field.Time("finished_at").
			Optional().
			Nillable(),
		field.Int("total_items").
			Default(0),
		field.Int("completed_items").
			Default(0),
		field.Int("failed_items").
			Default(0),
		field.String("last_error").
			Optional().
			Nillable().
			Comment("First observed item error, preserved across the run"),
	}
}

// Edges of the Workflow.
func (Workflow) Edges() []ent.Edge {
	return []ent.Edge{
		edge.To("items", WorkflowItem.Type),
		edge.To("evidence_sources", EvidenceSource.Type),
		edge.To("normalized_specs", NormalizedSpec.Type),
	}
}

// Indexes of the Workflow.
func (Workflow) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("status"),
		index.Fields("started_at"),
	}
}
