package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// WorkflowItem holds the schema definition for a single seed URL within a Workflow.
type WorkflowItem struct {
	ent.Schema
}

// Fields of the WorkflowItem.
func (WorkflowItem) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Unique().
			Immutable(),
		field.String("workflow_id").
			Immutable(),
		field.String("url"),
		field.String("canonical_url"),
		field.Enum("status").
			Values("pending", "in_progress", "completed", "failed").
			Default("pending"),
		field.Int("attempt_count").
			Default(0),
		field.String("evidence_source_id").
			Optional().
			Nillable(),
		field.String("normalized_spec_id").
			Optional().
			Nillable(),
		field.String("last_error").
			Optional().
			Nillable(),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

// Edges of the WorkflowItem.
func (WorkflowItem) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("workflow", Workflow.Type).
			Ref("items").
			Field("workflow_id").
			Unique().
			Required().
			Immutable(),
	}
}

// Indexes of the WorkflowItem.
func (WorkflowItem) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("workflow_id"),
		index.Fields("workflow_id", "status"),
		index.Fields("canonical_url"),
	}
}
