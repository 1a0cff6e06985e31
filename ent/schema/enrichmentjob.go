package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// EnrichmentJob holds the schema definition for a per-variant follow-up job
// triggered when a variant's quality state is needs_enrichment.
type EnrichmentJob struct {
	ent.Schema
}

// Fields of the EnrichmentJob.
func (EnrichmentJob) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Unique().
			Immutable(),
		field.String("variant_id").
			Immutable(),
		field.String("workflow_id"),
		field.Enum("status").
			Values("pending", "in_progress", "completed", "failed").
			Default("pending"),
		field.String("reason").
			Optional().
			Nillable(),
		field.Int("attempt_count").
			Default(0).
			Comment("Cumulative across reopenings of a previously failed job"),
		field.String("last_error").
			Optional().
			Nillable(),
		field.Time("completed_at").
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

// Edges of the EnrichmentJob.
func (EnrichmentJob) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("variant", CableVariant.Type).
			Ref("enrichment_jobs").
			Field("variant_id").
			Unique().
			Required().
			Immutable(),
	}
}

// Indexes of the EnrichmentJob.
func (EnrichmentJob) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("variant_id"),
		index.Fields("variant_id", "status"),
		index.Fields("status"),
	}
}
