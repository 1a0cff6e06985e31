package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// CableVariant holds the schema definition for a deduplicated purchasable cable SKU/length/color.
type CableVariant struct {
	ent.Schema
}

// Fields of the CableVariant.
func (CableVariant) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Unique().
			Immutable(),
		field.String("brand"),
		field.String("model"),
		field.String("variant").
			Optional().
			Nillable(),
		field.String("sku").
			Optional().
			Nillable(),
		field.String("connector_from"),
		field.String("connector_to"),
		field.String("product_url").
			Optional().
			Nillable(),
		field.Strings("image_urls").
			Optional(),
		field.Enum("quality_state").
			Values("ready", "needs_enrichment").
			Default("needs_enrichment"),
		field.Strings("quality_issues").
			Optional(),
		field.Time("quality_updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

// Edges of the CableVariant.
func (CableVariant) Edges() []ent.Edge {
	return []ent.Edge{
		edge.To("normalized_specs", NormalizedSpec.Type),
		edge.To("enrichment_jobs", EnrichmentJob.Type),
	}
}

// Indexes of the CableVariant.
func (CableVariant) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("brand", "sku", "connector_from", "connector_to").
			Unique(),
		index.Fields("brand", "model"),
		index.Fields("connector_from", "connector_to"),
		index.Fields("quality_state"),
	}
}
