package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ManualInferenceSession holds the schema definition for a per-workspace
// free-text cable inference session.
type ManualInferenceSession struct {
	ent.Schema
}

// Fields of the ManualInferenceSession.
func (ManualInferenceSession) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("workspace_id").
			Unique().
			Immutable().
			Comment("Normalized lower-case trimmed workspace id"),
		field.JSON("draft", map[string]interface{}{}).
			Optional(),
		field.Text("prompt").
			Optional().
			Nillable(),
		field.Enum("status").
			Values("idle", "inference_running", "needs_followup", "ready", "failed").
			Default("idle"),
		field.Float("confidence").
			Default(0),
		field.Enum("confidence_band").
			Values("low", "medium", "high").
			Optional().
			Nillable(),
		field.JSON("notes", []string{}).
			Optional(),
		field.JSON("follow_up_questions", []FollowUpQuestion{}).
			Optional(),
		field.Int("answered_question_count").
			Default(0),
		field.Bool("llm_used").
			Default(false),
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

// FollowUpQuestion is a single yes/no/skip prompt used to resolve one uncertainty category.
type FollowUpQuestion struct {
	ID          string            `json:"id"`
	Category    string            `json:"category"` // power, data, video, connector
	Prompt      string            `json:"prompt"`
	Status      string            `json:"status"` // pending, answered
	ApplyIfYes  map[string]any    `json:"applyIfYes,omitempty"`
	ApplyIfNo   map[string]any    `json:"applyIfNo,omitempty"`
	ApplyIfSkip map[string]any    `json:"applyIfSkip,omitempty"`
	Answer      string            `json:"answer,omitempty"` // yes, no, skip
}

// Indexes of the ManualInferenceSession.
func (ManualInferenceSession) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("status"),
	}
}
