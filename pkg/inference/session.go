package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cableintel/catalog/ent"
	"github.com/cableintel/catalog/ent/manualinferencesession"
	entschema "github.com/cableintel/catalog/ent/schema"
	"github.com/cableintel/catalog/pkg/llmgateway"
	"github.com/cableintel/catalog/pkg/shared/apperrors"
)

// Status is the manual inference session's lifecycle state.
type Status string

const (
	StatusIdle             Status = "idle"
	StatusInferenceRunning Status = "inference_running"
	StatusNeedsFollowup    Status = "needs_followup"
	StatusReady            Status = "ready"
	StatusFailed           Status = "failed"
)

// ManualInferenceSession is a hydrated snapshot of one operator's
// in-progress draft, read from the manual_inference_sessions table.
type ManualInferenceSession struct {
	WorkspaceID string             `json:"workspaceId"`
	Status      Status             `json:"status"`
	Draft       Draft              `json:"draft"`
	Confidence  float64            `json:"confidence"`
	Band        ConfidenceBand     `json:"band"`
	Notes       []string           `json:"notes"`
	Questions   []FollowUpQuestion `json:"questions"`
	Error       string             `json:"error,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// Manager persists manual inference sessions, keyed by normalized
// workspace id, in the manual_inference_sessions table.
type Manager struct {
	client *ent.Client
	llm    llmgateway.Client
	model  string
}

// NewManager builds a session manager. llm may be nil, in which case
// SubmitPrompt runs the deterministic pass only.
func NewManager(client *ent.Client, llm llmgateway.Client, model string) *Manager {
	return &Manager{client: client, llm: llm, model: model}
}

func normalizeWorkspaceID(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// EnsureSession returns the existing session for workspaceID, creating an
// idle one if none exists.
func (m *Manager) EnsureSession(ctx context.Context, workspaceID string) (*ManualInferenceSession, error) {
	id := normalizeWorkspaceID(workspaceID)

	row, err := m.client.ManualInferenceSession.Get(ctx, id)
	if err == nil {
		return fromRow(row)
	}
	if !ent.IsNotFound(err) {
		return nil, apperrors.NewPersistenceError("get_manual_inference_session", err)
	}

	row, err = m.client.ManualInferenceSession.Create().SetID(id).Save(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError("create_manual_inference_session", err)
	}
	return fromRow(row)
}

// GetSession returns the session for workspaceID, or a NotFoundError.
func (m *Manager) GetSession(ctx context.Context, workspaceID string) (*ManualInferenceSession, error) {
	id := normalizeWorkspaceID(workspaceID)

	row, err := m.client.ManualInferenceSession.Get(ctx, id)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("manual_inference_session", workspaceID)
		}
		return nil, apperrors.NewPersistenceError("get_manual_inference_session", err)
	}
	return fromRow(row)
}

// ResetSession discards any draft progress for workspaceID, returning it to idle.
func (m *Manager) ResetSession(ctx context.Context, workspaceID string) (*ManualInferenceSession, error) {
	id := normalizeWorkspaceID(workspaceID)

	row, err := m.client.ManualInferenceSession.UpdateOneID(id).
		SetDraft(map[string]interface{}{}).
		ClearPrompt().
		SetStatus(manualinferencesession.StatusIdle).
		SetConfidence(0).
		ClearConfidenceBand().
		SetNotes([]string{}).
		SetFollowUpQuestions([]entschema.FollowUpQuestion{}).
		SetAnsweredQuestionCount(0).
		SetLlmUsed(false).
		ClearLastError().
		Save(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return m.EnsureSession(ctx, workspaceID)
		}
		return nil, apperrors.NewPersistenceError("reset_manual_inference_session", err)
	}
	return fromRow(row)
}

// PatchDraft merges an operator-supplied patch directly into the session's
// draft, outside the inference pipeline, and recomputes status from the
// draft's remaining gaps.
func (m *Manager) PatchDraft(ctx context.Context, workspaceID string, patch Draft) (*ManualInferenceSession, error) {
	id := normalizeWorkspaceID(workspaceID)

	row, err := m.client.ManualInferenceSession.Get(ctx, id)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("manual_inference_session", workspaceID)
		}
		return nil, apperrors.NewPersistenceError("get_manual_inference_session", err)
	}

	draft, err := mapToDraft(row.Draft)
	if err != nil {
		return nil, apperrors.NewPersistenceError("decode_draft", err)
	}
	questions, err := questionsFromSchema(row.FollowUpQuestions)
	if err != nil {
		return nil, apperrors.NewPersistenceError("decode_follow_up_questions", err)
	}

	merged := applyPatch(draft, patch)
	remaining := deriveUncertaintiesFromPatch(merged)
	remainingQuestions := pendingQuestions(questions)

	status := row.Status
	if len(remainingQuestions) == 0 && len(remaining) == 0 {
		status = manualinferencesession.StatusReady
	}

	draftMap, err := draftToMap(merged)
	if err != nil {
		return nil, apperrors.NewPersistenceError("encode_draft", err)
	}
	schemaQuestions, err := questionsToSchema(remainingQuestions)
	if err != nil {
		return nil, apperrors.NewPersistenceError("encode_follow_up_questions", err)
	}

	updated, err := row.Update().
		SetDraft(draftMap).
		SetFollowUpQuestions(schemaQuestions).
		SetStatus(status).
		Save(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError("update_manual_inference_session", err)
	}
	return fromRow(updated)
}

// SubmitPrompt runs the deterministic pass, optionally the LLM pass, merges
// them, and derives the session's follow-up questions and status.
func (m *Manager) SubmitPrompt(ctx context.Context, workspaceID, prompt string) (*ManualInferenceSession, error) {
	id := normalizeWorkspaceID(workspaceID)

	row, err := m.client.ManualInferenceSession.Get(ctx, id)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("manual_inference_session", workspaceID)
		}
		return nil, apperrors.NewPersistenceError("get_manual_inference_session", err)
	}

	if _, err := row.Update().SetStatus(manualinferencesession.StatusInferenceRunning).Save(ctx); err != nil {
		return nil, apperrors.NewPersistenceError("update_manual_inference_session", err)
	}

	det := ParseDeterministic(prompt)

	var llmResult *LLMResult
	llmUsed := false
	if m.llm != nil {
		res, llmErr := RunLLMPass(ctx, m.llm, m.model, prompt)
		if llmErr == nil {
			llmResult = res
			llmUsed = true
		}
	}

	merged := Merge(det, llmResult)
	notes := merged.Notes
	if notes == nil {
		notes = []string{}
	}

	questions := BuildFollowUpQuestions(merged.Uncertainties)
	schemaQuestions, err := questionsToSchema(questions)
	if err != nil {
		return nil, apperrors.NewPersistenceError("encode_follow_up_questions", err)
	}
	draftMap, err := draftToMap(merged.Draft)
	if err != nil {
		return nil, apperrors.NewPersistenceError("encode_draft", err)
	}

	status := manualinferencesession.StatusReady
	if len(questions) > 0 && merged.Confidence < 0.78 {
		status = manualinferencesession.StatusNeedsFollowup
	}

	updated, err := row.Update().
		SetPrompt(prompt).
		SetDraft(draftMap).
		SetConfidence(merged.Confidence).
		SetConfidenceBand(manualinferencesession.ConfidenceBand(merged.Band)).
		SetNotes(notes).
		SetFollowUpQuestions(schemaQuestions).
		SetStatus(status).
		SetLlmUsed(llmUsed).
		ClearLastError().
		Save(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError("update_manual_inference_session", err)
	}
	return fromRow(updated)
}

// AnswerChoice is the operator's response to a follow-up question.
type AnswerChoice string

const (
	AnswerYes  AnswerChoice = "yes"
	AnswerNo   AnswerChoice = "no"
	AnswerSkip AnswerChoice = "skip"
)

// AnswerQuestion applies the chosen branch's patch, marks the question
// answered, bumps confidence, and recomputes status from the remaining
// pending question count.
func (m *Manager) AnswerQuestion(ctx context.Context, workspaceID, questionID string, choice AnswerChoice) (*ManualInferenceSession, error) {
	id := normalizeWorkspaceID(workspaceID)

	row, err := m.client.ManualInferenceSession.Get(ctx, id)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("manual_inference_session", workspaceID)
		}
		return nil, apperrors.NewPersistenceError("get_manual_inference_session", err)
	}

	questions, err := questionsFromSchema(row.FollowUpQuestions)
	if err != nil {
		return nil, apperrors.NewPersistenceError("decode_follow_up_questions", err)
	}

	idx := -1
	for i, q := range questions {
		if q.ID == questionID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, apperrors.NewNotFoundError("follow_up_question", questionID)
	}
	if questions[idx].Answered {
		return fromRow(row)
	}

	q := questions[idx]
	var patch Draft
	switch choice {
	case AnswerYes:
		patch = q.ApplyIfYes
	case AnswerNo:
		patch = q.ApplyIfNo
	case AnswerSkip:
		patch = q.ApplyIfSkip
	default:
		return nil, apperrors.NewValidationError("choice", fmt.Sprintf("unknown answer choice %q", choice))
	}

	draft, err := mapToDraft(row.Draft)
	if err != nil {
		return nil, apperrors.NewPersistenceError("decode_draft", err)
	}
	draft = applyPatch(draft, patch)
	questions[idx].Answered = true

	confidence := row.Confidence
	if choice == AnswerSkip {
		confidence += 0.03
	} else {
		confidence += 0.08
	}
	if confidence > 0.99 {
		confidence = 0.99
	}
	band := Band(confidence)

	status := row.Status
	if len(pendingQuestions(questions)) == 0 {
		status = manualinferencesession.StatusReady
	}

	draftMap, err := draftToMap(draft)
	if err != nil {
		return nil, apperrors.NewPersistenceError("encode_draft", err)
	}
	schemaQuestions, err := questionsToSchema(questions)
	if err != nil {
		return nil, apperrors.NewPersistenceError("encode_follow_up_questions", err)
	}

	updated, err := row.Update().
		SetDraft(draftMap).
		SetFollowUpQuestions(schemaQuestions).
		SetConfidence(confidence).
		SetConfidenceBand(manualinferencesession.ConfidenceBand(band)).
		SetStatus(status).
		AddAnsweredQuestionCount(1).
		Save(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError("update_manual_inference_session", err)
	}
	return fromRow(updated)
}

func pendingQuestions(questions []FollowUpQuestion) []FollowUpQuestion {
	var out []FollowUpQuestion
	for _, q := range questions {
		if !q.Answered {
			out = append(out, q)
		}
	}
	return out
}

// fromRow translates a persisted row into the domain session shape.
func fromRow(row *ent.ManualInferenceSession) (*ManualInferenceSession, error) {
	draft, err := mapToDraft(row.Draft)
	if err != nil {
		return nil, apperrors.NewPersistenceError("decode_draft", err)
	}
	questions, err := questionsFromSchema(row.FollowUpQuestions)
	if err != nil {
		return nil, apperrors.NewPersistenceError("decode_follow_up_questions", err)
	}

	var band ConfidenceBand
	if row.ConfidenceBand != nil {
		band = ConfidenceBand(*row.ConfidenceBand)
	}
	var lastError string
	if row.LastError != nil {
		lastError = *row.LastError
	}

	return &ManualInferenceSession{
		WorkspaceID: row.ID,
		Status:      Status(row.Status),
		Draft:       draft,
		Confidence:  row.Confidence,
		Band:        band,
		Notes:       row.Notes,
		Questions:   questions,
		Error:       lastError,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

// draftToMap encodes a Draft into the generic map the draft JSON column stores.
func draftToMap(d Draft) (map[string]interface{}, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	m := map[string]interface{}{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// mapToDraft decodes the draft JSON column back into a Draft.
func mapToDraft(m map[string]interface{}) (Draft, error) {
	var d Draft
	if len(m) == 0 {
		return d, nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return d, err
	}
	if err := json.Unmarshal(raw, &d); err != nil {
		return d, err
	}
	return d, nil
}

// questionsToSchema converts domain follow-up questions to the shape the
// follow_up_questions JSON column stores.
func questionsToSchema(questions []FollowUpQuestion) ([]entschema.FollowUpQuestion, error) {
	out := make([]entschema.FollowUpQuestion, 0, len(questions))
	for _, q := range questions {
		yes, err := draftToMap(q.ApplyIfYes)
		if err != nil {
			return nil, err
		}
		no, err := draftToMap(q.ApplyIfNo)
		if err != nil {
			return nil, err
		}
		skip, err := draftToMap(q.ApplyIfSkip)
		if err != nil {
			return nil, err
		}

		status := "pending"
		if q.Answered {
			status = "answered"
		}
		out = append(out, entschema.FollowUpQuestion{
			ID:          q.ID,
			Category:    string(q.Category),
			Prompt:      q.Text,
			Status:      status,
			ApplyIfYes:  yes,
			ApplyIfNo:   no,
			ApplyIfSkip: skip,
		})
	}
	return out, nil
}

// questionsFromSchema converts the persisted follow-up question rows back
// into the domain shape the inference pipeline operates on.
func questionsFromSchema(rows []entschema.FollowUpQuestion) ([]FollowUpQuestion, error) {
	out := make([]FollowUpQuestion, 0, len(rows))
	for _, r := range rows {
		yes, err := mapToDraft(r.ApplyIfYes)
		if err != nil {
			return nil, err
		}
		no, err := mapToDraft(r.ApplyIfNo)
		if err != nil {
			return nil, err
		}
		skip, err := mapToDraft(r.ApplyIfSkip)
		if err != nil {
			return nil, err
		}

		out = append(out, FollowUpQuestion{
			ID:          r.ID,
			Category:    Uncertainty(r.Category),
			Text:        r.Prompt,
			Answered:    r.Status == "answered",
			ApplyIfYes:  yes,
			ApplyIfNo:   no,
			ApplyIfSkip: skip,
		})
	}
	return out, nil
}
