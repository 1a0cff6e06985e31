package ingest

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cableintel/catalog/ent"
	"github.com/cableintel/catalog/ent/workflow"
	"github.com/cableintel/catalog/pkg/evidence"
	"github.com/cableintel/catalog/pkg/extract"
	"github.com/cableintel/catalog/pkg/shared/apperrors"
	"github.com/cableintel/catalog/pkg/shared/retry"
	"github.com/cableintel/catalog/pkg/variant"
)

// Config bounds the engine's retry policy and batch size, mirroring
// config.IngestConfig without importing the config package directly so the
// engine stays testable with ad hoc values.
type Config struct {
	DefaultMaxItems   int
	MaxParseRetries   int
	InitialRetryDelay time.Duration
	MaxRetryDelay     time.Duration
}

// Engine runs seed-ingestion workflows end to end.
type Engine struct {
	client    *ent.Client
	evidence  *evidence.Store
	variants  *variant.Store
	extractor *extract.Registry
	cfg       Config
}

// NewEngine builds a workflow engine.
func NewEngine(client *ent.Client, ev *evidence.Store, variants *variant.Store, extractor *extract.Registry, cfg Config) *Engine {
	return &Engine{client: client, evidence: ev, variants: variants, extractor: extractor, cfg: cfg}
}

// RunSeedIngestRequest is the input to RunSeedIngest.
type RunSeedIngestRequest struct {
	SeedURLs       []string
	AllowedDomains []string
	MaxItems       int
}

// RunSeedIngestResult is the workflow's aggregate outcome.
type RunSeedIngestResult struct {
	WorkflowRunID  string
	TotalItems     int
	CompletedItems int
	FailedItems    int
	Status         string
}

// RunSeedIngest executes one ingestion run end to end: normalize seed URLs,
// create the Workflow + WorkflowItem rows, process each item sequentially
// with bounded retries, and finalize the aggregate status.
func (e *Engine) RunSeedIngest(ctx context.Context, req RunSeedIngestRequest) (*RunSeedIngestResult, error) {
	maxItems := req.MaxItems
	if maxItems <= 0 {
		maxItems = e.cfg.DefaultMaxItems
	}

	urls := NormalizeSeedURLs(req.SeedURLs, req.AllowedDomains, maxItems)

	wf, err := e.client.Workflow.Create().
		SetID(uuid.New().String()).
		SetStatus(workflow.StatusRunning).
		SetAllowedDomains(req.AllowedDomains).
		SetSeedUrls(urls).
		SetTotalItems(len(urls)).
		Save(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError("create_workflow", err)
	}

	items := make([]*ent.WorkflowItem, 0, len(urls))
	for _, u := range urls {
		item, err := e.client.WorkflowItem.Create().
			SetID(uuid.New().String()).
			SetWorkflowID(wf.ID).
			SetURL(u).
			SetCanonicalURL(u).
			Save(ctx)
		if err != nil {
			return nil, apperrors.NewPersistenceError("create_workflow_item", err)
		}
		items = append(items, item)
	}

	var firstErr string
	completed, failed := 0, 0

	for _, item := range items {
		if err := e.runItem(ctx, wf.ID, item); err != nil {
			failed++
			if firstErr == "" {
				firstErr = err.Error()
			}
		} else {
			completed++
		}
	}

	status := workflow.StatusCompleted
	if failed > 0 {
		status = workflow.StatusFailed
	}

	update := e.client.Workflow.UpdateOne(wf).
		SetStatus(status).
		SetCompletedItems(completed).
		SetFailedItems(failed).
		SetFinishedAt(time.Now())
	if firstErr != "" {
		update.SetLastError(firstErr)
	}
	wf, err = update.Save(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError("finalize_workflow", err)
	}

	return &RunSeedIngestResult{
		WorkflowRunID:  wf.ID,
		TotalItems:     wf.TotalItems,
		CompletedItems: wf.CompletedItems,
		FailedItems:    wf.FailedItems,
		Status:         string(wf.Status),
	}, nil
}

// runItem drives one WorkflowItem through its bounded retry loop.
func (e *Engine) runItem(ctx context.Context, workflowID string, item *ent.WorkflowItem) error {
	b := &retry.Backoff{Base: e.cfg.InitialRetryDelay, Max: e.cfg.MaxRetryDelay}

	err := retry.Do(ctx, b, e.cfg.MaxParseRetries, nil, func(ctx context.Context) error {
		var attemptErr error
		item, attemptErr = e.attemptItem(ctx, workflowID, item)
		return attemptErr
	})
	if err != nil {
		if _, updErr := e.client.WorkflowItem.UpdateOne(item).
			SetStatus("failed").
			SetLastError(err.Error()).
			Save(ctx); updErr != nil {
			return apperrors.NewPersistenceError("mark_item_failed", updErr)
		}
		return err
	}
	return nil
}

// attemptItem runs exactly one attempt: mark in_progress, extract, and on
// success insert evidence + upsert variant/spec and mark completed. It
// always returns the freshest row so the caller's retry loop tracks
// attemptCount correctly across attempts.
func (e *Engine) attemptItem(ctx context.Context, workflowID string, item *ent.WorkflowItem) (*ent.WorkflowItem, error) {
	item, err := e.client.WorkflowItem.UpdateOne(item).
		SetStatus("in_progress").
		SetAttemptCount(item.AttemptCount + 1).
		Save(ctx)
	if err != nil {
		return item, apperrors.NewPersistenceError("mark_item_in_progress", err)
	}

	result, err := e.extractor.ExtractFromURL(ctx, item.URL, item.CanonicalURL)
	if err != nil {
		item, updErr := e.client.WorkflowItem.UpdateOne(item).SetStatus("pending").SetLastError(err.Error()).Save(ctx)
		if updErr != nil {
			return item, apperrors.NewPersistenceError("record_item_attempt_error", updErr)
		}
		return item, err
	}

	evidenceRow, err := e.evidence.Insert(ctx, workflowID, result.Source.URL, result.Source.CanonicalURL, result.Source.HTML, result.Source.Markdown)
	if err != nil {
		return item, err
	}
	extract.StampEvidenceSourceID(result.Cables, evidenceRow.ID)

	var firstSpecID string
	for _, cable := range result.Cables {
		upserted, err := e.variants.UpsertVariantAndInsertSpec(ctx, workflowID, evidenceRow.ID, cable)
		if err != nil {
			return item, err
		}
		if firstSpecID == "" {
			firstSpecID = upserted.Spec.ID
		}
	}

	update := e.client.WorkflowItem.UpdateOne(item).
		SetStatus("completed").
		SetEvidenceSourceID(evidenceRow.ID).
		ClearLastError()
	if firstSpecID != "" {
		update = update.SetNormalizedSpecID(firstSpecID)
	}
	item, err = update.Save(ctx)
	if err != nil {
		return item, apperrors.NewPersistenceError("mark_item_completed", err)
	}
	return item, nil
}
