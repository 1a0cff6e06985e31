// Package reports implements the read-side queries that sit on top of the
// ingestion pipeline's tables: the ranked cable list, per-workflow reports,
// and the enrichment queue summary.
package reports

import (
	"context"
	"sort"

	"github.com/cableintel/catalog/ent"
	"github.com/cableintel/catalog/ent/enrichmentjob"
	"github.com/cableintel/catalog/ent/normalizedspec"
	"github.com/cableintel/catalog/ent/workflow"
	"github.com/cableintel/catalog/ent/workflowitem"
	"github.com/cableintel/catalog/pkg/rank"
	"github.com/cableintel/catalog/pkg/shared/apperrors"
)

// Service answers the catalog's read-side queries.
type Service struct {
	client *ent.Client
}

// NewService builds a report service.
func NewService(client *ent.Client) *Service {
	return &Service{client: client}
}

// TopCables runs the getTopCables query: scan the newest specs, score and
// prune them, filter to ready quality, and apply the optional search boost.
func (s *Service) TopCables(ctx context.Context, opts rank.Options) ([]rank.TopCableRow, error) {
	candidates, err := s.scanCandidates(ctx, rank.ScanLimit(opts.Limit))
	if err != nil {
		return nil, err
	}
	return rank.BuildTopCables(candidates, opts), nil
}

// TopCablesForReview runs the same scoring, pruning, dedupe and ordering
// but keeps rows of every quality state (including needs_enrichment), for
// operator review screens. It applies no search boost.
func (s *Service) TopCablesForReview(ctx context.Context, limit int) ([]rank.TopCableRow, error) {
	candidates, err := s.scanCandidates(ctx, rank.ScanLimit(limit))
	if err != nil {
		return nil, err
	}

	rows := make([]rank.TopCableRow, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, rank.TopCableRow{Candidate: c, Score: rank.Score(c)})
	}
	rows = rank.PickBestSpecPerVariant(rows)
	rows = rank.PruneLegacyRows(rows)
	rows = rank.DedupeBySKU(rows)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		return rows[i].SpecCreatedAt.After(rows[j].SpecCreatedAt)
	})

	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, nil
}

// scanCandidates pulls the newest normalized specs, bounded by scanLimit,
// and hydrates each with its variant. Evidence sources are not loaded:
// EvidenceFetchedAt is filled with the spec's creation time.
func (s *Service) scanCandidates(ctx context.Context, scanLimit int) ([]rank.Candidate, error) {
	query := s.client.NormalizedSpec.Query().
		Order(ent.Desc(normalizedspec.FieldCreatedAt))
	if scanLimit > 0 {
		query = query.Limit(scanLimit)
	}
	specs, err := query.All(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError("scan_normalized_specs", err)
	}

	candidates := make([]rank.Candidate, 0, len(specs))
	for _, spec := range specs {
		variant, err := s.client.CableVariant.Get(ctx, spec.VariantID)
		if err != nil {
			if ent.IsNotFound(err) {
				continue
			}
			return nil, apperrors.NewPersistenceError("load_variant", err)
		}

		candidates = append(candidates, rank.Candidate{
			VariantID:     variant.ID,
			SpecID:        spec.ID,
			Brand:         variant.Brand,
			Model:         variant.Model,
			Variant:       derefString(variant.Variant),
			SKU:           derefString(variant.Sku),
			ConnectorFrom: variant.ConnectorFrom,
			ConnectorTo:   variant.ConnectorTo,
			ProductURL:    derefString(variant.ProductURL),
			ImageURLs:     variant.ImageUrls,
			QualityState:  string(variant.QualityState),

			MaxWatts:      spec.MaxWatts,
			PDSupported:   spec.PdSupported,
			EPRSupported:  spec.EprSupported,
			USBGeneration: spec.UsbGeneration,
			MaxGbps:       spec.MaxGbps,
			VideoExplicit: spec.VideoExplicitlySupported,
			MaxResolution: spec.MaxResolution,
			MaxRefreshHz:  spec.MaxRefreshHz,
			HasEvidence:   len(spec.EvidenceSourceIds) > 0,

			SpecCreatedAt:     spec.CreatedAt,
			EvidenceFetchedAt: spec.CreatedAt,
		})
	}
	return candidates, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// WorkflowReport is the hydrated getWorkflowReport/getLatestWorkflowReport result.
type WorkflowReport struct {
	Workflow    *ent.Workflow       `json:"workflow"`
	Cables      []rank.TopCableRow  `json:"cables"`
	FailedItems []*ent.WorkflowItem `json:"failedItems"`
}

// WorkflowReportByID loads one workflow, its ranked cables, and its failed items.
func (s *Service) WorkflowReportByID(ctx context.Context, workflowRunID string, limit int) (*WorkflowReport, error) {
	wf, err := s.client.Workflow.Get(ctx, workflowRunID)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("workflow", workflowRunID)
		}
		return nil, apperrors.NewPersistenceError("get_workflow", err)
	}
	return s.buildWorkflowReport(ctx, wf, limit)
}

// LatestWorkflowReport returns the report for the most recently started
// workflow, or nil if none exist.
func (s *Service) LatestWorkflowReport(ctx context.Context, limit int) (*WorkflowReport, error) {
	wf, err := s.client.Workflow.Query().
		Order(ent.Desc(workflow.FieldStartedAt)).
		First(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, apperrors.NewPersistenceError("get_latest_workflow", err)
	}
	return s.buildWorkflowReport(ctx, wf, limit)
}

func (s *Service) buildWorkflowReport(ctx context.Context, wf *ent.Workflow, limit int) (*WorkflowReport, error) {
	specs, err := s.client.NormalizedSpec.Query().
		Where(normalizedspec.WorkflowIDEQ(wf.ID)).
		Order(ent.Desc(normalizedspec.FieldCreatedAt)).
		All(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list_workflow_specs", err)
	}

	candidates := make([]rank.Candidate, 0, len(specs))
	for _, spec := range specs {
		variant, err := s.client.CableVariant.Get(ctx, spec.VariantID)
		if err != nil {
			if ent.IsNotFound(err) {
				continue
			}
			return nil, apperrors.NewPersistenceError("load_variant", err)
		}
		candidates = append(candidates, rank.Candidate{
			VariantID:         variant.ID,
			SpecID:            spec.ID,
			Brand:             variant.Brand,
			Model:             variant.Model,
			Variant:           derefString(variant.Variant),
			SKU:               derefString(variant.Sku),
			ConnectorFrom:     variant.ConnectorFrom,
			ConnectorTo:       variant.ConnectorTo,
			ProductURL:        derefString(variant.ProductURL),
			ImageURLs:         variant.ImageUrls,
			QualityState:      string(variant.QualityState),
			MaxWatts:          spec.MaxWatts,
			PDSupported:       spec.PdSupported,
			EPRSupported:      spec.EprSupported,
			USBGeneration:     spec.UsbGeneration,
			MaxGbps:           spec.MaxGbps,
			VideoExplicit:     spec.VideoExplicitlySupported,
			MaxResolution:     spec.MaxResolution,
			MaxRefreshHz:      spec.MaxRefreshHz,
			HasEvidence:       len(spec.EvidenceSourceIds) > 0,
			SpecCreatedAt:     spec.CreatedAt,
			EvidenceFetchedAt: spec.CreatedAt,
		})
	}

	cables := rank.BuildTopCables(candidates, rank.Options{Limit: limit})

	failedItems, err := s.client.WorkflowItem.Query().
		Where(workflowitem.WorkflowIDEQ(wf.ID), workflowitem.StatusEQ(workflowitem.StatusFailed)).
		All(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list_failed_items", err)
	}

	return &WorkflowReport{Workflow: wf, Cables: cables, FailedItems: failedItems}, nil
}

// EnrichmentQueueSummary reports the counts of enrichment jobs by status.
type EnrichmentQueueSummary struct {
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Failed     int `json:"failed"`
}

// GetEnrichmentQueueSummary counts enrichment jobs by status.
func (s *Service) GetEnrichmentQueueSummary(ctx context.Context) (*EnrichmentQueueSummary, error) {
	pending, err := s.client.EnrichmentJob.Query().Where(enrichmentjob.StatusEQ(enrichmentjob.StatusPending)).Count(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError("count_pending_jobs", err)
	}
	inProgress, err := s.client.EnrichmentJob.Query().Where(enrichmentjob.StatusEQ(enrichmentjob.StatusInProgress)).Count(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError("count_in_progress_jobs", err)
	}
	failed, err := s.client.EnrichmentJob.Query().Where(enrichmentjob.StatusEQ(enrichmentjob.StatusFailed)).Count(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError("count_failed_jobs", err)
	}

	return &EnrichmentQueueSummary{Pending: pending, InProgress: inProgress, Failed: failed}, nil
}
