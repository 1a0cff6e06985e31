package variant

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cableintel/catalog/ent"
	"github.com/cableintel/catalog/ent/cablevariant"
	"github.com/cableintel/catalog/ent/enrichmentjob"
	"github.com/cableintel/catalog/pkg/shared/apperrors"
)

// Store owns the CableVariant / NormalizedSpec / EnrichmentJob tables and
// implements the upsert + quality-gating + enrichment-job side effects that
// fire on every ingested spec.
type Store struct {
	client *ent.Client
}

// NewStore builds a variant Store over client.
func NewStore(client *ent.Client) *Store {
	if client == nil {
		panic("variant.NewStore: client must not be nil")
	}
	return &Store{client: client}
}

// UpsertResult is the outcome of one upsertVariantAndInsertSpec invocation.
type UpsertResult struct {
	Variant *ent.CableVariant
	Spec    *ent.NormalizedSpec
}

// UpsertVariantAndInsertSpec matches or creates the CableVariant for parsed,
// merges it, reassesses quality, inserts one NormalizedSpec, and applies the
// enrichment job side effects. The whole operation runs inside one
// transaction so the variant match, variant write, spec write, and job
// mutation observe a consistent snapshot.
func (s *Store) UpsertVariantAndInsertSpec(ctx context.Context, workflowID, evidenceSourceID string, parsed ParsedCable) (*UpsertResult, error) {
	tx, err := s.client.Tx(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError("begin_upsert_variant_tx", err)
	}
	defer tx.Rollback()

	existing, err := matchVariant(ctx, tx, parsed)
	if err != nil {
		return nil, apperrors.NewPersistenceError("match_variant", err)
	}

	cv, err := upsertVariant(ctx, tx, existing, parsed)
	if err != nil {
		return nil, apperrors.NewPersistenceError("write_variant", err)
	}

	state, issues := AssessQuality(QualityInput{
		Brand:         cv.Brand,
		Model:         cv.Model,
		ConnectorFrom: cv.ConnectorFrom,
		ConnectorTo:   cv.ConnectorTo,
		ProductURL:    derefString(cv.ProductURL),
		ImageURLs:     cv.ImageUrls,
		MaxWatts:      parsed.Power.MaxWatts,
		EvidenceRefs:  parsed.EvidenceRefs,
	})

	cv, err = tx.CableVariant.UpdateOne(cv).
		SetQualityState(cablevariant.QualityState(state)).
		SetQualityIssues(issues).
		SetQualityUpdatedAt(time.Now()).
		Save(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError("update_variant_quality", err)
	}

	evidenceSourceIDs := []string{evidenceSourceID}
	specID := uuid.New().String()
	specCreate := tx.NormalizedSpec.Create().
		SetID(specID).
		SetWorkflowID(workflowID).
		SetVariantID(cv.ID).
		SetEvidenceSourceIds(evidenceSourceIDs).
		SetEvidenceRefs(parsed.EvidenceRefs)

	if parsed.Power.MaxWatts != nil {
		specCreate.SetMaxWatts(*parsed.Power.MaxWatts)
	}
	if parsed.Power.PDSupported != nil {
		specCreate.SetPdSupported(*parsed.Power.PDSupported)
	}
	if parsed.Power.EPRSupported != nil {
		specCreate.SetEprSupported(*parsed.Power.EPRSupported)
	}
	if parsed.Data.USBGeneration != nil {
		specCreate.SetUsbGeneration(*parsed.Data.USBGeneration)
	}
	if parsed.Data.MaxGbps != nil {
		specCreate.SetMaxGbps(*parsed.Data.MaxGbps)
	}
	if parsed.Video.ExplicitlySupported != nil {
		specCreate.SetVideoExplicitlySupported(*parsed.Video.ExplicitlySupported)
	}
	if parsed.Video.MaxResolution != nil {
		specCreate.SetMaxResolution(*parsed.Video.MaxResolution)
	}
	if parsed.Video.MaxRefreshHz != nil {
		specCreate.SetMaxRefreshHz(*parsed.Video.MaxRefreshHz)
	}

	spec, err := specCreate.Save(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError("insert_normalized_spec", err)
	}

	if state == "needs_enrichment" {
		reason := ""
		if len(issues) > 0 {
			reason = issues[0]
		}
		if err := ensurePendingEnrichmentJob(ctx, tx, cv.ID, workflowID, reason); err != nil {
			return nil, apperrors.NewPersistenceError("ensure_pending_enrichment_job", err)
		}
	} else {
		if err := completeOpenEnrichmentJobs(ctx, tx, cv.ID); err != nil {
			return nil, apperrors.NewPersistenceError("complete_enrichment_jobs", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.NewPersistenceError("commit_upsert_variant_tx", err)
	}

	return &UpsertResult{Variant: cv, Spec: spec}, nil
}

// matchVariant: by (brand, sku, connectorFrom,
// connectorTo) when sku is present, newest wins; otherwise by (brand, model)
// filtered to equal (variant?, sku?, connectorFrom, connectorTo).
func matchVariant(ctx context.Context, tx *ent.Tx, parsed ParsedCable) (*ent.CableVariant, error) {
	if parsed.SKU != "" {
		cv, err := tx.CableVariant.Query().
			Where(
				cablevariant.BrandEQ(parsed.Brand),
				cablevariant.SkuEQ(parsed.SKU),
				cablevariant.ConnectorFromEQ(parsed.ConnectorFrom),
				cablevariant.ConnectorToEQ(parsed.ConnectorTo),
			).
			Order(ent.Desc(cablevariant.FieldUpdatedAt), ent.Desc(cablevariant.FieldCreatedAt)).
			First(ctx)
		if err != nil {
			if ent.IsNotFound(err) {
				return nil, nil
			}
			return nil, err
		}
		return cv, nil
	}

	candidates, err := tx.CableVariant.Query().
		Where(
			cablevariant.BrandEQ(parsed.Brand),
			cablevariant.ModelEQ(parsed.Model),
			cablevariant.ConnectorFromEQ(parsed.ConnectorFrom),
			cablevariant.ConnectorToEQ(parsed.ConnectorTo),
		).
		Order(ent.Desc(cablevariant.FieldUpdatedAt), ent.Desc(cablevariant.FieldCreatedAt)).
		All(ctx)
	if err != nil {
		return nil, err
	}
	for _, cv := range candidates {
		if derefString(cv.Variant) == parsed.Variant && derefString(cv.Sku) == parsed.SKU {
			return cv, nil
		}
	}
	return nil, nil
}

// upsertVariant merges parsed into existing if found, or inserts a fresh
// variant from parsed as-is.
func upsertVariant(ctx context.Context, tx *ent.Tx, existing *ent.CableVariant, parsed ParsedCable) (*ent.CableVariant, error) {
	if existing == nil {
		create := tx.CableVariant.Create().
			SetID(uuid.New().String()).
			SetBrand(parsed.Brand).
			SetModel(parsed.Model).
			SetConnectorFrom(parsed.ConnectorFrom).
			SetConnectorTo(parsed.ConnectorTo).
			SetImageUrls(parsed.ImageURLs)
		if parsed.Variant != "" {
			create.SetVariant(parsed.Variant)
		}
		if parsed.SKU != "" {
			create.SetSku(parsed.SKU)
		}
		if parsed.ProductURL != "" {
			create.SetProductURL(parsed.ProductURL)
		}
		return create.Save(ctx)
	}

	mergedImages := mergeImageURLs(existing.ImageUrls, parsed.ImageURLs)
	mergedModel := mergeModel(existing.Model, parsed.Model)
	mergedSKU := mergeSKU(derefString(existing.Sku), parsed.SKU)
	mergedVariant := mergeVariantLabel(derefString(existing.Variant), parsed.Variant, mergedSKU)

	update := tx.CableVariant.UpdateOne(existing).
		SetModel(mergedModel).
		SetImageUrls(mergedImages)
	if mergedSKU != "" {
		update.SetSku(mergedSKU)
	}
	if mergedVariant != "" {
		update.SetVariant(mergedVariant)
	}
	// productUrl: existing wins; only fill when existing lacks one.
	if existing.ProductURL == nil && parsed.ProductURL != "" {
		update.SetProductURL(parsed.ProductURL)
	}

	return update.Save(ctx)
}

// ensurePendingEnrichmentJob implements the needs_enrichment side effect: it
// updates an open job in place, else reopens the newest failed job, else
// inserts a fresh pending job. The caller runs this inside the same
// transaction as the variant/spec write to preserve the at-most-one-open-job
// invariant.
func ensurePendingEnrichmentJob(ctx context.Context, tx *ent.Tx, variantID, workflowID, reason string) error {
	open, err := tx.EnrichmentJob.Query().
		Where(
			enrichmentjob.VariantIDEQ(variantID),
			enrichmentjob.StatusIn(enrichmentjob.StatusPending, enrichmentjob.StatusInProgress),
		).
		Order(ent.Desc(enrichmentjob.FieldUpdatedAt)).
		First(ctx)
	if err != nil && !ent.IsNotFound(err) {
		return err
	}
	if open != nil {
		_, err := tx.EnrichmentJob.UpdateOne(open).
			SetReason(reason).
			SetWorkflowID(workflowID).
			Save(ctx)
		return err
	}

	failed, err := tx.EnrichmentJob.Query().
		Where(
			enrichmentjob.VariantIDEQ(variantID),
			enrichmentjob.StatusEQ(enrichmentjob.StatusFailed),
		).
		Order(ent.Desc(enrichmentjob.FieldUpdatedAt)).
		First(ctx)
	if err != nil && !ent.IsNotFound(err) {
		return err
	}
	if failed != nil {
		_, err := tx.EnrichmentJob.UpdateOne(failed).
			SetStatus(enrichmentjob.StatusPending).
			SetReason(reason).
			SetWorkflowID(workflowID).
			ClearLastError().
			Save(ctx)
		return err
	}

	_, err = tx.EnrichmentJob.Create().
		SetID(uuid.New().String()).
		SetVariantID(variantID).
		SetWorkflowID(workflowID).
		SetStatus(enrichmentjob.StatusPending).
		SetReason(reason).
		Save(ctx)
	return err
}

// completeOpenEnrichmentJobs transitions every open (pending or in_progress)
// job for variantID to completed, fired when a variant becomes ready.
func completeOpenEnrichmentJobs(ctx context.Context, tx *ent.Tx, variantID string) error {
	now := time.Now()
	_, err := tx.EnrichmentJob.Update().
		Where(
			enrichmentjob.VariantIDEQ(variantID),
			enrichmentjob.StatusIn(enrichmentjob.StatusPending, enrichmentjob.StatusInProgress),
		).
		SetStatus(enrichmentjob.StatusCompleted).
		SetCompletedAt(now).
		Save(ctx)
	return err
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
