// Package evidence implements the append-only store of raw fetched page
// snapshots that back every extracted spec.
package evidence

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"

	"github.com/cableintel/catalog/ent"
	"github.com/cableintel/catalog/pkg/shared/apperrors"
)

// Store inserts evidence snapshots. Rows are never mutated once written.
type Store struct {
	client *ent.Client
}

// NewStore builds an evidence Store over client.
func NewStore(client *ent.Client) *Store {
	if client == nil {
		panic("evidence.NewStore: client must not be nil")
	}
	return &Store{client: client}
}

// ContentHash returns the deterministic sha-256 hash of a page snapshot:
// a pure function of its canonical URL, markdown, and HTML, so identical
// inputs always produce identical hashes.
func ContentHash(canonicalURL, markdown, html string) string {
	h := sha256.New()
	h.Write([]byte(canonicalURL))
	h.Write([]byte{0})
	h.Write([]byte(markdown))
	h.Write([]byte{0})
	h.Write([]byte(html))
	return hex.EncodeToString(h.Sum(nil))
}

// Insert writes one evidence row for the given workflow, and returns the
// persisted entity. Insert computes contentHash itself via ContentHash, so a
// caller (e.g. an idempotence test) can compute the same value beforehand.
func (s *Store) Insert(ctx context.Context, workflowID, url, canonicalURL, html, markdown string) (*ent.EvidenceSource, error) {
	hash := ContentHash(canonicalURL, markdown, html)

	row, err := s.client.EvidenceSource.Create().
		SetID(uuid.New().String()).
		SetWorkflowID(workflowID).
		SetURL(url).
		SetCanonicalURL(canonicalURL).
		SetContentHash(hash).
		SetHTML(html).
		SetMarkdown(markdown).
		Save(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError("insert_evidence_source", err)
	}
	return row, nil
}

// Get fetches a single evidence source by id.
func (s *Store) Get(ctx context.Context, id string) (*ent.EvidenceSource, error) {
	row, err := s.client.EvidenceSource.Get(ctx, id)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("evidence_source", id)
		}
		return nil, apperrors.NewPersistenceError(fmt.Sprintf("get_evidence_source(%s)", id), err)
	}
	return row, nil
}
