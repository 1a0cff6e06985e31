package database

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect/sql"
)

// CreateGINIndexes creates full-text search GIN indexes for PostgreSQL.
// These indexes enable efficient full-text search on evidence markdown and
// variant model/brand text, which the schema definitions don't express directly.
func CreateGINIndexes(ctx context.Context, driver *sql.Driver) error {
	db := driver.DB()

	_, err := db.ExecContext(ctx,
		`CREATE INDEX IF NOT EXISTS idx_evidence_sources_markdown_gin
		ON evidence_sources USING gin(to_tsvector('english', markdown))`)
	if err != nil {
		return fmt.Errorf("failed to create markdown GIN index: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`CREATE INDEX IF NOT EXISTS idx_cable_variants_model_gin
		ON cable_variants USING gin(to_tsvector('english', brand || ' ' || model))`)
	if err != nil {
		return fmt.Errorf("failed to create brand/model GIN index: %w", err)
	}

	return nil
}
