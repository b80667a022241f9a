package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/aihub/pkg/models"
	"github.com/jmoiron/sqlx"
)

// TermRepository handles database operations for the glossary.
type TermRepository struct {
	db *sqlx.DB
}

// NewTermRepository creates a new repository instance
func NewTermRepository(db *sqlx.DB) *TermRepository {
	return &TermRepository{db: db}
}

// Upsert adds terms to the glossary, refreshing descriptions of known ones.
// Items with an empty term are skipped.
func (r *TermRepository) Upsert(ctx context.Context, items []models.TermItem) error {
	query := r.db.Rebind(`
		INSERT INTO term (term, description, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (term) DO UPDATE SET description = excluded.description
	`)
	now := time.Now().UTC()
	for _, item := range items {
		term := strings.TrimSpace(item.Term)
		if term == "" {
			continue
		}
		if _, err := r.db.ExecContext(ctx, query, term, item.Description, now); err != nil {
			return fmt.Errorf("failed to save term %q: %w", term, err)
		}
	}
	return nil
}

// All returns the glossary ordered by term.
func (r *TermRepository) All(ctx context.Context) ([]models.Term, error) {
	terms := []models.Term{}
	if err := r.db.SelectContext(ctx, &terms, `SELECT id, term, description, created_at FROM term ORDER BY term`); err != nil {
		return nil, fmt.Errorf("failed to get terms: %w", err)
	}
	return terms, nil
}

// Random returns one glossary entry, or ErrNotFound when the glossary is empty.
func (r *TermRepository) Random(ctx context.Context) (*models.Term, error) {
	var term models.Term
	err := r.db.GetContext(ctx, &term, `SELECT id, term, description, created_at FROM term ORDER BY RANDOM() LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("glossary: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get random term: %w", err)
	}
	return &term, nil
}
