package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/aihub/pkg/models"
	"github.com/jmoiron/sqlx"
)

// AIInfoRepository handles database operations for daily lesson items.
type AIInfoRepository struct {
	db *sqlx.DB
}

// NewAIInfoRepository creates a new repository instance
func NewAIInfoRepository(db *sqlx.DB) *AIInfoRepository {
	return &AIInfoRepository{db: db}
}

// ListByDate returns the lesson items of a date ordered by item index.
func (r *AIInfoRepository) ListByDate(ctx context.Context, date string) ([]models.AIInfo, error) {
	var items []models.AIInfo
	query := r.db.Rebind(`
		SELECT id, date, item_index, title, content, terms, created_at
		FROM ai_info WHERE date = ? ORDER BY item_index
	`)
	if err := r.db.SelectContext(ctx, &items, query, date); err != nil {
		return nil, fmt.Errorf("failed to get ai info for %s: %w", date, err)
	}
	for i := range items {
		items[i].Terms = decodeTerms(items[i])
	}
	return items, nil
}

// Put inserts the item at (date, item index) or replaces the one there.
func (r *AIInfoRepository) Put(ctx context.Context, item *models.AIInfo) error {
	if item.Terms == nil {
		item.Terms = []models.TermItem{}
	}
	terms, err := json.Marshal(item.Terms)
	if err != nil {
		return fmt.Errorf("failed to encode terms: %w", err)
	}
	item.TermsJSON = string(terms)

	now := time.Now().UTC()
	query := r.db.Rebind(`
		INSERT INTO ai_info (date, item_index, title, content, terms, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (date, item_index) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			terms = excluded.terms
		RETURNING id, created_at
	`)
	err = r.db.QueryRowxContext(ctx, query,
		item.Date,
		item.ItemIndex,
		item.Title,
		item.Content,
		item.TermsJSON,
		now,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save ai info %s #%d: %w", item.Date, item.ItemIndex, err)
	}
	return nil
}

// DeleteByDate removes every item of a date.
func (r *AIInfoRepository) DeleteByDate(ctx context.Context, date string) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM ai_info WHERE date = ?`), date)
	if err != nil {
		return fmt.Errorf("failed to delete ai info for %s: %w", date, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("ai info for %s: %w", date, ErrNotFound)
	}
	return nil
}

// Dates returns every date that has lesson content, ascending.
func (r *AIInfoRepository) Dates(ctx context.Context) ([]string, error) {
	dates := []string{}
	if err := r.db.SelectContext(ctx, &dates, `SELECT DISTINCT date FROM ai_info ORDER BY date`); err != nil {
		return nil, fmt.Errorf("failed to list ai info dates: %w", err)
	}
	return dates, nil
}

func decodeTerms(item models.AIInfo) []models.TermItem {
	terms := []models.TermItem{}
	if item.TermsJSON == "" {
		return terms
	}
	if err := json.Unmarshal([]byte(item.TermsJSON), &terms); err != nil {
		slog.Warn("malformed terms payload", "date", item.Date, "index", item.ItemIndex, "error", err)
		return []models.TermItem{}
	}
	return terms
}
