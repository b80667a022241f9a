package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/aihub/pkg/models"
	"github.com/jmoiron/sqlx"
)

// Tables holding articles.
const (
	PromptTable      = "prompt"
	BaseContentTable = "base_content"
)

// ArticleRepository handles database operations for one article table.
type ArticleRepository struct {
	db    *sqlx.DB
	table string
}

// NewArticleRepository creates a repository over PromptTable or BaseContentTable.
func NewArticleRepository(db *sqlx.DB, table string) *ArticleRepository {
	return &ArticleRepository{db: db, table: table}
}

// List returns all articles, newest first.
func (r *ArticleRepository) List(ctx context.Context) ([]models.Article, error) {
	articles := []models.Article{}
	query := `SELECT id, title, content, category, created_at FROM ` + r.table + ` ORDER BY created_at DESC, id DESC`
	if err := r.db.SelectContext(ctx, &articles, query); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.table, err)
	}
	return articles, nil
}

// ListByCategory returns the articles of one category, newest first.
func (r *ArticleRepository) ListByCategory(ctx context.Context, category string) ([]models.Article, error) {
	articles := []models.Article{}
	query := r.db.Rebind(`SELECT id, title, content, category, created_at FROM ` + r.table +
		` WHERE category = ? ORDER BY created_at DESC, id DESC`)
	if err := r.db.SelectContext(ctx, &articles, query, category); err != nil {
		return nil, fmt.Errorf("failed to list %s by category: %w", r.table, err)
	}
	return articles, nil
}

// Create inserts a new article
func (r *ArticleRepository) Create(ctx context.Context, a *models.Article) error {
	query := r.db.Rebind(`INSERT INTO ` + r.table + ` (title, content, category, created_at)
		VALUES (?, ?, ?, ?) RETURNING id, created_at`)
	err := r.db.QueryRowxContext(ctx, query, a.Title, a.Content, a.Category, time.Now().UTC()).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", r.table, err)
	}
	return nil
}

// Update modifies an existing article
func (r *ArticleRepository) Update(ctx context.Context, a *models.Article) error {
	query := r.db.Rebind(`UPDATE ` + r.table + ` SET title = ?, content = ?, category = ?
		WHERE id = ? RETURNING created_at`)
	err := r.db.QueryRowxContext(ctx, query, a.Title, a.Content, a.Category, a.ID).Scan(&a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", r.table, a.ID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", r.table, err)
	}
	return nil
}

// Delete removes an article
func (r *ArticleRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, r.table, id)
}
