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

// ProgressRepository handles database operations for user progress rows.
type ProgressRepository struct {
	db *sqlx.DB
}

// NewProgressRepository creates a new repository instance
func NewProgressRepository(db *sqlx.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

const progressColumns = `id, session_id, slot_key, learned_payload, stats_payload, created_at, updated_at`

// GetRow returns the row for (session, slot key), or nil when there is none.
func (r *ProgressRepository) GetRow(ctx context.Context, sessionID, slotKey string) (*models.ProgressRow, error) {
	var row models.ProgressRow
	query := r.db.Rebind(`SELECT ` + progressColumns + ` FROM user_progress WHERE session_id = ? AND slot_key = ?`)
	err := r.db.GetContext(ctx, &row, query, sessionID, slotKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress row %q: %w", slotKey, err)
	}
	return &row, nil
}

// InsertRow creates a new row and fills in its ID and timestamps.
func (r *ProgressRepository) InsertRow(ctx context.Context, row *models.ProgressRow) error {
	now := time.Now().UTC()
	query := r.db.Rebind(`
		INSERT INTO user_progress (session_id, slot_key, learned_payload, stats_payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`)
	err := r.db.QueryRowxContext(ctx, query,
		row.SessionID,
		row.SlotKey,
		row.LearnedPayload,
		row.StatsPayload,
		now,
		now,
	).Scan(&row.ID)
	if err != nil {
		return fmt.Errorf("failed to insert progress row %q: %w", row.SlotKey, err)
	}
	row.CreatedAt = now
	row.UpdatedAt = now
	return nil
}

// UpdateRow overwrites the payloads of an existing row.
func (r *ProgressRepository) UpdateRow(ctx context.Context, row *models.ProgressRow) error {
	now := time.Now().UTC()
	query := r.db.Rebind(`
		UPDATE user_progress SET
			learned_payload = ?,
			stats_payload = ?,
			updated_at = ?
		WHERE session_id = ? AND slot_key = ?
	`)
	result, err := r.db.ExecContext(ctx, query,
		row.LearnedPayload,
		row.StatsPayload,
		now,
		row.SessionID,
		row.SlotKey,
	)
	if err != nil {
		return fmt.Errorf("failed to update progress row %q: %w", row.SlotKey, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("progress row %q: %w", row.SlotKey, ErrNotFound)
	}
	row.UpdatedAt = now
	return nil
}

// ListRows returns every row of a session ordered by slot key.
func (r *ProgressRepository) ListRows(ctx context.Context, sessionID string) ([]models.ProgressRow, error) {
	var rows []models.ProgressRow
	query := r.db.Rebind(`SELECT ` + progressColumns + ` FROM user_progress WHERE session_id = ? ORDER BY slot_key`)
	if err := r.db.SelectContext(ctx, &rows, query, sessionID); err != nil {
		return nil, fmt.Errorf("failed to list progress rows: %w", err)
	}
	return rows, nil
}

// CountRowsWithPrefix counts a session's rows whose slot key starts with prefix.
func (r *ProgressRepository) CountRowsWithPrefix(ctx context.Context, sessionID, prefix string) (int, error) {
	var count int
	query := r.db.Rebind(`SELECT COUNT(*) FROM user_progress WHERE session_id = ? AND slot_key LIKE ? ESCAPE '\'`)
	if err := r.db.GetContext(ctx, &count, query, sessionID, likePrefix(prefix)); err != nil {
		return 0, fmt.Errorf("failed to count progress rows: %w", err)
	}
	return count, nil
}
