package models

import (
	"database/sql"
	"time"
)

// ProgressRow is one row of the user_progress table. SlotKey tells what the
// row records: a plain date, the __stats__ sentinel, or a __terms__/__quiz__
// synthetic key.
type ProgressRow struct {
	ID             int64          `json:"id" db:"id"`
	SessionID      string         `json:"session_id" db:"session_id"`
	SlotKey        string         `json:"slot_key" db:"slot_key"`
	LearnedPayload sql.NullString `json:"-" db:"learned_payload"` // JSON list: item indices or term names
	StatsPayload   sql.NullString `json:"-" db:"stats_payload"`   // JSON object: cached stats or one quiz outcome
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"`
}
