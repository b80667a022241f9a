package progress

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"sort"

	"github.com/example/aihub/pkg/models"
)

// Payload decoders treat a missing or malformed payload as empty. Malformed
// ones are logged.

func decodeIndices(log *slog.Logger, row *models.ProgressRow) []int {
	var raw []int
	if !decodeJSON(log, row, learnedPayload, &raw) {
		return nil
	}
	seen := make(map[int]bool, len(raw))
	indices := make([]int, 0, len(raw))
	for _, idx := range raw {
		if idx < 0 || idx >= models.MaxItemsPerDay || seen[idx] {
			continue
		}
		seen[idx] = true
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return indices
}

func decodeTerms(log *slog.Logger, row *models.ProgressRow) []string {
	var raw []string
	if !decodeJSON(log, row, learnedPayload, &raw) {
		return nil
	}
	seen := make(map[string]bool, len(raw))
	terms := make([]string, 0, len(raw))
	for _, term := range raw {
		if term == "" || seen[term] {
			continue
		}
		seen[term] = true
		terms = append(terms, term)
	}
	return terms
}

func decodeSnapshot(log *slog.Logger, row *models.ProgressRow) models.StatsSnapshot {
	var snap models.StatsSnapshot
	if !decodeJSON(log, row, statsPayload, &snap) {
		return models.StatsSnapshot{}
	}
	return snap
}

func decodeOutcome(log *slog.Logger, row *models.ProgressRow) models.QuizOutcome {
	var outcome models.QuizOutcome
	if !decodeJSON(log, row, statsPayload, &outcome) {
		return models.QuizOutcome{}
	}
	return outcome
}

func learnedPayload(row *models.ProgressRow) sql.NullString {
	return row.LearnedPayload
}

func statsPayload(row *models.ProgressRow) sql.NullString {
	return row.StatsPayload
}

// decodeJSON unmarshals the payload field of row into v. A nil row is a slot
// that has not been written yet.
func decodeJSON(log *slog.Logger, row *models.ProgressRow, field func(*models.ProgressRow) sql.NullString, v any) bool {
	if row == nil {
		return false
	}
	payload := field(row)
	if !payload.Valid || payload.String == "" {
		return false
	}
	if err := json.Unmarshal([]byte(payload.String), v); err != nil {
		log.Warn("malformed progress payload",
			"session_id", row.SessionID,
			"slot_key", row.SlotKey,
			"error", err,
		)
		return false
	}
	return true
}

func encodeJSON(v any) (sql.NullString, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}
