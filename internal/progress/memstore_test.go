package progress

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/example/aihub/pkg/models"
)

// memStore is an in-memory Store for engine tests.
type memStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[string]map[string]models.ProgressRow
}

func newMemStore() *memStore {
	return &memStore{rows: map[string]map[string]models.ProgressRow{}}
}

func (m *memStore) GetRow(_ context.Context, sessionID, slotKey string) (*models.ProgressRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[sessionID][slotKey]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (m *memStore) InsertRow(_ context.Context, row *models.ProgressRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[row.SessionID][row.SlotKey]; ok {
		return errors.New("duplicate slot key")
	}
	if m.rows[row.SessionID] == nil {
		m.rows[row.SessionID] = map[string]models.ProgressRow{}
	}
	m.nextID++
	row.ID = m.nextID
	row.CreatedAt = time.Now()
	row.UpdatedAt = row.CreatedAt
	m.rows[row.SessionID][row.SlotKey] = *row
	return nil
}

func (m *memStore) UpdateRow(_ context.Context, row *models.ProgressRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[row.SessionID][row.SlotKey]; !ok {
		return errors.New("no such row")
	}
	row.UpdatedAt = time.Now()
	m.rows[row.SessionID][row.SlotKey] = *row
	return nil
}

func (m *memStore) ListRows(_ context.Context, sessionID string) ([]models.ProgressRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rows []models.ProgressRow
	for _, row := range m.rows[sessionID] {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].SlotKey < rows[j].SlotKey })
	return rows, nil
}

func (m *memStore) CountRowsWithPrefix(_ context.Context, sessionID, prefix string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for key := range m.rows[sessionID] {
		if strings.HasPrefix(key, prefix) {
			n++
		}
	}
	return n, nil
}

// put stores a raw row, bypassing the ledger.
func (m *memStore) put(session, slotKey, learned, stats string) {
	row := &models.ProgressRow{SessionID: session, SlotKey: slotKey}
	if learned != "" {
		row.LearnedPayload = sql.NullString{String: learned, Valid: true}
	}
	if stats != "" {
		row.StatsPayload = sql.NullString{String: stats, Valid: true}
	}
	if err := m.InsertRow(context.Background(), row); err != nil {
		panic(err)
	}
}

func (m *memStore) count(session string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows[session])
}

type countingRecorder struct {
	mu     sync.Mutex
	events map[string]int
	badges []string
}

func (r *countingRecorder) ProgressEvent(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.events == nil {
		r.events = map[string]int{}
	}
	r.events[kind]++
}

func (r *countingRecorder) AchievementUnlocked(badge string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.badges = append(r.badges, badge)
}

func fixedClock(date string) func() time.Time {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t.Add(10 * time.Hour) }
}
