package progress

import (
	"context"
	"errors"

	"github.com/example/aihub/pkg/models"
)

// ErrInvalidInput marks requests rejected before anything is written.
var ErrInvalidInput = errors.New("invalid input")

// Store is the record store holding progress rows. GetRow returns nil, nil
// when the row does not exist. UpdateRow addresses rows by session and slot key.
type Store interface {
	GetRow(ctx context.Context, sessionID, slotKey string) (*models.ProgressRow, error)
	InsertRow(ctx context.Context, row *models.ProgressRow) error
	UpdateRow(ctx context.Context, row *models.ProgressRow) error
	ListRows(ctx context.Context, sessionID string) ([]models.ProgressRow, error)
	CountRowsWithPrefix(ctx context.Context, sessionID, prefix string) (int, error)
}

// Recorder receives progress events, typically to export them as metrics.
type Recorder interface {
	ProgressEvent(kind string)
	AchievementUnlocked(badge string)
}

// Event kinds passed to Recorder.ProgressEvent.
const (
	EventLessonItem  = "lesson_item"
	EventTerm        = "term"
	EventQuizAttempt = "quiz_attempt"
)

type nopRecorder struct{}

func (nopRecorder) ProgressEvent(string)       {}
func (nopRecorder) AchievementUnlocked(string) {}
