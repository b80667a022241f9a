package progress

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/example/aihub/pkg/models"
)

// Ledger translates learning events into progress row mutations.
type Ledger struct {
	store Store
	log   *slog.Logger
}

// NewLedger creates a ledger over store.
func NewLedger(store Store, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{store: store, log: logger}
}

// RecordLessonItemLearned adds itemIndex to the items learned on date.
// Recording an index twice leaves the row unchanged.
func (l *Ledger) RecordLessonItemLearned(ctx context.Context, session, date string, itemIndex int) error {
	if err := validateSession(session); err != nil {
		return err
	}
	if err := validateDate(date); err != nil {
		return err
	}
	if itemIndex < 0 || itemIndex >= models.MaxItemsPerDay {
		return fmt.Errorf("%w: item index %d out of range", ErrInvalidInput, itemIndex)
	}

	key := DailyKey{Date: date}
	row, err := l.store.GetRow(ctx, session, key.String())
	if err != nil {
		return err
	}
	indices := decodeIndices(l.log, row)
	for _, idx := range indices {
		if idx == itemIndex {
			return nil
		}
	}
	indices = insertSorted(indices, itemIndex)

	payload, err := encodeJSON(indices)
	if err != nil {
		return fmt.Errorf("failed to encode learned items: %w", err)
	}
	return l.save(ctx, row, &models.ProgressRow{SessionID: session, SlotKey: key.String(), LearnedPayload: payload})
}

// RecordTermLearned adds term to the terms learned within lesson item
// infoIndex of date.
func (l *Ledger) RecordTermLearned(ctx context.Context, session, date string, infoIndex int, term string) error {
	if err := validateSession(session); err != nil {
		return err
	}
	if err := validateDate(date); err != nil {
		return err
	}
	if infoIndex < 0 || infoIndex >= models.MaxItemsPerDay {
		return fmt.Errorf("%w: info index %d out of range", ErrInvalidInput, infoIndex)
	}
	term = strings.TrimSpace(term)
	if term == "" {
		return fmt.Errorf("%w: empty term", ErrInvalidInput)
	}

	key := TermsKey{Date: date, InfoIndex: infoIndex}
	row, err := l.store.GetRow(ctx, session, key.String())
	if err != nil {
		return err
	}
	terms := decodeTerms(l.log, row)
	for _, t := range terms {
		if t == term {
			return nil
		}
	}
	terms = append(terms, term)

	payload, err := encodeJSON(terms)
	if err != nil {
		return fmt.Errorf("failed to encode learned terms: %w", err)
	}
	return l.save(ctx, row, &models.ProgressRow{SessionID: session, SlotKey: key.String(), LearnedPayload: payload})
}

// RecordQuizAttempt appends a quiz attempt for date. Attempts are numbered
// 1, 2, ... per day and are never overwritten.
func (l *Ledger) RecordQuizAttempt(ctx context.Context, session, date string, correct, total int) (models.QuizOutcome, error) {
	if err := validateSession(session); err != nil {
		return models.QuizOutcome{}, err
	}
	if err := validateDate(date); err != nil {
		return models.QuizOutcome{}, err
	}
	if correct < 0 || total < 0 || correct > total {
		return models.QuizOutcome{}, fmt.Errorf("%w: score %d of %d", ErrInvalidInput, correct, total)
	}

	existing, err := l.store.CountRowsWithPrefix(ctx, session, QuizPrefix(date))
	if err != nil {
		return models.QuizOutcome{}, err
	}
	key := QuizAttemptKey{Date: date, Sequence: existing + 1}

	outcome := models.QuizOutcome{Correct: correct, Total: total, Score: Percentage(correct, total)}
	payload, err := encodeJSON(outcome)
	if err != nil {
		return models.QuizOutcome{}, fmt.Errorf("failed to encode quiz outcome: %w", err)
	}
	row := &models.ProgressRow{SessionID: session, SlotKey: key.String(), StatsPayload: payload}
	if err := l.store.InsertRow(ctx, row); err != nil {
		return models.QuizOutcome{}, err
	}
	return outcome, nil
}

// save inserts next when existing is nil and updates it otherwise.
func (l *Ledger) save(ctx context.Context, existing, next *models.ProgressRow) error {
	if existing == nil {
		return l.store.InsertRow(ctx, next)
	}
	existing.LearnedPayload = next.LearnedPayload
	if next.StatsPayload.Valid {
		existing.StatsPayload = next.StatsPayload
	}
	return l.store.UpdateRow(ctx, existing)
}

// Percentage returns round(100*correct/total), or 0 when total is not positive.
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

func insertSorted(xs []int, x int) []int {
	i := 0
	for i < len(xs) && xs[i] < x {
		i++
	}
	xs = append(xs, 0)
	copy(xs[i+1:], xs[i:])
	xs[i] = x
	return xs
}

func validateSession(session string) error {
	if strings.TrimSpace(session) == "" {
		return fmt.Errorf("%w: empty session id", ErrInvalidInput)
	}
	return nil
}

func validateDate(date string) error {
	if !ValidDate(date) {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidInput, date)
	}
	return nil
}
