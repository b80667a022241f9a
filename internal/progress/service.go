package progress

import (
	"context"
	"log/slog"
	"time"

	"github.com/example/aihub/pkg/models"
)

// Options configure a Service.
type Options struct {
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
	// Location is the zone that defines calendar days. Defaults to time.Local.
	Location *time.Location
	Logger   *slog.Logger
	Recorder Recorder
}

// Service records learning events and serves the derived statistics.
type Service struct {
	store  Store
	ledger *Ledger
	agg    *Aggregator
	eval   *Evaluator
	log    *slog.Logger
	rec    Recorder
	now    func() time.Time
}

// QuizSubmission is the result of SubmitQuizScore.
type QuizSubmission struct {
	QuizScore       int      `json:"quiz_score"`
	NewAchievements []string `json:"new_achievements"`
}

// Overview lists a session's learned lesson items by date with its cached
// statistics.
type Overview struct {
	SessionID string               `json:"session_id"`
	Learned   map[string][]int     `json:"learned"`
	Stats     models.StatsSnapshot `json:"stats"`
}

// NewService wires a ledger, aggregator and evaluator over store.
func NewService(store Store, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rec := opts.Recorder
	if rec == nil {
		rec = nopRecorder{}
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	clock := opts.Now
	if clock == nil {
		clock = time.Now
	}
	now := func() time.Time { return clock().In(loc) }

	agg := NewAggregator(store, logger, now)
	return &Service{
		store:  store,
		ledger: NewLedger(store, logger),
		agg:    agg,
		eval:   NewEvaluator(agg, logger, rec),
		log:    logger,
		rec:    rec,
		now:    now,
	}
}

// Today returns the current date in the service's zone.
func (s *Service) Today() string {
	return s.now().Format(DateLayout)
}

// LearnItem records a learned lesson item and refreshes the cached statistics.
func (s *Service) LearnItem(ctx context.Context, session, date string, index int) (Statistics, error) {
	if err := s.ledger.RecordLessonItemLearned(ctx, session, date, index); err != nil {
		return Statistics{}, err
	}
	s.rec.ProgressEvent(EventLessonItem)
	return s.agg.Recompute(ctx, session)
}

// LearnTerm records a learned term and refreshes the cached statistics.
func (s *Service) LearnTerm(ctx context.Context, session, date string, infoIndex int, term string) (Statistics, error) {
	if err := s.ledger.RecordTermLearned(ctx, session, date, infoIndex, term); err != nil {
		return Statistics{}, err
	}
	s.rec.ProgressEvent(EventTerm)
	return s.agg.Recompute(ctx, session)
}

// SubmitQuizScore records a quiz attempt for today, refreshes the statistics
// and evaluates achievements.
func (s *Service) SubmitQuizScore(ctx context.Context, session string, correct, total int) (QuizSubmission, error) {
	outcome, err := s.ledger.RecordQuizAttempt(ctx, session, s.Today(), correct, total)
	if err != nil {
		return QuizSubmission{}, err
	}
	s.rec.ProgressEvent(EventQuizAttempt)
	if _, err := s.agg.Recompute(ctx, session); err != nil {
		return QuizSubmission{}, err
	}
	result, err := s.eval.Evaluate(ctx, session)
	if err != nil {
		return QuizSubmission{}, err
	}
	return QuizSubmission{QuizScore: outcome.Score, NewAchievements: result.NewAchievements}, nil
}

// Stats returns the live statistics of session.
func (s *Service) Stats(ctx context.Context, session string) (Statistics, error) {
	return s.agg.Compute(ctx, session)
}

// Achievements evaluates and returns the badges of session.
func (s *Service) Achievements(ctx context.Context, session string) (AchievementResult, error) {
	return s.eval.Evaluate(ctx, session)
}

// PeriodStats returns the per-day activity of session over [start, end].
func (s *Service) PeriodStats(ctx context.Context, session, start, end string) (PeriodReport, error) {
	return s.agg.PeriodStats(ctx, session, start, end)
}

// LearnedItems returns the learned lesson item indices of session by date.
// Dates with no learned items are omitted.
func (s *Service) LearnedItems(ctx context.Context, session string) (map[string][]int, error) {
	learned, _, err := s.scan(ctx, session)
	return learned, err
}

// LearnedTermRows returns the terms session marked learned, keyed by
// TermsKey.
func (s *Service) LearnedTermRows(ctx context.Context, session string) (map[TermsKey][]string, error) {
	if err := validateSession(session); err != nil {
		return nil, err
	}
	rows, err := s.store.ListRows(ctx, session)
	if err != nil {
		return nil, err
	}
	out := map[TermsKey][]string{}
	for i := range rows {
		key, err := ParseSlotKey(rows[i].SlotKey)
		if err != nil {
			continue
		}
		if k, ok := key.(TermsKey); ok {
			if terms := decodeTerms(s.log, &rows[i]); len(terms) > 0 {
				out[k] = terms
			}
		}
	}
	return out, nil
}

// Overview returns the learned items of session with its cached statistics.
func (s *Service) Overview(ctx context.Context, session string) (Overview, error) {
	learned, snap, err := s.scan(ctx, session)
	if err != nil {
		return Overview{}, err
	}
	if snap.Achievements == nil {
		snap.Achievements = []string{}
	}
	return Overview{SessionID: session, Learned: learned, Stats: snap}, nil
}

func (s *Service) scan(ctx context.Context, session string) (map[string][]int, models.StatsSnapshot, error) {
	if err := validateSession(session); err != nil {
		return nil, models.StatsSnapshot{}, err
	}
	rows, err := s.store.ListRows(ctx, session)
	if err != nil {
		return nil, models.StatsSnapshot{}, err
	}
	learned := map[string][]int{}
	var snap models.StatsSnapshot
	for i := range rows {
		key, err := ParseSlotKey(rows[i].SlotKey)
		if err != nil {
			continue
		}
		switch k := key.(type) {
		case DailyKey:
			if indices := decodeIndices(s.log, &rows[i]); len(indices) > 0 {
				learned[k.Date] = indices
			}
		case StatsKey:
			snap = decodeSnapshot(s.log, &rows[i])
		}
	}
	return learned, snap, nil
}
