package progress

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/example/aihub/pkg/models"
)

// MaxPeriodDays bounds the range accepted by PeriodStats.
const MaxPeriodDays = 366

// Statistics are the derived figures of a session. The first block is what
// the __stats__ row caches; the rest is computed on every read.
type Statistics struct {
	TotalLearned      int      `json:"total_learned"`
	TotalTermsLearned int      `json:"total_terms_learned"`
	StreakDays        int      `json:"streak_days"`
	MaxStreak         int      `json:"max_streak"`
	LastLearnedDate   *string  `json:"last_learned_date"`
	QuizScore         int      `json:"quiz_score"`
	Achievements      []string `json:"achievements"`

	TodayLearned        int `json:"today_ai_info"`
	TodayTerms          int `json:"today_terms"`
	TodayQuizScore      int `json:"today_quiz_score"`
	TodayQuizCorrect    int `json:"today_quiz_correct"`
	TodayQuizTotal      int `json:"today_quiz_total"`
	CumulativeQuizScore int `json:"cumulative_quiz_score"`
	TotalQuizCorrect    int `json:"total_quiz_correct"`
	TotalQuizQuestions  int `json:"total_quiz_questions"`
}

// Snapshot returns the cached subset of s.
func (s Statistics) Snapshot() models.StatsSnapshot {
	return models.StatsSnapshot{
		TotalLearned:      s.TotalLearned,
		TotalTermsLearned: s.TotalTermsLearned,
		StreakDays:        s.StreakDays,
		MaxStreak:         s.MaxStreak,
		LastLearnedDate:   s.LastLearnedDate,
		QuizScore:         s.QuizScore,
		Achievements:      s.Achievements,
	}
}

// DayStats is one day of a PeriodReport.
type DayStats struct {
	Date        string `json:"date"`
	AIInfo      int    `json:"ai_info"`
	Terms       int    `json:"terms"`
	QuizScore   int    `json:"quiz_score"`
	QuizCorrect int    `json:"quiz_correct"`
	QuizTotal   int    `json:"quiz_total"`
}

// PeriodReport is the per-day breakdown over an inclusive date range.
type PeriodReport struct {
	PeriodData []DayStats `json:"period_data"`
	StartDate  string     `json:"start_date"`
	EndDate    string     `json:"end_date"`
	TotalDays  int        `json:"total_days"`
}

// Aggregator derives statistics from the full set of a session's rows.
type Aggregator struct {
	store Store
	log   *slog.Logger
	now   func() time.Time
}

// NewAggregator creates an aggregator. now supplies the current time in the
// zone that defines "today".
func NewAggregator(store Store, logger *slog.Logger, now func() time.Time) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &Aggregator{store: store, log: logger, now: now}
}

// Compute returns the current statistics of session without writing.
func (a *Aggregator) Compute(ctx context.Context, session string) (Statistics, error) {
	stats, _, err := a.compute(ctx, session)
	return stats, err
}

// Recompute computes the statistics of session and caches them in its
// __stats__ row. Every mutation goes through here.
func (a *Aggregator) Recompute(ctx context.Context, session string) (Statistics, error) {
	stats, statsRow, err := a.compute(ctx, session)
	if err != nil {
		return Statistics{}, err
	}
	if err := a.persist(ctx, session, statsRow, stats); err != nil {
		return Statistics{}, err
	}
	return stats, nil
}

// compute also returns the session's __stats__ row, nil if it has none.
func (a *Aggregator) compute(ctx context.Context, session string) (Statistics, *models.ProgressRow, error) {
	if err := validateSession(session); err != nil {
		return Statistics{}, nil, err
	}
	rows, err := a.store.ListRows(ctx, session)
	if err != nil {
		return Statistics{}, nil, err
	}

	today := a.now().Format(DateLayout)
	var (
		stats       Statistics
		statsRow    *models.ProgressRow
		cached      models.StatsSnapshot
		learnedDays []string
		latestQuiz  *QuizAttemptKey
	)
	for i := range rows {
		row := &rows[i]
		key, err := ParseSlotKey(row.SlotKey)
		if err != nil {
			a.log.Warn("skipping progress row", "session_id", session, "slot_key", row.SlotKey, "error", err)
			continue
		}
		switch k := key.(type) {
		case DailyKey:
			n := len(decodeIndices(a.log, row))
			stats.TotalLearned += n
			if n > 0 {
				learnedDays = append(learnedDays, k.Date)
			}
			if k.Date == today {
				stats.TodayLearned = n
			}
		case TermsKey:
			n := len(decodeTerms(a.log, row))
			stats.TotalTermsLearned += n
			if k.Date == today {
				stats.TodayTerms += n
			}
		case QuizAttemptKey:
			outcome := decodeOutcome(a.log, row)
			stats.TotalQuizCorrect += outcome.Correct
			stats.TotalQuizQuestions += outcome.Total
			if k.Date == today {
				stats.TodayQuizCorrect += outcome.Correct
				stats.TodayQuizTotal += outcome.Total
			}
			if latestQuiz == nil || k.after(*latestQuiz) {
				latestQuiz = &k
				stats.QuizScore = outcome.Score
			}
		case StatsKey:
			statsRow = row
			cached = decodeSnapshot(a.log, row)
		}
	}

	stats.StreakDays = ComputeStreak(learnedDays)
	stats.MaxStreak = max(stats.StreakDays, cached.MaxStreak)
	if len(learnedDays) > 0 {
		last := slices.Max(learnedDays)
		stats.LastLearnedDate = &last
	}
	stats.TodayQuizScore = Percentage(stats.TodayQuizCorrect, stats.TodayQuizTotal)
	stats.CumulativeQuizScore = Percentage(stats.TotalQuizCorrect, stats.TotalQuizQuestions)
	stats.Achievements = append([]string{}, cached.Achievements...)
	return stats, statsRow, nil
}

func (a *Aggregator) persist(ctx context.Context, session string, statsRow *models.ProgressRow, stats Statistics) error {
	payload, err := encodeJSON(stats.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to encode statistics: %w", err)
	}
	if statsRow == nil {
		return a.store.InsertRow(ctx, &models.ProgressRow{
			SessionID:    session,
			SlotKey:      StatsKey{}.String(),
			StatsPayload: payload,
		})
	}
	statsRow.StatsPayload = payload
	return a.store.UpdateRow(ctx, statsRow)
}

// PeriodStats returns the per-day activity of session between start and end
// inclusive. An inverted range yields no days.
func (a *Aggregator) PeriodStats(ctx context.Context, session, start, end string) (PeriodReport, error) {
	if err := validateSession(session); err != nil {
		return PeriodReport{}, err
	}
	from, err := time.Parse(DateLayout, start)
	if err != nil {
		return PeriodReport{}, fmt.Errorf("%w: start date %q is not YYYY-MM-DD", ErrInvalidInput, start)
	}
	to, err := time.Parse(DateLayout, end)
	if err != nil {
		return PeriodReport{}, fmt.Errorf("%w: end date %q is not YYYY-MM-DD", ErrInvalidInput, end)
	}
	report := PeriodReport{PeriodData: []DayStats{}, StartDate: start, EndDate: end}
	if from.After(to) {
		return report, nil
	}
	if days := int(to.Sub(from).Hours()/24) + 1; days > MaxPeriodDays {
		return PeriodReport{}, fmt.Errorf("%w: range of %d days exceeds %d", ErrInvalidInput, days, MaxPeriodDays)
	}

	rows, err := a.store.ListRows(ctx, session)
	if err != nil {
		return PeriodReport{}, err
	}
	items := map[string]int{}
	terms := map[string]map[string]bool{}
	quizzes := map[string]*models.QuizOutcome{}
	for i := range rows {
		row := &rows[i]
		key, err := ParseSlotKey(row.SlotKey)
		if err != nil {
			continue
		}
		switch k := key.(type) {
		case DailyKey:
			items[k.Date] = len(decodeIndices(a.log, row))
		case TermsKey:
			set := terms[k.Date]
			if set == nil {
				set = map[string]bool{}
				terms[k.Date] = set
			}
			for _, t := range decodeTerms(a.log, row) {
				set[t] = true
			}
		case QuizAttemptKey:
			outcome := decodeOutcome(a.log, row)
			sum := quizzes[k.Date]
			if sum == nil {
				sum = &models.QuizOutcome{}
				quizzes[k.Date] = sum
			}
			sum.Correct += outcome.Correct
			sum.Total += outcome.Total
		}
	}

	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		date := d.Format(DateLayout)
		day := DayStats{Date: date, AIInfo: items[date], Terms: len(terms[date])}
		if q := quizzes[date]; q != nil {
			day.QuizCorrect = q.Correct
			day.QuizTotal = q.Total
			day.QuizScore = Percentage(q.Correct, q.Total)
		}
		report.PeriodData = append(report.PeriodData, day)
	}
	report.TotalDays = len(report.PeriodData)
	return report, nil
}

// ComputeStreak returns the number of consecutive calendar days ending at
// the latest of dates. Entries that are not YYYY-MM-DD dates are ignored.
func ComputeStreak(dates []string) int {
	set := make(map[string]bool, len(dates))
	var last time.Time
	for _, s := range dates {
		d, err := time.Parse(DateLayout, s)
		if err != nil {
			continue
		}
		set[s] = true
		if d.After(last) {
			last = d
		}
	}
	if len(set) == 0 {
		return 0
	}
	streak := 0
	for d := last; set[d.Format(DateLayout)]; d = d.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

func (k QuizAttemptKey) after(other QuizAttemptKey) bool {
	if k.Date != other.Date {
		return k.Date > other.Date
	}
	return k.Sequence > other.Sequence
}
