package progress

import (
	"context"
	"log/slog"
	"slices"
)

// Metric selects the statistic a Rule compares against its threshold.
type Metric int

const (
	MetricTotalLearned Metric = iota
	MetricTotalTerms
	MetricStreakDays
	MetricQuizScore
)

func (m Metric) value(s Statistics) int {
	switch m {
	case MetricTotalLearned:
		return s.TotalLearned
	case MetricTotalTerms:
		return s.TotalTermsLearned
	case MetricStreakDays:
		return s.StreakDays
	case MetricQuizScore:
		return s.QuizScore
	}
	return 0
}

// Rule unlocks Badge once Metric reaches Threshold.
type Rule struct {
	Metric    Metric
	Threshold int
	Badge     string
}

// Rules is the achievement table in evaluation order. Quiz scores are
// bounded by 100, so perfect_quiz is the score == 100 case.
var Rules = []Rule{
	{MetricTotalLearned, 1, "first_learn"},
	{MetricTotalLearned, 3, "beginner"},
	{MetricTotalLearned, 5, "learner"},
	{MetricTotalLearned, 10, "first_10"},
	{MetricTotalLearned, 20, "knowledge_seeker"},
	{MetricTotalLearned, 50, "first_50"},
	{MetricTotalTerms, 1, "first_term"},
	{MetricTotalTerms, 5, "term_collector"},
	{MetricTotalTerms, 10, "term_master"},
	{MetricStreakDays, 3, "three_day_streak"},
	{MetricStreakDays, 7, "week_streak"},
	{MetricStreakDays, 14, "two_week_streak"},
	{MetricQuizScore, 60, "quiz_beginner"},
	{MetricQuizScore, 80, "quiz_master"},
	{MetricQuizScore, 100, "perfect_quiz"},
}

// AchievementResult is the outcome of an evaluation.
type AchievementResult struct {
	CurrentAchievements []string `json:"current_achievements"`
	NewAchievements     []string `json:"new_achievements"`
}

// Unlock applies rules to stats. It returns current extended by every badge
// whose rule holds and that current lacks, and those new badges alone.
func Unlock(rules []Rule, stats Statistics, current []string) (all, unlocked []string) {
	all = append([]string{}, current...)
	unlocked = []string{}
	for _, r := range rules {
		if r.Metric.value(stats) < r.Threshold || slices.Contains(all, r.Badge) {
			continue
		}
		all = append(all, r.Badge)
		unlocked = append(unlocked, r.Badge)
	}
	return all, unlocked
}

// Evaluator unlocks achievements from a session's statistics.
type Evaluator struct {
	agg   *Aggregator
	rules []Rule
	log   *slog.Logger
	rec   Recorder
}

// NewEvaluator creates an evaluator using the Rules table.
func NewEvaluator(agg *Aggregator, logger *slog.Logger, rec Recorder) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Evaluator{agg: agg, rules: Rules, log: logger, rec: rec}
}

// Evaluate computes the statistics of session and unlocks every badge it
// newly qualifies for. New badges are written to the __stats__ row.
func (e *Evaluator) Evaluate(ctx context.Context, session string) (AchievementResult, error) {
	stats, statsRow, err := e.agg.compute(ctx, session)
	if err != nil {
		return AchievementResult{}, err
	}
	all, unlocked := Unlock(e.rules, stats, stats.Achievements)
	if len(unlocked) > 0 {
		stats.Achievements = all
		if err := e.agg.persist(ctx, session, statsRow, stats); err != nil {
			return AchievementResult{}, err
		}
		for _, badge := range unlocked {
			e.rec.AchievementUnlocked(badge)
		}
		e.log.Info("achievements unlocked", "session_id", session, "badges", unlocked)
	}
	return AchievementResult{CurrentAchievements: all, NewAchievements: unlocked}, nil
}
