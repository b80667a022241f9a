package progress

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStreak(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{"empty", nil, 0},
		{"single", []string{"2024-01-01"}, 1},
		{"three consecutive", []string{"2024-01-01", "2024-01-02", "2024-01-03"}, 3},
		{"gap resets", []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-05"}, 1},
		{"unordered", []string{"2024-01-03", "2024-01-01", "2024-01-02"}, 3},
		{"month boundary", []string{"2024-02-28", "2024-02-29", "2024-03-01"}, 3},
		{"ignores junk", []string{"junk", "2024-01-02", "2024-01-01"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStreak(tt.dates))
		})
	}
}

func TestAggregator_StreakAndMaxStreak(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	l := NewLedger(store, nil)
	agg := NewAggregator(store, nil, fixedClock("2024-01-05"))

	for _, d := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		require.NoError(t, l.RecordLessonItemLearned(ctx, "s1", d, 0))
	}
	stats, err := agg.Recompute(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.StreakDays)
	assert.Equal(t, 3, stats.MaxStreak)
	require.NotNil(t, stats.LastLearnedDate)
	assert.Equal(t, "2024-01-03", *stats.LastLearnedDate)

	require.NoError(t, l.RecordLessonItemLearned(ctx, "s1", "2024-01-05", 0))
	stats, err = agg.Recompute(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.StreakDays)
	assert.Equal(t, 3, stats.MaxStreak)
	assert.Equal(t, "2024-01-05", *stats.LastLearnedDate)
	assert.Equal(t, 4, stats.TotalLearned)
	assert.Equal(t, 1, stats.TodayLearned)
}

func TestAggregator_QuizAccuracy(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	l := NewLedger(store, nil)
	agg := NewAggregator(store, nil, fixedClock("2024-01-02"))

	_, err := l.RecordQuizAttempt(ctx, "s1", "2024-01-01", 4, 5)
	require.NoError(t, err)
	_, err = l.RecordQuizAttempt(ctx, "s1", "2024-01-02", 3, 10)
	require.NoError(t, err)

	stats, err := agg.Compute(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 47, stats.CumulativeQuizScore)
	assert.Equal(t, 7, stats.TotalQuizCorrect)
	assert.Equal(t, 15, stats.TotalQuizQuestions)
	assert.Equal(t, 30, stats.QuizScore)
	assert.Equal(t, 30, stats.TodayQuizScore)
	assert.Equal(t, 3, stats.TodayQuizCorrect)
	assert.Equal(t, 10, stats.TodayQuizTotal)
}

func TestAggregator_LatestAttemptWinsWithinDay(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	l := NewLedger(store, nil)
	agg := NewAggregator(store, nil, fixedClock("2024-01-01"))

	for _, correct := range []int{1, 5, 2, 2, 2, 2, 2, 2, 2, 9} {
		_, err := l.RecordQuizAttempt(ctx, "s1", "2024-01-01", correct, 10)
		require.NoError(t, err)
	}
	stats, err := agg.Compute(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 90, stats.QuizScore)
}

func TestAggregator_EmptySession(t *testing.T) {
	stats, err := NewAggregator(newMemStore(), nil, fixedClock("2024-01-01")).Compute(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Zero(t, stats.StreakDays)
	assert.Nil(t, stats.LastLearnedDate)
	assert.Zero(t, stats.CumulativeQuizScore)
	assert.Equal(t, []string{}, stats.Achievements)
}

func TestAggregator_TermsCountedPerRow(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	l := NewLedger(store, nil)
	agg := NewAggregator(store, nil, fixedClock("2024-01-01"))

	require.NoError(t, l.RecordTermLearned(ctx, "s1", "2024-01-01", 0, "token"))
	require.NoError(t, l.RecordTermLearned(ctx, "s1", "2024-01-01", 1, "token"))
	require.NoError(t, l.RecordTermLearned(ctx, "s1", "2023-12-31", 0, "agent"))

	stats, err := agg.Compute(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalTermsLearned)
	assert.Equal(t, 2, stats.TodayTerms)
}

func TestAggregator_RecomputeKeepsOneStatsRow(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.put("s1", "__stats__", "", `{"max_streak":9,"achievements":["first_learn"]}`)
	store.put("s1", "__bogus__", "", "")
	agg := NewAggregator(store, nil, fixedClock("2024-01-01"))

	for i := 0; i < 3; i++ {
		stats, err := agg.Recompute(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, 9, stats.MaxStreak)
		assert.Equal(t, []string{"first_learn"}, stats.Achievements)
	}
	assert.Equal(t, 2, store.count("s1"))

	row, err := store.GetRow(ctx, "s1", "__stats__")
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_learned":0,"total_terms_learned":0,"streak_days":0,"max_streak":9,
		"last_learned_date":null,"quiz_score":0,"achievements":["first_learn"]}`, row.StatsPayload.String)
}

func TestAggregator_PeriodStats(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	l := NewLedger(store, nil)
	agg := NewAggregator(store, nil, fixedClock("2024-01-03"))

	require.NoError(t, l.RecordLessonItemLearned(ctx, "s1", "2024-01-01", 0))
	require.NoError(t, l.RecordLessonItemLearned(ctx, "s1", "2024-01-01", 2))
	require.NoError(t, l.RecordTermLearned(ctx, "s1", "2024-01-01", 0, "token"))
	require.NoError(t, l.RecordTermLearned(ctx, "s1", "2024-01-01", 2, "token"))
	require.NoError(t, l.RecordTermLearned(ctx, "s1", "2024-01-01", 2, "agent"))
	_, err := l.RecordQuizAttempt(ctx, "s1", "2024-01-03", 4, 5)
	require.NoError(t, err)
	_, err = l.RecordQuizAttempt(ctx, "s1", "2024-01-03", 3, 10)
	require.NoError(t, err)

	report, err := agg.PeriodStats(ctx, "s1", "2024-01-01", "2024-01-03")
	require.NoError(t, err)
	require.Equal(t, 3, report.TotalDays)
	assert.Equal(t, DayStats{Date: "2024-01-01", AIInfo: 2, Terms: 2}, report.PeriodData[0])
	assert.Equal(t, DayStats{Date: "2024-01-02"}, report.PeriodData[1])
	assert.Equal(t, DayStats{Date: "2024-01-03", QuizScore: 47, QuizCorrect: 7, QuizTotal: 15}, report.PeriodData[2])
}

func TestAggregator_PeriodStatsBounds(t *testing.T) {
	ctx := context.Background()
	agg := NewAggregator(newMemStore(), nil, fixedClock("2024-01-01"))

	report, err := agg.PeriodStats(ctx, "s1", "2024-01-05", "2024-01-01")
	require.NoError(t, err)
	assert.Empty(t, report.PeriodData)
	assert.Zero(t, report.TotalDays)

	_, err = agg.PeriodStats(ctx, "s1", "2024/01/01", "2024-01-05")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = agg.PeriodStats(ctx, "s1", "2023-01-01", "2024-12-31")
	assert.ErrorIs(t, err, ErrInvalidInput)

	report, err = agg.PeriodStats(ctx, "s1", "2024-01-01", "2024-12-31")
	require.NoError(t, err)
	assert.Equal(t, 366, report.TotalDays)
}
