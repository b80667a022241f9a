package progress

import (
	"context"
	"testing"

	"github.com/example/aihub/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_LessonItemRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	l := NewLedger(store, nil)

	require.NoError(t, l.RecordLessonItemLearned(ctx, "s1", "2024-05-01", 2))
	require.NoError(t, l.RecordLessonItemLearned(ctx, "s1", "2024-05-01", 0))

	row, err := store.GetRow(ctx, "s1", "2024-05-01")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{0, 2}, decodeIndices(l.log, row))
}

func TestLedger_LessonItemIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	l := NewLedger(store, nil)

	require.NoError(t, l.RecordLessonItemLearned(ctx, "s1", "2024-05-01", 1))
	once, _ := store.GetRow(ctx, "s1", "2024-05-01")
	require.NoError(t, l.RecordLessonItemLearned(ctx, "s1", "2024-05-01", 1))
	twice, _ := store.GetRow(ctx, "s1", "2024-05-01")

	assert.Equal(t, once.LearnedPayload, twice.LearnedPayload)
	assert.Equal(t, "[1]", twice.LearnedPayload.String)
}

func TestLedger_InvalidInput(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	l := NewLedger(store, nil)

	assert.ErrorIs(t, l.RecordLessonItemLearned(ctx, "", "2024-05-01", 0), ErrInvalidInput)
	assert.ErrorIs(t, l.RecordLessonItemLearned(ctx, "s1", "05/01/2024", 0), ErrInvalidInput)
	assert.ErrorIs(t, l.RecordLessonItemLearned(ctx, "s1", "2024-05-01", 3), ErrInvalidInput)
	assert.ErrorIs(t, l.RecordLessonItemLearned(ctx, "s1", "2024-05-01", -1), ErrInvalidInput)
	assert.ErrorIs(t, l.RecordTermLearned(ctx, "s1", "2024-05-01", 0, "  "), ErrInvalidInput)
	_, err := l.RecordQuizAttempt(ctx, "s1", "2024-05-01", 6, 5)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = l.RecordQuizAttempt(ctx, "s1", "2024-05-01", -1, 5)
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Zero(t, store.count("s1"))
}

func TestLedger_TermSet(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	l := NewLedger(store, nil)

	for _, term := range []string{"token", "agent", "token"} {
		require.NoError(t, l.RecordTermLearned(ctx, "s1", "2024-05-01", 1, term))
	}
	row, err := store.GetRow(ctx, "s1", "__terms__2024-05-01_1")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, []string{"token", "agent"}, decodeTerms(l.log, row))
}

func TestLedger_FirstWriteCreatesRow(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	l := NewLedger(store, nil)

	require.NoError(t, l.RecordLessonItemLearned(ctx, "s1", "2024-05-01", 0))
	require.NoError(t, l.RecordTermLearned(ctx, "s1", "2024-05-01", 0, "LLM"))
	assert.Equal(t, 2, store.count("s1"))

	daily, err := store.GetRow(ctx, "s1", "2024-05-01")
	require.NoError(t, err)
	require.NotNil(t, daily)
	assert.Equal(t, "[0]", daily.LearnedPayload.String)

	terms, err := store.GetRow(ctx, "s1", "__terms__2024-05-01_0")
	require.NoError(t, err)
	require.NotNil(t, terms)
	assert.Equal(t, `["LLM"]`, terms.LearnedPayload.String)
}

func TestDecodeMissingRow(t *testing.T) {
	l := NewLedger(newMemStore(), nil)
	assert.Empty(t, decodeIndices(l.log, nil))
	assert.Empty(t, decodeTerms(l.log, nil))
	assert.Equal(t, models.StatsSnapshot{}, decodeSnapshot(l.log, nil))
	assert.Equal(t, models.QuizOutcome{}, decodeOutcome(l.log, nil))
}

func TestLedger_QuizAttemptsAppend(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	l := NewLedger(store, nil)

	first, err := l.RecordQuizAttempt(ctx, "s1", "2024-05-01", 4, 5)
	require.NoError(t, err)
	assert.Equal(t, 80, first.Score)

	second, err := l.RecordQuizAttempt(ctx, "s1", "2024-05-01", 3, 10)
	require.NoError(t, err)
	assert.Equal(t, 30, second.Score)

	zero, err := l.RecordQuizAttempt(ctx, "s1", "2024-05-01", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, zero.Score)

	for i, key := range []string{"__quiz__2024-05-01_1", "__quiz__2024-05-01_2", "__quiz__2024-05-01_3"} {
		row, err := store.GetRow(ctx, "s1", key)
		require.NoError(t, err)
		require.NotNil(t, row, "attempt %d", i+1)
	}
	first1, _ := store.GetRow(ctx, "s1", "__quiz__2024-05-01_1")
	assert.JSONEq(t, `{"correct":4,"total":5,"score":80}`, first1.StatsPayload.String)
}

func TestLedger_MalformedPayloadTreatedAsEmpty(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.put("s1", "2024-05-01", "{not json", "")
	l := NewLedger(store, nil)

	require.NoError(t, l.RecordLessonItemLearned(ctx, "s1", "2024-05-01", 1))
	row, _ := store.GetRow(ctx, "s1", "2024-05-01")
	assert.Equal(t, "[1]", row.LearnedPayload.String)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 80, Percentage(4, 5))
	assert.Equal(t, 47, Percentage(7, 15))
	assert.Equal(t, 67, Percentage(2, 3))
	assert.Equal(t, 0, Percentage(3, 0))
	assert.Equal(t, 100, Percentage(5, 5))
}
