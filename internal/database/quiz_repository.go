package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/aihub/pkg/models"
	"github.com/jmoiron/sqlx"
)

// QuizRepository handles database operations for authored quizzes.
type QuizRepository struct {
	db *sqlx.DB
}

// NewQuizRepository creates a new repository instance
func NewQuizRepository(db *sqlx.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

const quizColumns = `id, topic, question, option1, option2, option3, option4, correct, explanation, created_at`

// Topics returns the distinct quiz topics.
func (r *QuizRepository) Topics(ctx context.Context) ([]string, error) {
	topics := []string{}
	if err := r.db.SelectContext(ctx, &topics, `SELECT DISTINCT topic FROM quiz ORDER BY topic`); err != nil {
		return nil, fmt.Errorf("failed to get quiz topics: %w", err)
	}
	return topics, nil
}

// ListByTopic returns the quizzes of a topic in creation order.
func (r *QuizRepository) ListByTopic(ctx context.Context, topic string) ([]models.Quiz, error) {
	quizzes := []models.Quiz{}
	query := r.db.Rebind(`SELECT ` + quizColumns + ` FROM quiz WHERE topic = ? ORDER BY id`)
	if err := r.db.SelectContext(ctx, &quizzes, query, topic); err != nil {
		return nil, fmt.Errorf("failed to get quizzes by topic: %w", err)
	}
	return quizzes, nil
}

// Create inserts a new quiz
func (r *QuizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	query := r.db.Rebind(`
		INSERT INTO quiz (topic, question, option1, option2, option3, option4, correct, explanation, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, created_at
	`)
	err := r.db.QueryRowxContext(ctx, query,
		quiz.Topic,
		quiz.Question,
		quiz.Option1,
		quiz.Option2,
		quiz.Option3,
		quiz.Option4,
		quiz.Correct,
		quiz.Explanation,
		time.Now().UTC(),
	).Scan(&quiz.ID, &quiz.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}
	return nil
}

// Update modifies an existing quiz
func (r *QuizRepository) Update(ctx context.Context, quiz *models.Quiz) error {
	query := r.db.Rebind(`
		UPDATE quiz SET
			topic = ?, question = ?,
			option1 = ?, option2 = ?, option3 = ?, option4 = ?,
			correct = ?, explanation = ?
		WHERE id = ?
		RETURNING created_at
	`)
	err := r.db.QueryRowxContext(ctx, query,
		quiz.Topic,
		quiz.Question,
		quiz.Option1,
		quiz.Option2,
		quiz.Option3,
		quiz.Option4,
		quiz.Correct,
		quiz.Explanation,
		quiz.ID,
	).Scan(&quiz.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("quiz %d: %w", quiz.ID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to update quiz: %w", err)
	}
	return nil
}

// Delete removes a quiz
func (r *QuizRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "quiz", id)
}

func deleteByID(ctx context.Context, db *sqlx.DB, table string, id int64) error {
	result, err := db.ExecContext(ctx, db.Rebind(`DELETE FROM `+table+` WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", table, id, ErrNotFound)
	}
	return nil
}
