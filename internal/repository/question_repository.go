package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prepstack/prepstack-backend/internal/assessment"
)

// QuestionRepository serves the question bank from PostgreSQL. It satisfies
// both assessment.QuestionSource and assessment.CategorySource, so the
// session builder can draw from it directly.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// FetchQuestions returns up to count random questions for a category. A
// category with fewer questions than requested yields a short list, which
// the builder accepts.
func (r *QuestionRepository) FetchQuestions(ctx context.Context, category string, count int) ([]assessment.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, prompt, options, correct_answer, explanation, category, question_type
		 FROM questions WHERE category = $1
		 ORDER BY random() LIMIT $2`, category, count,
	)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var questions []assessment.Question
	for rows.Next() {
		var q assessment.Question
		var rawOptions []byte
		if err := rows.Scan(&q.ID, &q.Prompt, &rawOptions, &q.CorrectAnswer, &q.Explanation, &q.Category, &q.QuestionType); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(rawOptions, &q.Options); err != nil {
			return nil, fmt.Errorf("decode options for question %s: %w", q.ID, err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// ListCategories returns every category slug with at least one question.
func (r *QuestionRepository) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT category FROM questions ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Insert stores one question. Used by the seed command.
func (r *QuestionRepository) Insert(ctx context.Context, q assessment.Question) error {
	options, err := json.Marshal(q.Options)
	if err != nil {
		return fmt.Errorf("encode options: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO questions (id, prompt, options, correct_answer, explanation, category, question_type)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET
		   prompt = EXCLUDED.prompt,
		   options = EXCLUDED.options,
		   correct_answer = EXCLUDED.correct_answer,
		   explanation = EXCLUDED.explanation,
		   category = EXCLUDED.category,
		   question_type = EXCLUDED.question_type`,
		q.ID, q.Prompt, options, q.CorrectAnswer, q.Explanation, q.Category, q.QuestionType,
	)
	return err
}
