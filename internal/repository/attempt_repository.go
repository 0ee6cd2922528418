package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prepstack/prepstack-backend/internal/assessment"
	"github.com/prepstack/prepstack-backend/internal/model"
)

// AttemptRepository handles persisted attempt data access.
type AttemptRepository struct {
	pool *pgxpool.Pool
}

// NewAttemptRepository creates a new AttemptRepository.
func NewAttemptRepository(pool *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{pool: pool}
}

// Create registers a new in-progress attempt and fills in the generated ID.
func (r *AttemptRepository) Create(ctx context.Context, a *model.Attempt) error {
	a.ID = uuid.New()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO attempts
		   (id, user_id, label, total_questions, time_limit_minutes, negative_marking, negative_ratio, status, started_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.UserID, a.Label, a.TotalQuestions, a.TimeLimitMinutes,
		a.NegativeMarking, a.NegativeRatio, model.AttemptStatusInProgress, a.StartedAt,
	)
	return err
}

// Complete marks an attempt finished with its result summary.
func (r *AttemptRepository) Complete(ctx context.Context, id uuid.UUID, sum assessment.Summary, finishedAt time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE attempts
		 SET status = $1,
		     finished_at = $2,
		     correct = $3,
		     incorrect = $4,
		     skipped = $5,
		     marks_obtained = $6,
		     percentage = $7,
		     time_spent_seconds = $8
		 WHERE id = $9`,
		model.AttemptStatusCompleted, finishedAt,
		sum.Correct, sum.Incorrect, sum.Skipped,
		sum.MarksObtained, sum.Percentage, sum.TimeSpentSeconds, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("attempt %s not found", id)
	}
	return nil
}

// GetByID retrieves a single attempt.
func (r *AttemptRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Attempt, error) {
	var a model.Attempt
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, label, total_questions, time_limit_minutes,
		        negative_marking, negative_ratio, status, started_at, finished_at,
		        correct, incorrect, skipped, marks_obtained, percentage, time_spent_seconds
		 FROM attempts WHERE id = $1`, id,
	).Scan(
		&a.ID, &a.UserID, &a.Label, &a.TotalQuestions, &a.TimeLimitMinutes,
		&a.NegativeMarking, &a.NegativeRatio, &a.Status, &a.StartedAt, &a.FinishedAt,
		&a.Correct, &a.Incorrect, &a.Skipped, &a.MarksObtained, &a.Percentage, &a.TimeSpentSeconds,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByUser returns a user's attempts, most recent first.
func (r *AttemptRepository) ListByUser(ctx context.Context, userID, limit int) ([]model.Attempt, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, label, total_questions, time_limit_minutes,
		        negative_marking, negative_ratio, status, started_at, finished_at,
		        correct, incorrect, skipped, marks_obtained, percentage, time_spent_seconds
		 FROM attempts WHERE user_id = $1
		 ORDER BY started_at DESC LIMIT $2`, userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []model.Attempt
	for rows.Next() {
		var a model.Attempt
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Label, &a.TotalQuestions, &a.TimeLimitMinutes,
			&a.NegativeMarking, &a.NegativeRatio, &a.Status, &a.StartedAt, &a.FinishedAt,
			&a.Correct, &a.Incorrect, &a.Skipped, &a.MarksObtained, &a.Percentage, &a.TimeSpentSeconds,
		); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
