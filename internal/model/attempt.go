package model

import (
	"time"

	"github.com/google/uuid"
)

// AttemptStatus enumerates persisted attempt states.
type AttemptStatus string

const (
	AttemptStatusInProgress AttemptStatus = "IN_PROGRESS"
	AttemptStatusCompleted  AttemptStatus = "COMPLETED"
)

// Attempt is the persisted record of a practice or mock-exam session. It is
// the system-of-record copy; the live session is owned by the in-memory
// controller and syncs here opportunistically.
type Attempt struct {
	ID               uuid.UUID     `json:"id"`
	UserID           int           `json:"user_id"`
	Label            string        `json:"label"`
	TotalQuestions   int           `json:"total_questions"`
	TimeLimitMinutes int           `json:"time_limit_minutes"`
	NegativeMarking  bool          `json:"negative_marking"`
	NegativeRatio    float64       `json:"negative_ratio"`
	Status           AttemptStatus `json:"status"`
	StartedAt        time.Time     `json:"started_at"`
	FinishedAt       *time.Time    `json:"finished_at,omitempty"`

	// Result fields, populated on completion.
	Correct          *int     `json:"correct,omitempty"`
	Incorrect        *int     `json:"incorrect,omitempty"`
	Skipped          *int     `json:"skipped,omitempty"`
	MarksObtained    *float64 `json:"marks_obtained,omitempty"`
	Percentage       *float64 `json:"percentage,omitempty"`
	TimeSpentSeconds *int     `json:"time_spent_seconds,omitempty"`
}

// AttemptAnswer is one mirrored answer row, upserted by the sync worker.
// Keyed by (attempt_id, question_id), so replays and out-of-order delivery
// collapse into the latest value.
type AttemptAnswer struct {
	AttemptID      uuid.UUID `json:"attempt_id"`
	QuestionID     string    `json:"question_id"`
	Answer         string    `json:"answer"`
	ElapsedSeconds int       `json:"elapsed_seconds"`
	UpdatedAt      time.Time `json:"updated_at"`
}
