package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/prepstack/prepstack-backend/internal/model"
	"github.com/prepstack/prepstack-backend/internal/repository"
)

// ErrNotOwner is returned when a user reads an attempt that isn't theirs.
var ErrNotOwner = errors.New("attempt belongs to another user")

// AttemptService serves persisted attempt history.
type AttemptService struct {
	attempts *repository.AttemptRepository
}

// NewAttemptService creates a new AttemptService.
func NewAttemptService(attempts *repository.AttemptRepository) *AttemptService {
	return &AttemptService{attempts: attempts}
}

// History returns the user's attempts, most recent first.
func (s *AttemptService) History(ctx context.Context, userID, limit int) ([]model.Attempt, error) {
	return s.attempts.ListByUser(ctx, userID, limit)
}

// Get returns one attempt, verifying ownership.
func (s *AttemptService) Get(ctx context.Context, userID int, id uuid.UUID) (*model.Attempt, error) {
	attempt, err := s.attempts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, ErrNotOwner
	}
	return attempt, nil
}
