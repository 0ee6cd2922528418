package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/prepstack/prepstack-backend/internal/assessment"
	"github.com/prepstack/prepstack-backend/internal/config"
	"github.com/prepstack/prepstack-backend/internal/model"
	"github.com/prepstack/prepstack-backend/internal/repository"
)

// AnswerSyncPayload is the queue message for one mirrored answer.
type AnswerSyncPayload struct {
	AttemptID      string `json:"attempt_id"`
	QuestionID     string `json:"question_id"`
	Answer         string `json:"answer"`
	ElapsedSeconds int    `json:"elapsed_seconds"`
}

// ResultSyncPayload is the queue message for one completed attempt.
type ResultSyncPayload struct {
	AttemptID string             `json:"attempt_id"`
	Summary   assessment.Summary `json:"summary"`
}

// SyncBackend is the system of record behind the session engine: attempts
// live in PostgreSQL, answer mirrors and result pushes go through Redis
// queues drained by the sync workers. Registration writes through directly;
// everything after it is queued so a slow database never blocks a live
// session.
type SyncBackend struct {
	attempts *repository.AttemptRepository
	rdb      *redis.Client
	log      zerolog.Logger
}

// NewSyncBackend creates a SyncBackend.
func NewSyncBackend(attempts *repository.AttemptRepository, rdb *redis.Client, log zerolog.Logger) *SyncBackend {
	return &SyncBackend{
		attempts: attempts,
		rdb:      rdb,
		log:      log.With().Str("component", "sync_backend").Logger(),
	}
}

// ForUser binds the backend to one user, producing the assessment.Backend
// the user's session controller talks to.
func (b *SyncBackend) ForUser(userID int) assessment.Backend {
	return &userBackend{SyncBackend: b, userID: userID}
}

type userBackend struct {
	*SyncBackend
	userID int
}

// RegisterSession persists a new attempt row and caches it as the user's
// active attempt.
func (b *userBackend) RegisterSession(ctx context.Context, cfg assessment.SessionConfig) (string, error) {
	attempt := &model.Attempt{
		UserID:           b.userID,
		Label:            cfg.Label,
		TotalQuestions:   cfg.TotalQuestions,
		TimeLimitMinutes: cfg.TimeLimitMinutes,
		NegativeMarking:  cfg.Scheme.NegativeMarking,
		NegativeRatio:    cfg.Scheme.NegativeRatio,
		StartedAt:        time.Now(),
	}
	if err := b.attempts.Create(ctx, attempt); err != nil {
		return "", fmt.Errorf("create attempt: %w", err)
	}

	if err := b.rdb.Set(ctx, config.CacheKey.ActiveAttemptKey(b.userID), attempt.ID.String(), 0).Err(); err != nil {
		b.log.Warn().Err(err).Int("user_id", b.userID).Msg("Active attempt cache set failed")
	}
	return attempt.ID.String(), nil
}

// SubmitAnswer buffers the answer in Redis and enqueues it for the sync
// worker. Upsert semantics all the way down, so replays are harmless.
func (b *userBackend) SubmitAnswer(ctx context.Context, sessionID, questionID, answer string, elapsedSeconds int) error {
	payload := AnswerSyncPayload{
		AttemptID:      sessionID,
		QuestionID:     questionID,
		Answer:         answer,
		ElapsedSeconds: elapsedSeconds,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	pipe := b.rdb.Pipeline()
	pipe.HSet(ctx, config.CacheKey.AttemptAnswersKey(sessionID), questionID, raw)
	pipe.RPush(ctx, config.WorkerKey.SyncAnswersQueue, raw)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("enqueue answer: %w", err)
	}
	return nil
}

// CompleteSession enqueues the result summary and clears the active-attempt
// marker.
func (b *userBackend) CompleteSession(ctx context.Context, sessionID string, summary assessment.Summary) error {
	if _, err := uuid.Parse(sessionID); err != nil {
		return fmt.Errorf("invalid attempt id %q: %w", sessionID, err)
	}

	raw, err := json.Marshal(ResultSyncPayload{AttemptID: sessionID, Summary: summary})
	if err != nil {
		return err
	}
	if err := b.rdb.RPush(ctx, config.WorkerKey.SyncResultsQueue, raw).Err(); err != nil {
		return fmt.Errorf("enqueue result: %w", err)
	}

	if err := b.rdb.Del(ctx, config.CacheKey.ActiveAttemptKey(b.userID)).Err(); err != nil {
		b.log.Warn().Err(err).Int("user_id", b.userID).Msg("Active attempt cache clear failed")
	}
	return nil
}
