package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/prepstack/prepstack-backend/internal/config"
	"github.com/prepstack/prepstack-backend/internal/service"
)

// AnswerSyncWorker drains sync_answers_queue and UPSERTs mirrored answers
// into PostgreSQL. Each message is keyed by (attempt_id, question_id), so
// redelivery and reordering collapse into the latest value.
type AnswerSyncWorker struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
	log  zerolog.Logger
}

// NewAnswerSyncWorker creates a new AnswerSyncWorker.
func NewAnswerSyncWorker(pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) *AnswerSyncWorker {
	return &AnswerSyncWorker{
		pool: pool,
		rdb:  rdb,
		log:  log.With().Str("component", "answer_sync_worker").Logger(),
	}
}

// Start begins the worker loop. Call in a goroutine.
func (w *AnswerSyncWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *AnswerSyncWorker) processNext(ctx context.Context) {
	result, err := w.rdb.BLPop(ctx, time.Second, config.WorkerKey.SyncAnswersQueue).Result()
	if err != nil {
		if err != redis.Nil && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
		}
		return
	}
	if len(result) < 2 {
		return
	}

	var payload service.AnswerSyncPayload
	if err := json.Unmarshal([]byte(result[1]), &payload); err != nil {
		w.log.Error().Err(err).Msg("Invalid JSON payload")
		return
	}

	if err := w.persistAnswer(ctx, &payload); err != nil {
		w.log.Error().Err(err).
			Str("attempt_id", payload.AttemptID).
			Str("question_id", payload.QuestionID).
			Msg("Persist error, retrying in 5s")
		// Push back to queue for retry.
		w.rdb.RPush(ctx, config.WorkerKey.SyncAnswersQueue, result[1])
		time.Sleep(5 * time.Second)
	}
}

func (w *AnswerSyncWorker) persistAnswer(ctx context.Context, p *service.AnswerSyncPayload) error {
	attemptID, err := uuid.Parse(p.AttemptID)
	if err != nil {
		return err
	}

	_, err = w.pool.Exec(ctx,
		`INSERT INTO attempt_answers (attempt_id, question_id, answer, elapsed_seconds, updated_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 ON CONFLICT (attempt_id, question_id) DO UPDATE SET
		   answer = EXCLUDED.answer,
		   elapsed_seconds = EXCLUDED.elapsed_seconds,
		   updated_at = NOW()`,
		attemptID, p.QuestionID, p.Answer, p.ElapsedSeconds,
	)
	return err
}

// drain flushes whatever is left in the queue without blocking, used during
// shutdown.
func (w *AnswerSyncWorker) drain(ctx context.Context) {
	for {
		result, err := w.rdb.LPop(ctx, config.WorkerKey.SyncAnswersQueue).Result()
		if err != nil {
			return
		}

		var payload service.AnswerSyncPayload
		if err := json.Unmarshal([]byte(result), &payload); err != nil {
			continue
		}
		if err := w.persistAnswer(ctx, &payload); err != nil {
			w.log.Error().Err(err).Msg("Drain persist error, message dropped back")
			w.rdb.RPush(ctx, config.WorkerKey.SyncAnswersQueue, result)
			return
		}
	}
}
