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

const (
	ResultBatchSize    = 50
	ResultBatchTimeout = 2 * time.Second
	ResultPollTimeout  = 1 * time.Second
)

// ResultSyncWorker drains sync_results_queue and marks attempts completed
// in PostgreSQL, in batches.
type ResultSyncWorker struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
	log  zerolog.Logger
}

// NewResultSyncWorker creates a new ResultSyncWorker.
func NewResultSyncWorker(pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) *ResultSyncWorker {
	return &ResultSyncWorker{
		pool: pool,
		rdb:  rdb,
		log:  log.With().Str("component", "result_sync_worker").Logger(),
	}
}

// Start begins the worker loop with batching. Call in a goroutine.
func (w *ResultSyncWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ResultSyncWorker started")

	batch := make([]*service.ResultSyncPayload, 0, ResultBatchSize)
	lastFlush := time.Now()

	for {
		if len(batch) > 0 &&
			(len(batch) >= ResultBatchSize || time.Since(lastFlush) >= ResultBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, ResultPollTimeout, config.WorkerKey.SyncResultsQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}
			if len(item) < 2 {
				continue
			}

			var p service.ResultSyncPayload
			if err := json.Unmarshal([]byte(item[1]), &p); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}
			batch = append(batch, &p)
		}
	}
}

func (w *ResultSyncWorker) flushSafe(ctx context.Context, batch []*service.ResultSyncPayload) {
	if len(batch) == 0 {
		return
	}

	if err := w.bulkComplete(ctx, batch); err != nil {
		w.log.Warn().Err(err).Msg("bulk completion failed, using fallback")

		for _, p := range batch {
			if err := w.persistSingle(ctx, p); err != nil {
				w.log.Error().Err(err).Msg("persistSingle failed — requeueing")
				raw, _ := json.Marshal(p)
				w.rdb.RPush(ctx, config.WorkerKey.SyncResultsQueue, raw)
			}
		}
		return
	}

	// Mirrored answer buffers are no longer needed once the attempt is
	// marked completed.
	w.bulkClearAnswerBuffers(ctx, batch)
}

// bulkComplete updates all attempts of a batch in one round trip, using
// UNNEST over parallel arrays.
func (w *ResultSyncWorker) bulkComplete(ctx context.Context, batch []*service.ResultSyncPayload) error {
	n := len(batch)

	ids := make([]uuid.UUID, 0, n)
	corrects := make([]int, 0, n)
	incorrects := make([]int, 0, n)
	skippeds := make([]int, 0, n)
	marks := make([]float64, 0, n)
	percentages := make([]float64, 0, n)
	timeSpents := make([]int, 0, n)
	finishedAts := make([]time.Time, n)

	now := time.Now()
	for i, p := range batch {
		id, err := uuid.Parse(p.AttemptID)
		if err != nil {
			return err
		}
		ids = append(ids, id)
		corrects = append(corrects, p.Summary.Correct)
		incorrects = append(incorrects, p.Summary.Incorrect)
		skippeds = append(skippeds, p.Summary.Skipped)
		marks = append(marks, p.Summary.MarksObtained)
		percentages = append(percentages, p.Summary.Percentage)
		timeSpents = append(timeSpents, p.Summary.TimeSpentSeconds)
		finishedAts[i] = now
	}

	query := `
		UPDATE attempts AS a
		SET status = 'COMPLETED',
		    correct = t.correct,
		    incorrect = t.incorrect,
		    skipped = t.skipped,
		    marks_obtained = t.marks_obtained,
		    percentage = t.percentage,
		    time_spent_seconds = t.time_spent_seconds,
		    finished_at = t.finished_at
		FROM (
			SELECT
				u.id,
				u.correct,
				u.incorrect,
				u.skipped,
				u.marks_obtained,
				u.percentage,
				u.time_spent_seconds,
				u.finished_at
			FROM UNNEST(
				$1::uuid[],
				$2::int[],
				$3::int[],
				$4::int[],
				$5::float8[],
				$6::float8[],
				$7::int[],
				$8::timestamptz[]
			) AS u (id, correct, incorrect, skipped, marks_obtained, percentage, time_spent_seconds, finished_at)
		) AS t
		WHERE a.id = t.id
	`

	_, err := w.pool.Exec(ctx, query, ids, corrects, incorrects, skippeds, marks, percentages, timeSpents, finishedAts)
	return err
}

func (w *ResultSyncWorker) bulkClearAnswerBuffers(ctx context.Context, batch []*service.ResultSyncPayload) {
	pipe := w.rdb.Pipeline()

	for _, p := range batch {
		pipe.Del(ctx, config.CacheKey.AttemptAnswersKey(p.AttemptID))
	}

	_, _ = pipe.Exec(ctx)
}

// persistSingle is the fallback path when the batch update fails.
func (w *ResultSyncWorker) persistSingle(ctx context.Context, p *service.ResultSyncPayload) error {
	id, err := uuid.Parse(p.AttemptID)
	if err != nil {
		return err
	}

	_, err = w.pool.Exec(ctx,
		`UPDATE attempts
		 SET status = 'COMPLETED',
		     correct = $1,
		     incorrect = $2,
		     skipped = $3,
		     marks_obtained = $4,
		     percentage = $5,
		     time_spent_seconds = $6,
		     finished_at = NOW()
		 WHERE id = $7`,
		p.Summary.Correct, p.Summary.Incorrect, p.Summary.Skipped,
		p.Summary.MarksObtained, p.Summary.Percentage, p.Summary.TimeSpentSeconds, id,
	)
	return err
}
