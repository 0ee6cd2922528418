package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/prepstack/prepstack-backend/internal/assessment"
	"github.com/prepstack/prepstack-backend/internal/config"
	"github.com/prepstack/prepstack-backend/internal/database"
	"github.com/prepstack/prepstack-backend/internal/handler"
	"github.com/prepstack/prepstack-backend/internal/logger"
	"github.com/prepstack/prepstack-backend/internal/remote"
	"github.com/prepstack/prepstack-backend/internal/repository"
	"github.com/prepstack/prepstack-backend/internal/router"
	"github.com/prepstack/prepstack-backend/internal/service"
	"github.com/prepstack/prepstack-backend/internal/validator"
	"github.com/prepstack/prepstack-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting PrepStack Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	attemptRepo := repository.NewAttemptRepository(pool)

	// ─── Pick the Question Source ──────────────────────────────────────
	// QUESTION_API_URL switches the bank to an upstream service. Without
	// it questions come from PostgreSQL, and an empty database falls back
	// to the built-in fixture bank so dev setups work out of the box.
	var (
		source     assessment.QuestionSource
		categories assessment.CategorySource
	)
	if cfg.QuestionAPIURL != "" {
		client := remote.NewClient(cfg.QuestionAPIURL, log)
		source, categories = client, client
		log.Info().Str("url", cfg.QuestionAPIURL).Msg("Question bank: upstream API")
	} else if cats, err := questionRepo.ListCategories(ctx); err == nil && len(cats) > 0 {
		source, categories = questionRepo, questionRepo
		log.Info().Int("categories", len(cats)).Msg("Question bank: PostgreSQL")
	} else {
		static := assessment.NewStaticSource(assessment.FixtureBank())
		source, categories = static, static
		log.Warn().Msg("Question bank empty, using built-in fixtures")
	}

	// ─── Initialize Services ──────────────────────────────────────────
	categories = service.NewCachedCategorySource(categories, rdb, log)
	authService := service.NewAuthService(cfg, rdb)
	userService := service.NewUserService(userRepo, authService)
	syncBackend := service.NewSyncBackend(attemptRepo, rdb, log)
	practiceService := service.NewPracticeService(source, categories, syncBackend.ForUser, cfg, log)
	attemptService := service.NewAttemptService(attemptRepo)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:     handler.NewAuthHandler(authService, userService),
		Practice: handler.NewPracticeHandler(practiceService),
		Attempt:  handler.NewAttemptHandler(attemptService),
		WS:       handler.NewWSHandler(practiceService, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	answerWorker := worker.NewAnswerSyncWorker(pool, rdb, log)
	resultWorker := worker.NewResultSyncWorker(pool, rdb, log)

	go answerWorker.Start(workerCtx)
	go resultWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for queues to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
