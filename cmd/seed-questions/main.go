package main

import (
	"context"
	"fmt"
	"time"

	"github.com/prepstack/prepstack-backend/internal/assessment"
	"github.com/prepstack/prepstack-backend/internal/config"
	"github.com/prepstack/prepstack-backend/internal/database"
	"github.com/prepstack/prepstack-backend/internal/logger"
	"github.com/prepstack/prepstack-backend/internal/repository"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	questionRepo := repository.NewQuestionRepository(pool)

	bank := assessment.FixtureBank()
	fmt.Printf("=== Seeding %d Questions ===\n", len(bank))

	seeded := 0
	for _, q := range bank {
		if err := questionRepo.Insert(ctx, q); err != nil {
			log.Error().Err(err).Str("question_id", q.ID).Msg("Failed to seed question")
			continue
		}
		seeded++
	}

	fmt.Printf("Done. Seeded %d/%d questions.\n", seeded, len(bank))
}
