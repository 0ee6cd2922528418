package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/prepstack/prepstack-backend/internal/assessment"
	"github.com/prepstack/prepstack-backend/internal/config"
	"github.com/prepstack/prepstack-backend/internal/logger"
)

const categoryCacheTTL = 10 * time.Minute

// CachedCategorySource caches the category catalogue in Redis in front of a
// slower source (PostgreSQL or the upstream API). Cache problems degrade to
// a direct read, never to an error.
type CachedCategorySource struct {
	inner assessment.CategorySource
	rdb   *redis.Client
	log   zerolog.Logger
}

// NewCachedCategorySource wraps a category source with Redis caching.
func NewCachedCategorySource(inner assessment.CategorySource, rdb *redis.Client, log zerolog.Logger) *CachedCategorySource {
	return &CachedCategorySource{
		inner: inner,
		rdb:   rdb,
		log:   logger.Component(log, "category_cache"),
	}
}

// ListCategories serves the catalogue from cache when warm.
func (s *CachedCategorySource) ListCategories(ctx context.Context) ([]string, error) {
	key := config.CacheKey.CategoryListKey()

	cached, err := s.rdb.Get(ctx, key).Result()
	if err == nil {
		var categories []string
		if err := json.Unmarshal([]byte(cached), &categories); err == nil {
			return categories, nil
		}
		// Corrupt entry, fall through and rebuild it.
		s.rdb.Del(ctx, key)
	}

	categories, err := s.inner.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(categories)
	if err == nil {
		if err := s.rdb.Set(ctx, key, raw, categoryCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Msg("Category cache write failed")
		}
	}
	return categories, nil
}
