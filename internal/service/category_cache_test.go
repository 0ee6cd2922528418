package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/prepstack/prepstack-backend/internal/config"
)

type countingCategorySource struct {
	calls      int
	categories []string
}

func (s *countingCategorySource) ListCategories(context.Context) ([]string, error) {
	s.calls++
	return s.categories, nil
}

func TestCachedCategorySource(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	inner := &countingCategorySource{categories: []string{"english", "reasoning"}}
	source := NewCachedCategorySource(inner, rdb, zerolog.Nop())
	ctx := context.Background()

	first, err := source.ListCategories(ctx)
	if err != nil {
		t.Fatalf("first ListCategories: %v", err)
	}
	second, err := source.ListCategories(ctx)
	if err != nil {
		t.Fatalf("second ListCategories: %v", err)
	}

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("unexpected catalogues %v / %v", first, second)
	}
	if inner.calls != 1 {
		t.Errorf("inner source called %d times, want 1 (second read from cache)", inner.calls)
	}
}

func TestCachedCategorySourceRecoversFromCorruptEntry(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	mr.Set(config.CacheKey.CategoryListKey(), "{not json")

	inner := &countingCategorySource{categories: []string{"english"}}
	source := NewCachedCategorySource(inner, rdb, zerolog.Nop())

	categories, err := source.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(categories) != 1 || inner.calls != 1 {
		t.Errorf("corrupt cache not rebuilt: %v, calls=%d", categories, inner.calls)
	}
}
