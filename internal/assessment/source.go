package assessment

import (
	"context"
	"sort"
)

// QuestionSource supplies questions for session building. Implementations
// may return fewer questions than requested when the bank is exhausted for a
// category; the builder accepts the short count.
type QuestionSource interface {
	FetchQuestions(ctx context.Context, category string, count int) ([]Question, error)
}

// CategorySource lists the categories a session can draw from.
type CategorySource interface {
	ListCategories(ctx context.Context) ([]string, error)
}

// StaticSource serves questions from an in-memory fixture set. It is a
// drop-in substitute for the remote question bank when that service is
// unavailable, and the backing store for offline practice.
type StaticSource struct {
	byCategory map[string][]Question
}

// NewStaticSource groups the given questions by category.
func NewStaticSource(questions []Question) *StaticSource {
	s := &StaticSource{byCategory: make(map[string][]Question)}
	for _, q := range questions {
		s.byCategory[q.Category] = append(s.byCategory[q.Category], q)
	}
	return s
}

// FetchQuestions returns up to count questions for a category. An unknown
// category yields an empty slice, not an error.
func (s *StaticSource) FetchQuestions(_ context.Context, category string, count int) ([]Question, error) {
	bank := s.byCategory[category]
	if count > len(bank) {
		count = len(bank)
	}
	out := make([]Question, count)
	copy(out, bank[:count])
	return out, nil
}

// ListCategories returns all categories with at least one question, sorted
// for stable output.
func (s *StaticSource) ListCategories(_ context.Context) ([]string, error) {
	cats := make([]string, 0, len(s.byCategory))
	for c := range s.byCategory {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats, nil
}
