package assessment

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
)

// fakeSource serves generated questions with a configurable per-category
// capacity and optional failure injection.
type fakeSource struct {
	capacity map[string]int // missing key = unlimited
	failFor  map[string]error
	calls    int
}

func (f *fakeSource) FetchQuestions(_ context.Context, category string, count int) ([]Question, error) {
	f.calls++
	if err := f.failFor[category]; err != nil {
		return nil, err
	}
	if cap, ok := f.capacity[category]; ok && count > cap {
		count = cap
	}
	questions := make([]Question, count)
	for i := range questions {
		questions[i] = mcq(fmt.Sprintf("%s-%d", category, i), "A", 0)
		questions[i].Category = category
	}
	return questions, nil
}

func testBuilder(src QuestionSource, cfg BuilderConfig) *Builder {
	return NewBuilder(src, cfg, zerolog.Nop())
}

func categoryNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("cat-%d", i)
	}
	return names
}

func TestDistributionNoCategories(t *testing.T) {
	if _, err := BuildDistribution(10, nil, BuilderConfig{}); !errors.Is(err, ErrNoCategories) {
		t.Fatalf("expected ErrNoCategories, got %v", err)
	}
}

func TestDistributionInvalidTotal(t *testing.T) {
	if _, err := BuildDistribution(0, []string{"a"}, BuilderConfig{}); !errors.Is(err, ErrInvalidTotal) {
		t.Fatalf("expected ErrInvalidTotal, got %v", err)
	}
}

func TestDistributionExactness(t *testing.T) {
	for total := 1; total <= 60; total++ {
		for num := 1; num <= 10; num++ {
			floor := perCategoryFloor(total, num)
			if floor*num > total {
				// Floor-saturated input: the bounded reconciliation cannot
				// reach the total. Covered separately below.
				continue
			}

			cats := categoryNames(num)
			cfg := BuilderConfig{PriorityCategories: cats[:num/2]}
			dist, err := BuildDistribution(total, cats, cfg)
			if err != nil {
				t.Fatalf("total=%d num=%d: %v", total, num, err)
			}

			sum := 0
			for _, e := range dist {
				sum += e.Count
				if e.Count < floor {
					t.Fatalf("total=%d num=%d: category %s below floor %d: %d",
						total, num, e.Category, floor, e.Count)
				}
			}
			if sum != total {
				t.Fatalf("total=%d num=%d: distribution sums to %d", total, num, sum)
			}
		}
	}
}

func TestDistributionScenarioEightCategories(t *testing.T) {
	// 20 questions over 8 categories with 6 priority categories: sums to 20
	// and every category keeps its floor of 2 (20 >= 8*2).
	cats := categoryNames(8)
	dist, err := BuildDistribution(20, cats, BuilderConfig{PriorityCategories: cats[:6]})
	if err != nil {
		t.Fatal(err)
	}

	sum := 0
	for _, e := range dist {
		sum += e.Count
		if e.Count < 2 {
			t.Fatalf("category %s below floor: %d", e.Category, e.Count)
		}
		if e.MarksPerQuestion != 2 {
			t.Fatalf("expected default marks 2, got %v", e.MarksPerQuestion)
		}
	}
	if sum != 20 {
		t.Fatalf("distribution sums to %d, want 20", sum)
	}
}

func TestDistributionFloorSaturatedBound(t *testing.T) {
	// 21 questions over 10 categories: the large-session floor of 3 forces a
	// base of 30 with nothing to remove, so the bounded reconciliation stops
	// above the requested total instead of looping forever.
	dist, err := BuildDistribution(21, categoryNames(10), BuilderConfig{})
	if err != nil {
		t.Fatal(err)
	}

	sum := 0
	for _, e := range dist {
		sum += e.Count
		if e.Count != 3 {
			t.Fatalf("expected every category at floor 3, got %d", e.Count)
		}
	}
	if sum != 30 {
		t.Fatalf("expected saturated distribution of 30, got %d", sum)
	}
}

func TestBuilderAcceptsShortBank(t *testing.T) {
	src := &fakeSource{capacity: map[string]int{"cat-0": 1}}
	b := testBuilder(src, BuilderConfig{})

	dist, questions, err := b.Build(context.Background(), 10, categoryNames(2))
	if err != nil {
		t.Fatal(err)
	}

	want := 0
	for _, e := range dist {
		if e.Category == "cat-0" {
			want += 1 // capacity-limited
		} else {
			want += e.Count
		}
	}
	if len(questions) != want {
		t.Fatalf("expected %d questions, got %d", want, len(questions))
	}
	for _, q := range questions {
		if q.Marks != 2 {
			t.Fatalf("expected entry marks applied to question, got %v", q.Marks)
		}
	}
}

func TestBuilderSkipsFailingCategory(t *testing.T) {
	src := &fakeSource{failFor: map[string]error{"cat-1": errors.New("bank down")}}
	b := testBuilder(src, BuilderConfig{})

	_, questions, err := b.Build(context.Background(), 10, categoryNames(2))
	if err != nil {
		t.Fatal(err)
	}
	for _, q := range questions {
		if q.Category == "cat-1" {
			t.Fatal("expected failing category to be skipped")
		}
	}
	if len(questions) == 0 {
		t.Fatal("expected questions from the healthy category")
	}
}

func TestBuilderNoQuestionsAtAll(t *testing.T) {
	src := &fakeSource{failFor: map[string]error{
		"cat-0": errors.New("down"),
		"cat-1": errors.New("down"),
	}}
	b := testBuilder(src, BuilderConfig{})

	if _, _, err := b.Build(context.Background(), 10, categoryNames(2)); !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
}
