package assessment

import (
	"context"

	"github.com/rs/zerolog"
)

const defaultMarksPerQuestion = 2

// BuilderConfig tunes how session question sets are assembled.
type BuilderConfig struct {
	// PriorityCategories receive the larger share when distributing questions
	// beyond the per-category floor. Typically the high-yield subjects for
	// the exam domain (current affairs and the like).
	PriorityCategories []string

	// MarksPerQuestion overrides the flat default of 2 when positive.
	MarksPerQuestion float64
}

// Builder assembles a session's frozen question set: it computes a category
// distribution summing exactly to the requested total, then materializes
// questions from the configured source.
type Builder struct {
	source QuestionSource
	cfg    BuilderConfig
	log    zerolog.Logger
}

// NewBuilder creates a Builder drawing questions from source.
func NewBuilder(source QuestionSource, cfg BuilderConfig, log zerolog.Logger) *Builder {
	return &Builder{
		source: source,
		cfg:    cfg,
		log:    log.With().Str("component", "session_builder").Logger(),
	}
}

// Build produces the distribution for total questions over categories and
// fetches the question list. The question bank may return fewer questions
// than requested for a category; the session is then simply smaller, which
// is preferred over failing the whole build.
func (b *Builder) Build(ctx context.Context, total int, categories []string) ([]DistributionEntry, []Question, error) {
	dist, err := BuildDistribution(total, categories, b.cfg)
	if err != nil {
		return nil, nil, err
	}

	var questions []Question
	for _, entry := range dist {
		fetched, err := b.source.FetchQuestions(ctx, entry.Category, entry.Count)
		if err != nil {
			b.log.Warn().Err(err).
				Str("category", entry.Category).
				Int("count", entry.Count).
				Msg("Question fetch failed, category skipped")
			continue
		}
		if len(fetched) < entry.Count {
			b.log.Debug().
				Str("category", entry.Category).
				Int("requested", entry.Count).
				Int("received", len(fetched)).
				Msg("Question bank short for category")
		}
		for i := range fetched {
			fetched[i].Marks = entry.MarksPerQuestion
		}
		questions = append(questions, fetched...)
	}

	if len(questions) == 0 {
		return nil, nil, ErrNoQuestions
	}
	return dist, questions, nil
}

// BuildDistribution allocates total questions over the given categories.
// Every category receives at least a size-dependent floor, the remainder is
// distributed preferentially to priority categories, and a reconciliation
// pass adjusts one question at a time until the counts sum exactly to total.
//
// The subtraction side of reconciliation never takes a category below its
// floor and gives up after 10×len(categories) cycles; with every category
// pinned at its floor the distribution can end slightly off total, which is
// accepted over looping forever.
func BuildDistribution(total int, categories []string, cfg BuilderConfig) ([]DistributionEntry, error) {
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}
	if total < 1 {
		return nil, ErrInvalidTotal
	}

	marks := cfg.MarksPerQuestion
	if marks <= 0 {
		marks = defaultMarksPerQuestion
	}

	num := len(categories)
	floor := perCategoryFloor(total, num)

	priority := make(map[string]bool, len(cfg.PriorityCategories))
	for _, c := range cfg.PriorityCategories {
		priority[c] = true
	}
	var priorityIdx []int
	for i, c := range categories {
		if priority[c] {
			priorityIdx = append(priorityIdx, i)
		}
	}

	baseQuestions := floor * num
	remaining := total - baseQuestions
	if remaining < 0 {
		remaining = 0
	}

	counts := make([]int, num)
	perPriority := 0
	perOther := 0
	if remaining > 0 {
		perPriority = ceilDiv(remaining, len(priorityIdx)+2)
		perOther = remaining / (num * 3)
	}
	for i, c := range categories {
		counts[i] = floor
		if priority[c] {
			counts[i] += perPriority
		} else {
			counts[i] += perOther
		}
	}

	reconcile(counts, priorityIdx, total, floor)

	dist := make([]DistributionEntry, num)
	for i, c := range categories {
		dist[i] = DistributionEntry{
			Category:         c,
			Count:            counts[i],
			MarksPerQuestion: marks,
		}
	}
	return dist, nil
}

// perCategoryFloor is the minimum questions every category must receive, so
// small sessions still represent each category at least minimally.
func perCategoryFloor(total, num int) int {
	floor := total / num
	if total <= 20 {
		if floor < 1 {
			floor = 1
		}
		if total >= num*2 && floor < 2 {
			floor = 2
		}
		return floor
	}
	if floor < 3 {
		floor = 3
	}
	return floor
}

// reconcile fixes integer-rounding drift so the counts sum exactly to total.
// Deficits are filled one question at a time, cycling priority categories
// first and then all of them. Surpluses are removed one at a time from
// categories above the floor, bounded to 10×len(counts) cycles.
func reconcile(counts []int, priorityIdx []int, total, floor int) {
	sum := 0
	for _, c := range counts {
		sum += c
	}

	for sum < total {
		for _, i := range priorityIdx {
			if sum >= total {
				break
			}
			counts[i]++
			sum++
		}
		for i := range counts {
			if sum >= total {
				break
			}
			counts[i]++
			sum++
		}
	}

	cycles := 0
	maxCycles := 10 * len(counts)
	for sum > total && cycles < maxCycles {
		for i := range counts {
			if sum <= total {
				break
			}
			if counts[i] > floor {
				counts[i]--
				sum--
			}
		}
		cycles++
	}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
