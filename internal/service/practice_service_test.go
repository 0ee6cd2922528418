package service

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/prepstack/prepstack-backend/internal/assessment"
	"github.com/prepstack/prepstack-backend/internal/config"
)

type memoryBackend struct {
	mu        sync.Mutex
	registers int
	completes int
	answers   map[string]string
}

func (m *memoryBackend) RegisterSession(_ context.Context, _ assessment.SessionConfig) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registers++
	return "mem-1", nil
}

func (m *memoryBackend) SubmitAnswer(_ context.Context, _, questionID, answer string, _ int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.answers == nil {
		m.answers = make(map[string]string)
	}
	m.answers[questionID] = answer
	return nil
}

func (m *memoryBackend) CompleteSession(_ context.Context, _ string, _ assessment.Summary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completes++
	return nil
}

func newTestPracticeService(t *testing.T) (*PracticeService, *memoryBackend) {
	t.Helper()

	source := assessment.NewStaticSource(assessment.FixtureBank())
	backend := &memoryBackend{}
	cfg := &config.Config{
		PriorityCategories:      assessment.DefaultPriorityCategories,
		DefaultMarksPerQuestion: 2,
	}
	provider := func(userID int) assessment.Backend { return backend }
	return NewPracticeService(source, source, provider, cfg, zerolog.Nop()), backend
}

func TestPracticeLifecycle(t *testing.T) {
	svc, backend := newTestPracticeService(t)
	ctx := context.Background()

	state, err := svc.Configure(ctx, 1, "Evening drill", 8, 30, nil, true, 0.25)
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if state.Status != assessment.StateConfiguring {
		t.Errorf("status after configure = %s", state.Status)
	}
	if state.TotalQuestions == 0 {
		t.Fatal("no questions assembled")
	}
	if state.CurrentQuestion == nil {
		t.Fatal("no current question after configure")
	}

	state, err = svc.Begin(ctx, 1)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if state.Status != assessment.StateInProgress {
		t.Errorf("status after begin = %s", state.Status)
	}
	if backend.registers != 1 {
		t.Errorf("registers = %d, want 1", backend.registers)
	}

	qID := state.CurrentQuestion.ID
	state, err = svc.Answer(1, qID, "A")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if state.AnsweredCount != 1 {
		t.Errorf("answered count = %d, want 1", state.AnsweredCount)
	}

	if _, err := svc.Advance(1, "NEXT"); err != nil {
		t.Fatalf("Advance: %v", err)
	}

	result, err := svc.Complete(ctx, 1)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if result.AttemptID != "mem-1" {
		t.Errorf("attempt id = %q", result.AttemptID)
	}
	if result.SyncStatus != assessment.SyncSynced {
		t.Errorf("sync status = %s", result.SyncStatus)
	}
	if backend.completes != 1 {
		t.Errorf("completes = %d, want 1", backend.completes)
	}
}

func TestCategoryCatalogueFlagsPriority(t *testing.T) {
	svc, _ := newTestPracticeService(t)

	catalogue, err := svc.CategoryCatalogue(context.Background())
	if err != nil {
		t.Fatalf("CategoryCatalogue: %v", err)
	}
	if len(catalogue) == 0 {
		t.Fatal("empty catalogue")
	}

	bySlug := make(map[string]bool)
	for _, c := range catalogue {
		if c.Name == "" {
			t.Errorf("category %s has no display name", c.Slug)
		}
		bySlug[c.Slug] = c.Priority
	}
	if !bySlug["current-affairs"] {
		t.Error("current-affairs not flagged as priority")
	}
	if bySlug["english"] {
		t.Error("english flagged as priority")
	}
}

func TestQuestionViewNeverLeaksAnswerKey(t *testing.T) {
	svc, _ := newTestPracticeService(t)
	ctx := context.Background()

	if _, err := svc.Configure(ctx, 1, "", 5, 10, nil, false, 0); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	state := svc.State(1)
	if state.CurrentQuestion == nil {
		t.Fatal("no current question")
	}
	// QuestionView has no correct-answer field at all; make sure prompt and
	// options made it across.
	if state.CurrentQuestion.Prompt == "" || len(state.CurrentQuestion.Options) == 0 {
		t.Errorf("question view missing content: %+v", state.CurrentQuestion)
	}
}

func TestReviewOnlyAfterCompletion(t *testing.T) {
	svc, _ := newTestPracticeService(t)
	ctx := context.Background()

	if _, err := svc.Configure(ctx, 1, "", 5, 10, nil, false, 0); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if _, err := svc.Begin(ctx, 1); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	if _, ok := svc.Review(1); ok {
		t.Fatal("review available during live session")
	}

	if _, err := svc.Complete(ctx, 1); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	review, ok := svc.Review(1)
	if !ok {
		t.Fatal("review unavailable after completion")
	}
	for _, rq := range review {
		if rq.CorrectAnswer == "" {
			t.Errorf("review question %s has no correct answer", rq.ID)
		}
	}
}

func TestSessionsIsolatedPerUser(t *testing.T) {
	svc, _ := newTestPracticeService(t)
	ctx := context.Background()

	if _, err := svc.Configure(ctx, 1, "", 5, 10, nil, false, 0); err != nil {
		t.Fatalf("Configure user 1: %v", err)
	}
	if _, err := svc.Begin(ctx, 1); err != nil {
		t.Fatalf("Begin user 1: %v", err)
	}

	// A second user configuring must not disturb the first user's session.
	if _, err := svc.Configure(ctx, 2, "", 5, 10, nil, false, 0); err != nil {
		t.Fatalf("Configure user 2: %v", err)
	}

	if got := svc.State(1).Status; got != assessment.StateInProgress {
		t.Errorf("user 1 status = %s, want IN_PROGRESS", got)
	}
	if got := svc.State(2).Status; got != assessment.StateConfiguring {
		t.Errorf("user 2 status = %s, want CONFIGURING", got)
	}
}

func TestConfigureZeroesRatioWhenNegativeMarkingOff(t *testing.T) {
	svc, _ := newTestPracticeService(t)
	ctx := context.Background()

	if _, err := svc.Configure(ctx, 1, "", 5, 10, nil, false, 0.5); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if _, err := svc.Begin(ctx, 1); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	result, err := svc.Complete(ctx, 1)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	// Every question skipped: with negative marking off the score is 0, not
	// negative.
	if result.Summary.MarksObtained != 0 {
		t.Errorf("marks = %v, want 0", result.Summary.MarksObtained)
	}
	if result.Summary.Correct != 0 || result.Summary.Incorrect != 0 {
		t.Errorf("expected all questions skipped, got %+v", result.Summary)
	}
}
