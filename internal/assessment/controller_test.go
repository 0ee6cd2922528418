package assessment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakeBackend struct {
	mu          sync.Mutex
	registerErr error
	completeErr error
	submitErr   error

	registered  []SessionConfig
	submissions []AnswerRecord
	completions []Summary
	submitted   chan struct{}
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{submitted: make(chan struct{}, 64)}
}

func (f *fakeBackend) RegisterSession(_ context.Context, cfg SessionConfig) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.registerErr != nil {
		return "", f.registerErr
	}
	f.registered = append(f.registered, cfg)
	return "remote-1", nil
}

func (f *fakeBackend) SubmitAnswer(_ context.Context, _, questionID, answer string, elapsedSeconds int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return f.submitErr
	}
	f.submissions = append(f.submissions, AnswerRecord{QuestionID: questionID, Answer: answer, ElapsedSeconds: elapsedSeconds})
	select {
	case f.submitted <- struct{}{}:
	default:
	}
	return nil
}

func (f *fakeBackend) CompleteSession(_ context.Context, _ string, summary Summary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.completeErr != nil {
		return f.completeErr
	}
	f.completions = append(f.completions, summary)
	return nil
}

func (f *fakeBackend) completionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.completions)
}

func (f *fakeBackend) submissionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.submissions)
}

// newTestController wires a controller over an unlimited fake bank and a
// manually advanced wall clock.
func newTestController(backend Backend) (*Controller, *time.Time) {
	builder := testBuilder(&fakeSource{}, BuilderConfig{})
	c := NewController(builder, backend, zerolog.Nop())

	current := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }
	return c, &current
}

func TestControllerLifecycle(t *testing.T) {
	backend := newFakeBackend()
	c, now := newTestController(backend)
	ctx := context.Background()

	scheme := MarkingScheme{MarksPerQuestion: 2, NegativeMarking: true, NegativeRatio: 0.25}
	if err := c.Configure(ctx, "mixed", 5, 10, []string{"cat-0"}, scheme); err != nil {
		t.Fatal(err)
	}
	if c.State() != StateConfiguring {
		t.Fatalf("expected CONFIGURING, got %s", c.State())
	}

	if err := c.Begin(ctx); err != nil {
		t.Fatal(err)
	}
	if c.State() != StateInProgress {
		t.Fatalf("expected IN_PROGRESS, got %s", c.State())
	}
	if id, status := c.SyncState(); id != "remote-1" || status != SyncSynced {
		t.Fatalf("expected registered remote session, got %q/%s", id, status)
	}

	questions := c.Questions()
	if len(questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(questions))
	}

	// Answer the first question 12 seconds in: elapsed is measured from the
	// last cursor move.
	*now = now.Add(12 * time.Second)
	if err := c.SelectAnswer(questions[0].ID, "A"); err != nil { // correct
		t.Fatal(err)
	}
	rec, ok := c.Answers()[questions[0].ID]
	if !ok || rec.ElapsedSeconds != 12 {
		t.Fatalf("expected 12s elapsed, got %+v", rec)
	}

	if err := c.Advance(DirectionNext); err != nil {
		t.Fatal(err)
	}
	*now = now.Add(8 * time.Second)
	if err := c.SelectAnswer(questions[1].ID, "B"); err != nil { // wrong
		t.Fatal(err)
	}

	*now = now.Add(40 * time.Second)
	sum, err := c.Complete(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if c.State() != StateCompleted {
		t.Fatalf("expected COMPLETED, got %s", c.State())
	}
	if sum.Correct != 1 || sum.Incorrect != 1 || sum.Skipped != 3 {
		t.Fatalf("expected 1/1/3, got %d/%d/%d", sum.Correct, sum.Incorrect, sum.Skipped)
	}
	// 2 - 0.5 penalty out of 10 possible.
	if !almostEqual(sum.MarksObtained, 1.5) {
		t.Fatalf("expected 1.5 marks, got %v", sum.MarksObtained)
	}
	if sum.TimeSpentSeconds != 60 {
		t.Fatalf("expected 60s spent, got %d", sum.TimeSpentSeconds)
	}
	if backend.completionCount() != 1 {
		t.Fatalf("expected 1 completion push, got %d", backend.completionCount())
	}
}

func TestControllerAnswerMirroring(t *testing.T) {
	backend := newFakeBackend()
	c, _ := newTestController(backend)
	ctx := context.Background()

	if err := c.Configure(ctx, "mixed", 3, 10, []string{"cat-0"}, MarkingScheme{MarksPerQuestion: 2}); err != nil {
		t.Fatal(err)
	}
	if err := c.Begin(ctx); err != nil {
		t.Fatal(err)
	}

	q := c.Questions()[0]
	if err := c.SelectAnswer(q.ID, "C"); err != nil {
		t.Fatal(err)
	}

	select {
	case <-backend.submitted:
	case <-time.After(2 * time.Second):
		t.Fatal("answer was never mirrored to the backend")
	}
}

func TestControllerRegistrationFailureDegradesToLocal(t *testing.T) {
	backend := newFakeBackend()
	backend.registerErr = errors.New("network down")
	c, _ := newTestController(backend)
	ctx := context.Background()

	if err := c.Configure(ctx, "mixed", 3, 10, []string{"cat-0"}, MarkingScheme{MarksPerQuestion: 2}); err != nil {
		t.Fatal(err)
	}
	if err := c.Begin(ctx); err != nil {
		t.Fatalf("registration failure must not block the session: %v", err)
	}
	if id, status := c.SyncState(); id != "" || status != SyncLocalOnly {
		t.Fatalf("expected local-only mode, got %q/%s", id, status)
	}

	// Without a remote session there is nothing to mirror to.
	q := c.Questions()[0]
	if err := c.SelectAnswer(q.ID, "A"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(50 * time.Millisecond)
	if backend.submissionCount() != 0 {
		t.Fatal("mirrored an answer despite having no remote session")
	}

	if _, err := c.Complete(ctx); err != nil {
		t.Fatal(err)
	}
	if _, status := c.SyncState(); status != SyncLocalOnly {
		t.Fatalf("expected LOCAL_ONLY after local completion, got %s", status)
	}
}

func TestControllerCompletePushFailureIsNonFatal(t *testing.T) {
	backend := newFakeBackend()
	backend.completeErr = errors.New("timeout")
	c, _ := newTestController(backend)
	ctx := context.Background()

	if err := c.Configure(ctx, "mixed", 3, 10, []string{"cat-0"}, MarkingScheme{MarksPerQuestion: 2}); err != nil {
		t.Fatal(err)
	}
	if err := c.Begin(ctx); err != nil {
		t.Fatal(err)
	}

	sum, err := c.Complete(ctx)
	if err != nil {
		t.Fatalf("remote failure must not fail completion: %v", err)
	}
	if c.State() != StateCompleted {
		t.Fatalf("expected COMPLETED, got %s", c.State())
	}
	if sum.Skipped != 3 {
		t.Fatalf("expected a valid summary, got %+v", sum)
	}
	if _, status := c.SyncState(); status != SyncFailed {
		t.Fatalf("expected SYNC_FAILED, got %s", status)
	}
}

func TestControllerAutoSubmitOnExpiry(t *testing.T) {
	backend := newFakeBackend()
	builder := testBuilder(&fakeSource{}, BuilderConfig{})
	c := NewController(builder, backend, zerolog.Nop())
	c.clock.interval = 2 * time.Millisecond
	ctx := context.Background()

	if err := c.Configure(ctx, "mixed", 4, 1, []string{"cat-0"}, MarkingScheme{MarksPerQuestion: 2}); err != nil {
		t.Fatal(err)
	}
	if err := c.Begin(ctx); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for c.State() != StateCompleted && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	if c.State() != StateCompleted {
		t.Fatal("clock expiry did not auto-submit the session")
	}
	sum, ok := c.Result()
	if !ok {
		t.Fatal("expected a result after auto-submit")
	}
	if sum.Skipped != 4 {
		t.Fatalf("expected all questions skipped, got %+v", sum)
	}
	if backend.completionCount() != 1 {
		t.Fatalf("expected exactly one completion, got %d", backend.completionCount())
	}

	// A manual submit racing the expiry returns the same summary without a
	// second push.
	again, err := c.Complete(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if again != sum {
		t.Fatalf("expected identical summary, got %+v vs %+v", again, sum)
	}
	if backend.completionCount() != 1 {
		t.Fatalf("duplicate completion push: %d", backend.completionCount())
	}
}

func TestControllerAdvanceBounds(t *testing.T) {
	c, _ := newTestController(nil)
	ctx := context.Background()

	if err := c.Configure(ctx, "mixed", 3, 10, []string{"cat-0"}, MarkingScheme{MarksPerQuestion: 2}); err != nil {
		t.Fatal(err)
	}
	if err := c.Begin(ctx); err != nil {
		t.Fatal(err)
	}

	if err := c.Advance(DirectionPrevious); err != nil {
		t.Fatal(err)
	}
	if c.CurrentIndex() != 0 {
		t.Fatalf("expected index pinned at 0, got %d", c.CurrentIndex())
	}

	for i := 0; i < 10; i++ {
		if err := c.Advance(DirectionNext); err != nil {
			t.Fatal(err)
		}
	}
	if c.CurrentIndex() != 2 {
		t.Fatalf("expected index pinned at 2, got %d", c.CurrentIndex())
	}
}

func TestControllerReset(t *testing.T) {
	c, _ := newTestController(nil)
	ctx := context.Background()

	if err := c.Configure(ctx, "mixed", 3, 10, []string{"cat-0"}, MarkingScheme{MarksPerQuestion: 2}); err != nil {
		t.Fatal(err)
	}
	if err := c.Begin(ctx); err != nil {
		t.Fatal(err)
	}
	if err := c.SelectAnswer(c.Questions()[0].ID, "A"); err != nil {
		t.Fatal(err)
	}

	c.Reset()

	if c.State() != StateConfiguring {
		t.Fatalf("expected CONFIGURING after reset, got %s", c.State())
	}
	if c.AnsweredCount() != 0 {
		t.Fatal("expected ledger cleared on reset")
	}
	if len(c.Questions()) != 0 {
		t.Fatal("expected question list discarded on reset")
	}
	if err := c.Begin(ctx); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured after reset, got %v", err)
	}
}

func TestControllerStateGuards(t *testing.T) {
	c, _ := newTestController(nil)
	ctx := context.Background()

	if _, err := c.Complete(ctx); !errors.Is(err, ErrNotInProgress) {
		t.Fatalf("expected ErrNotInProgress, got %v", err)
	}
	if err := c.Advance(DirectionNext); !errors.Is(err, ErrNotInProgress) {
		t.Fatalf("expected ErrNotInProgress, got %v", err)
	}
	if err := c.SelectAnswer("q", "A"); !errors.Is(err, ErrNotInProgress) {
		t.Fatalf("expected ErrNotInProgress, got %v", err)
	}

	if err := c.Configure(ctx, "mixed", 3, 10, []string{"cat-0"}, MarkingScheme{MarksPerQuestion: 2}); err != nil {
		t.Fatal(err)
	}
	if err := c.Begin(ctx); err != nil {
		t.Fatal(err)
	}
	if err := c.SelectAnswer("not-in-session", "A"); !errors.Is(err, ErrUnknownQuestion) {
		t.Fatalf("expected ErrUnknownQuestion, got %v", err)
	}
	if err := c.Begin(ctx); !errors.Is(err, ErrSessionActive) {
		t.Fatalf("expected ErrSessionActive, got %v", err)
	}
}

func TestControllerElapsedFallback(t *testing.T) {
	c, _ := newTestController(nil)
	ctx := context.Background()

	if err := c.Configure(ctx, "mixed", 3, 5, []string{"cat-0"}, MarkingScheme{MarksPerQuestion: 2}); err != nil {
		t.Fatal(err)
	}
	if err := c.Begin(ctx); err != nil {
		t.Fatal(err)
	}

	// Simulate a missing start timestamp: elapsed falls back to the clock's
	// accounting (time limit minus remaining).
	c.mu.Lock()
	c.startedAt = time.Time{}
	c.mu.Unlock()
	c.clock.mu.Lock()
	c.clock.remaining = 100
	c.clock.mu.Unlock()

	sum, err := c.Complete(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if sum.TimeSpentSeconds != 200 { // 5*60 - 100
		t.Fatalf("expected 200s via fallback, got %d", sum.TimeSpentSeconds)
	}
}
