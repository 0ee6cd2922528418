package assessment

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// State enumerates session lifecycle states.
type State string

const (
	StateConfiguring State = "CONFIGURING"
	StateInProgress  State = "IN_PROGRESS"
	StateCompleted   State = "COMPLETED"
)

// Direction moves the current-question cursor.
type Direction string

const (
	DirectionNext     Direction = "NEXT"
	DirectionPrevious Direction = "PREVIOUS"
)

// remoteCallTimeout bounds the fire-and-forget answer mirror calls so a
// hung backend cannot pile up goroutines.
const remoteCallTimeout = 10 * time.Second

// Controller is the session lifecycle state machine: configuring →
// in_progress → completed. It owns the clock, the ledger and the frozen
// question list for exactly one session at a time; configuring a new session
// invalidates whatever came before it. Completed is terminal — practicing
// again goes through Reset or a fresh Configure, never back to in_progress.
//
// The backend is optional. With a nil backend, or when any remote call
// fails, the controller continues in local-only mode: the user is never
// blocked from practicing by the system of record.
type Controller struct {
	mu      sync.Mutex
	builder *Builder
	backend Backend
	clock   *Clock
	ledger  *Ledger
	log     zerolog.Logger
	now     func() time.Time

	state            State
	cfg              SessionConfig
	questions        []Question
	index            int
	anchor           time.Time
	startedAt        time.Time
	completedAt      time.Time
	timeLimitSeconds int
	remoteID         string
	syncStatus       SyncStatus
	summary          *Summary
}

// NewController creates a controller in the configuring state. backend may
// be nil for purely local sessions.
func NewController(builder *Builder, backend Backend, log zerolog.Logger) *Controller {
	return &Controller{
		builder:    builder,
		backend:    backend,
		clock:      NewClock(),
		ledger:     NewLedger(),
		log:        log.With().Str("component", "session_controller").Logger(),
		now:        time.Now,
		state:      StateConfiguring,
		syncStatus: SyncLocalOnly,
	}
}

// Configure assembles the question set for a new session. Pure local state;
// no remote call happens until Begin. Configuring while a session is in
// progress abandons it, stopping its clock first.
func (c *Controller) Configure(ctx context.Context, label string, totalQuestions, timeLimitMinutes int, categories []string, scheme MarkingScheme) error {
	dist, questions, err := c.builder.Build(ctx, totalQuestions, categories)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.resetLocked()
	c.cfg = SessionConfig{
		Label:            label,
		TotalQuestions:   len(questions),
		TimeLimitMinutes: timeLimitMinutes,
		Scheme:           scheme,
		Distribution:     dist,
	}
	c.questions = questions
	c.timeLimitSeconds = timeLimitMinutes * 60
	return nil
}

// Begin transitions configuring → in_progress: records the start timestamp,
// registers the session with the system of record, and starts the clock.
// Registration failure degrades to local-only mode rather than failing.
func (c *Controller) Begin(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateConfiguring {
		c.mu.Unlock()
		return ErrSessionActive
	}
	if len(c.questions) == 0 {
		c.mu.Unlock()
		return ErrNotConfigured
	}

	now := c.now()
	c.state = StateInProgress
	c.startedAt = now
	c.anchor = now
	c.index = 0
	cfg := c.cfg
	limit := c.timeLimitSeconds
	c.mu.Unlock()

	if c.backend != nil {
		id, err := c.backend.RegisterSession(ctx, cfg)
		c.mu.Lock()
		if err != nil || id == "" {
			c.syncStatus = SyncLocalOnly
			c.log.Warn().Err(err).Msg("Session registration failed, continuing local-only")
		} else {
			c.remoteID = id
			c.syncStatus = SyncSynced
		}
		c.mu.Unlock()
	}

	c.clock.Start(limit, c.onExpire)
	return nil
}

// SelectAnswer records the answer for a question, computing the time spent
// since the cursor last moved, and mirrors it to the system of record when a
// remote session exists. The mirror is fire-and-forget: its failure never
// rolls back or delays the local record.
func (c *Controller) SelectAnswer(questionID, answer string) error {
	c.mu.Lock()
	if c.state != StateInProgress {
		c.mu.Unlock()
		return ErrNotInProgress
	}
	if !c.hasQuestionLocked(questionID) {
		c.mu.Unlock()
		return ErrUnknownQuestion
	}

	now := c.now()
	elapsed := int(now.Sub(c.anchor) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	c.anchor = now
	c.ledger.Record(questionID, answer, elapsed)

	backend := c.backend
	remoteID := c.remoteID
	c.mu.Unlock()

	if backend != nil && remoteID != "" {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), remoteCallTimeout)
			defer cancel()
			if err := backend.SubmitAnswer(ctx, remoteID, questionID, answer, elapsed); err != nil {
				c.log.Warn().Err(err).
					Str("question_id", questionID).
					Msg("Answer mirror failed")
			}
		}()
	}
	return nil
}

// Advance moves the cursor one question forward or back, bounded to the
// question list, and re-anchors per-question timing to now.
func (c *Controller) Advance(dir Direction) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateInProgress {
		return ErrNotInProgress
	}

	switch dir {
	case DirectionNext:
		if c.index < len(c.questions)-1 {
			c.index++
		}
	case DirectionPrevious:
		if c.index > 0 {
			c.index--
		}
	}
	c.anchor = c.now()
	return nil
}

// Complete transitions in_progress → completed: stops the clock, scores the
// session, and pushes the summary to the system of record. A failed push is
// reported through SyncStatus — the locally computed summary is authoritative
// and is always returned. Completing an already completed session returns
// the existing summary.
func (c *Controller) Complete(ctx context.Context) (Summary, error) {
	c.mu.Lock()
	if c.state == StateCompleted && c.summary != nil {
		sum := *c.summary
		c.mu.Unlock()
		return sum, nil
	}
	if c.state != StateInProgress {
		c.mu.Unlock()
		return Summary{}, ErrNotInProgress
	}

	c.clock.Stop()
	now := c.now()

	// Prefer wall-clock elapsed; fall back to the clock's accounting when the
	// start timestamp is missing or inconsistent.
	elapsed := 0
	if !c.startedAt.IsZero() {
		elapsed = int(now.Sub(c.startedAt) / time.Second)
	}
	if elapsed <= 0 {
		elapsed = c.timeLimitSeconds - c.clock.Remaining()
	}

	sum := Score(c.questions, c.ledger, c.cfg.Scheme)
	sum.TimeSpentSeconds = elapsed

	c.state = StateCompleted
	c.completedAt = now
	c.summary = &sum

	backend := c.backend
	remoteID := c.remoteID
	c.mu.Unlock()

	if backend != nil && remoteID != "" {
		if err := backend.CompleteSession(ctx, remoteID, sum); err != nil {
			c.log.Warn().Err(err).Str("session_id", remoteID).
				Msg("Result push failed, saved locally only")
			c.setSyncStatus(SyncFailed)
		} else {
			c.setSyncStatus(SyncSynced)
		}
	}
	return sum, nil
}

// Reset returns the controller to configuring from any state: the clock is
// stopped, the ledger cleared and the frozen question list discarded. Used
// both for "practice again" and for quitting mid-session.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

// onExpire is the clock expiry callback: forced submission with whatever
// answers exist. A tick racing a reset or completion finds the session no
// longer in progress and is ignored.
func (c *Controller) onExpire() {
	c.mu.Lock()
	inProgress := c.state == StateInProgress
	c.mu.Unlock()
	if !inProgress {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), remoteCallTimeout)
	defer cancel()
	if _, err := c.Complete(ctx); err != nil {
		c.log.Warn().Err(err).Msg("Auto-submit on expiry failed")
	}
}

func (c *Controller) resetLocked() {
	c.clock.Stop()
	c.ledger.Clear()
	c.state = StateConfiguring
	c.cfg = SessionConfig{}
	c.questions = nil
	c.index = 0
	c.anchor = time.Time{}
	c.startedAt = time.Time{}
	c.completedAt = time.Time{}
	c.timeLimitSeconds = 0
	c.remoteID = ""
	c.syncStatus = SyncLocalOnly
	c.summary = nil
}

func (c *Controller) hasQuestionLocked(questionID string) bool {
	for i := range c.questions {
		if c.questions[i].ID == questionID {
			return true
		}
	}
	return false
}

func (c *Controller) setSyncStatus(s SyncStatus) {
	c.mu.Lock()
	c.syncStatus = s
	c.mu.Unlock()
}

// ─── Read accessors ─────────────────────────────────────────────────────────

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CurrentQuestion returns the question under the cursor.
func (c *Controller) CurrentQuestion() (Question, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.questions) == 0 || c.index < 0 || c.index >= len(c.questions) {
		return Question{}, false
	}
	return c.questions[c.index], true
}

// CurrentIndex returns the cursor position.
func (c *Controller) CurrentIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Questions returns a copy of the frozen question list.
func (c *Controller) Questions() []Question {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Question, len(c.questions))
	copy(out, c.questions)
	return out
}

// Config returns the session configuration as of the last Configure.
func (c *Controller) Config() SessionConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// RemainingSeconds returns the clock's remaining seconds.
func (c *Controller) RemainingSeconds() int {
	return c.clock.Remaining()
}

// AnsweredCount returns how many questions have a recorded answer.
func (c *Controller) AnsweredCount() int {
	return c.ledger.AnsweredCount()
}

// Answers returns a snapshot of the ledger.
func (c *Controller) Answers() map[string]AnswerRecord {
	return c.ledger.Snapshot()
}

// Result returns the summary once the session is completed.
func (c *Controller) Result() (Summary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.summary == nil {
		return Summary{}, false
	}
	return *c.summary, true
}

// SyncState reports the remote session ID (empty in local-only mode) and
// the current sync status.
func (c *Controller) SyncState() (string, SyncStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remoteID, c.syncStatus
}

// StartedAt returns the session start timestamp, zero before Begin.
func (c *Controller) StartedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startedAt
}

// CompletedAt returns the completion timestamp, zero before Complete.
func (c *Controller) CompletedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.completedAt
}
