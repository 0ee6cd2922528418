package service

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/prepstack/prepstack-backend/internal/assessment"
	"github.com/prepstack/prepstack-backend/internal/config"
	"github.com/prepstack/prepstack-backend/internal/model"
)

// BackendProvider yields the system-of-record backend for one user's
// sessions. nil is a valid return and means purely local sessions.
type BackendProvider func(userID int) assessment.Backend

// QuestionView is a question as exposed to a live session: the correct
// answer and explanation are withheld until the session completes.
type QuestionView struct {
	ID           string                  `json:"id"`
	Prompt       string                  `json:"prompt"`
	Options      []assessment.Option     `json:"options"`
	Category     string                  `json:"category"`
	Marks        float64                 `json:"marks"`
	QuestionType assessment.QuestionType `json:"question_type"`
}

// ReviewQuestion is a question as exposed after completion, with the
// correct answer, explanation and the user's recorded answer.
type ReviewQuestion struct {
	QuestionView
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation,omitempty"`
	UserAnswer    string `json:"user_answer,omitempty"`
	Answered      bool   `json:"answered"`
}

// SessionState is the live snapshot handed to clients, sufficient to render
// the session screen after a reload.
type SessionState struct {
	Status           assessment.State                   `json:"status"`
	Label            string                             `json:"label"`
	TotalQuestions   int                                `json:"total_questions"`
	CurrentIndex     int                                `json:"current_index"`
	CurrentQuestion  *QuestionView                      `json:"current_question,omitempty"`
	RemainingSeconds int                                `json:"remaining_seconds"`
	AnsweredCount    int                                `json:"answered_count"`
	Answers          map[string]assessment.AnswerRecord `json:"answers,omitempty"`
	SyncStatus       assessment.SyncStatus              `json:"sync_status"`
	RemoteID         string                             `json:"attempt_id,omitempty"`
}

// SessionResult pairs the score summary with the sync outcome.
type SessionResult struct {
	Summary    assessment.Summary    `json:"summary"`
	SyncStatus assessment.SyncStatus `json:"sync_status"`
	AttemptID  string                `json:"attempt_id,omitempty"`
}

// PracticeService hosts one session lifecycle controller per user. The
// controller enforces single-flight per user; this service only routes to
// the right instance and translates engine state into transport shapes.
type PracticeService struct {
	mu          sync.Mutex
	controllers map[int]*assessment.Controller

	source     assessment.QuestionSource
	categories assessment.CategorySource
	backendFor BackendProvider
	cfg        *config.Config
	log        zerolog.Logger
}

// NewPracticeService creates a PracticeService. backendFor may be nil for a
// deployment with no system of record.
func NewPracticeService(
	source assessment.QuestionSource,
	categories assessment.CategorySource,
	backendFor BackendProvider,
	cfg *config.Config,
	log zerolog.Logger,
) *PracticeService {
	return &PracticeService{
		controllers: make(map[int]*assessment.Controller),
		source:      source,
		categories:  categories,
		backendFor:  backendFor,
		cfg:         cfg,
		log:         log.With().Str("component", "practice_service").Logger(),
	}
}

func (s *PracticeService) controller(userID int) *assessment.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.controllers[userID]; ok {
		return c
	}

	builder := assessment.NewBuilder(s.source, assessment.BuilderConfig{
		PriorityCategories: s.cfg.PriorityCategories,
		MarksPerQuestion:   s.cfg.DefaultMarksPerQuestion,
	}, s.log)

	var backend assessment.Backend
	if s.backendFor != nil {
		backend = s.backendFor(userID)
	}

	c := assessment.NewController(builder, backend, s.log)
	s.controllers[userID] = c
	return c
}

// ListCategories returns the categories a session can draw from.
func (s *PracticeService) ListCategories(ctx context.Context) ([]string, error) {
	return s.categories.ListCategories(ctx)
}

// CategoryCatalogue returns the categories as picker entries, flagging the
// ones that receive the priority share of session slots.
func (s *PracticeService) CategoryCatalogue(ctx context.Context) ([]model.Category, error) {
	slugs, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	priority := make(map[string]bool, len(s.cfg.PriorityCategories))
	for _, p := range s.cfg.PriorityCategories {
		priority[p] = true
	}

	catalogue := make([]model.Category, len(slugs))
	for i, slug := range slugs {
		catalogue[i] = model.Category{
			Slug:     slug,
			Name:     categoryDisplayName(slug),
			Priority: priority[slug],
		}
	}
	return catalogue, nil
}

// categoryDisplayName turns a slug like "current-affairs" into "Current
// Affairs" for clients that have no name mapping of their own.
func categoryDisplayName(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Configure assembles a new session for the user. An in-progress session is
// abandoned, matching the engine's single-flight semantics.
func (s *PracticeService) Configure(ctx context.Context, userID int, label string, totalQuestions, timeLimitMinutes int, categories []string, negativeMarking bool, negativeRatio float64) (*SessionState, error) {
	// Empty category selection means "everything".
	if len(categories) == 0 {
		all, err := s.categories.ListCategories(ctx)
		if err != nil {
			return nil, err
		}
		categories = all
	}

	scheme := assessment.MarkingScheme{
		MarksPerQuestion: s.cfg.DefaultMarksPerQuestion,
		NegativeMarking:  negativeMarking,
		NegativeRatio:    negativeRatio,
	}
	if !negativeMarking {
		scheme.NegativeRatio = 0
	}

	c := s.controller(userID)
	if err := c.Configure(ctx, label, totalQuestions, timeLimitMinutes, categories, scheme); err != nil {
		return nil, err
	}
	return s.snapshot(c), nil
}

// Begin starts the configured session and its countdown.
func (s *PracticeService) Begin(ctx context.Context, userID int) (*SessionState, error) {
	c := s.controller(userID)
	if err := c.Begin(ctx); err != nil {
		return nil, err
	}
	return s.snapshot(c), nil
}

// Answer records the user's answer for a question of the active session.
func (s *PracticeService) Answer(userID int, questionID, answer string) (*SessionState, error) {
	c := s.controller(userID)
	if err := c.SelectAnswer(questionID, answer); err != nil {
		return nil, err
	}
	return s.snapshot(c), nil
}

// Advance moves the current-question cursor.
func (s *PracticeService) Advance(userID int, direction string) (*SessionState, error) {
	c := s.controller(userID)
	if err := c.Advance(assessment.Direction(direction)); err != nil {
		return nil, err
	}
	return s.snapshot(c), nil
}

// Complete submits the session and returns the scored result. Remote sync
// failure is reflected in SyncStatus, never in the error.
func (s *PracticeService) Complete(ctx context.Context, userID int) (*SessionResult, error) {
	c := s.controller(userID)
	summary, err := c.Complete(ctx)
	if err != nil {
		return nil, err
	}
	remoteID, syncStatus := c.SyncState()
	return &SessionResult{Summary: summary, SyncStatus: syncStatus, AttemptID: remoteID}, nil
}

// Reset abandons the user's session and returns the controller to the
// configuring state.
func (s *PracticeService) Reset(userID int) {
	s.controller(userID).Reset()
}

// State returns the live snapshot of the user's session.
func (s *PracticeService) State(userID int) *SessionState {
	return s.snapshot(s.controller(userID))
}

// Result returns the score summary of a completed session.
func (s *PracticeService) Result(userID int) (*SessionResult, bool) {
	c := s.controller(userID)
	summary, ok := c.Result()
	if !ok {
		return nil, false
	}
	remoteID, syncStatus := c.SyncState()
	return &SessionResult{Summary: summary, SyncStatus: syncStatus, AttemptID: remoteID}, true
}

// Review returns the completed session's questions with correct answers,
// explanations and the user's answers. Only available after completion, so
// answer keys never leak into a live session.
func (s *PracticeService) Review(userID int) ([]ReviewQuestion, bool) {
	c := s.controller(userID)
	if c.State() != assessment.StateCompleted {
		return nil, false
	}

	answers := c.Answers()
	questions := c.Questions()
	review := make([]ReviewQuestion, len(questions))
	for i, q := range questions {
		rq := ReviewQuestion{
			QuestionView:  questionView(q),
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		}
		if rec, ok := answers[q.ID]; ok {
			rq.UserAnswer = rec.Answer
			rq.Answered = true
		}
		review[i] = rq
	}
	return review, true
}

func (s *PracticeService) snapshot(c *assessment.Controller) *SessionState {
	state := &SessionState{
		Status:           c.State(),
		Label:            c.Config().Label,
		TotalQuestions:   len(c.Questions()),
		CurrentIndex:     c.CurrentIndex(),
		RemainingSeconds: c.RemainingSeconds(),
		AnsweredCount:    c.AnsweredCount(),
		Answers:          c.Answers(),
	}
	state.RemoteID, state.SyncStatus = c.SyncState()

	if q, ok := c.CurrentQuestion(); ok {
		view := questionView(q)
		state.CurrentQuestion = &view
	}
	return state
}

func questionView(q assessment.Question) QuestionView {
	return QuestionView{
		ID:           q.ID,
		Prompt:       q.Prompt,
		Options:      q.Options,
		Category:     q.Category,
		Marks:        q.Marks,
		QuestionType: q.QuestionType,
	}
}
