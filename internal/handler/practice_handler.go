package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prepstack/prepstack-backend/internal/assessment"
	"github.com/prepstack/prepstack-backend/internal/middleware"
	"github.com/prepstack/prepstack-backend/internal/model"
	"github.com/prepstack/prepstack-backend/internal/response"
	"github.com/prepstack/prepstack-backend/internal/service"
	"github.com/prepstack/prepstack-backend/internal/validator"
)

// PracticeHandler exposes the timed practice session endpoints.
type PracticeHandler struct {
	practiceService *service.PracticeService
}

// NewPracticeHandler creates a new PracticeHandler.
func NewPracticeHandler(practiceService *service.PracticeService) *PracticeHandler {
	return &PracticeHandler{practiceService: practiceService}
}

// ListCategories godoc
// GET /api/v1/practice/categories
// Returns the categories a session can draw questions from.
func (h *PracticeHandler) ListCategories(c *gin.Context) {
	catalogue, err := h.practiceService.CategoryCatalogue(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if len(catalogue) == 0 {
		response.Fail(c, http.StatusNotFound, response.ErrNoCategories)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"categories": catalogue})
}

// Configure godoc
// POST /api/v1/practice/session
// Assembles a new session: picks questions across the requested categories
// and stores the marking scheme. Replaces any previous session.
func (h *PracticeHandler) Configure(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.ConfigureSessionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	state, err := h.practiceService.Configure(
		c.Request.Context(),
		claims.UserID,
		req.Label,
		req.TotalQuestions,
		req.TimeLimitMinutes,
		req.Categories,
		req.NegativeMarking,
		req.NegativeRatio,
	)
	if err != nil {
		failSessionError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"session": state})
}

// Begin godoc
// POST /api/v1/practice/session/begin
// Starts the configured session and its countdown clock.
func (h *PracticeHandler) Begin(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	state, err := h.practiceService.Begin(c.Request.Context(), claims.UserID)
	if err != nil {
		failSessionError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"session": state})
}

// Answer godoc
// PUT /api/v1/practice/session/answer
// Records (or overwrites) the answer for one question of the live session.
func (h *PracticeHandler) Answer(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.AnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	state, err := h.practiceService.Answer(claims.UserID, req.QuestionID, req.Answer)
	if err != nil {
		failSessionError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"session": state})
}

// Advance godoc
// POST /api/v1/practice/session/advance
// Moves the current-question cursor forward or backward.
func (h *PracticeHandler) Advance(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.AdvanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	state, err := h.practiceService.Advance(claims.UserID, req.Direction)
	if err != nil {
		failSessionError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"session": state})
}

// Complete godoc
// POST /api/v1/practice/session/complete
// Submits the session and returns the scored summary. Safe to call again
// after completion; the stored summary is returned unchanged.
func (h *PracticeHandler) Complete(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	result, err := h.practiceService.Complete(c.Request.Context(), claims.UserID)
	if err != nil {
		failSessionError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": result})
}

// Reset godoc
// DELETE /api/v1/practice/session
// Abandons the current session without scoring it.
func (h *PracticeHandler) Reset(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	h.practiceService.Reset(claims.UserID)
	response.Success(c, http.StatusOK, gin.H{})
}

// State godoc
// GET /api/v1/practice/session
// Returns the live session snapshot: current question, cursor, remaining
// time and answer map. Correct answers are never included.
func (h *PracticeHandler) State(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"session": h.practiceService.State(claims.UserID)})
}

// Result godoc
// GET /api/v1/practice/session/result
// Returns the score summary of the completed session.
func (h *PracticeHandler) Result(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	result, ok := h.practiceService.Result(claims.UserID)
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrNoActiveSession)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": result})
}

// Review godoc
// GET /api/v1/practice/session/review
// Returns the completed session's questions with correct answers and
// explanations alongside the user's answers.
func (h *PracticeHandler) Review(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	review, ok := h.practiceService.Review(claims.UserID)
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrNoActiveSession)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questions": review})
}

// failSessionError maps session engine errors to API error responses.
func failSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, assessment.ErrNoCategories):
		response.Fail(c, http.StatusBadRequest, response.ErrNoCategories)
	case errors.Is(err, assessment.ErrInvalidTotal):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
	case errors.Is(err, assessment.ErrNoQuestions):
		response.Fail(c, http.StatusBadRequest, response.ErrNoQuestions)
	case errors.Is(err, assessment.ErrNotConfigured):
		response.Fail(c, http.StatusConflict, response.ErrSessionNotReady)
	case errors.Is(err, assessment.ErrSessionActive):
		response.Fail(c, http.StatusConflict, response.ErrSessionActive)
	case errors.Is(err, assessment.ErrNotInProgress):
		response.Fail(c, http.StatusConflict, response.ErrNoActiveSession)
	case errors.Is(err, assessment.ErrUnknownQuestion):
		response.Fail(c, http.StatusBadRequest, response.ErrUnknownQuestion)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
