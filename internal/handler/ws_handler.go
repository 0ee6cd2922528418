package handler

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/prepstack/prepstack-backend/internal/assessment"
	"github.com/prepstack/prepstack-backend/internal/middleware"
	"github.com/prepstack/prepstack-backend/internal/service"
	ws "github.com/prepstack/prepstack-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams live session state over WebSocket.
type WSHandler struct {
	practiceService *service.PracticeService
	log             zerolog.Logger
	upgrader        websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(practiceService *service.PracticeService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		practiceService: practiceService,
		log:             log.With().Str("component", "ws_handler").Logger(),
		upgrader:        buildUpgrader(allowedOrigins),
	}
}

// SessionStream godoc
// WS /ws/v1/practice/session/stream
// Pushes a countdown tick every second and accepts answer/advance/submit
// actions so the app can run the whole session over one connection.
func (h *WSHandler) SessionStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	userID := claims.UserID
	wsLog := h.log.With().Int("user_id", userID).Logger()
	wsLog.Info().Msg("Session stream connected")

	// gorilla/websocket allows one concurrent writer, so the ticker and the
	// action loop share a lock.
	var writeMu sync.Mutex
	write := func(v interface{}) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return ws.WriteTyped(conn, v)
	}

	done := make(chan struct{})
	defer close(done)

	go h.tickLoop(userID, write, done)

	for {
		var msg ws.RequestPayload
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			return
		}

		switch msg.Action {
		case ws.ActionAnswer:
			h.handleAnswer(userID, write, &msg)
		case ws.ActionAdvance:
			h.handleAdvance(userID, write, &msg)
		case ws.ActionSubmit:
			h.handleSubmit(c, userID, wsLog, write)
		case ws.ActionPing:
			write(ws.PongResponse{Event: ws.EventPong})
		default:
			wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
			write(ws.ErrorResponse{Event: ws.EventError, Error: "unknown action: " + string(msg.Action)})
		}
	}
}

// tickLoop pushes the countdown once per second until the connection closes.
func (h *WSHandler) tickLoop(userID int, write func(interface{}) error, done <-chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			state := h.practiceService.State(userID)
			err := write(ws.TickPayload{
				Event:            ws.EventTick,
				Status:           string(state.Status),
				RemainingSeconds: state.RemainingSeconds,
				AnsweredCount:    state.AnsweredCount,
			})
			if err != nil {
				return
			}
		}
	}
}

func (h *WSHandler) handleAnswer(userID int, write func(interface{}) error, msg *ws.RequestPayload) {
	if msg.QuestionID == "" || msg.Answer == "" {
		write(ws.ErrorResponse{Event: ws.EventError, Error: "q_id and ans are required"})
		return
	}

	state, err := h.practiceService.Answer(userID, msg.QuestionID, msg.Answer)
	if err != nil {
		write(ws.ErrorResponse{Event: ws.EventError, Error: err.Error()})
		return
	}

	write(map[string]interface{}{
		"event":   ws.EventState,
		"session": state,
	})
}

func (h *WSHandler) handleAdvance(userID int, write func(interface{}) error, msg *ws.RequestPayload) {
	direction := msg.Direction
	if direction == "" {
		direction = string(assessment.DirectionNext)
	}

	state, err := h.practiceService.Advance(userID, direction)
	if err != nil {
		write(ws.ErrorResponse{Event: ws.EventError, Error: err.Error()})
		return
	}

	write(map[string]interface{}{
		"event":   ws.EventState,
		"session": state,
	})
}

func (h *WSHandler) handleSubmit(c *gin.Context, userID int, wsLog zerolog.Logger, write func(interface{}) error) {
	result, err := h.practiceService.Complete(c.Request.Context(), userID)
	if err != nil {
		write(ws.ErrorResponse{Event: ws.EventError, Error: err.Error()})
		return
	}

	wsLog.Info().
		Float64("marks", result.Summary.MarksObtained).
		Float64("percentage", result.Summary.Percentage).
		Msg("Session submitted")

	write(map[string]interface{}{
		"event":  ws.EventResult,
		"result": result,
	})
}
