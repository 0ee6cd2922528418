package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionAnswer  Action = "answer"
	ActionAdvance Action = "advance"
	ActionSubmit  Action = "submit"
	ActionPing    Action = "ping"
)

// RequestPayload carries every client action. Unused fields stay empty.
type RequestPayload struct {
	Action     Action `json:"action"`
	QuestionID string `json:"q_id,omitempty"`
	Answer     string `json:"ans,omitempty"`
	Direction  string `json:"direction,omitempty"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventState  Event = "state"
	EventTick   Event = "tick"
	EventResult Event = "result"
	EventError  Event = "error"
	EventPong   Event = "pong"
)

// TickPayload is pushed every second while the session runs.
type TickPayload struct {
	Event            Event  `json:"event"`
	Status           string `json:"status"`
	RemainingSeconds int    `json:"remaining_seconds"`
	AnsweredCount    int    `json:"answered_count"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
