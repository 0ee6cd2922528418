package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrEmailTaken         ErrCode = "EMAIL_ALREADY_REGISTERED"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Practice sessions ─────────────────────────────────────────────
	ErrNoCategories    ErrCode = "NO_CATEGORIES_AVAILABLE"
	ErrNoQuestions     ErrCode = "NO_QUESTIONS"
	ErrNoActiveSession ErrCode = "NO_ACTIVE_SESSION"
	ErrSessionActive   ErrCode = "SESSION_ALREADY_ACTIVE"
	ErrSessionNotReady ErrCode = "SESSION_NOT_CONFIGURED"
	ErrUnknownQuestion ErrCode = "QUESTION_NOT_IN_SESSION"
	ErrSessionFinished ErrCode = "SESSION_ALREADY_COMPLETED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal          ErrCode = "INTERNAL_ERROR"
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"
)

// messages maps error codes to human-readable default messages.
var messages = map[ErrCode]string{
	ErrInvalidCredentials: "Invalid email or password",
	ErrEmailTaken:         "An account with this email already exists",
	ErrSessionInvalidated: "Your session was invalidated, please log in again",
	ErrTokenRequired:      "Authentication token required",
	ErrTokenInvalid:       "Authentication token is invalid or expired",
	ErrValidation:         "Request validation failed",
	ErrInvalidID:          "Invalid identifier",
	ErrInvalidPayload:     "Invalid request payload",
	ErrNotFound:           "Resource not found",
	ErrConflict:           "Resource conflict",
	ErrNoCategories:       "No categories are available to build a session from",
	ErrNoQuestions:        "No questions are available for the requested categories",
	ErrNoActiveSession:    "No practice session is active",
	ErrSessionActive:      "A practice session is already in progress",
	ErrSessionNotReady:    "The session has not been configured yet",
	ErrUnknownQuestion:    "The question is not part of the current session",
	ErrSessionFinished:    "The session is already completed",
	ErrInternal:           "Internal server error",
	ErrRateLimitExceeded:  "Too many requests, slow down",
}

// GetMessage returns the default message for an error code.
func GetMessage(code ErrCode) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return "Unknown error"
}
