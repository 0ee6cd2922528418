package assessment

import "errors"

// Configuration-time errors. These propagate synchronously to the caller;
// everything remote is best-effort and reported through SyncStatus instead.
var (
	ErrNoCategories    = errors.New("no categories available")
	ErrInvalidTotal    = errors.New("total question count must be positive")
	ErrNotConfigured   = errors.New("session has not been configured")
	ErrNotInProgress   = errors.New("session is not in progress")
	ErrSessionActive   = errors.New("a session is already in progress")
	ErrNoQuestions     = errors.New("no questions available for the requested categories")
	ErrUnknownQuestion = errors.New("question is not part of this session")
)
