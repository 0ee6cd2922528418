package assessment

import "context"

// SyncStatus reports how far a session has been reconciled with the remote
// system of record. Local state is always authoritative for the live
// session; this status only describes the persisted copy.
type SyncStatus string

const (
	// SyncLocalOnly means no remote session exists (registration failed or
	// was never attempted). The user practices normally regardless.
	SyncLocalOnly SyncStatus = "LOCAL_ONLY"
	// SyncSynced means the remote system acknowledged the latest push.
	SyncSynced SyncStatus = "SYNCED"
	// SyncFailed means the completion push failed; results are saved locally
	// but not synced. Non-fatal.
	SyncFailed SyncStatus = "SYNC_FAILED"
)

// SessionConfig describes a configured session as handed to the system of
// record at registration time.
type SessionConfig struct {
	Label            string              `json:"label"`
	TotalQuestions   int                 `json:"total_questions"`
	TimeLimitMinutes int                 `json:"time_limit_minutes"`
	Scheme           MarkingScheme       `json:"marking_scheme"`
	Distribution     []DistributionEntry `json:"distribution"`
}

// Backend is the remote system of record for sessions. Every call is
// best-effort from the controller's point of view: failures are reported
// through SyncStatus and never block or roll back local state.
type Backend interface {
	// RegisterSession persists a new session and returns its remote ID.
	RegisterSession(ctx context.Context, cfg SessionConfig) (string, error)

	// SubmitAnswer mirrors one answer. Upsert semantics keyed by
	// (sessionID, questionID), so out-of-order delivery is harmless.
	SubmitAnswer(ctx context.Context, sessionID, questionID, answer string, elapsedSeconds int) error

	// CompleteSession pushes the final result summary.
	CompleteSession(ctx context.Context, sessionID string, summary Summary) error
}
