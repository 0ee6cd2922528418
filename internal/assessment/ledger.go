package assessment

import "sync"

// AnswerRecord is one ledger entry. Correctness is never stored — it is
// recomputed from the answer against the question at scoring time.
type AnswerRecord struct {
	QuestionID     string `json:"question_id"`
	Answer         string `json:"answer"`
	ElapsedSeconds int    `json:"elapsed_seconds"`
}

// Ledger records per-question answers and timings for one session. Recording
// is an unconditional upsert keyed by question ID, so re-answering a question
// replaces the previous record entirely, including its elapsed time.
//
// The clock expiry callback fires from a timer goroutine, so access is
// mutex-guarded even though the calling model is otherwise single-threaded.
type Ledger struct {
	mu      sync.Mutex
	records map[string]AnswerRecord
}

// NewLedger creates an empty answer ledger.
func NewLedger() *Ledger {
	return &Ledger{records: make(map[string]AnswerRecord)}
}

// Record upserts the answer for a question. It never fails: any question ID
// is accepted, and a prior record is overwritten wholesale.
func (l *Ledger) Record(questionID, answer string, elapsedSeconds int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records[questionID] = AnswerRecord{
		QuestionID:     questionID,
		Answer:         answer,
		ElapsedSeconds: elapsedSeconds,
	}
}

// Get returns the record for a question, if one exists.
func (l *Ledger) Get(questionID string) (AnswerRecord, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec, ok := l.records[questionID]
	return rec, ok
}

// AnsweredCount returns the number of questions with a recorded answer.
func (l *Ledger) AnsweredCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// UnansweredIDs returns the subset of all which has no recorded answer,
// preserving the input order. Used to compute the skipped count.
func (l *Ledger) UnansweredIDs(all []string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	var missing []string
	for _, id := range all {
		if _, ok := l.records[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// Snapshot returns a copy of all records, keyed by question ID.
func (l *Ledger) Snapshot() map[string]AnswerRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make(map[string]AnswerRecord, len(l.records))
	for id, rec := range l.records {
		out[id] = rec
	}
	return out
}

// Clear wipes every record. Used on session reset; individual records are
// never removed outside of a full clear.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = make(map[string]AnswerRecord)
}
