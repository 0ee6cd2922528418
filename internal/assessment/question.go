package assessment

// QuestionType distinguishes question formats. Only multiple choice is
// exercised by the mobile clients today.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "MULTIPLE_CHOICE"
)

// Option is a single labeled answer choice.
type Option struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Question is one entry of a session's frozen question set. The ID is stable
// within the session that snapshotted it, not across sessions. CorrectAnswer
// holds either an option label or the option text; a single session is
// always consistent about which.
type Question struct {
	ID            string       `json:"id"`
	Prompt        string       `json:"prompt"`
	Options       []Option     `json:"options"`
	CorrectAnswer string       `json:"correct_answer"`
	Explanation   string       `json:"explanation,omitempty"`
	Category      string       `json:"category"`
	Marks         float64      `json:"marks"`
	QuestionType  QuestionType `json:"question_type"`
}

// DistributionEntry assigns a question count and per-question marks to one
// category of a session. The counts across a distribution sum exactly to the
// session's requested total (see BuildDistribution).
type DistributionEntry struct {
	Category         string  `json:"category"`
	Count            int     `json:"count"`
	MarksPerQuestion float64 `json:"marks_per_question"`
}
