package model

// ConfigureSessionRequest is the payload for assembling a new practice
// session. Categories may be empty, in which case the session draws from
// every available category.
type ConfigureSessionRequest struct {
	Label            string   `json:"label" binding:"max=100"`
	TotalQuestions   int      `json:"total_questions" binding:"required,min=1,max=200"`
	TimeLimitMinutes int      `json:"time_limit_minutes" binding:"required,min=1,max=300"`
	Categories       []string `json:"categories" binding:"max=50"`
	NegativeMarking  bool     `json:"negative_marking"`
	NegativeRatio    float64  `json:"negative_ratio" binding:"min=0,max=1"`
}

// AnswerRequest records an answer for one question of the active session.
type AnswerRequest struct {
	QuestionID string `json:"question_id" binding:"required,max=64"`
	Answer     string `json:"answer" binding:"required,max=500"`
}

// AdvanceRequest moves the current-question cursor.
type AdvanceRequest struct {
	Direction string `json:"direction" binding:"required,oneof=NEXT PREVIOUS"`
}
