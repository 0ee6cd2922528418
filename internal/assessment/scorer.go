package assessment

// MarkingScheme fixes how a session is scored. Immutable once the session
// starts. NegativeRatio is the fraction of a question's marks deducted for a
// wrong, non-skipped answer; it is ignored when NegativeMarking is false.
type MarkingScheme struct {
	MarksPerQuestion float64 `json:"marks_per_question"`
	NegativeMarking  bool    `json:"negative_marking"`
	NegativeRatio    float64 `json:"negative_ratio"`
}

// Summary is the derived result of a session. MarksObtained can be
// fractional or negative under negative marking. Percentage and marks are
// returned at full precision; rounding is a display concern.
type Summary struct {
	Correct            int     `json:"correct"`
	Incorrect          int     `json:"incorrect"`
	Skipped            int     `json:"skipped"`
	MarksObtained      float64 `json:"marks_obtained"`
	TotalPossibleMarks float64 `json:"total_possible_marks"`
	Percentage         float64 `json:"percentage"`
	TimeSpentSeconds   int     `json:"time_spent_seconds"`
}

// Score computes the result summary for a frozen question set against the
// answers recorded in the ledger. It is a pure function of its inputs and is
// safe to call repeatedly, e.g. for a live progress preview mid-session and
// again at completion.
func Score(questions []Question, ledger *Ledger, scheme MarkingScheme) Summary {
	var sum Summary

	for _, q := range questions {
		marks := q.Marks
		if marks <= 0 {
			marks = scheme.MarksPerQuestion
		}
		sum.TotalPossibleMarks += marks

		rec, ok := ledger.Get(q.ID)
		if !ok {
			sum.Skipped++
			continue
		}

		if rec.Answer == q.CorrectAnswer {
			sum.Correct++
			sum.MarksObtained += marks
			continue
		}

		sum.Incorrect++
		if scheme.NegativeMarking {
			sum.MarksObtained -= marks * scheme.NegativeRatio
		}
	}

	// Guard the zero-question degenerate case instead of dividing by zero.
	if sum.TotalPossibleMarks > 0 {
		sum.Percentage = sum.MarksObtained / sum.TotalPossibleMarks * 100
	}

	return sum
}
