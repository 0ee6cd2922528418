package assessment

import (
	"fmt"
	"math"
	"testing"
)

func mcq(id, correct string, marks float64) Question {
	return Question{
		ID:            id,
		Prompt:        "prompt " + id,
		Options:       []Option{{Label: "A", Text: "a"}, {Label: "B", Text: "b"}, {Label: "C", Text: "c"}, {Label: "D", Text: "d"}},
		CorrectAnswer: correct,
		Category:      "general-knowledge",
		Marks:         marks,
		QuestionType:  QuestionTypeMultipleChoice,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScoreNegativeMarking(t *testing.T) {
	// 5 questions at 2 marks each: 3 correct, 1 incorrect, 1 skipped,
	// negative ratio 0.25 → 3*2 - 1*2*0.25 = 5.5 → 55%.
	questions := []Question{
		mcq("q1", "A", 2), mcq("q2", "B", 2), mcq("q3", "C", 2),
		mcq("q4", "D", 2), mcq("q5", "A", 2),
	}
	ledger := NewLedger()
	ledger.Record("q1", "A", 10)
	ledger.Record("q2", "B", 12)
	ledger.Record("q3", "C", 8)
	ledger.Record("q4", "A", 15) // wrong

	sum := Score(questions, ledger, MarkingScheme{
		MarksPerQuestion: 2,
		NegativeMarking:  true,
		NegativeRatio:    0.25,
	})

	if sum.Correct != 3 || sum.Incorrect != 1 || sum.Skipped != 1 {
		t.Fatalf("expected 3/1/1, got %d/%d/%d", sum.Correct, sum.Incorrect, sum.Skipped)
	}
	if !almostEqual(sum.MarksObtained, 5.5) {
		t.Fatalf("expected 5.5 marks, got %v", sum.MarksObtained)
	}
	if !almostEqual(sum.TotalPossibleMarks, 10) {
		t.Fatalf("expected 10 possible marks, got %v", sum.TotalPossibleMarks)
	}
	if !almostEqual(sum.Percentage, 55.0) {
		t.Fatalf("expected 55%%, got %v", sum.Percentage)
	}
}

func TestScoreNegativeMarkingDisabled(t *testing.T) {
	questions := []Question{mcq("q1", "A", 2), mcq("q2", "B", 2)}
	ledger := NewLedger()
	ledger.Record("q1", "A", 5)
	ledger.Record("q2", "D", 5) // wrong

	sum := Score(questions, ledger, MarkingScheme{MarksPerQuestion: 2})

	// Incorrect answers contribute exactly zero, never negative.
	if !almostEqual(sum.MarksObtained, 2) {
		t.Fatalf("expected 2 marks, got %v", sum.MarksObtained)
	}
}

func TestScoreSkippedAccounting(t *testing.T) {
	for _, answered := range []int{0, 1, 3, 7} {
		var questions []Question
		for i := 0; i < 7; i++ {
			questions = append(questions, mcq(fmt.Sprintf("q%d", i), "A", 1))
		}
		ledger := NewLedger()
		for i := 0; i < answered; i++ {
			ledger.Record(fmt.Sprintf("q%d", i), "B", 1)
		}

		sum := Score(questions, ledger, MarkingScheme{MarksPerQuestion: 1})
		if sum.Correct+sum.Incorrect+sum.Skipped != len(questions) {
			t.Fatalf("answered=%d: correct+incorrect+skipped = %d, want %d",
				answered, sum.Correct+sum.Incorrect+sum.Skipped, len(questions))
		}
	}
}

func TestScoreDeterministic(t *testing.T) {
	questions := []Question{mcq("q1", "A", 2), mcq("q2", "B", 1.5), mcq("q3", "C", 2)}
	ledger := NewLedger()
	ledger.Record("q1", "A", 4)
	ledger.Record("q2", "C", 9)
	scheme := MarkingScheme{MarksPerQuestion: 2, NegativeMarking: true, NegativeRatio: 0.5}

	first := Score(questions, ledger, scheme)
	second := Score(questions, ledger, scheme)

	if first != second {
		t.Fatalf("scoring is not deterministic: %+v vs %+v", first, second)
	}
}

func TestScoreNoQuestions(t *testing.T) {
	sum := Score(nil, NewLedger(), MarkingScheme{MarksPerQuestion: 2})
	if sum.Percentage != 0 || sum.MarksObtained != 0 {
		t.Fatalf("expected zero summary, got %+v", sum)
	}
}

func TestScoreMarksFallbackToScheme(t *testing.T) {
	// Questions without explicit marks fall back to the scheme's value.
	questions := []Question{mcq("q1", "A", 0)}
	ledger := NewLedger()
	ledger.Record("q1", "A", 3)

	sum := Score(questions, ledger, MarkingScheme{MarksPerQuestion: 4})
	if !almostEqual(sum.MarksObtained, 4) || !almostEqual(sum.TotalPossibleMarks, 4) {
		t.Fatalf("expected 4/4, got %v/%v", sum.MarksObtained, sum.TotalPossibleMarks)
	}
}
