package assessment

// DefaultPriorityCategories are the high-yield subjects that receive the
// larger share when a session is distributed over mixed categories.
var DefaultPriorityCategories = []string{"current-affairs", "general-knowledge"}

// FixtureBank is a small built-in question set with the exact shape of the
// remote question bank. It keeps practice working when the bank service is
// unreachable and backs the seed command.
func FixtureBank() []Question {
	return []Question{
		{
			ID:     "gk-001",
			Prompt: "Which planet has the shortest day in the solar system?",
			Options: []Option{
				{Label: "A", Text: "Mercury"},
				{Label: "B", Text: "Jupiter"},
				{Label: "C", Text: "Venus"},
				{Label: "D", Text: "Mars"},
			},
			CorrectAnswer: "B",
			Explanation:   "Jupiter completes a rotation in just under 10 hours.",
			Category:      "general-knowledge",
			QuestionType:  QuestionTypeMultipleChoice,
		},
		{
			ID:     "gk-002",
			Prompt: "The Great Barrier Reef lies off the coast of which country?",
			Options: []Option{
				{Label: "A", Text: "Indonesia"},
				{Label: "B", Text: "New Zealand"},
				{Label: "C", Text: "Australia"},
				{Label: "D", Text: "Philippines"},
			},
			CorrectAnswer: "C",
			Explanation:   "It stretches along the coast of Queensland, Australia.",
			Category:      "general-knowledge",
			QuestionType:  QuestionTypeMultipleChoice,
		},
		{
			ID:     "gk-003",
			Prompt: "Which gas makes up roughly 78% of Earth's atmosphere?",
			Options: []Option{
				{Label: "A", Text: "Oxygen"},
				{Label: "B", Text: "Carbon dioxide"},
				{Label: "C", Text: "Hydrogen"},
				{Label: "D", Text: "Nitrogen"},
			},
			CorrectAnswer: "D",
			Explanation:   "Nitrogen dominates, with oxygen a distant second at about 21%.",
			Category:      "general-knowledge",
			QuestionType:  QuestionTypeMultipleChoice,
		},
		{
			ID:     "ca-001",
			Prompt: "Which body publishes the World Economic Outlook twice a year?",
			Options: []Option{
				{Label: "A", Text: "World Bank"},
				{Label: "B", Text: "International Monetary Fund"},
				{Label: "C", Text: "World Trade Organization"},
				{Label: "D", Text: "OECD"},
			},
			CorrectAnswer: "B",
			Explanation:   "The IMF publishes the WEO each April and October.",
			Category:      "current-affairs",
			QuestionType:  QuestionTypeMultipleChoice,
		},
		{
			ID:     "ca-002",
			Prompt: "The COP climate conferences are organized under which convention?",
			Options: []Option{
				{Label: "A", Text: "UNFCCC"},
				{Label: "B", Text: "UNESCO"},
				{Label: "C", Text: "UNEP"},
				{Label: "D", Text: "UNDP"},
			},
			CorrectAnswer: "A",
			Explanation:   "COP stands for Conference of the Parties to the UNFCCC.",
			Category:      "current-affairs",
			QuestionType:  QuestionTypeMultipleChoice,
		},
		{
			ID:     "ca-003",
			Prompt: "Which organization maintains the Human Development Index?",
			Options: []Option{
				{Label: "A", Text: "IMF"},
				{Label: "B", Text: "World Bank"},
				{Label: "C", Text: "UNDP"},
				{Label: "D", Text: "WHO"},
			},
			CorrectAnswer: "C",
			Explanation:   "The HDI is published in the UNDP's Human Development Report.",
			Category:      "current-affairs",
			QuestionType:  QuestionTypeMultipleChoice,
		},
		{
			ID:     "qa-001",
			Prompt: "What is 15% of 240?",
			Options: []Option{
				{Label: "A", Text: "32"},
				{Label: "B", Text: "36"},
				{Label: "C", Text: "38"},
				{Label: "D", Text: "42"},
			},
			CorrectAnswer: "B",
			Explanation:   "240 × 0.15 = 36.",
			Category:      "quantitative-aptitude",
			QuestionType:  QuestionTypeMultipleChoice,
		},
		{
			ID:     "qa-002",
			Prompt: "A train covers 180 km in 2.5 hours. What is its average speed?",
			Options: []Option{
				{Label: "A", Text: "68 km/h"},
				{Label: "B", Text: "70 km/h"},
				{Label: "C", Text: "72 km/h"},
				{Label: "D", Text: "75 km/h"},
			},
			CorrectAnswer: "C",
			Explanation:   "180 / 2.5 = 72 km/h.",
			Category:      "quantitative-aptitude",
			QuestionType:  QuestionTypeMultipleChoice,
		},
		{
			ID:     "qa-003",
			Prompt: "If x + 3 = 11, what is 2x?",
			Options: []Option{
				{Label: "A", Text: "14"},
				{Label: "B", Text: "16"},
				{Label: "C", Text: "18"},
				{Label: "D", Text: "22"},
			},
			CorrectAnswer: "B",
			Explanation:   "x = 8, so 2x = 16.",
			Category:      "quantitative-aptitude",
			QuestionType:  QuestionTypeMultipleChoice,
		},
		{
			ID:     "re-001",
			Prompt: "Complete the series: 2, 6, 12, 20, 30, ?",
			Options: []Option{
				{Label: "A", Text: "40"},
				{Label: "B", Text: "42"},
				{Label: "C", Text: "44"},
				{Label: "D", Text: "46"},
			},
			CorrectAnswer: "B",
			Explanation:   "Differences grow by 2: 4, 6, 8, 10, 12 → 30 + 12 = 42.",
			Category:      "reasoning",
			QuestionType:  QuestionTypeMultipleChoice,
		},
		{
			ID:     "re-002",
			Prompt: "If CAT is coded as DBU, how is DOG coded?",
			Options: []Option{
				{Label: "A", Text: "EPH"},
				{Label: "B", Text: "EPI"},
				{Label: "C", Text: "FPH"},
				{Label: "D", Text: "EQH"},
			},
			CorrectAnswer: "A",
			Explanation:   "Each letter shifts forward by one.",
			Category:      "reasoning",
			QuestionType:  QuestionTypeMultipleChoice,
		},
		{
			ID:     "en-001",
			Prompt: "Choose the synonym of \"candid\".",
			Options: []Option{
				{Label: "A", Text: "Devious"},
				{Label: "B", Text: "Frank"},
				{Label: "C", Text: "Reserved"},
				{Label: "D", Text: "Timid"},
			},
			CorrectAnswer: "B",
			Explanation:   "Candid means open and honest — frank.",
			Category:      "english",
			QuestionType:  QuestionTypeMultipleChoice,
		},
		{
			ID:     "en-002",
			Prompt: "Identify the correctly spelled word.",
			Options: []Option{
				{Label: "A", Text: "Occurence"},
				{Label: "B", Text: "Occurrance"},
				{Label: "C", Text: "Occurrence"},
				{Label: "D", Text: "Ocurrence"},
			},
			CorrectAnswer: "C",
			Explanation:   "Double c, double r: occurrence.",
			Category:      "english",
			QuestionType:  QuestionTypeMultipleChoice,
		},
	}
}
