package mcqgen

import "github.com/abhisek/mcqgenie/internal/llm"

// DraftSchema describes one element of the question array returned by the
// model. Extra properties are ignored.
var DraftSchema = &llm.Schema{
	Name:        "mcq-draft",
	Description: "A single multiple-choice question with four options and one correct answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question text",
			},
			"options": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"A": map[string]any{"type": "string"},
					"B": map[string]any{"type": "string"},
					"C": map[string]any{"type": "string"},
					"D": map[string]any{"type": "string"},
				},
				"required": []any{"A", "B", "C", "D"},
			},
			"correct_answer": map[string]any{
				"type": "string",
				"enum": []any{"A", "B", "C", "D"},
			},
			"explanation": map[string]any{
				"type": []any{"string", "null"},
			},
		},
		"required": []any{"question", "options", "correct_answer"},
	},
}

// SuggestionsSchema is the structured output requested for chat
// follow-up suggestions.
var SuggestionsSchema = &llm.Schema{
	Name:        "chat-suggestions",
	Description: "Short follow-up actions the learner might take next",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"suggestions": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Three suggestions, each under 10 words",
			},
		},
		"required":             []any{"suggestions"},
		"additionalProperties": false,
	},
}
