package mcqgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/mcqgenie/internal/quiz"
)

var difficultyGuidance = map[quiz.Difficulty]string{
	quiz.DifficultyEasy:   "Create straightforward questions testing basic knowledge and recall.",
	quiz.DifficultyMedium: "Create questions requiring understanding and application of concepts.",
	quiz.DifficultyHard:   "Create challenging questions requiring analysis, synthesis, and critical thinking.",
}

const systemPromptTemplate = `You are an expert educational content creator specializing in multiple-choice questions.

**Your Task:** Generate high-quality MCQs that are clear, unambiguous, and educationally valuable.

**Difficulty Level:** %s
%s

**Requirements:**
1. Each question must have exactly 4 options (A, B, C, D)
2. Only ONE option should be correct
3. Distractors (wrong options) should be plausible but clearly incorrect
4. Avoid "All of the above" or "None of the above" options
5. Questions should be clear and unambiguous
6. Provide a brief explanation for the correct answer

**Output Format:**
Respond with ONLY a valid JSON array. No additional text before or after.

Example format:
[
  {
    "question": "What is the capital of France?",
    "options": {
      "A": "London",
      "B": "Paris",
      "C": "Berlin",
      "D": "Madrid"
    },
    "correct_answer": "B",
    "explanation": "Paris is the capital and largest city of France."
  }
]`

// buildSystemPrompt fixes the output contract for the given difficulty.
func buildSystemPrompt(d quiz.Difficulty) string {
	guidance, ok := difficultyGuidance[d]
	if !ok {
		guidance = difficultyGuidance[quiz.DifficultyMedium]
	}
	return fmt.Sprintf(systemPromptTemplate, strings.ToUpper(string(d)), guidance)
}

func buildUserMessage(req quiz.GenerationRequest) string {
	return fmt.Sprintf("Generate %d multiple-choice questions about: %s\n\nRemember to respond with ONLY the JSON array, no other text.",
		req.Count, req.Topic)
}

func buildSuggestionPrompt(topic string) string {
	return fmt.Sprintf(`Based on the topic %q, suggest 3 brief follow-up actions a user might want to take.

Keep each suggestion under 10 words.

Example: {"suggestions": ["Take a quiz on this topic", "Learn advanced concepts", "Get practice problems"]}`, topic)
}
