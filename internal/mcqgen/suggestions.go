package mcqgen

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/abhisek/mcqgenie/internal/llm"
)

const maxSuggestions = 3

var suggestionTriggers = []string{"explain", "what is", "how does", "tell me about", "learn", "understand"}

// DefaultSuggestions are offered when the message is not about a learnable
// topic or when the model cannot produce suggestions.
var DefaultSuggestions = []string{
	"Generate a quiz on this topic",
	"Explain in more detail",
	"Give me some examples",
}

// SuggestionGenerator proposes follow-up actions for a chat turn.
type SuggestionGenerator struct {
	provider llm.Provider
}

// NewSuggestionGenerator creates a SuggestionGenerator backed by provider.
func NewSuggestionGenerator(provider llm.Provider) *SuggestionGenerator {
	return &SuggestionGenerator{provider: provider}
}

type suggestionsOutput struct {
	Suggestions []string `json:"suggestions"`
}

// Suggest returns up to three follow-ups for userMessage. It never fails:
// any model error is logged and the default list is returned instead.
func (g *SuggestionGenerator) Suggest(ctx context.Context, userMessage string) []string {
	if !wantsSuggestions(userMessage) {
		return defaults()
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeSuggestions)
	resp, err := g.provider.Generate(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildSuggestionPrompt(userMessage)},
		},
		Schema:      SuggestionsSchema,
		MaxTokens:   200,
		Temperature: 0.7,
	})
	if err != nil {
		log.Printf("suggestions: %v", err)
		return defaults()
	}

	var out suggestionsOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		log.Printf("suggestions: decode: %v", err)
		return defaults()
	}

	suggestions := make([]string, 0, maxSuggestions)
	for _, s := range out.Suggestions {
		if s = strings.TrimSpace(s); s != "" {
			suggestions = append(suggestions, s)
		}
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	if len(suggestions) == 0 {
		return defaults()
	}
	return suggestions
}

func wantsSuggestions(msg string) bool {
	lower := strings.ToLower(msg)
	for _, kw := range suggestionTriggers {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func defaults() []string {
	return append([]string(nil), DefaultSuggestions...)
}
