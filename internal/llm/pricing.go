package llm

import "strings"

// ModelCost is USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of a call.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1_000_000
}

// LookupCost returns the list price for a model id, or nil if it is not
// in the table. OpenRouter ids ("openai/gpt-4o-mini") are matched on the
// part after the vendor prefix, and dated snapshots fall back to their
// undated family ("gpt-4o-2024-08-06" -> "gpt-4o").
func LookupCost(modelID string) *ModelCost {
	id := modelID
	if i := strings.LastIndex(id, "/"); i >= 0 {
		id = id[i+1:]
	}
	id = strings.TrimSuffix(id, ":free")

	for candidate := id; candidate != ""; candidate = trimVersionSuffix(candidate) {
		if c, ok := modelCosts[candidate]; ok {
			return &c
		}
	}
	return nil
}

// trimVersionSuffix drops the last dash-separated segment when it looks like
// a date or snapshot tag. It returns "" when there is nothing left to drop.
func trimVersionSuffix(id string) string {
	i := strings.LastIndex(id, "-")
	if i < 0 {
		return ""
	}
	tail := id[i+1:]
	if tail == "" || tail[0] < '0' || tail[0] > '9' {
		return ""
	}
	return id[:i]
}

// modelCosts lists the models MCQ Genie is configured with out of the box
// and their common alternatives. Prices from models.dev, 2026-02.
var modelCosts = map[string]ModelCost{
	// OpenAI (also reached through OpenRouter)
	"gpt-3.5-turbo": {0.5, 1.5},
	"gpt-4":         {30, 60},
	"gpt-4-turbo":   {10, 30},
	"gpt-4o":        {2.5, 10},
	"gpt-4o-mini":   {0.15, 0.6},
	"gpt-4.1":       {2, 8},
	"gpt-4.1-mini":  {0.4, 1.6},
	"gpt-4.1-nano":  {0.1, 0.4},
	"gpt-5":         {1.25, 10},
	"gpt-5-mini":    {0.25, 2},
	"gpt-5-nano":    {0.05, 0.4},
	"o3-mini":       {1.1, 4.4},
	"o4-mini":       {1.1, 4.4},

	// Anthropic
	"claude-3-haiku":    {0.25, 1.25},
	"claude-3-5-haiku":  {0.8, 4},
	"claude-3.5-haiku":  {0.8, 4},
	"claude-3-5-sonnet": {3, 15},
	"claude-3.5-sonnet": {3, 15},
	"claude-3-7-sonnet": {3, 15},
	"claude-sonnet-4":   {3, 15},
	"claude-sonnet-4-5": {3, 15},
	"claude-haiku-4-5":  {1, 5},
	"claude-opus-4-1":   {15, 75},

	// Google
	"gemini-1.5-flash":      {0.075, 0.3},
	"gemini-1.5-pro":        {1.25, 5},
	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.0-flash-lite": {0.075, 0.3},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-pro":        {1.25, 10},

	// Open-weight models commonly used through OpenRouter
	"llama-3.1-8b-instruct":  {0.02, 0.03},
	"llama-3.3-70b-instruct": {0.13, 0.4},
	"mistral-small":          {0.2, 0.6},
	"deepseek-chat":          {0.3, 0.85},
}
