package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenRouterProvider(t *testing.T) {
	_, err := NewOpenRouterProvider(OpenRouterConfig{Model: "openai/gpt-3.5-turbo"})
	assert.Error(t, err, "API key is required")

	cfg := DefaultConfig().OpenRouter
	cfg.APIKey = "sk-or-test"
	p, err := NewOpenRouterProvider(cfg)
	require.NoError(t, err)
	assert.Equal(t, "openai/gpt-3.5-turbo", p.ModelID())
	assert.True(t, p.legacyMaxTokens)

	// Vendor-prefixed ids are not aliases.
	p, err = NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "anthropic/claude-3-haiku"})
	require.NoError(t, err)
	assert.Equal(t, "anthropic/claude-3-haiku", p.ModelID())
}

func TestOpenRouterProvider_Request(t *testing.T) {
	api := &fakeAPI{reply: chatCompletion("Hello!", "stop")}
	url := api.start(t)

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or-test",
		Model:   "openai/gpt-3.5-turbo",
		BaseURL: url + "/api/v1",
		Referer: "https://mcqgenie.example",
	})
	require.NoError(t, err)

	resp, err := p.Generate(context.Background(), Request{
		Messages:    []Message{{Role: RoleUser, Content: "hi"}},
		MaxTokens:   1000,
		Temperature: 0.7,
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello!", resp.Text())

	assert.Equal(t, "/api/v1/chat/completions", api.path)
	assert.Equal(t, "openai/gpt-3.5-turbo", api.body["model"])
	assert.EqualValues(t, 1000, api.body["max_tokens"])
	assert.NotContains(t, api.body, "max_completion_tokens")
	assert.InDelta(t, 0.7, api.body["temperature"], 1e-6)

	assert.Equal(t, "MCQ Genie", api.header.Get("X-Title"))
	assert.Equal(t, "https://mcqgenie.example", api.header.Get("HTTP-Referer"))
	assert.Equal(t, "Bearer sk-or-test", api.header.Get("Authorization"))
}

func TestOpenRouterProvider_NoRefererConfigured(t *testing.T) {
	api := &fakeAPI{reply: chatCompletion("ok", "stop")}
	url := api.start(t)

	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "openai/gpt-3.5-turbo", BaseURL: url})
	require.NoError(t, err)
	_, err = p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	require.NoError(t, err)

	assert.Empty(t, api.header.Get("HTTP-Referer"))
	assert.Equal(t, "MCQ Genie", api.header.Get("X-Title"))
}
