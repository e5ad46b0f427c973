package llm

import (
	"context"
	"net/http"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anthropicAgainst(t *testing.T, api *fakeAPI) *AnthropicProvider {
	t.Helper()
	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(api.start(t)),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{client: &client, model: "claude-haiku-4-5-20251001"}
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"model":       "claude-haiku-4-5-20251001",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 42, "output_tokens": 17},
	}
}

func TestAnthropicProvider_Conversation(t *testing.T) {
	api := &fakeAPI{reply: anthropicMessage("Because of a concentration gradient.", "end_turn")}
	p := anthropicAgainst(t, api)

	resp, err := p.Generate(context.Background(), tutorRequest)
	require.NoError(t, err)

	assert.Equal(t, "Because of a concentration gradient.", resp.Text())
	assert.Equal(t, Usage{InputTokens: 42, OutputTokens: 17, TotalTokens: 59}, resp.Usage)
	assert.Equal(t, StopEnd, resp.StopReason)

	assert.Equal(t, "/v1/messages", api.path)
	assert.EqualValues(t, 300, api.body["max_tokens"])
	assert.EqualValues(t, 0.7, api.body["temperature"])
	assert.Equal(t, [][2]string{
		{"user", "What is osmosis?"},
		{"assistant", "Water moving across a membrane."},
		{"user", "Why does it happen?"},
	}, api.messagesSent())
	system, _ := api.body["system"].([]any)
	require.Len(t, system, 1)
	assert.Equal(t, "You are a patient tutor.", system[0].(map[string]any)["text"])
}

func TestAnthropicProvider_TruncatedPlainText(t *testing.T) {
	p := anthropicAgainst(t, &fakeAPI{reply: anthropicMessage("Osmosis is the", "max_tokens")})

	resp, err := p.Generate(context.Background(), tutorRequest)
	require.NoError(t, err)
	assert.Equal(t, StopMaxTokens, resp.StopReason)
	assert.Equal(t, "Osmosis is the", resp.Text())
}

func TestAnthropicProvider_StatusErrors(t *testing.T) {
	tests := []struct {
		status int
		kind   string
		check  func(t *testing.T, err error)
	}{
		{http.StatusTooManyRequests, "rate_limit_error", func(t *testing.T, err error) {
			var target *ErrRateLimit
			assert.ErrorAs(t, err, &target)
		}},
		{http.StatusInternalServerError, "api_error", func(t *testing.T, err error) {
			var target *ErrProviderUnavailable
			assert.ErrorAs(t, err, &target)
		}},
		{http.StatusBadRequest, "invalid_request_error", func(t *testing.T, err error) {
			var target *ErrRequestRejected
			require.ErrorAs(t, err, &target)
			assert.Equal(t, http.StatusBadRequest, target.StatusCode)
			assert.False(t, IsRetryable(err))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			p := anthropicAgainst(t, &fakeAPI{
				status: tt.status,
				reply:  map[string]any{"type": "error", "error": map[string]any{"type": tt.kind, "message": "nope"}},
			})
			_, err := p.Generate(context.Background(), tutorRequest)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestAnthropicModels(t *testing.T) {
	assert.Equal(t, "claude-sonnet-4-20250514", resolveModel("claude-sonnet", anthropicModels))
	assert.Equal(t, "claude-haiku-4-5-20251001", resolveModel("claude-haiku", anthropicModels))
	assert.Equal(t, "claude-opus-4-1", resolveModel("claude-opus-4-1", anthropicModels))

	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "k", Model: "claude-haiku"})
	require.NoError(t, err)
	assert.Equal(t, "claude-haiku-4-5-20251001", p.ModelID())

	_, err = NewAnthropicProvider(AnthropicConfig{Model: "claude-haiku"})
	assert.Error(t, err)
}
