package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProvider_ReplaysScriptInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: []byte("first"), Usage: Usage{InputTokens: 12, OutputTokens: 3}},
		MockText("second"),
	)
	mock.AddResponse(MockText("third"))

	var got []string
	for range 3 {
		resp, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "next"}}})
		require.NoError(t, err)
		assert.Equal(t, StopEnd, resp.StopReason)
		got = append(got, resp.Text())
	}
	assert.Equal(t, []string{"first", "second", "third"}, got)
	assert.Equal(t, 3, mock.CallCount())

	_, err := mock.Generate(context.Background(), Request{})
	var unavailable *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavailable)
}

func TestMockProvider_FillsTotalTokens(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: []byte("ok"), Usage: Usage{InputTokens: 12, OutputTokens: 3}})
	resp, err := mock.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, 15, resp.Usage.TotalTokens)
	assert.Equal(t, "mock", resp.Model)
}

func TestMockProvider_RecordsRequests(t *testing.T) {
	mock := NewMockProvider(MockText("a"), MockText("b"))
	_, _ = mock.Generate(context.Background(), Request{System: "tutor", Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	_, _ = mock.Generate(context.Background(), Request{System: "quiz", MaxTokens: 50})

	require.Len(t, mock.Calls, 2)
	assert.Equal(t, "tutor", mock.Calls[0].System)
	assert.Equal(t, "quiz", mock.LastCall().System)
	assert.Equal(t, 50, mock.LastCall().MaxTokens)
	assert.Equal(t, Request{}, NewMockProvider().LastCall())
}

func TestMockProvider_ScriptedError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{}})
	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	assert.ErrorAs(t, err, &rl)
}

func TestMockProvider_AppliesSchema(t *testing.T) {
	schema := &Schema{Name: "test-mock-flag", Definition: map[string]any{
		"type":       "object",
		"properties": map[string]any{"ok": map[string]any{"type": "boolean"}},
		"required":   []string{"ok"},
	}}
	mock := NewMockProvider(
		MockText(`{"ok":"yes"}`),
		MockResponse{Content: []byte(`{"ok":tr`), Stop: StopMaxTokens},
		MockText(`{"ok":true}`),
	)

	_, err := mock.Generate(context.Background(), Request{Schema: schema})
	var invalid *ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)

	_, err = mock.Generate(context.Background(), Request{Schema: schema})
	var truncated *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &truncated)

	resp, err := mock.Generate(context.Background(), Request{Schema: schema})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, resp.Text())
}

func TestMockProvider_CancelledContext(t *testing.T) {
	mock := NewMockProvider(MockText("never"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mock.Generate(ctx, Request{})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 1, mock.CallCount())
}

func TestPurposeFrom(t *testing.T) {
	assert.Equal(t, "unknown", PurposeFrom(context.Background()))
	assert.Equal(t, PurposeChat, PurposeFrom(WithPurpose(context.Background(), PurposeChat)))
}
