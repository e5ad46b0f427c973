package llm

import (
	"errors"
	"testing"
)

var pingSchema = &Schema{
	Name: "ping",
	Definition: map[string]any{
		"type":                 "object",
		"properties":           map[string]any{"ok": map[string]any{"type": "boolean"}},
		"required":             []any{"ok"},
		"additionalProperties": false,
	},
}

func TestNormalizeStop(t *testing.T) {
	tests := map[string]string{
		"stop":       StopEnd,
		"end_turn":   StopEnd,
		"STOP":       StopEnd,
		"":           StopEnd,
		"length":     StopMaxTokens,
		"max_tokens": StopMaxTokens,
		"MAX_TOKENS": StopMaxTokens,
	}
	for in, want := range tests {
		if got := normalizeStop(in); got != want {
			t.Errorf("normalizeStop(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFinish_PlainTextPassesThrough(t *testing.T) {
	resp, err := finish(Request{}, completion{
		text:  "not json at all",
		usage: Usage{InputTokens: 3, OutputTokens: 4},
		model: "m",
		stop:  StopMaxTokens,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "not json at all" {
		t.Fatalf("text = %q", resp.Text())
	}
	if resp.Usage.TotalTokens != 7 {
		t.Fatalf("total tokens = %d, want 7", resp.Usage.TotalTokens)
	}
	if resp.StopReason != StopMaxTokens {
		t.Fatalf("stop = %q", resp.StopReason)
	}
}

func TestFinish_SchemaValidated(t *testing.T) {
	if _, err := finish(Request{Schema: pingSchema}, completion{text: `{"ok":true}`, stop: StopEnd}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := finish(Request{Schema: pingSchema}, completion{text: `{"ok":"yes"}`, stop: StopEnd})
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
	}
}

func TestFinish_TruncatedStructuredOutput(t *testing.T) {
	_, err := finish(Request{Schema: pingSchema}, completion{text: `{"ok":tr`, stop: StopMaxTokens})
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
	}
	if string(maxTok.Content) != `{"ok":tr` {
		t.Fatalf("content = %s", maxTok.Content)
	}
}
