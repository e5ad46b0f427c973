package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okContent = json.RawMessage(`{"ok":true}`)

func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2,
	}
}

func TestRetry_Outcomes(t *testing.T) {
	down := func() MockResponse { return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}} }
	invalid := func() MockResponse {
		return MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`bad`), Err: errors.New("bad")}}
	}

	tests := []struct {
		name      string
		responses []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{"first attempt succeeds", []MockResponse{{Content: okContent}}, false, 1},
		{"transient then success", []MockResponse{down(), {Content: okContent}}, false, 2},
		{"timeout then success", []MockResponse{{Err: &ErrTimeout{After: time.Second}}, {Content: okContent}}, false, 2},
		{"rate limit honours retry-after", []MockResponse{
			{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}},
			{Content: okContent},
		}, false, 2},
		{"attempts exhausted", []MockResponse{down(), down(), down(), {Content: okContent}}, true, 3},
		{"invalid output retried once", []MockResponse{invalid(), invalid(), {Content: okContent}}, true, 2},
		{"max tokens is final", []MockResponse{{Err: &ErrMaxTokensExceeded{}}, {Content: okContent}}, true, 1},
		{"rejected request is final", []MockResponse{
			{Err: &ErrRequestRejected{StatusCode: 401, Err: errors.New("bad key")}},
			{Content: okContent},
		}, true, 1},
		{"unclassified error is final", []MockResponse{{Err: errors.New("boom")}, {Content: okContent}}, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			resp, err := WithRetry(mock, fastRetry()).Generate(context.Background(), Request{})
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.JSONEq(t, string(okContent), resp.Text())
			}
			assert.Equal(t, tt.wantCalls, mock.CallCount())
		})
	}
}

func TestRetry_KeepsErrorType(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRequestRejected{StatusCode: 400, Err: errors.New("bad model")}})
	_, err := WithRetry(mock, fastRetry()).Generate(context.Background(), Request{})

	var rejected *ErrRequestRejected
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, 400, rejected.StatusCode)
}

func TestRetry_CancelledContext(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Content: okContent},
	)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WithRetry(mock, fastRetry()).Generate(ctx, Request{})
	assert.Error(t, err)
}

func TestRetry_Backoff(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: 300 * time.Millisecond, Multiplier: 2}}
	transient := &ErrProviderUnavailable{}

	first := r.backoff(1, transient)
	assert.True(t, first >= 80*time.Millisecond && first <= 120*time.Millisecond, "first backoff %s", first)

	capped := r.backoff(5, transient)
	assert.True(t, capped <= 360*time.Millisecond, "capped backoff %s", capped)

	assert.Equal(t, 2*time.Second, r.backoff(1, &ErrRateLimit{RetryAfter: 2 * time.Second}))
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	assert.Equal(t, "mock", WithRetry(NewMockProvider(), fastRetry()).ModelID())
}

func TestRetry_SingleAttemptIsPassThrough(t *testing.T) {
	mock := NewMockProvider()
	cfg := fastRetry()
	cfg.MaxAttempts = 1
	assert.Same(t, mock, WithRetry(mock, cfg))
}
