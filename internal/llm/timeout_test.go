package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// blockingProvider waits for the context to end.
type blockingProvider struct{}

func (blockingProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, &ErrProviderUnavailable{Err: ctx.Err()}
}

func (blockingProvider) ModelID() string { return "blocking" }

func TestTimeout_ExceededReturnsErrTimeout(t *testing.T) {
	p := WithTimeout(blockingProvider{}, 10*time.Millisecond)

	_, err := p.Generate(context.Background(), Request{})
	var te *ErrTimeout
	if !errors.As(err, &te) {
		t.Fatalf("expected ErrTimeout, got: %T (%v)", err, err)
	}
	if te.After != 10*time.Millisecond {
		t.Fatalf("After = %s", te.After)
	}
	if !IsRetryable(err) {
		t.Fatal("timeouts should be retryable")
	}
}

func TestTimeout_CallerCancellationIsNotATimeout(t *testing.T) {
	p := WithTimeout(blockingProvider{}, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, Request{})
	var te *ErrTimeout
	if errors.As(err, &te) {
		t.Fatal("caller cancellation must not be reported as a timeout")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled in chain, got %v", err)
	}
}

func TestTimeout_FastResponsePassesThrough(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"ok":true}`)})
	p := WithTimeout(mock, time.Second)

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != `{"ok":true}` {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("ModelID = %q", p.ModelID())
	}
}

func TestWithTimeout_ZeroDisables(t *testing.T) {
	mock := NewMockProvider()
	if p := WithTimeout(mock, 0); p != Provider(mock) {
		t.Fatalf("expected the provider itself, got %T", p)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limit", &ErrRateLimit{Err: errors.New("429")}, true},
		{"unavailable", &ErrProviderUnavailable{Err: errors.New("502")}, true},
		{"timeout", &ErrTimeout{After: time.Second}, true},
		{"rejected", &ErrRequestRejected{StatusCode: 400, Err: errors.New("bad")}, false},
		{"invalid response", &ErrInvalidResponse{Err: errors.New("bad json")}, false},
		{"max tokens", &ErrMaxTokensExceeded{}, false},
		{"plain", errors.New("boom"), false},
		{"wrapped unavailable", errors.Join(errors.New("ctx"), &ErrProviderUnavailable{}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Fatalf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestMapStatusError(t *testing.T) {
	cause := errors.New("cause")
	if _, ok := mapStatusError(429, cause).(*ErrRateLimit); !ok {
		t.Error("429 should map to ErrRateLimit")
	}
	if _, ok := mapStatusError(503, cause).(*ErrProviderUnavailable); !ok {
		t.Error("503 should map to ErrProviderUnavailable")
	}
	if _, ok := mapStatusError(408, cause).(*ErrProviderUnavailable); !ok {
		t.Error("408 should map to ErrProviderUnavailable")
	}
	rej, ok := mapStatusError(401, cause).(*ErrRequestRejected)
	if !ok || rej.StatusCode != 401 {
		t.Error("401 should map to ErrRequestRejected")
	}
}
