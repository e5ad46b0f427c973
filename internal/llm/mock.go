package llm

import (
	"context"
	"encoding/json"
	"sync"
)

const mockModel = "mock"

// MockResponse is one scripted reply of a MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	// Stop defaults to StopEnd. StopMaxTokens simulates a truncated reply.
	Stop string
	Err  error
}

// MockText scripts a reply with the given completion text.
func MockText(text string) MockResponse {
	return MockResponse{Content: json.RawMessage(text)}
}

// MockProvider replays scripted replies in order and records every
// request. Replies go through the same schema checks as a real provider,
// so a scripted reply that breaks the request's schema fails with
// *ErrInvalidResponse.
type MockProvider struct {
	mu     sync.Mutex
	script []MockResponse
	Calls  []Request
}

func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

// AddResponse appends a reply to the script.
func (m *MockProvider) AddResponse(r MockResponse) {
	m.mu.Lock()
	m.script = append(m.script, r)
	m.mu.Unlock()
}

// Generate consumes the next scripted reply. An exhausted script or a
// done context reports *ErrProviderUnavailable.
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	if err := ctx.Err(); err != nil {
		m.mu.Unlock()
		return nil, &ErrProviderUnavailable{Err: err}
	}
	if len(m.script) == 0 {
		m.mu.Unlock()
		return nil, &ErrProviderUnavailable{}
	}
	next := m.script[0]
	m.script = m.script[1:]
	m.mu.Unlock()

	if next.Err != nil {
		return nil, next.Err
	}
	stop := next.Stop
	if stop == "" {
		stop = StopEnd
	}
	return finish(req, completion{text: string(next.Content), usage: next.Usage, model: mockModel, stop: stop})
}

func (m *MockProvider) ModelID() string { return mockModel }

// LastCall returns the most recent request, or the zero Request.
func (m *MockProvider) LastCall() Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return Request{}
	}
	return m.Calls[len(m.Calls)-1]
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
