// Package llm wraps the hosted chat-completion APIs behind one Provider
// interface, with decorators for timeouts, retries and event logging.
package llm

import (
	"context"
	"encoding/json"
)

// Provider sends one request to a language model.
type Provider interface {
	// Generate returns the model's reply to req. When req.Schema is set the
	// reply has been checked against it.
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

type Request struct {
	System string
	// Messages are oldest first. Test generation sends one user message;
	// chat sends the whole thread.
	Messages []Message

	// Schema asks for structured output through the provider's native
	// mechanism. Without it the reply is free text.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// Schema is a named JSON Schema. Names are kebab-case and double as the
// key for the compiled-schema cache.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

type Response struct {
	// Content is schema-valid JSON for structured requests and the
	// completion text verbatim otherwise.
	Content json.RawMessage
	Usage   Usage
	// Model is the model that actually served the request.
	Model string
	// StopReason is StopEnd or StopMaxTokens.
	StopReason string
}

// Text returns Content as a string. It is safe on a nil Response.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return string(r.Content)
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
