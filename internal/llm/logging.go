package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/abhisek/mcqgenie/internal/store"
)

// LoggingProvider records every call of the wrapped provider in the event
// log, successful or not.
type LoggingProvider struct {
	inner  Provider
	name   string
	events store.EventRepo
}

// WithLogging records the calls of p under the provider name, e.g.
// "openrouter".
func WithLogging(p Provider, name string, events store.EventRepo) Provider {
	return &LoggingProvider{inner: p, name: name, events: events}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:    l.name,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = resp.Text()
		if resp.Model != "" {
			ev.Model = resp.Model
		}
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	// Recorded even when the caller has gone away; a failed write only warns.
	if werr := l.events.AppendLLMRequest(context.WithoutCancel(ctx), ev); werr != nil {
		log.Printf("warning: record %s call: %v", ev.Purpose, werr)
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// transcript renders req as role-headed blocks for the event log.
func transcript(req Request) string {
	var blocks []string
	if req.System != "" {
		blocks = append(blocks, "--- system\n"+req.System)
	}
	for _, m := range req.Messages {
		blocks = append(blocks, fmt.Sprintf("--- %s\n%s", m.Role, m.Content))
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			blocks = append(blocks, fmt.Sprintf("--- schema %s\n%s", req.Schema.Name, def))
		}
	}
	return strings.Join(blocks, "\n\n")
}
