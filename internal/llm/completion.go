package llm

import (
	"encoding/json"
	"strings"
)

// Normalized stop reasons reported in Response.StopReason.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// completion is what a provider adapter extracts from its SDK response.
type completion struct {
	text  string
	usage Usage
	model string
	stop  string
}

// finish applies the checks every provider shares and builds the Response.
// Structured requests must come back complete and schema-valid; plain
// completions pass through verbatim, truncated or not.
func finish(req Request, c completion) (*Response, error) {
	content := json.RawMessage(c.text)

	if req.Schema != nil {
		if c.stop == StopMaxTokens {
			return nil, &ErrMaxTokensExceeded{Content: content}
		}
		if err := ValidateJSON(req.Schema, content); err != nil {
			return nil, err
		}
	}

	if c.usage.TotalTokens == 0 {
		c.usage.TotalTokens = c.usage.InputTokens + c.usage.OutputTokens
	}

	return &Response{
		Content:    content,
		Usage:      c.usage,
		Model:      c.model,
		StopReason: c.stop,
	}, nil
}

// normalizeStop folds the finish reasons of the supported APIs
// ("length", "max_tokens", "MAX_TOKENS", ...) into StopEnd or StopMaxTokens.
func normalizeStop(reason string) string {
	switch strings.ToLower(reason) {
	case "length", "max_tokens":
		return StopMaxTokens
	}
	return StopEnd
}

// resolveModel maps a friendly model alias to a provider model id. Unknown
// names are taken to be model ids already.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
