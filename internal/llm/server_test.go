package llm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// fakeAPI is a provider endpoint that answers every request with one
// canned status and JSON body and keeps the last request body it saw.
type fakeAPI struct {
	status int
	reply  any
	body   map[string]any
	path   string
	header http.Header
}

func (f *fakeAPI) start(t *testing.T) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.path = r.URL.Path
		f.header = r.Header.Clone()
		f.body = nil
		_ = json.NewDecoder(r.Body).Decode(&f.body)

		w.Header().Set("Content-Type", "application/json")
		if f.status != 0 {
			w.WriteHeader(f.status)
		}
		_ = json.NewEncoder(w).Encode(f.reply)
	}))
	t.Cleanup(server.Close)
	return server.URL
}

// messagesSent returns the role/content pairs of a chat-style request body.
func (f *fakeAPI) messagesSent() [][2]string {
	raw, _ := f.body["messages"].([]any)
	out := make([][2]string, 0, len(raw))
	for _, m := range raw {
		msg, _ := m.(map[string]any)
		role, _ := msg["role"].(string)
		var content string
		switch c := msg["content"].(type) {
		case string:
			content = c
		case []any:
			if len(c) > 0 {
				block, _ := c[0].(map[string]any)
				content, _ = block["text"].(string)
			}
		}
		out = append(out, [2]string{role, content})
	}
	return out
}

var tutorRequest = Request{
	System: "You are a patient tutor.",
	Messages: []Message{
		{Role: RoleUser, Content: "What is osmosis?"},
		{Role: RoleAssistant, Content: "Water moving across a membrane."},
		{Role: RoleUser, Content: "Why does it happen?"},
	},
	MaxTokens:   300,
	Temperature: 0.7,
}
