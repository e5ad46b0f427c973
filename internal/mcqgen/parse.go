package mcqgen

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const snippetLimit = 200

// ParseQuestionArray extracts the JSON array of question objects from raw
// completion text. Surrounding whitespace and a single markdown code fence
// are tolerated; anything else that is not an array of objects is a
// *MalformedOutputError.
func ParseQuestionArray(text string) ([]json.RawMessage, error) {
	body := stripFence(text)
	if body == "" {
		return nil, &MalformedOutputError{Index: -1, Snippet: snippet(text), Err: errors.New("empty response")}
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(body), &items); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			err = fmt.Errorf("expected a JSON array, got %s", typeErr.Value)
		}
		return nil, &MalformedOutputError{Index: -1, Snippet: snippet(text), Err: err}
	}
	if items == nil {
		return nil, &MalformedOutputError{Index: -1, Snippet: snippet(text), Err: errors.New("expected a JSON array, got null")}
	}

	for i, item := range items {
		if !bytes.HasPrefix(bytes.TrimSpace(item), []byte("{")) {
			return nil, &MalformedOutputError{
				Index:   i,
				Snippet: snippet(string(item)),
				Err:     errors.New("array element is not an object"),
			}
		}
	}
	return items, nil
}

// stripFence removes surrounding whitespace and a ```json or ``` fence.
func stripFence(text string) string {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// snippet truncates s to snippetLimit characters without splitting a rune.
func snippet(s string) string {
	if utf8.RuneCountInString(s) <= snippetLimit {
		return s
	}
	n := 0
	for i := range s {
		if n == snippetLimit {
			return s[:i]
		}
		n++
	}
	return s
}
