package mcqgen

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/abhisek/mcqgenie/internal/llm"
)

func TestSuggest_NotTriggered(t *testing.T) {
	mock := llm.NewMockProvider()
	got := NewSuggestionGenerator(mock).Suggest(context.Background(), "hello there")
	if !reflect.DeepEqual(got, DefaultSuggestions) {
		t.Errorf("got %v, want defaults", got)
	}
	if mock.CallCount() != 0 {
		t.Errorf("expected no LLM call, got %d", mock.CallCount())
	}
}

func TestSuggest_FromModel(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText(`{"suggestions":["Quiz me on cells"," ","Compare plants and algae","Learn about ATP","Extra one"]}`))
	got := NewSuggestionGenerator(mock).Suggest(context.Background(), "Can you EXPLAIN photosynthesis?")

	want := []string{"Quiz me on cells", "Compare plants and algae", "Learn about ATP"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	call := mock.LastCall()
	if call.Schema != SuggestionsSchema {
		t.Error("expected structured output schema")
	}
	if call.Temperature != 0.7 || call.MaxTokens != 200 {
		t.Errorf("temperature/max tokens = %v/%d", call.Temperature, call.MaxTokens)
	}
}

func TestSuggest_FallbackOnFailure(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
	}{
		{"provider error", llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}}},
		{"undecodable", llm.MockText(`not json`)},
		{"empty list", llm.MockText(`{"suggestions":[]}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(tt.resp)
			got := NewSuggestionGenerator(mock).Suggest(context.Background(), "what is a mitochondrion")
			if !reflect.DeepEqual(got, DefaultSuggestions) {
				t.Errorf("got %v, want defaults", got)
			}
		})
	}
}

func TestSuggest_DefaultsAreCopied(t *testing.T) {
	got := NewSuggestionGenerator(llm.NewMockProvider()).Suggest(context.Background(), "hi")
	got[0] = "mutated"
	if DefaultSuggestions[0] == "mutated" {
		t.Error("caller mutation reached the package defaults")
	}
}

func TestWantsSuggestions(t *testing.T) {
	for msg, want := range map[string]bool{
		"Tell me about black holes": true,
		"How does DNS work?":        true,
		"I want to learn Go":        true,
		"thanks!":                   false,
		"":                          false,
	} {
		if got := wantsSuggestions(msg); got != want {
			t.Errorf("wantsSuggestions(%q) = %v, want %v", msg, got, want)
		}
	}
}
