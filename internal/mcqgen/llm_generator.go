package mcqgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"

	"github.com/abhisek/mcqgenie/internal/llm"
	"github.com/abhisek/mcqgenie/internal/quiz"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// draft is one array element as written by the model.
type draft struct {
	Question      string                   `json:"question"`
	Options       map[quiz.OptionID]string `json:"options"`
	CorrectAnswer quiz.OptionID            `json:"correct_answer"`
	Explanation   *string                  `json:"explanation"`
}

// Generate asks the model for req.Count questions and converts the reply.
// The caller is expected to have validated and clamped req.
func (g *LLMGenerator) Generate(ctx context.Context, req quiz.GenerationRequest) ([]quiz.Question, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeMCQGen)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: buildSystemPrompt(req.Difficulty),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(req)},
		},
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, &GenerationError{Topic: req.Topic, Err: err}
	}

	questions, err := g.convert(resp, req)
	if err != nil {
		return nil, &GenerationError{Topic: req.Topic, Err: err}
	}
	return questions, nil
}

func (g *LLMGenerator) convert(resp *llm.Response, req quiz.GenerationRequest) ([]quiz.Question, error) {
	text := resp.Text()
	items, err := ParseQuestionArray(text)
	if err != nil {
		var merr *MalformedOutputError
		if resp.StopReason == llm.StopMaxTokens && errors.As(err, &merr) {
			merr.Err = errors.Join(merr.Err, &llm.ErrMaxTokensExceeded{Content: resp.Content})
		}
		return nil, err
	}

	if len(items) < req.Count {
		return nil, &MalformedOutputError{
			Index:   -1,
			Snippet: snippet(text),
			Err:     fmt.Errorf("expected %d questions, got %d", req.Count, len(items)),
		}
	}
	items = items[:req.Count]

	questions := make([]quiz.Question, 0, len(items))
	for i, raw := range items {
		q, err := g.buildQuestion(i, raw, req)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (g *LLMGenerator) buildQuestion(i int, raw json.RawMessage, req quiz.GenerationRequest) (quiz.Question, error) {
	if err := llm.ValidateJSON(DraftSchema, raw); err != nil {
		return quiz.Question{}, &MalformedOutputError{
			Index:   i,
			Field:   schemaField(err),
			Snippet: snippet(string(raw)),
			Err:     err,
		}
	}

	var d draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return quiz.Question{}, &MalformedOutputError{Index: i, Snippet: snippet(string(raw)), Err: err}
	}

	q := quiz.Question{
		ID:            fmt.Sprintf("q_%d", i+1),
		Text:          strings.TrimSpace(d.Question),
		Options:       make([]quiz.Option, 0, len(quiz.OptionIDs)),
		CorrectAnswer: d.CorrectAnswer,
		Difficulty:    req.Difficulty,
	}
	if d.Explanation != nil {
		q.Explanation = strings.TrimSpace(*d.Explanation)
	}
	for _, id := range quiz.OptionIDs {
		q.Options = append(q.Options, quiz.Option{ID: id, Text: strings.TrimSpace(d.Options[id])})
	}

	// Run validators in order.
	for _, v := range g.config.Validators {
		if verr := v.Validate(&q, req); verr != nil {
			return quiz.Question{}, &MalformedOutputError{
				Index:   i,
				Field:   verr.Field,
				Snippet: snippet(string(raw)),
				Err:     verr,
			}
		}
	}
	return q, nil
}

// schemaField names the first instance location reported by a schema
// validation failure, e.g. "options.D" or "correct_answer".
func schemaField(err error) string {
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return ""
	}
	for len(verr.Causes) > 0 {
		verr = verr.Causes[0]
	}
	loc := append([]string(nil), verr.InstanceLocation...)
	if req, ok := verr.ErrorKind.(*kind.Required); ok && len(req.Missing) > 0 {
		loc = append(loc, req.Missing[0])
	}
	return strings.Join(loc, ".")
}
