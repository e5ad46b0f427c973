package llm

import (
	"errors"
	"net/http"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	openRouterAppTitle       = "MCQ Genie"
)

// OpenRouterProvider reaches OpenRouter through its OpenAI-compatible API.
// Model ids pass through unchanged, e.g. "openai/gpt-3.5-turbo".
type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	httpClient := &http.Client{Transport: attributionTransport{
		base:    http.DefaultTransport,
		referer: cfg.Referer,
		title:   openRouterAppTitle,
	}}

	inner := newOpenAICompatible(cfg.APIKey, baseURL, cfg.Model, httpClient)
	inner.legacyMaxTokens = true
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

// attributionTransport adds the headers OpenRouter uses to attribute
// traffic to an application.
type attributionTransport struct {
	base    http.RoundTripper
	referer string
	title   string
}

func (t attributionTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	if t.referer != "" {
		r.Header.Set("HTTP-Referer", t.referer)
	}
	r.Header.Set("X-Title", t.title)
	return t.base.RoundTrip(r)
}
