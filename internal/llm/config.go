package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config selects and configures the LLM provider.
type Config struct {
	// Provider is one of the Provider* names.
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call, retries included.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey string
	Model  string
	// BaseURL points the client at an OpenAI-compatible server.
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	// Referer is sent as HTTP-Referer so OpenRouter can attribute traffic.
	Referer string
}

// RetryConfig controls WithRetry. MaxAttempts of 1 disables retrying.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig uses OpenRouter with gpt-3.5-turbo and retries disabled.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderOpenRouter,
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "openai/gpt-3.5-turbo",
		},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// Provider names accepted in Config.Provider.
const (
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderGemini     = "gemini"
	ProviderMock       = "mock"
)

// credential ties a hosted provider to its environment variables.
type credential struct {
	provider string
	// keyVars is searched in order: the MCQGENIE_ name first, then the
	// vendor's standard variable.
	keyVars  []string
	modelVar string
	fields   func(*Config) (key, model *string)
}

// credentials is also the discovery order.
var credentials = []credential{
	{
		provider: ProviderOpenRouter,
		keyVars:  []string{"MCQGENIE_OPENROUTER_API_KEY", "OPENROUTER_API_KEY"},
		modelVar: "MCQGENIE_OPENROUTER_MODEL",
		fields:   func(c *Config) (*string, *string) { return &c.OpenRouter.APIKey, &c.OpenRouter.Model },
	},
	{
		provider: ProviderOpenAI,
		keyVars:  []string{"MCQGENIE_OPENAI_API_KEY", "OPENAI_API_KEY"},
		modelVar: "MCQGENIE_OPENAI_MODEL",
		fields:   func(c *Config) (*string, *string) { return &c.OpenAI.APIKey, &c.OpenAI.Model },
	},
	{
		provider: ProviderAnthropic,
		keyVars:  []string{"MCQGENIE_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY"},
		modelVar: "MCQGENIE_ANTHROPIC_MODEL",
		fields:   func(c *Config) (*string, *string) { return &c.Anthropic.APIKey, &c.Anthropic.Model },
	},
	{
		provider: ProviderGemini,
		keyVars:  []string{"MCQGENIE_GEMINI_API_KEY", "GEMINI_API_KEY"},
		modelVar: "MCQGENIE_GEMINI_MODEL",
		fields:   func(c *Config) (*string, *string) { return &c.Gemini.APIKey, &c.Gemini.Model },
	},
}

func credentialFor(provider string) (credential, bool) {
	for _, c := range credentials {
		if c.provider == provider {
			return c, true
		}
	}
	return credential{}, false
}

// ConfigFromEnv builds a Config from MCQGENIE_* variables on top of
// DefaultConfig. API keys fall back to the vendors' standard variables.
// Unparseable numbers are ignored.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	setFromEnv(&cfg.Provider, "MCQGENIE_LLM_PROVIDER")

	for _, c := range credentials {
		key, model := c.fields(&cfg)
		*key = firstEnv(c.keyVars...)
		setFromEnv(model, c.modelVar)
	}
	setFromEnv(&cfg.OpenAI.BaseURL, "MCQGENIE_OPENAI_BASE_URL")
	setFromEnv(&cfg.OpenRouter.BaseURL, "MCQGENIE_OPENROUTER_BASE_URL")
	cfg.OpenRouter.Referer = os.Getenv("MCQGENIE_OPENROUTER_REFERER")

	if n, ok := positiveEnv("MCQGENIE_LLM_TIMEOUT_SECONDS"); ok {
		cfg.Timeout = time.Duration(n) * time.Second
	}
	if n, ok := positiveEnv("MCQGENIE_LLM_RETRY_ATTEMPTS"); ok {
		cfg.Retry.MaxAttempts = n
	}
	return cfg
}

// DiscoverConfig returns a default Config for the first provider whose
// standard API key variable is set, or false when none is.
func DiscoverConfig() (Config, bool) {
	for _, c := range credentials {
		std := c.keyVars[len(c.keyVars)-1]
		if v := os.Getenv(std); v != "" {
			cfg := DefaultConfig()
			cfg.Provider = c.provider
			key, _ := c.fields(&cfg)
			*key = v
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider is known and has a key.
func (c Config) Validate() error {
	if c.Provider == ProviderMock {
		return nil
	}
	cred, ok := credentialFor(c.Provider)
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key, _ := cred.fields(&c); *key == "" {
		return fmt.Errorf("%s is required for the %s provider", cred.keyVars[0], c.Provider)
	}
	return nil
}

func setFromEnv(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

func positiveEnv(name string) (int, bool) {
	n, err := strconv.Atoi(os.Getenv(name))
	return n, err == nil && n > 0
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
