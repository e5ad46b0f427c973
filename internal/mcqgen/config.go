package mcqgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every question; the first failure aborts
	// the whole generation.
	Validators []Validator

	// MaxTokens is the token budget for the whole question array.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&DistinctOptionsValidator{},
		},
		MaxTokens:   4000,
		Temperature: 0.8,
	}
}
