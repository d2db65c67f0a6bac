// Package llm provides options pattern for generation parameters.
//
// Defaults come from the prompt template config and can be overridden
// per call (CLI flags, TUI commands).
package llm

// GenerateOptions holds parameters for a single completion call.
type GenerateOptions struct {
	// Model is the model identifier (e.g., "gpt-4o-mini", "deepseek-chat")
	Model string

	// Temperature controls randomness in responses (0.0 = deterministic)
	Temperature float64

	// MaxTokens limits the response length
	MaxTokens int
}

// GenerateOption is a functional option for configuring GenerateOptions.
type GenerateOption func(*GenerateOptions)

// WithModel sets the model for generation.
// Runtime override: takes precedence over the template default.
func WithModel(model string) GenerateOption {
	return func(o *GenerateOptions) {
		o.Model = model
	}
}

// WithTemperature sets the temperature for generation.
// Runtime override: takes precedence over the template default.
func WithTemperature(temp float64) GenerateOption {
	return func(o *GenerateOptions) {
		o.Temperature = temp
	}
}

// WithMaxTokens sets the maximum tokens for generation.
// Runtime override: takes precedence over the template default.
func WithMaxTokens(tokens int) GenerateOption {
	return func(o *GenerateOptions) {
		o.MaxTokens = tokens
	}
}

// Apply builds GenerateOptions from defaults plus overrides.
func Apply(defaults GenerateOptions, opts ...GenerateOption) GenerateOptions {
	result := defaults
	for _, opt := range opts {
		opt(&result)
	}
	return result
}
