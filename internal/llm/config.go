// Package llm provides the external generation boundary: an abstraction over
// LLM providers that turns a job posting and a candidate profile into a
// tailored resume and cover letter.
package llm

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Config holds the model configuration for the generation boundary.
type Config struct {
	Provider    Provider
	Model       string
	Temperature float32
}

// DefaultConfig returns the default configuration (currently Gemini).
func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderGemini,
		Model:       "gemini-2.5-pro",
		Temperature: 0.5,
	}
}

// WithModel returns a copy of the config with a different model; an empty
// model name keeps the current one.
func (c *Config) WithModel(model string) *Config {
	out := *c
	if model != "" {
		out.Model = model
	}
	return &out
}
