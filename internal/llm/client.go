package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/andrei/cv-tailor/internal/prompts"
	"github.com/andrei/cv-tailor/internal/types"
)

// Client is an abstraction over LLM providers.
type Client interface {
	// TailorDocuments generates a tailored resume and cover letter from a job
	// posting and a JSON-serialized candidate profile. Both returned documents
	// are Markdown.
	TailorDocuments(ctx context.Context, vacancyText, profileJSON string, length types.CoverLetterLength) (types.GenerationOutput, error)
	// Close releases any resources held by the client
	Close() error
}

// BoundaryError is the single generic failure surfaced to the orchestrator.
// Transport errors, malformed payloads and missing fields all collapse into
// one descriptive message.
type BoundaryError struct {
	Message string
	Cause   error
}

func (e *BoundaryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *BoundaryError) Unwrap() error {
	return e.Cause
}

// NewClient creates a new LLM client based on configuration.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return NewGeminiClient(ctx, config, apiKey)
	}
}

// GeminiClient implements Client for Google Gemini.
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// TailorDocuments generates the resume and cover letter as a single JSON
// response constrained by a response schema.
func (c *GeminiClient) TailorDocuments(ctx context.Context, vacancyText, profileJSON string, length types.CoverLetterLength) (types.GenerationOutput, error) {
	prompt := BuildPrompt(vacancyText, profileJSON, length)

	model := c.client.GenerativeModel(c.config.Model)
	model.SetTemperature(c.config.Temperature)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = generationSchema()

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return types.GenerationOutput{}, &BoundaryError{Message: "generation request failed", Cause: err}
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return types.GenerationOutput{}, &BoundaryError{Message: "empty generation response", Cause: err}
	}

	return ParseOutput(stripCodeFence(text))
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// BuildPrompt renders the tailoring prompt for a vacancy, profile and cover
// letter length.
func BuildPrompt(vacancyText, profileJSON string, length types.CoverLetterLength) string {
	template := prompts.MustGet("generation.json", "tailor_documents")
	return prompts.Format(template, map[string]string{
		"Vacancy":    vacancyText,
		"Profile":    profileJSON,
		"Paragraphs": length.Paragraphs(),
	})
}

// stripCodeFence unwraps a Markdown code fence around the JSON payload. The
// response schema asks for bare JSON, yet models still sometimes fence the
// answer as ```json ... ```; a fenced payload must parse the same as a bare one.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	text = strings.TrimPrefix(text, "json")
	// The opening fence may carry some other language tag on the same line;
	// a line containing spaces or a brace is already payload.
	if idx := strings.Index(text, "\n"); idx >= 0 {
		tag := text[:idx]
		if len(tag) < 20 && !strings.ContainsAny(tag, " {") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// ParseOutput decodes the boundary's JSON payload, rejecting payloads that
// are not JSON or miss a required document.
func ParseOutput(payload string) (types.GenerationOutput, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return types.GenerationOutput{}, &BoundaryError{Message: "malformed JSON in generation response", Cause: err}
	}

	var out types.GenerationOutput
	for _, field := range []struct {
		key  string
		dest *string
	}{
		{"resume", &out.Resume},
		{"coverLetter", &out.CoverLetter},
	} {
		value, exists := raw[field.key]
		if !exists {
			return types.GenerationOutput{}, &BoundaryError{Message: fmt.Sprintf("generation response is missing %q", field.key)}
		}
		if err := json.Unmarshal(value, field.dest); err != nil {
			return types.GenerationOutput{}, &BoundaryError{Message: fmt.Sprintf("generation response field %q is not a string", field.key), Cause: err}
		}
	}
	return out, nil
}

// generationSchema constrains the model to the two-document JSON shape.
func generationSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"resume": {
				Type:        genai.TypeString,
				Description: prompts.MustGet("generation.json", "resume_field_description"),
			},
			"coverLetter": {
				Type:        genai.TypeString,
				Description: prompts.MustGet("generation.json", "cover_letter_field_description"),
			},
		},
		Required: []string{"resume", "coverLetter"},
	}
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
