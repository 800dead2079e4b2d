package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrei/cv-tailor/internal/types"
)

func TestParseOutput(t *testing.T) {
	out, err := ParseOutput(`{"resume": "# Резюме", "coverLetter": "Здравствуйте!"}`)
	require.NoError(t, err)
	assert.Equal(t, "# Резюме", out.Resume)
	assert.Equal(t, "Здравствуйте!", out.CoverLetter)
}

func TestParseOutput_Failures(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"malformed JSON", `resume: text`},
		{"missing resume", `{"coverLetter": "text"}`},
		{"missing cover letter", `{"resume": "text"}`},
		{"resume not a string", `{"resume": 42, "coverLetter": "text"}`},
		{"empty payload", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOutput(tt.payload)
			require.Error(t, err)

			var boundaryErr *BoundaryError
			assert.ErrorAs(t, err, &boundaryErr)
		})
	}
}

func TestParseOutput_FencedPayload(t *testing.T) {
	payload := "```json\n{\"resume\": \"ok\", \"coverLetter\": \"ok\"}\n```"

	out, err := ParseOutput(stripCodeFence(payload))
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Resume)
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"json fence", "```json\n{\"resume\": \"# Резюме\"}\n```", `{"resume": "# Резюме"}`},
		{"bare fence", "```\n{\"resume\": \"text\"}\n```", `{"resume": "text"}`},
		{"other language tag", "```javascript\n{\"resume\": \"text\"}\n```", `{"resume": "text"}`},
		{"no fence", `{"resume": "text"}`, `{"resume": "text"}`},
		{"surrounding whitespace", "  \n{\"resume\": \"text\"}\n  ", `{"resume": "text"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripCodeFence(tt.input))
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("Ищем Go-разработчика", `{"summary": "опыт 5 лет"}`, types.LengthShort)

	assert.Contains(t, prompt, "Ищем Go-разработчика")
	assert.Contains(t, prompt, `{"summary": "опыт 5 лет"}`)
	assert.Contains(t, prompt, "2-3", "short length maps to 2-3 paragraphs")
	assert.NotContains(t, prompt, "{{.", "all placeholders should be substituted")
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), DefaultConfig(), "")
	assert.Error(t, err)
}
