package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "plain JSON",
			input:    `  {"key": "value"}  `,
			expected: `{"key": "value"}`,
		},
		{
			name:     "preamble before object",
			input:    "Here is the tailored content:\n{\"workExperience\": []}",
			expected: `{"workExperience": []}`,
		},
		{
			name:     "preamble and trailing note",
			input:    "Sure! [\"Did X\"] Let me know if you need more.",
			expected: `["Did X"]`,
		},
		{
			name:     "no JSON at all",
			input:    "no json here",
			expected: "no json here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestBuildTailorPrompt(t *testing.T) {
	resume := json.RawMessage(`{"workExperiences":[{"company":"Acme"}]}`)
	prompt := BuildTailorPrompt(resume, "  Senior Go engineer  ")

	assert.Contains(t, prompt, `"workExperience": [{"company": "string", "bulletPoints": ["string"]}] (required)`)
	assert.Contains(t, prompt, "\"\"\"\nSenior Go engineer\n\"\"\"")
	assert.Contains(t, prompt, `{"workExperiences":[{"company":"Acme"}]}`)
}
