package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain JSON untouched", `{"a": 1}`, `{"a": 1}`},
		{"json fence stripped", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence stripped", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fence with language id", "```javascript\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  \n{\"a\": 1}\n  ", `{"a": 1}`},
		{"fence containing backticks in body", "```json\n{\"code\": \"```\"}\n```", "{\"code\": \"```\"}"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestNewClientUnknownProvider(t *testing.T) {
	_, err := NewClient(t.Context(), Provider("copilot"), "key", "")
	assert.Error(t, err)
}

func TestNewGeminiClientRequiresKey(t *testing.T) {
	_, err := NewGeminiClient(t.Context(), "", DefaultGeminiModel)
	assert.Error(t, err)
}

func TestNewOpenAIClientRequiresKey(t *testing.T) {
	_, err := NewOpenAIClient("", DefaultChatGPTModel)
	assert.Error(t, err)
}
