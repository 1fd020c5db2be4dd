// Package llm provides provider-agnostic access to the AI backends used for
// resume parsing. Credentials are passed explicitly into constructors so
// client behavior is deterministic and testable without process-level
// environment mutation.
package llm

import (
	"context"
	"fmt"
)

// Provider identifies an AI backend.
type Provider string

const (
	// ProviderChatGPT is the OpenAI backend.
	ProviderChatGPT Provider = "chatgpt"
	// ProviderGemini is the Google Gemini backend.
	ProviderGemini Provider = "gemini"
)

// Default models per provider. Chosen for cheap, consistent structured
// extraction rather than long-form reasoning.
const (
	DefaultGeminiModel  = "gemini-2.5-flash"
	DefaultChatGPTModel = "gpt-4o-mini"
)

// Client is an abstraction over AI providers. Implementations request
// structured/JSON-mode output where the backend supports it.
type Client interface {
	// GenerateJSON sends one prompt and returns the response body with any
	// markdown code fences stripped. The result is not guaranteed to be
	// valid JSON; callers must validate.
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// NewClient creates a client for the given provider. An empty model selects
// the provider default. An unknown provider is an error here; deciding
// whether to fall back to non-AI parsing is the caller's concern.
func NewClient(ctx context.Context, provider Provider, apiKey, model string) (Client, error) {
	switch provider {
	case ProviderGemini:
		if model == "" {
			model = DefaultGeminiModel
		}
		return NewGeminiClient(ctx, apiKey, model)
	case ProviderChatGPT:
		if model == "" {
			model = DefaultChatGPTModel
		}
		return NewOpenAIClient(apiKey, model)
	default:
		return nil, fmt.Errorf("unknown AI provider: %q", provider)
	}
}
