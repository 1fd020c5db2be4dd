// Package config provides configuration loading and validation for the
// wizard server and CLI.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// AI provider names accepted in configuration.
const (
	ProviderGemini  = "gemini"
	ProviderChatGPT = "chatgpt"
)

// Config holds runtime configuration, loaded from the environment. A .env
// file, if present, is loaded into the environment by the CLI before this
// runs.
type Config struct {
	// Port is the HTTP listen port.
	Port int

	// DatabaseURL is the PostgreSQL connection URL. Required for serving;
	// offline parsing commands run without it.
	DatabaseURL string

	// AIParsingEnabled switches uploaded documents through the AI parser.
	// When false, or when the provider key is missing, the deterministic
	// fallback parser is used instead.
	AIParsingEnabled bool
	AIProvider       string
	AIModel          string
	GeminiAPIKey     string
	OpenAIAPIKey     string

	// MaxUploadBytes caps uploaded resume documents.
	MaxUploadBytes int64
}

// FromEnv reads configuration from environment variables, applying defaults
// for anything unset.
func FromEnv() *Config {
	cfg := &Config{
		Port:             envInt("PORT", 8080),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		AIParsingEnabled: envBool("AI_PARSING_ENABLED", true),
		AIProvider:       envDefault("AI_PROVIDER", ProviderGemini),
		AIModel:          os.Getenv("AI_MODEL"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		MaxUploadBytes:   int64(envInt("MAX_UPLOAD_BYTES", 5*1024*1024)),
	}
	return cfg
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: invalid port %d", c.Port)
	}
	if c.AIProvider != ProviderGemini && c.AIProvider != ProviderChatGPT {
		return fmt.Errorf("config error: unknown AI provider %q", c.AIProvider)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be positive")
	}
	return nil
}

// APIKey returns the key for the configured provider, or "" when the
// provider cannot be used.
func (c *Config) APIKey() string {
	switch c.AIProvider {
	case ProviderChatGPT:
		return c.OpenAIAPIKey
	default:
		return c.GeminiAPIKey
	}
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
