package llm

import (
	"os"
	"strconv"
)

// Config holds all configuration for the completion client.
type Config struct {
	APIKey    string
	Endpoint  string
	Model     string
	TimeoutMs int
	LogCalls  bool
}

const defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models"

// DefaultConfig returns a Config with sensible defaults. The API key has no
// default; without it every call fails fast with ErrAPIKeyMissing.
func DefaultConfig() Config {
	return Config{
		Endpoint:  defaultEndpoint,
		Model:     "gemini-3-flash-preview",
		TimeoutMs: 30000,
	}
}

// LoadConfig reads completion-client configuration from environment
// variables, falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("AVATARA_GEMINI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("AVATARA_GEMINI_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("AVATARA_GEMINI_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("AVATARA_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("AVATARA_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}

	return cfg
}

// Configured reports whether an API key is present.
func (c Config) Configured() bool {
	return c.APIKey != ""
}
