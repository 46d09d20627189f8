package llm

import (
	"os"
	"strconv"
	"strings"
)

// LLMConfig holds all configuration for the chat-completions client.
type LLMConfig struct {
	Enabled     bool
	LogCalls    bool
	Endpoint    string
	APIKey      string
	Model       string
	TimeoutMs   int
	MaxRetries  int
	Temperature float64 // 0 leaves the provider default
	MaxTokens   int     // 0 leaves the provider default
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// LLM is disabled by default.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    false,
		LogCalls:   false,
		Endpoint:   "https://api.deepseek.com",
		Model:      "deepseek-chat",
		TimeoutMs:  60000,
		MaxRetries: 1,
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("LEARNHUB_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("LEARNHUB_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("LEARNHUB_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("LEARNHUB_LLM_API_KEY"); v != "" {
		cfg.APIKey = strings.TrimSpace(v)
	}
	if v := os.Getenv("LEARNHUB_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("LEARNHUB_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("LEARNHUB_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("LEARNHUB_LLM_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 2 {
			cfg.Temperature = f
		}
	}
	if v := os.Getenv("LEARNHUB_LLM_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxTokens = n
		}
	}

	return cfg
}
