package aiquizhelper

import (
	"os"
	"strconv"
)

// Config is the process-wide configuration, resolved once at startup from
// the environment.
type Config struct {
	Port   string
	DBPath string

	Provider string

	OpenAIAPIKey string
	OpenAIModel  string

	GeminiAPIKey string
	GeminiModel  string

	FactCheckingEnabled  bool
	FactCheckMaxArticles int
	FactCheckContentLen  int
}

// LoadConfig reads configuration from environment variables, applying the
// documented defaults.
func LoadConfig() Config {
	return Config{
		Port:   envOr("PORT", "3001"),
		DBPath: envOr("QUIZ_DB", "./quiz.db"),

		Provider: envOr("LLM_PROVIDER", ProviderGemini),

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  envOr("OPENAI_MODEL", "gpt-5-nano"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  envOr("GEMINI_MODEL", "gemini-2.5-flash-lite"),

		FactCheckingEnabled:  os.Getenv("WIKIPEDIA_FACT_CHECK_ENABLED") == "true",
		FactCheckMaxArticles: envIntOr("WIKIPEDIA_MAX_ARTICLES", defaultMaxArticles),
		FactCheckContentLen:  envIntOr("WIKIPEDIA_CONTENT_LIMIT", defaultContentLimit),
	}
}

// LLMConfig builds the provider configuration for the named provider, using
// the config's selection when name is empty.
func (c Config) LLMConfig(name string) LLMConfig {
	if name == "" {
		name = c.Provider
	}
	cfg := LLMConfig{Provider: name}
	switch name {
	case ProviderOpenAI:
		cfg.APIKey = c.OpenAIAPIKey
		cfg.Model = c.OpenAIModel
	case ProviderGemini:
		cfg.APIKey = c.GeminiAPIKey
		cfg.Model = c.GeminiModel
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
