package aiquizhelper

import (
	"context"
	"fmt"
)

// Provider selection values for LLMConfig.Provider.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderMock   = "mock"
)

// LLMConfig configures a single provider instance.
type LLMConfig struct {
	Provider    string
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
}

// LLMProvider is the vendor-neutral text generation capability set. All
// implementations return plain domain objects; vendor SDK errors never
// cross this boundary.
type LLMProvider interface {
	// Name reports which provider variant this is (gemini, openai, mock).
	Name() string

	// Model reports the primary configured model id.
	Model() string

	// GenerateQuizQuestions produces count multiple choice questions for
	// the topic. factCheckingContext, when non-empty, grounds the prompt.
	GenerateQuizQuestions(ctx context.Context, topic string, count int, effort Effort, factCheckingContext string) ([]Question, error)

	// GenerateStudyRecommendations produces 3-5 study suggestions from a
	// graded attempt.
	GenerateStudyRecommendations(ctx context.Context, attempt *QuizAttempt, topic string) ([]StudyRecommendation, error)

	// GenerateQuestionExplanation produces a markdown explanation of a
	// single question.
	GenerateQuestionExplanation(ctx context.Context, question *Question, topic string) (string, error)

	// GenerateSearchQueries derives 1-3 encyclopedia search terms from a
	// topic.
	GenerateSearchQueries(ctx context.Context, topic string) ([]string, error)
}

// NewProvider constructs the provider selected by cfg.Provider. Non-mock
// providers fail here, not at first call, when their API key is missing.
func NewProvider(cfg LLMConfig) (LLMProvider, error) {
	switch cfg.Provider {
	case ProviderGemini:
		return NewGeminiProvider(cfg)
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg)
	case ProviderMock:
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
}
