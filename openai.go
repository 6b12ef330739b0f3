package aiquizhelper

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider generates content through the OpenAI chat completion API.
// The configured model family ignores the temperature knob, so effort is
// mapped to a reasoning-effort hint instead.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	tokens int
}

// NewOpenAIProvider creates an OpenAI-backed provider. Fails when the API
// key is absent.
func NewOpenAIProvider(cfg LLMConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, &ConfigError{Provider: ProviderOpenAI, Reason: "API key is required"}
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-5-nano"
	}
	tokens := cfg.MaxTokens
	if tokens == 0 {
		// Reasoning tokens count against the completion budget, so this
		// needs headroom beyond the visible output.
		tokens = 8000
	}

	return &OpenAIProvider{
		client: openai.NewClient(cfg.APIKey),
		model:  model,
		tokens: tokens,
	}, nil
}

// Name implements LLMProvider.
func (p *OpenAIProvider) Name() string { return ProviderOpenAI }

// Model implements LLMProvider.
func (p *OpenAIProvider) Model() string { return p.model }

func reasoningEffort(effort Effort) string {
	switch effort {
	case EffortSpeed:
		return "low"
	case EffortQuality:
		return "high"
	default:
		return "medium"
	}
}

func (p *OpenAIProvider) complete(ctx context.Context, op, prompt string, effort Effort) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxCompletionTokens: p.tokens,
		ReasoningEffort:     reasoningEffort(effort),
	})
	if err != nil {
		return "", &GenerationError{Provider: ProviderOpenAI, Op: op, Err: err}
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &GenerationError{Provider: ProviderOpenAI, Op: op, Err: errEmptyResponse}
	}

	return resp.Choices[0].Message.Content, nil
}

// GenerateQuizQuestions implements LLMProvider.
func (p *OpenAIProvider) GenerateQuizQuestions(ctx context.Context, topic string, count int, effort Effort, factCheckingContext string) ([]Question, error) {
	VerboseLog("OpenAI: generating %d questions for topic %q", count, topic)

	prompt := BuildQuestionPrompt(topic, count, effort, factCheckingContext)
	content, err := p.complete(ctx, "question generation", prompt, effort)
	if err != nil {
		return nil, err
	}
	return ParseQuestions(content)
}

// GenerateStudyRecommendations implements LLMProvider.
func (p *OpenAIProvider) GenerateStudyRecommendations(ctx context.Context, attempt *QuizAttempt, topic string) ([]StudyRecommendation, error) {
	prompt := BuildRecommendationPrompt(attempt, topic)
	content, err := p.complete(ctx, "recommendation generation", prompt, EffortBalanced)
	if err != nil {
		return nil, err
	}
	return ParseRecommendations(content)
}

// GenerateQuestionExplanation implements LLMProvider.
func (p *OpenAIProvider) GenerateQuestionExplanation(ctx context.Context, question *Question, topic string) (string, error) {
	prompt := BuildExplanationPrompt(question, topic)
	content, err := p.complete(ctx, "explanation generation", prompt, EffortBalanced)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

// GenerateSearchQueries implements LLMProvider.
func (p *OpenAIProvider) GenerateSearchQueries(ctx context.Context, topic string) ([]string, error) {
	prompt := BuildSearchQueryPrompt(topic)
	content, err := p.complete(ctx, "search query generation", prompt, EffortSpeed)
	if err != nil {
		return nil, err
	}
	return ParseSearchQueries(content), nil
}
