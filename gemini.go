package aiquizhelper

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// searchQueryModel is a cheaper, faster model variant used only for
// deriving Wikipedia search terms. That subtask is latency-sensitive and
// low-value, so it never needs the primary model.
const searchQueryModel = "gemini-2.5-flash-lite"

// GeminiProvider generates content through the Google Gemini API.
type GeminiProvider struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
}

// NewGeminiProvider creates a Gemini-backed provider. Fails when the API
// key is absent.
func NewGeminiProvider(cfg LLMConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, &ConfigError{Provider: ProviderGemini, Reason: "API key is required"}
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash-lite"
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.7
	}
	maxTokens := int32(cfg.MaxTokens)
	if maxTokens == 0 {
		maxTokens = 8192
	}

	return &GeminiProvider{
		client:      client,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}, nil
}

// Name implements LLMProvider.
func (p *GeminiProvider) Name() string { return ProviderGemini }

// Model implements LLMProvider.
func (p *GeminiProvider) Model() string { return p.model }

func (p *GeminiProvider) generate(ctx context.Context, op, modelName, prompt string) (string, error) {
	model := p.client.GenerativeModel(modelName)
	model.SetTemperature(p.temperature)
	model.SetMaxOutputTokens(p.maxTokens)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &GenerationError{Provider: ProviderGemini, Op: op, Err: err}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &GenerationError{Provider: ProviderGemini, Op: op, Err: errEmptyResponse}
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	content := sb.String()
	if content == "" {
		return "", &GenerationError{Provider: ProviderGemini, Op: op, Err: errEmptyResponse}
	}

	return content, nil
}

// GenerateQuizQuestions implements LLMProvider.
func (p *GeminiProvider) GenerateQuizQuestions(ctx context.Context, topic string, count int, effort Effort, factCheckingContext string) ([]Question, error) {
	VerboseLog("Gemini: generating %d questions for topic %q", count, topic)

	prompt := BuildQuestionPrompt(topic, count, effort, factCheckingContext)
	content, err := p.generate(ctx, "question generation", p.model, prompt)
	if err != nil {
		return nil, err
	}
	return ParseQuestions(content)
}

// GenerateStudyRecommendations implements LLMProvider.
func (p *GeminiProvider) GenerateStudyRecommendations(ctx context.Context, attempt *QuizAttempt, topic string) ([]StudyRecommendation, error) {
	prompt := BuildRecommendationPrompt(attempt, topic)
	content, err := p.generate(ctx, "recommendation generation", p.model, prompt)
	if err != nil {
		return nil, err
	}
	return ParseRecommendations(content)
}

// GenerateQuestionExplanation implements LLMProvider.
func (p *GeminiProvider) GenerateQuestionExplanation(ctx context.Context, question *Question, topic string) (string, error) {
	prompt := BuildExplanationPrompt(question, topic)
	content, err := p.generate(ctx, "explanation generation", p.model, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

// GenerateSearchQueries implements LLMProvider.
func (p *GeminiProvider) GenerateSearchQueries(ctx context.Context, topic string) ([]string, error) {
	prompt := BuildSearchQueryPrompt(topic)
	content, err := p.generate(ctx, "search query generation", searchQueryModel, prompt)
	if err != nil {
		return nil, err
	}
	return ParseSearchQueries(content), nil
}

// Close releases the underlying API client.
func (p *GeminiProvider) Close() error {
	return p.client.Close()
}
