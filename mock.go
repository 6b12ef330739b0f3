package aiquizhelper

import (
	"context"
	"fmt"
	"strings"
)

// MockProvider is a deterministic, offline provider for development and
// tests. It performs no I/O and never fails.
type MockProvider struct{}

// NewMockProvider creates a mock provider. No credentials are required.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// Name implements LLMProvider.
func (p *MockProvider) Name() string { return ProviderMock }

// Model implements LLMProvider.
func (p *MockProvider) Model() string { return "mock" }

// GenerateQuizQuestions implements LLMProvider. Every question has "a" as
// the correct answer.
func (p *MockProvider) GenerateQuizQuestions(ctx context.Context, topic string, count int, effort Effort, factCheckingContext string) ([]Question, error) {
	questions := make([]Question, 0, count)
	for i := 1; i <= count; i++ {
		questions = append(questions, Question{
			ID:       GenerateQuestionID(),
			Question: fmt.Sprintf("Mock question %d about %s?", i, topic),
			Options: []QuestionOption{
				{ID: "a", Text: "First option", Value: "a"},
				{ID: "b", Text: "Second option", Value: "b"},
				{ID: "c", Text: "Third option", Value: "c"},
				{ID: "d", Text: "Fourth option", Value: "d"},
			},
			CorrectAnswer: "a",
		})
	}
	return questions, nil
}

// GenerateStudyRecommendations implements LLMProvider. The canned output
// varies only with the 70/85 score thresholds.
func (p *MockProvider) GenerateStudyRecommendations(ctx context.Context, attempt *QuizAttempt, topic string) ([]StudyRecommendation, error) {
	switch {
	case attempt.Score < 70:
		return []StudyRecommendation{
			{
				Topic:     fmt.Sprintf("%s fundamentals", topic),
				Reason:    fmt.Sprintf("A score of **%d%%** suggests gaps in the core concepts of %s.", attempt.Score, topic),
				Resources: []string{"Review introductory material", "Work through practice problems", "Retake the quiz after studying"},
				Priority:  PriorityHigh,
			},
			{
				Topic:     fmt.Sprintf("Common misconceptions in %s", topic),
				Reason:    "Several incorrect answers point to **recurring misunderstandings** worth addressing directly.",
				Resources: []string{"Compare your answers against the explanations", "Summarize each topic in your own words"},
				Priority:  PriorityMedium,
			},
		}, nil
	case attempt.Score < 85:
		return []StudyRecommendation{
			{
				Topic:     fmt.Sprintf("Intermediate %s", topic),
				Reason:    fmt.Sprintf("A score of **%d%%** shows solid basics with room to deepen understanding.", attempt.Score),
				Resources: []string{"Study the questions you missed", "Explore related subtopics"},
				Priority:  PriorityMedium,
			},
		}, nil
	default:
		return []StudyRecommendation{
			{
				Topic:     fmt.Sprintf("Advanced %s", topic),
				Reason:    fmt.Sprintf("An excellent score of **%d%%** means you are ready for more challenging material.", attempt.Score),
				Resources: []string{"Explore advanced topics", "Try a harder quiz"},
				Priority:  PriorityLow,
			},
		}, nil
	}
}

// GenerateQuestionExplanation implements LLMProvider.
func (p *MockProvider) GenerateQuestionExplanation(ctx context.Context, question *Question, topic string) (string, error) {
	answer := strings.ToUpper(question.CorrectAnswer)
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Correct Answer: %s\n\n", answer))
	sb.WriteString(fmt.Sprintf("This is a mock explanation for a question about %s.\n\n", topic))
	sb.WriteString("## Why Other Options Are Incorrect:\n\n")
	for _, opt := range question.Options {
		if opt.Value == question.CorrectAnswer {
			continue
		}
		sb.WriteString(fmt.Sprintf("- **Option %s**: Mock reasoning.\n", strings.ToUpper(opt.Value)))
	}
	sb.WriteString("\n## Key Concepts:\n\n- Mock concept\n")
	return sb.String(), nil
}

// GenerateSearchQueries implements LLMProvider. Returns the topic itself as
// the sole search term.
func (p *MockProvider) GenerateSearchQueries(ctx context.Context, topic string) ([]string, error) {
	return []string{topic}, nil
}
