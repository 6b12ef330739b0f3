package aiquizhelper_test

import (
	"context"
	"errors"
	"testing"

	"aiquizhelper"
)

func TestNewProvider(t *testing.T) {
	t.Run("MockNeedsNoCredentials", func(t *testing.T) {
		provider, err := aiquizhelper.NewProvider(aiquizhelper.LLMConfig{Provider: aiquizhelper.ProviderMock})
		if err != nil {
			t.Fatalf("NewProvider: %v", err)
		}
		if provider.Name() != aiquizhelper.ProviderMock {
			t.Errorf("Name() = %q, want %q", provider.Name(), aiquizhelper.ProviderMock)
		}
	})

	t.Run("OpenAIMissingKey", func(t *testing.T) {
		_, err := aiquizhelper.NewProvider(aiquizhelper.LLMConfig{Provider: aiquizhelper.ProviderOpenAI})
		var cfgErr *aiquizhelper.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected ConfigError, got %v", err)
		}
		if cfgErr.Provider != aiquizhelper.ProviderOpenAI {
			t.Errorf("ConfigError.Provider = %q", cfgErr.Provider)
		}
	})

	t.Run("GeminiMissingKey", func(t *testing.T) {
		_, err := aiquizhelper.NewProvider(aiquizhelper.LLMConfig{Provider: aiquizhelper.ProviderGemini})
		var cfgErr *aiquizhelper.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected ConfigError, got %v", err)
		}
	})

	t.Run("UnknownProvider", func(t *testing.T) {
		_, err := aiquizhelper.NewProvider(aiquizhelper.LLMConfig{Provider: "palm"})
		if err == nil {
			t.Fatal("expected error for unknown provider")
		}
	})
}

func TestMockProviderQuestions(t *testing.T) {
	provider := aiquizhelper.NewMockProvider()

	questions, err := provider.GenerateQuizQuestions(context.Background(), "Go", 5, aiquizhelper.EffortBalanced, "")
	if err != nil {
		t.Fatalf("GenerateQuizQuestions: %v", err)
	}
	if len(questions) != 5 {
		t.Fatalf("got %d questions, want 5", len(questions))
	}

	seen := map[string]bool{}
	for i, q := range questions {
		if q.ID == "" {
			t.Errorf("question %d has empty ID", i)
		}
		if seen[q.ID] {
			t.Errorf("duplicate question ID %q", q.ID)
		}
		seen[q.ID] = true

		if len(q.Options) != 4 {
			t.Errorf("question %d has %d options", i, len(q.Options))
		}
		if q.CorrectAnswer != "a" {
			t.Errorf("question %d correct answer = %q, want a", i, q.CorrectAnswer)
		}
	}
}

func TestMockProviderRecommendations(t *testing.T) {
	provider := aiquizhelper.NewMockProvider()
	ctx := context.Background()

	cases := []struct {
		score        int
		count        int
		wantPriority string
	}{
		{score: 40, count: 2, wantPriority: aiquizhelper.PriorityHigh},
		{score: 75, count: 1, wantPriority: aiquizhelper.PriorityMedium},
		{score: 100, count: 1, wantPriority: aiquizhelper.PriorityLow},
	}
	for _, tc := range cases {
		attempt := &aiquizhelper.QuizAttempt{Score: tc.score}
		recs, err := provider.GenerateStudyRecommendations(ctx, attempt, "Go")
		if err != nil {
			t.Fatalf("score %d: %v", tc.score, err)
		}
		if len(recs) != tc.count {
			t.Errorf("score %d: got %d recommendations, want %d", tc.score, len(recs), tc.count)
		}
		if recs[0].Priority != tc.wantPriority {
			t.Errorf("score %d: first priority = %q, want %q", tc.score, recs[0].Priority, tc.wantPriority)
		}
	}
}
