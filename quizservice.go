package aiquizhelper

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"
	"time"
)

// DefaultQuestionCount is how many questions a quiz gets unless the caller
// asks otherwise.
const DefaultQuestionCount = 5

// GenerateQuizRequest carries the inputs for one quiz generation.
type GenerateQuizRequest struct {
	Topic              string `json:"topic"`
	Count              int    `json:"count,omitempty"`
	Effort             Effort `json:"effort,omitempty"`
	EnableFactChecking bool   `json:"enableFactChecking,omitempty"`
	UserID             string `json:"-"`
}

// AnswerSubmission is one answer in a quiz submission.
type AnswerSubmission struct {
	QuestionID     string `json:"questionId"`
	SelectedAnswer string `json:"selectedAnswer"`
}

// QuizService orchestrates providers, fact checking, and persistence.
type QuizService struct {
	db   *DB
	wiki ArticleSource
	cfg  Config

	// The active provider can be swapped at runtime; requests capture a
	// snapshot at start and are never affected mid-flight.
	mu       sync.RWMutex
	provider LLMProvider
}

// NewQuizService creates the orchestration service with the provider
// selected by cfg. Provider construction fails fast on missing credentials.
func NewQuizService(cfg Config, db *DB) (*QuizService, error) {
	provider, err := NewProvider(cfg.LLMConfig(""))
	if err != nil {
		return nil, err
	}

	return &QuizService{
		db:       db,
		wiki:     NewWikipediaClient(),
		cfg:      cfg,
		provider: provider,
	}, nil
}

// Provider returns the current provider snapshot.
func (s *QuizService) Provider() LLMProvider {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.provider
}

// SetProvider switches the active provider at runtime. The change is not
// persisted and does not affect requests already in flight.
func (s *QuizService) SetProvider(name string) error {
	provider, err := NewProvider(s.cfg.LLMConfig(name))
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.provider = provider
	s.mu.Unlock()

	log.Printf("Switched LLM provider to %s (%s)", provider.Name(), provider.Model())
	return nil
}

// GenerateQuiz generates and persists a quiz for the requested topic.
func (s *QuizService) GenerateQuiz(ctx context.Context, req GenerateQuizRequest) (*Quiz, error) {
	if req.Topic == "" {
		return nil, fmt.Errorf("topic is required")
	}
	count := req.Count
	if count <= 0 {
		count = DefaultQuestionCount
	}

	provider := s.Provider()
	quizID := GenerateQuizID()
	factChecking := s.cfg.FactCheckingEnabled || req.EnableFactChecking

	transcript, err := NewTranscriptLogger(quizID, req.Topic, count, req.Effort, factChecking)
	if err != nil {
		// Generation is more important than its transcript.
		log.Printf("Failed to create transcript for quiz %s: %v", quizID, err)
		transcript = nil
	} else {
		defer transcript.Close()
	}

	var factResult FactCheckingResult
	if factChecking {
		checker := NewFactChecker(provider, s.wiki, s.cfg.FactCheckMaxArticles, s.cfg.FactCheckContentLen)
		factResult = checker.Check(ctx, req.Topic)
		if transcript != nil {
			transcript.LogFactChecking(factResult)
		}
	}

	if transcript != nil {
		transcript.LogPrompt("question generation", BuildQuestionPrompt(req.Topic, count, req.Effort, factResult.Context))
	}

	questions, err := provider.GenerateQuizQuestions(ctx, req.Topic, count, req.Effort, factResult.Context)
	if err != nil {
		return nil, err
	}
	if transcript != nil {
		transcript.LogQuestions(questions)
	}

	quiz := &Quiz{
		ID:                  quizID,
		Topic:               req.Topic,
		Questions:           questions,
		CreatedAt:           time.Now(),
		UserID:              req.UserID,
		FactChecked:         factResult.Successful,
		FactCheckingSources: factResult.Sources,
	}

	if err := s.db.SaveQuiz(quiz); err != nil {
		return nil, err
	}

	log.Printf("Generated quiz %s: %d questions for topic %q (fact checked: %t)",
		quiz.ID, len(quiz.Questions), quiz.Topic, quiz.FactChecked)
	return quiz, nil
}

// GetQuiz retrieves a stored quiz.
func (s *QuizService) GetQuiz(quizID string) (*Quiz, error) {
	return s.db.GetQuiz(quizID)
}

// SubmitAttempt grades a set of answers against a stored quiz, persists the
// attempt, and returns it.
func (s *QuizService) SubmitAttempt(quizID string, answers []AnswerSubmission, timeTakenMs int64) (*QuizAttempt, error) {
	quiz, err := s.db.GetQuiz(quizID)
	if err != nil {
		return nil, err
	}

	correctByID := make(map[string]string, len(quiz.Questions))
	for _, q := range quiz.Questions {
		correctByID[q.ID] = q.CorrectAnswer
	}

	graded := make([]UserAnswer, 0, len(answers))
	correct := 0
	for _, a := range answers {
		expected, ok := correctByID[a.QuestionID]
		isCorrect := ok && expected == a.SelectedAnswer
		if isCorrect {
			correct++
		}
		graded = append(graded, UserAnswer{
			QuestionID:     a.QuestionID,
			SelectedAnswer: a.SelectedAnswer,
			IsCorrect:      isCorrect,
		})
	}

	score := 0
	if len(graded) > 0 {
		score = int(math.Round(float64(correct) / float64(len(graded)) * 100))
	}

	attempt := &QuizAttempt{
		ID:          GenerateAttemptID(),
		QuizID:      quizID,
		Answers:     graded,
		Score:       score,
		CompletedAt: time.Now(),
		TimeTaken:   timeTakenMs,
	}

	if err := s.db.SaveAttempt(attempt); err != nil {
		return nil, err
	}

	log.Printf("Attempt %s on quiz %s: %d/%d correct (%d%%)",
		attempt.ID, quizID, correct, len(graded), score)
	return attempt, nil
}

// GetAttempt retrieves a stored attempt.
func (s *QuizService) GetAttempt(attemptID string) (*QuizAttempt, error) {
	return s.db.GetAttempt(attemptID)
}

// GenerateRecommendations produces study recommendations for a stored
// attempt. Recommendations are regenerated on demand, never persisted.
func (s *QuizService) GenerateRecommendations(ctx context.Context, attemptID string) ([]StudyRecommendation, error) {
	attempt, err := s.db.GetAttempt(attemptID)
	if err != nil {
		return nil, err
	}
	quiz, err := s.db.GetQuiz(attempt.QuizID)
	if err != nil {
		return nil, err
	}

	return s.Provider().GenerateStudyRecommendations(ctx, attempt, quiz.Topic)
}

// ExplainQuestion produces a markdown explanation for one question of a
// stored quiz.
func (s *QuizService) ExplainQuestion(ctx context.Context, quizID, questionID string) (string, error) {
	quiz, err := s.db.GetQuiz(quizID)
	if err != nil {
		return "", err
	}

	for i := range quiz.Questions {
		if quiz.Questions[i].ID == questionID {
			return s.Provider().GenerateQuestionExplanation(ctx, &quiz.Questions[i], quiz.Topic)
		}
	}
	return "", fmt.Errorf("question %s not found in quiz %s", questionID, quizID)
}

// Progress returns the per-topic attempt aggregates for a user.
func (s *QuizService) Progress(userID string) ([]TopicProgress, error) {
	return s.db.GetProgress(userID)
}

// History returns the user's quizzes with their latest attempts.
func (s *QuizService) History(userID string, limit int) ([]HistoryItem, error) {
	return s.db.History(userID, limit)
}
