package aiquizhelper

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// TranscriptLogger records every LLM prompt/response pair for one quiz
// generation run in log/<quizID>.log.
type TranscriptLogger struct {
	file   *os.File
	mu     sync.Mutex
	quizID string
}

// NewTranscriptLogger creates a transcript logger for a specific quiz.
func NewTranscriptLogger(quizID, topic string, count int, effort Effort, factChecking bool) (*TranscriptLogger, error) {
	if err := os.MkdirAll("log", 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	filename := filepath.Join("log", fmt.Sprintf("%s.log", quizID))
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	logger := &TranscriptLogger{
		file:   file,
		quizID: quizID,
	}

	logger.Logf("=== Quiz Generation Log ===\n")
	logger.Logf("Quiz ID: %s\n", quizID)
	logger.Logf("Topic: %s\n", topic)
	logger.Logf("Number of Questions: %d\n", count)
	logger.Logf("Effort: %s\n", effort)
	logger.Logf("Fact Checking: %t\n", factChecking)
	logger.Logf("Started: %s\n", time.Now().Format(time.RFC3339))
	logger.Logf("========================\n\n")

	return logger, nil
}

// Logf writes a formatted log entry with timestamp
func (tl *TranscriptLogger) Logf(format string, args ...interface{}) {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	timestamp := time.Now().Format("15:04:05.000")
	message := fmt.Sprintf(format, args...)

	fmt.Fprintf(tl.file, "[%s] %s", timestamp, message)
	tl.file.Sync()
}

// LogPrompt logs a prompt sent to the provider
func (tl *TranscriptLogger) LogPrompt(op, prompt string) {
	tl.Logf("=== LLM REQUEST (%s) ===\n", op)
	tl.Logf("Prompt:\n%s\n", prompt)
	tl.Logf("=====================\n\n")
}

// LogQuestions logs a summary of the parsed generation result
func (tl *TranscriptLogger) LogQuestions(questions []Question) {
	tl.Logf("Generated %d questions\n", len(questions))
	for i, q := range questions {
		tl.Logf("  %d. [%s] %s (answer: %s)\n", i+1, q.ID, q.Question, q.CorrectAnswer)
	}
	tl.Logf("\n")
}

// LogFactChecking logs the outcome of the grounding step
func (tl *TranscriptLogger) LogFactChecking(result FactCheckingResult) {
	if result.Successful {
		tl.Logf("Fact checking gathered %d sources: %v\n", len(result.Sources), result.Sources)
	} else {
		tl.Logf("Fact checking produced no context, generating without grounding\n")
	}
}

// Close closes the log file
func (tl *TranscriptLogger) Close() error {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	if tl.file != nil {
		fmt.Fprintf(tl.file, "[%s] === Quiz Generation Complete ===\n", time.Now().Format("15:04:05.000"))
		return tl.file.Close()
	}
	return nil
}
