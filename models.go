package aiquizhelper

import (
	"math/rand"
	"time"
)

// Effort selects how much work the model should put into a generation.
type Effort string

const (
	EffortSpeed    Effort = "speed"
	EffortBalanced Effort = "balanced"
	EffortQuality  Effort = "quality"
)

// QuestionOption is one of the four answer choices for a question.
type QuestionOption struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Value string `json:"value"`
}

// Question represents a single multiple choice question. Exactly one
// option's value equals CorrectAnswer, and the option values are a-d.
type Question struct {
	ID            string           `json:"id"`
	Question      string           `json:"question"`
	Options       []QuestionOption `json:"options"`
	CorrectAnswer string           `json:"correctAnswer"`
}

// Quiz represents a generated quiz with metadata
type Quiz struct {
	ID                  string     `json:"id"`
	Topic               string     `json:"topic"`
	Questions           []Question `json:"questions"`
	CreatedAt           time.Time  `json:"createdAt"`
	UserID              string     `json:"userId,omitempty"`
	FactChecked         bool       `json:"factChecked"`
	FactCheckingSources []string   `json:"factCheckingSources,omitempty"`
}

// UserAnswer is one graded answer inside an attempt.
type UserAnswer struct {
	QuestionID     string `json:"questionId"`
	SelectedAnswer string `json:"selectedAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
}

// QuizAttempt is a scored record of a user's answers to a quiz.
type QuizAttempt struct {
	ID          string       `json:"id"`
	QuizID      string       `json:"quizId"`
	Answers     []UserAnswer `json:"answers"`
	Score       int          `json:"score"` // percentage, 0-100
	CompletedAt time.Time    `json:"completedAt"`
	TimeTaken   int64        `json:"timeTaken"` // milliseconds
}

// Priority levels for study recommendations.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// StudyRecommendation is an AI-written study suggestion for a quiz attempt.
type StudyRecommendation struct {
	Topic     string   `json:"topic"`
	Reason    string   `json:"reason"` // markdown
	Resources []string `json:"resources"`
	Priority  string   `json:"priority"`
}

// FactCheckingResult is the synthesized grounding context for a topic.
// Transient: consumed by the question prompt and discarded.
type FactCheckingResult struct {
	Context    string   `json:"context"`
	Sources    []string `json:"sources"`
	Successful bool     `json:"successful"`
}

// TopicProgress aggregates a user's attempts on quizzes for one topic.
type TopicProgress struct {
	Topic        string    `json:"topic"`
	Attempts     int       `json:"attempts"`
	BestScore    int       `json:"bestScore"`
	AverageScore float64   `json:"averageScore"`
	LastAttempt  time.Time `json:"lastAttempt"`
}

// QuizSummary is the lightweight history view of a quiz.
type QuizSummary struct {
	ID                  string    `json:"id"`
	Topic               string    `json:"topic"`
	CreatedAt           time.Time `json:"createdAt"`
	QuestionCount       int       `json:"questionCount"`
	FactChecked         bool      `json:"factChecked"`
	FactCheckingSources []string  `json:"factCheckingSources,omitempty"`
}

// HistoryItem pairs a quiz summary with its most recent attempt, if any.
type HistoryItem struct {
	Quiz          QuizSummary  `json:"quiz"`
	LatestAttempt *QuizAttempt `json:"latestAttempt,omitempty"`
}

const idCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomID(prefix string, length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = idCharset[rand.Intn(len(idCharset))]
	}
	return prefix + string(b)
}

// GenerateQuizID returns a fresh quiz identifier.
func GenerateQuizID() string {
	return randomID("quiz_", 12)
}

// GenerateQuestionID returns a fresh question identifier. Model-supplied
// question ids are never trusted; the parser always assigns these.
func GenerateQuestionID() string {
	return randomID("q_", 8)
}

// GenerateAttemptID returns a fresh attempt identifier.
func GenerateAttemptID() string {
	return randomID("attempt_", 12)
}
