package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"aiquizhelper"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const sessionName = "quiz-session"

type Server struct {
	svc   *aiquizhelper.QuizService
	store *sessions.CookieStore
}

// apiResponse is the envelope every endpoint returns.
type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func main() {
	cfg := aiquizhelper.LoadConfig()
	aiquizhelper.SetVerbose(true)

	db, err := aiquizhelper.OpenDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.CreateTables(); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	svc, err := aiquizhelper.NewQuizService(cfg, db)
	if err != nil {
		log.Fatalf("Failed to initialize quiz service: %v", err)
	}

	server := &Server{
		svc:   svc,
		store: sessions.NewCookieStore([]byte(sessionSecret())),
	}

	http.HandleFunc("/health", server.handleHealth)
	http.HandleFunc("/api/quiz/", server.handleQuiz)
	http.HandleFunc("/api/user/", server.handleUser)

	log.Printf("Backend server running on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, nil))
}

func sessionSecret() string {
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		return v
	}
	return "quiz-session-secret"
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleQuiz dispatches everything under /api/quiz/.
func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/quiz/")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	if len(parts) == 0 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}

	switch {
	case parts[0] == "generate" && len(parts) == 1:
		s.handleGenerate(w, r)
	case parts[0] == "submit" && len(parts) == 1:
		s.handleSubmit(w, r)
	case parts[0] == "config" && len(parts) == 1:
		s.handleConfig(w, r)
	case parts[0] == "attempt" && len(parts) == 2:
		s.handleGetAttempt(w, r, parts[1])
	case parts[0] == "attempt" && len(parts) == 3 && parts[2] == "recommendations":
		s.handleRecommendations(w, r, parts[1])
	case len(parts) == 1:
		s.handleGetQuiz(w, r, parts[0])
	case len(parts) == 4 && parts[1] == "question" && parts[3] == "explanation":
		s.handleExplanation(w, r, parts[0], parts[2])
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req aiquizhelper.GenerateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Topic == "" {
		respondError(w, http.StatusBadRequest, "Topic is required")
		return
	}
	req.UserID = s.userID(w, r)

	quiz, err := s.svc.GenerateQuiz(r.Context(), req)
	if err != nil {
		log.Printf("Quiz generation failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to generate quiz")
		return
	}

	respondData(w, quiz)
}

func (s *Server) handleGetQuiz(w http.ResponseWriter, r *http.Request, quizID string) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	quiz, err := s.svc.GetQuiz(quizID)
	if err != nil {
		if errors.Is(err, aiquizhelper.ErrQuizNotFound) {
			respondError(w, http.StatusNotFound, "Quiz not found")
			return
		}
		log.Printf("Failed to get quiz %s: %v", quizID, err)
		respondError(w, http.StatusInternalServerError, "Failed to get quiz")
		return
	}

	respondData(w, quiz)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req struct {
		QuizID    string                          `json:"quizId"`
		Answers   []aiquizhelper.AnswerSubmission `json:"answers"`
		TimeTaken int64                           `json:"timeTaken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.QuizID == "" || req.Answers == nil {
		respondError(w, http.StatusBadRequest, "Quiz ID and answers are required")
		return
	}

	attempt, err := s.svc.SubmitAttempt(req.QuizID, req.Answers, req.TimeTaken)
	if err != nil {
		if errors.Is(err, aiquizhelper.ErrQuizNotFound) {
			respondError(w, http.StatusNotFound, "Quiz not found")
			return
		}
		log.Printf("Failed to submit attempt for quiz %s: %v", req.QuizID, err)
		respondError(w, http.StatusInternalServerError, "Failed to submit quiz")
		return
	}

	respondData(w, map[string]interface{}{
		"attempt":         attempt,
		"recommendations": []aiquizhelper.StudyRecommendation{},
	})
}

func (s *Server) handleGetAttempt(w http.ResponseWriter, r *http.Request, attemptID string) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	attempt, err := s.svc.GetAttempt(attemptID)
	if err != nil {
		if errors.Is(err, aiquizhelper.ErrAttemptNotFound) {
			respondError(w, http.StatusNotFound, "Quiz attempt not found")
			return
		}
		log.Printf("Failed to get attempt %s: %v", attemptID, err)
		respondError(w, http.StatusInternalServerError, "Failed to get attempt")
		return
	}

	respondData(w, map[string]interface{}{
		"attempt":         attempt,
		"recommendations": []aiquizhelper.StudyRecommendation{},
	})
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request, attemptID string) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	recommendations, err := s.svc.GenerateRecommendations(r.Context(), attemptID)
	if err != nil {
		if errors.Is(err, aiquizhelper.ErrAttemptNotFound) {
			respondError(w, http.StatusNotFound, "Quiz attempt not found")
			return
		}
		log.Printf("Failed to generate recommendations for attempt %s: %v", attemptID, err)
		respondError(w, http.StatusInternalServerError, "Failed to generate recommendations")
		return
	}

	respondData(w, recommendations)
}

func (s *Server) handleExplanation(w http.ResponseWriter, r *http.Request, quizID, questionID string) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	explanation, err := s.svc.ExplainQuestion(r.Context(), quizID, questionID)
	if err != nil {
		if errors.Is(err, aiquizhelper.ErrQuizNotFound) {
			respondError(w, http.StatusNotFound, "Quiz not found")
			return
		}
		log.Printf("Failed to explain question %s/%s: %v", quizID, questionID, err)
		respondError(w, http.StatusInternalServerError, "Failed to generate explanation")
		return
	}

	respondData(w, map[string]string{"explanation": explanation})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		provider := s.svc.Provider()
		respondData(w, map[string]string{
			"provider": provider.Name(),
			"model":    provider.Model(),
		})

	case http.MethodPost:
		var req struct {
			Provider string `json:"provider"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := s.svc.SetProvider(req.Provider); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		provider := s.svc.Provider()
		respondData(w, map[string]string{
			"provider": provider.Name(),
			"model":    provider.Model(),
		})

	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleUser dispatches everything under /api/user/.
func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID := s.userID(w, r)

	switch strings.TrimPrefix(r.URL.Path, "/api/user/") {
	case "progress":
		progress, err := s.svc.Progress(userID)
		if err != nil {
			log.Printf("Failed to get progress: %v", err)
			respondError(w, http.StatusInternalServerError, "Failed to get progress")
			return
		}
		if progress == nil {
			progress = []aiquizhelper.TopicProgress{}
		}
		respondData(w, progress)

	case "history":
		history, err := s.svc.History(userID, 0)
		if err != nil {
			log.Printf("Failed to get history: %v", err)
			respondError(w, http.StatusInternalServerError, "Failed to get history")
			return
		}
		if history == nil {
			history = []aiquizhelper.HistoryItem{}
		}
		respondData(w, history)

	default:
		http.NotFound(w, r)
	}
}

// userID returns the anonymous visitor id from the session cookie,
// assigning a fresh one on first visit.
func (s *Server) userID(w http.ResponseWriter, r *http.Request) string {
	session, _ := s.store.Get(r, sessionName)

	if id, ok := session.Values["user_id"].(string); ok && id != "" {
		return id
	}

	id := "user_" + uuid.NewString()
	session.Values["user_id"] = id
	if err := s.store.Save(r, w, session); err != nil {
		log.Printf("Session save error: %v", err)
	}
	return id
}

func respondData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apiResponse{Success: false, Error: message})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
