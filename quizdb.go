package aiquizhelper

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB represents a quiz database connection
type DB struct {
	db *sql.DB
}

// OpenDB opens a new database connection
func OpenDB(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.db.Close()
}

// CreateTables creates the necessary tables if they don't exist
func (db *DB) CreateTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS quizzes (
			id TEXT PRIMARY KEY,
			topic TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			user_id TEXT NOT NULL DEFAULT '',
			fact_checked INTEGER NOT NULL DEFAULT 0,
			fact_checking_sources TEXT NOT NULL DEFAULT '[]'
		)`,
		`CREATE TABLE IF NOT EXISTS questions (
			id TEXT PRIMARY KEY,
			quiz_id TEXT NOT NULL,
			question_num INTEGER NOT NULL,
			text TEXT NOT NULL,
			options TEXT NOT NULL,
			correct_answer TEXT NOT NULL,
			FOREIGN KEY (quiz_id) REFERENCES quizzes(id)
		)`,
		`CREATE TABLE IF NOT EXISTS attempts (
			id TEXT PRIMARY KEY,
			quiz_id TEXT NOT NULL,
			answers TEXT NOT NULL,
			score INTEGER NOT NULL,
			completed_at DATETIME NOT NULL,
			time_taken_ms INTEGER NOT NULL,
			FOREIGN KEY (quiz_id) REFERENCES quizzes(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_quizzes_created ON quizzes(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_quiz ON attempts(quiz_id, completed_at)`,
	}

	for _, query := range queries {
		if _, err := db.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute %s: %w", query, err)
		}
	}
	return nil
}

// SaveQuiz stores a quiz and its questions in one transaction.
func (db *DB) SaveQuiz(quiz *Quiz) error {
	tx, err := db.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sources, err := json.Marshal(quiz.FactCheckingSources)
	if err != nil {
		return fmt.Errorf("failed to marshal sources: %w", err)
	}

	_, err = tx.Exec(
		"INSERT INTO quizzes (id, topic, created_at, user_id, fact_checked, fact_checking_sources) VALUES (?, ?, ?, ?, ?, ?)",
		quiz.ID, quiz.Topic, quiz.CreatedAt, quiz.UserID, quiz.FactChecked, string(sources),
	)
	if err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}

	for i, q := range quiz.Questions {
		options, err := json.Marshal(q.Options)
		if err != nil {
			return fmt.Errorf("failed to marshal options: %w", err)
		}
		_, err = tx.Exec(
			"INSERT INTO questions (id, quiz_id, question_num, text, options, correct_answer) VALUES (?, ?, ?, ?, ?, ?)",
			q.ID, quiz.ID, i+1, q.Question, string(options), q.CorrectAnswer,
		)
		if err != nil {
			return fmt.Errorf("failed to create question: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit quiz: %w", err)
	}
	return nil
}

// GetQuiz retrieves a quiz with its questions by ID
func (db *DB) GetQuiz(id string) (*Quiz, error) {
	var quiz Quiz
	var sources string
	err := db.db.QueryRow(
		"SELECT id, topic, created_at, user_id, fact_checked, fact_checking_sources FROM quizzes WHERE id = ?",
		id,
	).Scan(&quiz.ID, &quiz.Topic, &quiz.CreatedAt, &quiz.UserID, &quiz.FactChecked, &sources)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	if err := json.Unmarshal([]byte(sources), &quiz.FactCheckingSources); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sources: %w", err)
	}

	rows, err := db.db.Query(
		"SELECT id, text, options, correct_answer FROM questions WHERE quiz_id = ? ORDER BY question_num",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var q Question
		var options string
		if err := rows.Scan(&q.ID, &q.Question, &options, &q.CorrectAnswer); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		if err := json.Unmarshal([]byte(options), &q.Options); err != nil {
			return nil, fmt.Errorf("failed to unmarshal options: %w", err)
		}
		quiz.Questions = append(quiz.Questions, q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}

	return &quiz, nil
}

// ListQuizzes retrieves quiz summaries for a user, newest first, optionally
// limited by count. An empty userID lists every quiz.
func (db *DB) ListQuizzes(userID string, limit int) ([]QuizSummary, error) {
	query := `SELECT q.id, q.topic, q.created_at, q.fact_checked, q.fact_checking_sources,
		(SELECT COUNT(*) FROM questions WHERE quiz_id = q.id)
		FROM quizzes q`
	args := []interface{}{}
	if userID != "" {
		query += " WHERE q.user_id = ?"
		args = append(args, userID)
	}
	query += " ORDER BY q.created_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	defer rows.Close()

	var summaries []QuizSummary
	for rows.Next() {
		var s QuizSummary
		var sources string
		if err := rows.Scan(&s.ID, &s.Topic, &s.CreatedAt, &s.FactChecked, &sources, &s.QuestionCount); err != nil {
			return nil, fmt.Errorf("failed to scan quiz: %w", err)
		}
		if err := json.Unmarshal([]byte(sources), &s.FactCheckingSources); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sources: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quizzes: %w", err)
	}

	return summaries, nil
}

// SaveAttempt stores a graded quiz attempt.
func (db *DB) SaveAttempt(attempt *QuizAttempt) error {
	answers, err := json.Marshal(attempt.Answers)
	if err != nil {
		return fmt.Errorf("failed to marshal answers: %w", err)
	}

	_, err = db.db.Exec(
		"INSERT INTO attempts (id, quiz_id, answers, score, completed_at, time_taken_ms) VALUES (?, ?, ?, ?, ?, ?)",
		attempt.ID, attempt.QuizID, string(answers), attempt.Score, attempt.CompletedAt, attempt.TimeTaken,
	)
	if err != nil {
		return fmt.Errorf("failed to create attempt: %w", err)
	}
	return nil
}

func scanAttempt(row *sql.Row) (*QuizAttempt, error) {
	var attempt QuizAttempt
	var answers string
	err := row.Scan(&attempt.ID, &attempt.QuizID, &answers, &attempt.Score, &attempt.CompletedAt, &attempt.TimeTaken)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(answers), &attempt.Answers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal answers: %w", err)
	}
	return &attempt, nil
}

// GetAttempt retrieves an attempt by ID
func (db *DB) GetAttempt(id string) (*QuizAttempt, error) {
	attempt, err := scanAttempt(db.db.QueryRow(
		"SELECT id, quiz_id, answers, score, completed_at, time_taken_ms FROM attempts WHERE id = ?",
		id,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	return attempt, nil
}

// LatestAttempt retrieves the most recent attempt for a quiz, or nil when
// the quiz has never been attempted.
func (db *DB) LatestAttempt(quizID string) (*QuizAttempt, error) {
	attempt, err := scanAttempt(db.db.QueryRow(
		"SELECT id, quiz_id, answers, score, completed_at, time_taken_ms FROM attempts WHERE quiz_id = ? ORDER BY completed_at DESC LIMIT 1",
		quizID,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest attempt: %w", err)
	}
	return attempt, nil
}

// GetProgress aggregates a user's attempts per topic, most recently
// attempted topic first.
func (db *DB) GetProgress(userID string) ([]TopicProgress, error) {
	query := `SELECT q.topic, a.score, a.completed_at
		FROM attempts a JOIN quizzes q ON q.id = a.quiz_id`
	args := []interface{}{}
	if userID != "" {
		query += " WHERE q.user_id = ?"
		args = append(args, userID)
	}
	query += " ORDER BY a.completed_at"

	rows, err := db.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	defer rows.Close()

	byTopic := make(map[string]*TopicProgress)
	totals := make(map[string]int)
	var order []string

	for rows.Next() {
		var topic string
		var score int
		var completed time.Time
		if err := rows.Scan(&topic, &score, &completed); err != nil {
			return nil, fmt.Errorf("failed to scan progress: %w", err)
		}

		p, ok := byTopic[topic]
		if !ok {
			p = &TopicProgress{Topic: topic}
			byTopic[topic] = p
			order = append(order, topic)
		}
		p.Attempts++
		totals[topic] += score
		if score > p.BestScore {
			p.BestScore = score
		}
		if completed.After(p.LastAttempt) {
			p.LastAttempt = completed
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating progress: %w", err)
	}

	// Most recently attempted first.
	sort.Slice(order, func(i, j int) bool {
		return byTopic[order[i]].LastAttempt.After(byTopic[order[j]].LastAttempt)
	})

	progress := make([]TopicProgress, 0, len(order))
	for _, topic := range order {
		p := byTopic[topic]
		p.AverageScore = float64(totals[topic]) / float64(p.Attempts)
		progress = append(progress, *p)
	}
	return progress, nil
}

// History lists a user's quizzes with each quiz's most recent attempt.
func (db *DB) History(userID string, limit int) ([]HistoryItem, error) {
	summaries, err := db.ListQuizzes(userID, limit)
	if err != nil {
		return nil, err
	}

	items := make([]HistoryItem, 0, len(summaries))
	for _, s := range summaries {
		latest, err := db.LatestAttempt(s.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, HistoryItem{Quiz: s, LatestAttempt: latest})
	}
	return items, nil
}
