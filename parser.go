package aiquizhelper

import (
	"encoding/json"
	"strings"
)

// stripCodeFences removes markdown ```json fences that models frequently
// wrap JSON output in.
func stripCodeFences(content string) string {
	content = strings.ReplaceAll(content, "```json", "")
	content = strings.ReplaceAll(content, "```", "")
	return strings.TrimSpace(content)
}

type rawQuestion struct {
	Question      string           `json:"question"`
	Options       []QuestionOption `json:"options"`
	CorrectAnswer string           `json:"correctAnswer"`
}

type rawQuestionResponse struct {
	Questions []rawQuestion `json:"questions"`
}

// ParseQuestions converts raw model output into validated questions.
// Parsing is strict: questions are graded content, so malformed entries are
// rejected rather than patched up. Every question gets a fresh server-side
// id regardless of what the model returned.
func ParseQuestions(content string) ([]Question, error) {
	clean := stripCodeFences(content)

	var parsed rawQuestionResponse
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		return nil, &ParseError{Reason: "not valid JSON", Err: err}
	}
	if parsed.Questions == nil {
		return nil, &ParseError{Reason: `missing "questions" array`}
	}

	questions := make([]Question, 0, len(parsed.Questions))
	for _, q := range parsed.Questions {
		if err := validateQuestion(q); err != nil {
			return nil, err
		}
		options := make([]QuestionOption, len(q.Options))
		copy(options, q.Options)
		questions = append(questions, Question{
			ID:            GenerateQuestionID(),
			Question:      q.Question,
			Options:       options,
			CorrectAnswer: q.CorrectAnswer,
		})
	}

	return questions, nil
}

func validateQuestion(q rawQuestion) error {
	if q.Question == "" {
		return &ParseError{Reason: "question has no text"}
	}
	if len(q.Options) != 4 {
		return &ParseError{Reason: "question does not have exactly 4 options"}
	}

	seen := make(map[string]bool, 4)
	for _, opt := range q.Options {
		switch opt.Value {
		case "a", "b", "c", "d":
		default:
			return &ParseError{Reason: "option value outside a-d"}
		}
		if seen[opt.Value] {
			return &ParseError{Reason: "duplicate option value " + opt.Value}
		}
		seen[opt.Value] = true
	}

	if !seen[q.CorrectAnswer] {
		return &ParseError{Reason: "correctAnswer does not match any option"}
	}
	return nil
}

type rawRecommendation struct {
	Topic     string          `json:"topic"`
	Reason    string          `json:"reason"`
	Resources json.RawMessage `json:"resources"`
	Priority  string          `json:"priority"`
}

type rawRecommendationResponse struct {
	Recommendations []rawRecommendation `json:"recommendations"`
}

// ParseRecommendations converts raw model output into study
// recommendations. Unlike question parsing this is deliberately lenient:
// recommendations are advisory, so malformed fields are normalized instead
// of rejected. Only invalid JSON or a missing array fails.
func ParseRecommendations(content string) ([]StudyRecommendation, error) {
	clean := stripCodeFences(content)

	var parsed rawRecommendationResponse
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		return nil, &ParseError{Reason: "not valid JSON", Err: err}
	}
	if parsed.Recommendations == nil {
		return nil, &ParseError{Reason: `missing "recommendations" array`}
	}

	recs := make([]StudyRecommendation, 0, len(parsed.Recommendations))
	for _, r := range parsed.Recommendations {
		var resources []string
		if err := json.Unmarshal(r.Resources, &resources); err != nil {
			resources = []string{}
		}
		if resources == nil {
			resources = []string{}
		}

		priority := r.Priority
		switch priority {
		case PriorityHigh, PriorityMedium, PriorityLow:
		default:
			priority = PriorityMedium
		}

		recs = append(recs, StudyRecommendation{
			Topic:     r.Topic,
			Reason:    r.Reason,
			Resources: resources,
			Priority:  priority,
		})
	}

	return recs, nil
}

// ParseSearchQueries splits a model's semicolon-separated search terms.
// Never fails: empty or junk input yields an empty slice. At most 3 terms
// are returned.
func ParseSearchQueries(content string) []string {
	clean := strings.TrimSpace(content)
	clean = strings.Trim(clean, `"`)

	// Some models echo the prompt's trailing label back. The label is
	// ASCII, so a same-length window compare stays on valid byte offsets
	// even when surrounding text is multibyte.
	const label = "search terms:"
	for i := 0; i+len(label) <= len(clean); i++ {
		if strings.EqualFold(clean[i:i+len(label)], label) {
			clean = clean[i+len(label):]
			break
		}
	}

	var queries []string
	for _, part := range strings.Split(clean, ";") {
		part = strings.TrimSpace(strings.Trim(strings.TrimSpace(part), `"`))
		if part == "" {
			continue
		}
		queries = append(queries, part)
		if len(queries) == 3 {
			break
		}
	}
	return queries
}
