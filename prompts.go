package aiquizhelper

import (
	"fmt"
	"strings"
)

// BuildQuestionPrompt renders the question-generation prompt. When
// factCheckingContext is non-empty it is inserted as grounding text before
// the formatting instructions.
func BuildQuestionPrompt(topic string, count int, effort Effort, factCheckingContext string) string {
	var tone string
	switch effort {
	case EffortQuality:
		tone = "Provide well-considered, high-quality questions."
	case EffortSpeed:
		tone = "Favor brevity and straightforward questions."
	default:
		tone = "Balance speed and quality."
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Generate %d multiple choice questions about %q. Each question should have 4 options (A, B, C, D) with exactly one correct answer.\n", count, topic))

	if factCheckingContext != "" {
		sb.WriteString("\nFactual Context from Wikipedia:\n")
		sb.WriteString(factCheckingContext)
		sb.WriteString("\n\nUse this context to ensure questions are factually accurate and well-grounded. Draw upon the provided information when creating questions.\n")
	}

	// Models habitually make "a" the correct answer for everything unless
	// told otherwise.
	sb.WriteString("\nIMPORTANT: Randomize which option (a, b, c, or d) is correct for each question. Do not always make \"a\" the correct answer. Distribute correct answers evenly across all options.\n\n")

	sb.WriteString(`Format your response as valid JSON with this exact structure:
{
  "questions": [
    {
      "question": "What is...?",
      "options": [
        {"id": "a", "text": "Option A text", "value": "a"},
        {"id": "b", "text": "Option B text", "value": "b"},
        {"id": "c", "text": "Option C text", "value": "c"},
        {"id": "d", "text": "Option D text", "value": "d"}
      ],
      "correctAnswer": "b"
    }
  ]
}

`)

	sb.WriteString("Requirements:\n")
	sb.WriteString("- Questions should be educational and appropriate difficulty\n")
	sb.WriteString("- Each option should be plausible but only one correct\n")
	sb.WriteString("- Use proper grammar and clear language\n")
	sb.WriteString("- Make questions specific to the topic\n")
	sb.WriteString("- VARY the correct answer position - use a, b, c, and d roughly equally\n")
	sb.WriteString("- Return valid JSON only, no additional text\n")
	sb.WriteString("- " + tone)

	return sb.String()
}

// BuildRecommendationPrompt renders the study-recommendation prompt from a
// graded attempt.
func BuildRecommendationPrompt(attempt *QuizAttempt, topic string) string {
	correct := 0
	var incorrect []string
	for _, a := range attempt.Answers {
		if a.IsCorrect {
			correct++
		} else {
			incorrect = append(incorrect, fmt.Sprintf("Question ID: %s, Selected: %s", a.QuestionID, a.SelectedAnswer))
		}
	}

	incorrectList := strings.Join(incorrect, "\n")
	if incorrectList == "" {
		incorrectList = "None - perfect score!"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Analyze this quiz performance and generate personalized study recommendations for the topic %q.\n\n", topic))
	sb.WriteString("Quiz Performance:\n")
	sb.WriteString(fmt.Sprintf("- Score: %d%% (%d/%d correct)\n", attempt.Score, correct, len(attempt.Answers)))
	sb.WriteString(fmt.Sprintf("- Time taken: %d seconds\n", (attempt.TimeTaken+500)/1000))
	sb.WriteString(fmt.Sprintf("- Incorrect answers: %s\n\n", incorrectList))

	sb.WriteString("Generate 3-5 study recommendations that help improve understanding of areas where the student struggled. Focus on specific subtopics and provide actionable study suggestions.\n\n")
	sb.WriteString("For the \"reason\" field, use markdown formatting with **bold** for emphasis and proper structure.\n\n")

	sb.WriteString(`Format your response as valid JSON with this exact structure:
{
  "recommendations": [
    {
      "topic": "Specific subtopic to focus on",
      "reason": "Why this area needs attention based on quiz performance",
      "resources": ["Specific study suggestion 1", "Specific study suggestion 2", "Specific study suggestion 3"],
      "priority": "high"
    }
  ]
}

`)

	sb.WriteString("Requirements:\n")
	sb.WriteString("- Use priority levels: \"high\" for critical gaps, \"medium\" for improvement areas, \"low\" for advanced topics\n")
	sb.WriteString("- Make resources specific and actionable (not just \"study more\")\n")
	sb.WriteString("- Base recommendations on actual performance gaps\n")
	sb.WriteString("- If score is perfect, suggest advanced topics to explore next\n")
	sb.WriteString("- Return valid JSON only, no additional text")

	return sb.String()
}

// BuildExplanationPrompt renders the tutor-style explanation prompt for a
// single question.
func BuildExplanationPrompt(question *Question, topic string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("You are a helpful tutor explaining a quiz question about %s.\n\n", topic))
	sb.WriteString(fmt.Sprintf("Question: %s\n\n", question.Question))

	sb.WriteString("Options:\n")
	for _, opt := range question.Options {
		sb.WriteString(fmt.Sprintf("%s: %s\n", strings.ToUpper(opt.Value), opt.Text))
	}

	answer := strings.ToUpper(question.CorrectAnswer)
	sb.WriteString(fmt.Sprintf("\nCorrect Answer: %s\n\n", answer))

	sb.WriteString("Please provide a clear, well-formatted explanation using markdown. Structure your response as follows:\n\n")
	sb.WriteString(fmt.Sprintf("## Correct Answer: %s\n\n", answer))
	sb.WriteString("Explain why this is correct.\n\n")
	sb.WriteString("## Why Other Options Are Incorrect:\n\n")
	sb.WriteString("- **Option X**: Explanation\n")
	sb.WriteString("- **Option Y**: Explanation\n")
	sb.WriteString("- **Option Z**: Explanation\n\n")
	sb.WriteString("## Key Concepts:\n\n")
	sb.WriteString("- Important concept 1\n")
	sb.WriteString("- Important concept 2\n\n")
	sb.WriteString("Use **bold** for emphasis, `code formatting` for code examples, and proper line breaks between sections.")

	return sb.String()
}

// BuildSearchQueryPrompt asks for 1-3 semicolon-separated Wikipedia search
// terms for a topic. The worked examples anchor the output format.
func BuildSearchQueryPrompt(topic string) string {
	var sb strings.Builder

	sb.WriteString("Convert this quiz topic into 1-3 optimal Wikipedia search terms that will find the most relevant factual content.\n\n")
	sb.WriteString(fmt.Sprintf("Topic: %q\n\n", topic))

	sb.WriteString("Guidelines:\n")
	sb.WriteString("- Use specific, searchable terms\n")
	sb.WriteString("- Focus on core concepts and proper nouns\n")
	sb.WriteString("- Avoid overly broad or narrow terms\n")
	sb.WriteString("- Prioritize terms likely to have comprehensive Wikipedia articles\n\n")

	sb.WriteString("Return only the search terms, separated by semicolons.\n\n")
	sb.WriteString("Examples:\n")
	sb.WriteString("Input: \"Ancient Egyptian pyramids\"\n")
	sb.WriteString("Output: \"Egyptian pyramids;Giza pyramid complex;Ancient Egypt\"\n\n")
	sb.WriteString("Input: \"Machine learning algorithms\"\n")
	sb.WriteString("Output: \"Machine learning;Artificial neural network;Deep learning\"\n\n")
	sb.WriteString("Search terms:")

	return sb.String()
}
