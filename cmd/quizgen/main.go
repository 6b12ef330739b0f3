package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strings"
	"time"

	"aiquizhelper"
)

func main() {
	var (
		topic        = flag.String("topic", "", "Quiz topic (required)")
		numQuestions = flag.Int("questions", aiquizhelper.DefaultQuestionCount, "Number of questions to generate")
		effort       = flag.String("effort", "balanced", "Generation effort (speed, balanced, quality)")
		providerName = flag.String("provider", "", "LLM provider (gemini, openai, mock; default from LLM_PROVIDER)")
		factCheck    = flag.Bool("fact-check", false, "Ground questions with Wikipedia content")
		outputFile   = flag.String("output", "", "Output file for quiz JSON (default: stdout)")
		playMode     = flag.Bool("play", false, "Play the quiz interactively")
		verbose      = flag.Bool("verbose", false, "Enable verbose debugging output")
	)

	flag.Parse()

	aiquizhelper.SetVerbose(*verbose)

	if *topic == "" {
		log.Fatal("Topic is required. Use -topic flag.")
	}

	cfg := aiquizhelper.LoadConfig()
	provider, err := aiquizhelper.NewProvider(cfg.LLMConfig(*providerName))
	if err != nil {
		log.Fatalf("Failed to create provider: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	var factResult aiquizhelper.FactCheckingResult
	if *factCheck {
		checker := aiquizhelper.NewFactChecker(provider, aiquizhelper.NewWikipediaClient(),
			cfg.FactCheckMaxArticles, cfg.FactCheckContentLen)
		factResult = checker.Check(ctx, *topic)
		if *verbose {
			log.Printf("Fact checking successful: %t, sources: %v", factResult.Successful, factResult.Sources)
		}
	}

	questions, err := provider.GenerateQuizQuestions(ctx, *topic, *numQuestions,
		aiquizhelper.Effort(*effort), factResult.Context)
	if err != nil {
		log.Fatalf("Failed to generate quiz: %v", err)
	}

	quiz := &aiquizhelper.Quiz{
		ID:                  aiquizhelper.GenerateQuizID(),
		Topic:               *topic,
		Questions:           questions,
		CreatedAt:           time.Now(),
		FactChecked:         factResult.Successful,
		FactCheckingSources: factResult.Sources,
	}

	if *playMode {
		playQuiz(ctx, provider, quiz)
		return
	}

	output, err := json.MarshalIndent(quiz, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal quiz: %v", err)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, output, 0644); err != nil {
			log.Fatalf("Failed to write output file: %v", err)
		}
		log.Printf("Quiz saved to: %s", *outputFile)
	} else {
		fmt.Println(string(output))
	}
}

func playQuiz(ctx context.Context, provider aiquizhelper.LLMProvider, quiz *aiquizhelper.Quiz) {
	fmt.Printf("Quiz on: %s (%d questions)\n", quiz.Topic, len(quiz.Questions))
	if quiz.FactChecked {
		fmt.Printf("Fact checked against: %s\n", strings.Join(quiz.FactCheckingSources, ", "))
	}
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	started := time.Now()
	var answers []aiquizhelper.UserAnswer
	correct := 0

	for i, question := range quiz.Questions {
		fmt.Printf("Question %d/%d:\n%s\n\n", i+1, len(quiz.Questions), question.Question)
		for _, opt := range question.Options {
			fmt.Printf("%s) %s\n", strings.ToUpper(opt.Value), opt.Text)
		}
		fmt.Println()

		var answer string
		for {
			fmt.Print("Your answer (A/B/C/D): ")
			scanner.Scan()
			answer = strings.ToLower(strings.TrimSpace(scanner.Text()))
			if answer == "a" || answer == "b" || answer == "c" || answer == "d" {
				break
			}
			fmt.Println("Please enter A, B, C, or D")
		}

		isCorrect := answer == question.CorrectAnswer
		if isCorrect {
			correct++
			fmt.Println("Correct!")
		} else {
			fmt.Printf("Incorrect. The correct answer is %s.\n", strings.ToUpper(question.CorrectAnswer))
		}
		fmt.Println()

		answers = append(answers, aiquizhelper.UserAnswer{
			QuestionID:     question.ID,
			SelectedAnswer: answer,
			IsCorrect:      isCorrect,
		})
	}

	score := int(math.Round(float64(correct) / float64(len(answers)) * 100))
	fmt.Printf("Final score: %d/%d (%d%%)\n\n", correct, len(answers), score)

	attempt := &aiquizhelper.QuizAttempt{
		ID:          aiquizhelper.GenerateAttemptID(),
		QuizID:      quiz.ID,
		Answers:     answers,
		Score:       score,
		CompletedAt: time.Now(),
		TimeTaken:   time.Since(started).Milliseconds(),
	}

	recommendations, err := provider.GenerateStudyRecommendations(ctx, attempt, quiz.Topic)
	if err != nil {
		log.Printf("Failed to generate study recommendations: %v", err)
		return
	}

	fmt.Println("Study recommendations:")
	for _, rec := range recommendations {
		fmt.Printf("- [%s] %s\n  %s\n", rec.Priority, rec.Topic, rec.Reason)
		for _, resource := range rec.Resources {
			fmt.Printf("    * %s\n", resource)
		}
	}
}
