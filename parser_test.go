package aiquizhelper_test

import (
	"errors"
	"reflect"
	"testing"

	"aiquizhelper"
)

const validQuestionsJSON = `{
  "questions": [
    {
      "question": "What organelle performs photosynthesis?",
      "options": [
        {"id": "a", "text": "Mitochondrion", "value": "a"},
        {"id": "b", "text": "Chloroplast", "value": "b"},
        {"id": "c", "text": "Nucleus", "value": "c"},
        {"id": "d", "text": "Ribosome", "value": "d"}
      ],
      "correctAnswer": "b"
    }
  ]
}`

func TestParseQuestions(t *testing.T) {
	t.Run("CleanJSON", func(t *testing.T) {
		questions, err := aiquizhelper.ParseQuestions(validQuestionsJSON)
		if err != nil {
			t.Fatalf("ParseQuestions failed: %v", err)
		}
		if len(questions) != 1 {
			t.Fatalf("expected 1 question, got %d", len(questions))
		}

		q := questions[0]
		if q.ID == "" {
			t.Error("expected a fresh server-side id")
		}
		if q.Question != "What organelle performs photosynthesis?" {
			t.Errorf("unexpected question text: %q", q.Question)
		}
		if q.CorrectAnswer != "b" {
			t.Errorf("unexpected correct answer: %q", q.CorrectAnswer)
		}
		if len(q.Options) != 4 {
			t.Fatalf("expected 4 options, got %d", len(q.Options))
		}

		values := map[string]bool{}
		for _, opt := range q.Options {
			values[opt.Value] = true
		}
		for _, v := range []string{"a", "b", "c", "d"} {
			if !values[v] {
				t.Errorf("missing option value %q", v)
			}
		}
	})

	t.Run("CodeFences", func(t *testing.T) {
		fenced := "```json\n" + validQuestionsJSON + "\n```"
		questions, err := aiquizhelper.ParseQuestions(fenced)
		if err != nil {
			t.Fatalf("ParseQuestions failed on fenced input: %v", err)
		}
		if len(questions) != 1 {
			t.Fatalf("expected 1 question, got %d", len(questions))
		}
	})

	t.Run("FreshIDsPerCall", func(t *testing.T) {
		first, err := aiquizhelper.ParseQuestions(validQuestionsJSON)
		if err != nil {
			t.Fatalf("ParseQuestions failed: %v", err)
		}
		second, err := aiquizhelper.ParseQuestions(validQuestionsJSON)
		if err != nil {
			t.Fatalf("ParseQuestions failed: %v", err)
		}

		if first[0].ID == second[0].ID {
			t.Error("expected freshly assigned ids to differ between calls")
		}

		// Structurally equal apart from ids.
		first[0].ID = ""
		second[0].ID = ""
		if !reflect.DeepEqual(first, second) {
			t.Error("expected parses of identical input to be structurally equal")
		}
	})

	t.Run("NotJSON", func(t *testing.T) {
		if _, err := aiquizhelper.ParseQuestions("not json"); !isParseError(err) {
			t.Errorf("expected ParseError, got %v", err)
		}
	})

	t.Run("MissingQuestionsKey", func(t *testing.T) {
		if _, err := aiquizhelper.ParseQuestions(`{"foo": []}`); !isParseError(err) {
			t.Errorf("expected ParseError, got %v", err)
		}
	})

	t.Run("WrongOptionCount", func(t *testing.T) {
		input := `{"questions":[{"question":"Q?","options":[
			{"id":"a","text":"A","value":"a"},
			{"id":"b","text":"B","value":"b"}
		],"correctAnswer":"a"}]}`
		if _, err := aiquizhelper.ParseQuestions(input); !isParseError(err) {
			t.Errorf("expected ParseError, got %v", err)
		}
	})

	t.Run("CorrectAnswerMismatch", func(t *testing.T) {
		input := `{"questions":[{"question":"Q?","options":[
			{"id":"a","text":"A","value":"a"},
			{"id":"b","text":"B","value":"b"},
			{"id":"c","text":"C","value":"c"},
			{"id":"d","text":"D","value":"d"}
		],"correctAnswer":"e"}]}`
		if _, err := aiquizhelper.ParseQuestions(input); !isParseError(err) {
			t.Errorf("expected ParseError, got %v", err)
		}
	})

	t.Run("DuplicateOptionValues", func(t *testing.T) {
		input := `{"questions":[{"question":"Q?","options":[
			{"id":"a","text":"A","value":"a"},
			{"id":"b","text":"B","value":"a"},
			{"id":"c","text":"C","value":"c"},
			{"id":"d","text":"D","value":"d"}
		],"correctAnswer":"a"}]}`
		if _, err := aiquizhelper.ParseQuestions(input); !isParseError(err) {
			t.Errorf("expected ParseError, got %v", err)
		}
	})
}

func TestParseRecommendations(t *testing.T) {
	t.Run("LenientCoercion", func(t *testing.T) {
		input := `{"recommendations":[{"topic":"x","reason":"y","resources":"not-an-array","priority":"urgent"}]}`
		recs, err := aiquizhelper.ParseRecommendations(input)
		if err != nil {
			t.Fatalf("ParseRecommendations should coerce malformed fields, got error: %v", err)
		}
		if len(recs) != 1 {
			t.Fatalf("expected 1 recommendation, got %d", len(recs))
		}
		if recs[0].Resources == nil || len(recs[0].Resources) != 0 {
			t.Errorf("expected empty resources slice, got %v", recs[0].Resources)
		}
		if recs[0].Priority != aiquizhelper.PriorityMedium {
			t.Errorf("expected priority coerced to medium, got %q", recs[0].Priority)
		}
	})

	t.Run("ValidFieldsPreserved", func(t *testing.T) {
		input := `{"recommendations":[{"topic":"Light reactions","reason":"**Weak** area","resources":["Read chapter 3"],"priority":"high"}]}`
		recs, err := aiquizhelper.ParseRecommendations(input)
		if err != nil {
			t.Fatalf("ParseRecommendations failed: %v", err)
		}
		if recs[0].Priority != aiquizhelper.PriorityHigh {
			t.Errorf("expected high priority, got %q", recs[0].Priority)
		}
		if len(recs[0].Resources) != 1 || recs[0].Resources[0] != "Read chapter 3" {
			t.Errorf("unexpected resources: %v", recs[0].Resources)
		}
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		if _, err := aiquizhelper.ParseRecommendations("nope"); !isParseError(err) {
			t.Errorf("expected ParseError, got %v", err)
		}
	})

	t.Run("MissingRecommendationsKey", func(t *testing.T) {
		if _, err := aiquizhelper.ParseRecommendations(`{"bar": 1}`); !isParseError(err) {
			t.Errorf("expected ParseError, got %v", err)
		}
	})
}

func TestParseSearchQueries(t *testing.T) {
	t.Run("LabelTrimCap", func(t *testing.T) {
		got := aiquizhelper.ParseSearchQueries("Search terms: a; b ;c;d")
		want := []string{"a", "b", "c"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("PlainTerms", func(t *testing.T) {
		got := aiquizhelper.ParseSearchQueries("Egyptian pyramids;Giza pyramid complex")
		want := []string{"Egyptian pyramids", "Giza pyramid complex"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("QuotedOutput", func(t *testing.T) {
		got := aiquizhelper.ParseSearchQueries(`"Machine learning;Deep learning"`)
		want := []string{"Machine learning", "Deep learning"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if got := aiquizhelper.ParseSearchQueries("   "); len(got) != 0 {
			t.Errorf("expected no queries, got %v", got)
		}
	})

	t.Run("MultibyteBeforeLabel", func(t *testing.T) {
		// U+0130 grows when lowercased, so the label offset must come
		// from the original string, not a lowered copy.
		got := aiquizhelper.ParseSearchQueries("İstanbul quiz\nSearch Terms: alpha; beta")
		want := []string{"alpha", "beta"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})
}

func isParseError(err error) bool {
	var parseErr *aiquizhelper.ParseError
	return errors.As(err, &parseErr)
}
