package aiquizhelper_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"aiquizhelper"
)

// queryProvider wraps the mock provider with a controllable search query
// step.
type queryProvider struct {
	*aiquizhelper.MockProvider
	queries []string
	err     error
}

func (p *queryProvider) GenerateSearchQueries(ctx context.Context, topic string) ([]string, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.queries, nil
}

// fakeSource is a scripted ArticleSource.
type fakeSource struct {
	searchErr      error
	contentErr     error
	resultsByQuery map[string][]aiquizhelper.WikipediaSearchResult
	pagesByTitle   map[string]aiquizhelper.WikipediaPage
	searched       []string
}

func (s *fakeSource) SearchArticles(ctx context.Context, query string, limit int) ([]aiquizhelper.WikipediaSearchResult, error) {
	s.searched = append(s.searched, query)
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return s.resultsByQuery[query], nil
}

func (s *fakeSource) GetPageContent(ctx context.Context, title string) (*aiquizhelper.WikipediaPage, error) {
	if s.contentErr != nil {
		return nil, s.contentErr
	}
	page, ok := s.pagesByTitle[title]
	if !ok {
		return nil, nil
	}
	return &page, nil
}

func longExtract(seed string) string {
	return seed + ": " + strings.Repeat("lorem ipsum ", 10)
}

func TestFactChecker(t *testing.T) {
	ctx := context.Background()

	t.Run("BackendAlwaysFails", func(t *testing.T) {
		provider := &queryProvider{MockProvider: aiquizhelper.NewMockProvider(), queries: []string{"a", "b"}}
		source := &fakeSource{searchErr: errors.New("search down")}

		checker := aiquizhelper.NewFactChecker(provider, source, 0, 0)
		result := checker.Check(ctx, "Photosynthesis")

		if result.Successful {
			t.Error("expected unsuccessful result")
		}
		if result.Context != "" {
			t.Errorf("expected empty context, got %q", result.Context)
		}
		if len(result.Sources) != 0 {
			t.Errorf("expected no sources, got %v", result.Sources)
		}
	})

	t.Run("QueryGenerationFallsBackToTopic", func(t *testing.T) {
		provider := &queryProvider{MockProvider: aiquizhelper.NewMockProvider(), err: errors.New("provider down")}
		source := &fakeSource{}

		checker := aiquizhelper.NewFactChecker(provider, source, 0, 0)
		checker.Check(ctx, "Photosynthesis")

		if !reflect.DeepEqual(source.searched, []string{"Photosynthesis"}) {
			t.Errorf("expected fallback to raw topic, searched %v", source.searched)
		}
	})

	t.Run("MaxArticlesCap", func(t *testing.T) {
		source := &fakeSource{
			resultsByQuery: map[string][]aiquizhelper.WikipediaSearchResult{},
			pagesByTitle:   map[string]aiquizhelper.WikipediaPage{},
		}
		queries := []string{"q1", "q2", "q3"}
		for _, q := range queries {
			for i := 0; i < 2; i++ {
				title := fmt.Sprintf("%s-article-%d", q, i)
				source.resultsByQuery[q] = append(source.resultsByQuery[q], aiquizhelper.WikipediaSearchResult{Title: title})
				source.pagesByTitle[title] = aiquizhelper.WikipediaPage{Title: title, Extract: longExtract(title)}
			}
		}
		provider := &queryProvider{MockProvider: aiquizhelper.NewMockProvider(), queries: queries}

		checker := aiquizhelper.NewFactChecker(provider, source, 2, 1000)
		result := checker.Check(ctx, "topic")

		if len(result.Sources) != 2 {
			t.Fatalf("expected exactly 2 articles, got %v", result.Sources)
		}
		if !reflect.DeepEqual(result.Sources, []string{"q1-article-0", "q1-article-1"}) {
			t.Errorf("expected articles from the first query in order, got %v", result.Sources)
		}
		// The third query is never reached.
		if len(source.searched) > 2 {
			t.Errorf("expected gathering to stop after the cap, searched %v", source.searched)
		}
	})

	t.Run("ShortExtractsSkipped", func(t *testing.T) {
		source := &fakeSource{
			resultsByQuery: map[string][]aiquizhelper.WikipediaSearchResult{
				"q": {{Title: "Stub"}, {Title: "Real"}},
			},
			pagesByTitle: map[string]aiquizhelper.WikipediaPage{
				"Stub": {Title: "Stub", Extract: "too short"},
				"Real": {Title: "Real", Extract: longExtract("Real")},
			},
		}
		provider := &queryProvider{MockProvider: aiquizhelper.NewMockProvider(), queries: []string{"q"}}

		checker := aiquizhelper.NewFactChecker(provider, source, 3, 1000)
		result := checker.Check(ctx, "topic")

		if !reflect.DeepEqual(result.Sources, []string{"Real"}) {
			t.Errorf("expected short extract to be skipped, got %v", result.Sources)
		}
		if !result.Successful {
			t.Error("expected successful result")
		}
	})

	t.Run("ContextFormatAndCap", func(t *testing.T) {
		contentLimit := 100
		big := strings.Repeat("x", 500)
		source := &fakeSource{
			resultsByQuery: map[string][]aiquizhelper.WikipediaSearchResult{
				"q": {{Title: "One"}, {Title: "Two"}},
			},
			pagesByTitle: map[string]aiquizhelper.WikipediaPage{
				"One": {Title: "One", Extract: big},
				"Two": {Title: "Two", Extract: big},
			},
		}
		provider := &queryProvider{MockProvider: aiquizhelper.NewMockProvider(), queries: []string{"q"}}

		checker := aiquizhelper.NewFactChecker(provider, source, 3, contentLimit)
		result := checker.Check(ctx, "topic")

		if !strings.HasPrefix(result.Context, "**One**: ") {
			t.Errorf("context block format wrong: %q", result.Context[:20])
		}
		if len(result.Context) > contentLimit*2 {
			t.Errorf("context length %d exceeds cap %d", len(result.Context), contentLimit*2)
		}
		// Sources still report every gathered article, even ones the
		// length cap pushed out of the context string.
		if !reflect.DeepEqual(result.Sources, []string{"One", "Two"}) {
			t.Errorf("unexpected sources: %v", result.Sources)
		}
	})

	t.Run("TruncationKeepsRunesIntact", func(t *testing.T) {
		// 51 bytes lands in the middle of a two-byte rune.
		contentLimit := 51
		source := &fakeSource{
			resultsByQuery: map[string][]aiquizhelper.WikipediaSearchResult{
				"q": {{Title: "Accé"}},
			},
			pagesByTitle: map[string]aiquizhelper.WikipediaPage{
				"Accé": {Title: "Accé", Extract: strings.Repeat("é", 100)},
			},
		}
		provider := &queryProvider{MockProvider: aiquizhelper.NewMockProvider(), queries: []string{"q"}}

		checker := aiquizhelper.NewFactChecker(provider, source, 3, contentLimit)
		result := checker.Check(ctx, "topic")

		if !utf8.ValidString(result.Context) {
			t.Errorf("context contains a split rune: %q", result.Context)
		}
		if !result.Successful {
			t.Error("expected successful result")
		}
	})
}
