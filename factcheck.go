package aiquizhelper

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ArticleSource is the read-only encyclopedia lookup surface the fact
// checker depends on. WikipediaClient is the production implementation.
type ArticleSource interface {
	SearchArticles(ctx context.Context, query string, limit int) ([]WikipediaSearchResult, error)
	GetPageContent(ctx context.Context, title string) (*WikipediaPage, error)
}

const (
	defaultMaxArticles  = 3
	defaultContentLimit = 1000

	// Extracts shorter than this are disambiguation stubs or noise.
	minExtractLength = 50

	// How many search hits to consider per query.
	resultsPerQuery = 2
)

// FactChecker gathers encyclopedia context to ground question generation.
// Everything here is best effort: any individual failure is logged and
// skipped, and Check never returns an error.
type FactChecker struct {
	provider     LLMProvider
	source       ArticleSource
	maxArticles  int
	contentLimit int
}

// NewFactChecker creates a fact checker over the given provider and
// article source. Zero maxArticles and contentLimit select the defaults.
func NewFactChecker(provider LLMProvider, source ArticleSource, maxArticles, contentLimit int) *FactChecker {
	if maxArticles <= 0 {
		maxArticles = defaultMaxArticles
	}
	if contentLimit <= 0 {
		contentLimit = defaultContentLimit
	}
	return &FactChecker{
		provider:     provider,
		source:       source,
		maxArticles:  maxArticles,
		contentLimit: contentLimit,
	}
}

// Check derives search queries for the topic, gathers article extracts, and
// synthesizes a bounded grounding context. A fully failed run yields an
// unsuccessful zero result, never an error: fact-checking must not block
// quiz generation.
func (fc *FactChecker) Check(ctx context.Context, topic string) FactCheckingResult {
	queries := fc.searchQueries(ctx, topic)

	pages := fc.gatherContent(ctx, queries)

	grounding := fc.synthesizeContext(pages)

	sources := make([]string, 0, len(pages))
	for _, page := range pages {
		sources = append(sources, page.Title)
	}

	return FactCheckingResult{
		Context:    grounding,
		Sources:    sources,
		Successful: len(grounding) > 0,
	}
}

// searchQueries asks the provider for search terms, falling back to the raw
// topic. This step never propagates an error.
func (fc *FactChecker) searchQueries(ctx context.Context, topic string) []string {
	queries, err := fc.provider.GenerateSearchQueries(ctx, topic)
	if err != nil {
		VerboseLog("Search query generation failed, using original topic: %v", err)
		return []string{topic}
	}
	if len(queries) == 0 {
		return []string{topic}
	}
	return queries
}

// gatherContent walks the queries in order, collecting article extracts
// until maxArticles is reached. Failed searches and fetches are skipped.
func (fc *FactChecker) gatherContent(ctx context.Context, queries []string) []WikipediaPage {
	var pages []WikipediaPage

	for _, query := range queries {
		if len(pages) >= fc.maxArticles {
			break
		}

		results, err := fc.source.SearchArticles(ctx, query, resultsPerQuery)
		if err != nil {
			VerboseLog("Search failed for query %q: %v", query, err)
			continue
		}

		for _, result := range results {
			if len(pages) >= fc.maxArticles {
				break
			}

			page, err := fc.source.GetPageContent(ctx, result.Title)
			if err != nil {
				VerboseLog("Content retrieval failed for title %q: %v", result.Title, err)
				continue
			}
			if page == nil || len(page.Extract) <= minExtractLength {
				continue
			}
			pages = append(pages, *page)
		}
	}

	return pages
}

// synthesizeContext joins titled extract blocks, truncating each extract to
// contentLimit and capping the whole context at twice that.
func (fc *FactChecker) synthesizeContext(pages []WikipediaPage) string {
	if len(pages) == 0 {
		return ""
	}

	totalLength := 0
	var blocks []string

	for _, page := range pages {
		extract := page.Extract
		if len(extract) > fc.contentLimit {
			// Back up to a rune boundary so the cut never leaves a
			// partial UTF-8 sequence in the prompt.
			cut := fc.contentLimit
			for cut > 0 && !utf8.RuneStart(extract[cut]) {
				cut--
			}
			extract = extract[:cut]
		}
		block := fmt.Sprintf("**%s**: %s", page.Title, extract)

		if totalLength+len(block) > fc.contentLimit*2 {
			break
		}
		blocks = append(blocks, block)
		totalLength += len(block)
	}

	return strings.Join(blocks, "\n\n")
}
