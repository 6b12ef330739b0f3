package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"aiquizhelper"
)

// Development tool: previews the Wikipedia grounding context that quiz
// generation would receive for a topic.
func main() {
	var (
		topic        = flag.String("topic", "", "Topic to fact check (required)")
		providerName = flag.String("provider", "", "LLM provider for search query derivation (default from LLM_PROVIDER)")
		maxArticles  = flag.Int("max-articles", 0, "Maximum articles to gather (default from WIKIPEDIA_MAX_ARTICLES)")
		contentLimit = flag.Int("content-limit", 0, "Per-article content limit (default from WIKIPEDIA_CONTENT_LIMIT)")
		verbose      = flag.Bool("verbose", false, "Enable verbose debugging output")
	)

	flag.Parse()

	aiquizhelper.SetVerbose(*verbose)

	if *topic == "" {
		log.Fatal("Topic is required. Use -topic flag.")
	}

	cfg := aiquizhelper.LoadConfig()
	if *maxArticles == 0 {
		*maxArticles = cfg.FactCheckMaxArticles
	}
	if *contentLimit == 0 {
		*contentLimit = cfg.FactCheckContentLen
	}

	provider, err := aiquizhelper.NewProvider(cfg.LLMConfig(*providerName))
	if err != nil {
		log.Fatalf("Failed to create provider: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	queries, err := provider.GenerateSearchQueries(ctx, *topic)
	if err != nil {
		log.Printf("Search query generation failed (fact checker would fall back to the topic): %v", err)
		queries = []string{*topic}
	}
	fmt.Printf("Search queries: %v\n\n", queries)

	checker := aiquizhelper.NewFactChecker(provider, aiquizhelper.NewWikipediaClient(), *maxArticles, *contentLimit)
	result := checker.Check(ctx, *topic)

	fmt.Printf("Successful: %t\n", result.Successful)
	fmt.Printf("Sources: %v\n\n", result.Sources)
	fmt.Println("Context:")
	fmt.Println(result.Context)
}
