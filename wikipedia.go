package aiquizhelper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const wikipediaBaseURL = "https://en.wikipedia.org/w/api.php"

// wikipediaUserAgent identifies this client per the Wikimedia API policy.
const wikipediaUserAgent = "AIQuizHelper/1.0 (https://github.com/user/aiquizhelper)"

// WikipediaSearchResult is one hit from an opensearch query.
type WikipediaSearchResult struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// WikipediaPage is the plain-text intro extract of an article.
type WikipediaPage struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
}

// WikipediaClient performs read-only lookups against the MediaWiki API.
type WikipediaClient struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// NewWikipediaClient creates a client against the English Wikipedia API
// with a 5 second per-request timeout.
func NewWikipediaClient() *WikipediaClient {
	return &WikipediaClient{
		baseURL: wikipediaBaseURL,
		client:  &http.Client{},
		timeout: 5 * time.Second,
	}
}

func (w *WikipediaClient) get(ctx context.Context, params url.Values) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", wikipediaUserAgent)

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// SearchArticles searches by free text and returns up to limit results.
func (w *WikipediaClient) SearchArticles(ctx context.Context, query string, limit int) ([]WikipediaSearchResult, error) {
	params := url.Values{
		"action":    {"opensearch"},
		"search":    {query},
		"limit":     {fmt.Sprintf("%d", limit)},
		"namespace": {"0"},
		"format":    {"json"},
	}

	body, err := w.get(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("wikipedia search %q: %w", query, err)
	}

	// Opensearch responses are a positional 4-element array:
	// [query, titles, descriptions, urls].
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("wikipedia search %q: malformed response: %w", query, err)
	}
	if len(raw) < 4 {
		return nil, nil
	}

	var titles, descriptions, urls []string
	if err := json.Unmarshal(raw[1], &titles); err != nil {
		return nil, nil
	}
	if err := json.Unmarshal(raw[2], &descriptions); err != nil {
		descriptions = nil
	}
	if err := json.Unmarshal(raw[3], &urls); err != nil {
		urls = nil
	}

	results := make([]WikipediaSearchResult, 0, len(titles))
	for i, title := range titles {
		result := WikipediaSearchResult{Title: title}
		if i < len(descriptions) {
			result.Description = descriptions[i]
		}
		if i < len(urls) {
			result.URL = urls[i]
		}
		results = append(results, result)
	}
	return results, nil
}

// GetPageContent fetches the plain-text intro extract for an exact title.
// Returns nil for missing pages.
func (w *WikipediaClient) GetPageContent(ctx context.Context, title string) (*WikipediaPage, error) {
	params := url.Values{
		"action":          {"query"},
		"prop":            {"extracts"},
		"titles":          {title},
		"exintro":         {"true"},
		"explaintext":     {"true"},
		"exsectionformat": {"plain"},
		"format":          {"json"},
	}

	body, err := w.get(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("wikipedia content %q: %w", title, err)
	}

	var parsed struct {
		Query struct {
			Pages map[string]struct {
				Title   string  `json:"title"`
				Extract string  `json:"extract"`
				Missing *string `json:"missing"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("wikipedia content %q: malformed response: %w", title, err)
	}

	for _, page := range parsed.Query.Pages {
		if page.Missing != nil {
			return nil, nil
		}
		return &WikipediaPage{Title: page.Title, Extract: page.Extract}, nil
	}
	return nil, nil
}
