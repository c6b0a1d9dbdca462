package external

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SearXNGClient implements SearchClient using a self-hosted SearXNG instance.
type SearXNGClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewSearXNGClient creates a SearXNG client for the instance at baseURL.
func NewSearXNGClient(baseURL string, timeout time.Duration) *SearXNGClient {
	return &SearXNGClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name returns "searxng".
func (c *SearXNGClient) Name() string { return "searxng" }

type searxngResponse struct {
	Results []struct {
		Title   string  `json:"title"`
		URL     string  `json:"url"`
		Content string  `json:"content"`
		Score   float64 `json:"score"`
	} `json:"results"`
}

// Search queries the SearXNG JSON API. SearXNG has no count parameter, so results
// are cut client-side.
func (c *SearXNGClient) Search(ctx context.Context, query string, opts SearchOptions) (*SearchResponse, error) {
	if c.baseURL == "" {
		return nil, errors.New("searxng: instance URL is missing")
	}

	searchURL := fmt.Sprintf("%s/search?q=%s&format=json&categories=general",
		c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("searxng returned status %d", resp.StatusCode)
	}

	var sr searxngResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	limit := clampMaxResults(opts.MaxResults)
	results := make([]SearchResult, 0, min(len(sr.Results), limit))
	for _, r := range sr.Results {
		if len(results) >= limit {
			break
		}
		results = append(results, SearchResult{
			Title:   plainText(r.Title),
			URL:     strings.TrimSpace(r.URL),
			Snippet: plainText(r.Content),
			Score:   r.Score,
		})
	}

	return &SearchResponse{Results: results, Query: query, Timestamp: time.Now()}, nil
}
