package external

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBraveBaseURL is the Brave web search endpoint
const DefaultBraveBaseURL = "https://api.search.brave.com/res/v1/web/search"

// BraveClient implements SearchClient for the Brave Search API.
type BraveClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewBraveClient creates a Brave client. An empty baseURL selects the public endpoint.
func NewBraveClient(apiKey, baseURL string, timeout time.Duration) *BraveClient {
	if baseURL == "" {
		baseURL = DefaultBraveBaseURL
	}
	return &BraveClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name returns "brave".
func (c *BraveClient) Name() string { return "brave" }

type braveResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

// Search executes a query against the Brave Search API.
func (c *BraveClient) Search(ctx context.Context, query string, opts SearchOptions) (*SearchResponse, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, errors.New("brave: API key is missing")
	}

	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse brave url: %w", err)
	}
	q := endpoint.Query()
	q.Set("q", query)
	q.Set("count", strconv.Itoa(clampMaxResults(opts.MaxResults)))
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create brave request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("brave request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("brave request failed with status %d", resp.StatusCode)
	}

	var decoded braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode brave response: %w", err)
	}

	results := make([]SearchResult, 0, len(decoded.Web.Results))
	for _, item := range decoded.Web.Results {
		results = append(results, SearchResult{
			Title:   plainText(item.Title),
			URL:     strings.TrimSpace(item.URL),
			Snippet: plainText(item.Description),
		})
	}

	return &SearchResponse{Results: results, Query: query, Timestamp: time.Now()}, nil
}
