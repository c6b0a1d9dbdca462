package external

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// DefaultDuckDuckGoURL is the JavaScript-free DuckDuckGo results page
	DefaultDuckDuckGoURL = "https://html.duckduckgo.com/html/"

	duckDuckGoUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// DuckDuckGoClient implements SearchClient by reading DuckDuckGo's HTML results page.
// No API key is required.
type DuckDuckGoClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewDuckDuckGoClient creates a DuckDuckGo client. An empty baseURL selects the public endpoint.
func NewDuckDuckGoClient(baseURL string, timeout time.Duration) *DuckDuckGoClient {
	if baseURL == "" {
		baseURL = DefaultDuckDuckGoURL
	}
	return &DuckDuckGoClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name returns "duckduckgo".
func (c *DuckDuckGoClient) Name() string { return "duckduckgo" }

// Search posts the query to the HTML endpoint and parses the result list.
func (c *DuckDuckGoClient) Search(ctx context.Context, query string, opts SearchOptions) (*SearchResponse, error) {
	form := url.Values{}
	form.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create duckduckgo request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", duckDuckGoUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo request failed: %w", err)
	}
	defer resp.Body.Close()

	// A rate-limited client gets a 202 challenge page instead of results
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse duckduckgo html: %w", err)
	}

	return &SearchResponse{
		Results:   parseDuckDuckGoResults(doc, clampMaxResults(opts.MaxResults)),
		Query:     query,
		Timestamp: time.Now(),
	}, nil
}

// parseDuckDuckGoResults extracts organic results in page order, skipping ads and
// entries without a title or link so they do not count against limit.
func parseDuckDuckGoResults(doc *goquery.Document, limit int) []SearchResult {
	var results []SearchResult

	doc.Find("div.result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.HasClass("result--ad") {
			return true
		}

		link := s.Find("a.result__a").First()
		href, _ := link.Attr("href")
		title := collapseSpace(link.Text())
		href = strings.TrimSpace(href)
		if title == "" || href == "" {
			return true
		}

		results = append(results, SearchResult{
			Title:   title,
			URL:     unwrapRedirect(href),
			Snippet: collapseSpace(s.Find(".result__snippet").First().Text()),
		})
		return len(results) < limit
	})

	return results
}

// unwrapRedirect turns "//duckduckgo.com/l/?uddg=<target>" links into the target URL.
func unwrapRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if strings.HasPrefix(u.Path, "/l/") {
		if target := u.Query().Get("uddg"); target != "" {
			return target
		}
	}
	return href
}
