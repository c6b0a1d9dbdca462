package models

// SearchResult is a normalized web search hit.
// Title and Href are always non-empty; Body may be empty.
type SearchResult struct {
	Title string `json:"title"`
	Href  string `json:"href"`
	Body  string `json:"body"`
}
