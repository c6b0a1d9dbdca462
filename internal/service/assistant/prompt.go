package assistant

import (
	"fmt"
	"strings"

	"askweb/internal/domain/models"
)

const searchPrefix = "search:"

// researchPromptTemplate takes the reference block and the search query.
const researchPromptTemplate = "You are an AI research assistant. Use the provided web search results to answer the user query. " +
	"Synthesize concisely, cite sources inline like [1], [2] where relevant, and include a brief summary.\n\n" +
	"Web Results:\n%s\n\nQuery:\n%s"

// parseSearchQuery returns the query of a "search:" command.
// The prefix match is case-insensitive and the query is everything after the first colon, trimmed.
// ok is false for ordinary messages and for a bare "search:" with nothing after it.
func parseSearchQuery(input string) (query string, ok bool) {
	if len(input) < len(searchPrefix) || !strings.EqualFold(input[:len(searchPrefix)], searchPrefix) {
		return "", false
	}
	_, rest, _ := strings.Cut(input, ":")
	query = strings.TrimSpace(rest)
	return query, query != ""
}

// buildReferenceBlock numbers results from 1 and separates entries with a blank line.
func buildReferenceBlock(results []models.SearchResult) string {
	entries := make([]string, len(results))
	for i, r := range results {
		entries[i] = fmt.Sprintf("[%d] %s — %s\n%s", i+1, r.Title, r.Href, r.Body)
	}
	return strings.Join(entries, "\n\n")
}

func buildResearchPrompt(results []models.SearchResult, query string) string {
	return fmt.Sprintf(researchPromptTemplate, buildReferenceBlock(results), query)
}
