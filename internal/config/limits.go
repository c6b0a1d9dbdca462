package config

const (
	// MaxMessageLength is the maximum length of a single chat message accepted on the API.
	// Research prompts embed up to MaxSearchResults snippets on top of this, so keep it
	// well below provider context limits.
	MaxMessageLength = 8000

	// DefaultSearchResults is how many web results a "search:" message requests.
	DefaultSearchResults = 6

	// MaxSearchResults caps any requested result count. Tavily and Brave both top out at 20.
	MaxSearchResults = 20
)
