package llm

import "context"

// ChatSession is a handle to a remote conversation.
// One session is opened per assistant and reused for every message.
type ChatSession interface {
	// SendMessage sends a user message and returns the textual reply.
	SendMessage(ctx context.Context, text string) (string, error)

	// Name returns the provider name (e.g., "gemini", "anthropic")
	Name() string

	// Model returns the model the session talks to
	Model() string
}
