package services

import (
	"context"

	"askweb/internal/domain/models"
)

// Assistant answers one user message, optionally augmented with web search context.
type Assistant interface {
	// Respond returns a tagged reply. It never fails; failures are reported via Reply.Outcome.
	Respond(ctx context.Context, userInput string) models.Reply

	// GenerateResponse returns only the reply text.
	GenerateResponse(ctx context.Context, userInput string) string

	// Configured reports whether a chat session was opened successfully.
	Configured() bool
}
