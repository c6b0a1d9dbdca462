package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"askweb/internal/config"
	"askweb/internal/domain"
	"askweb/internal/domain/models"
	"askweb/internal/domain/services"
	llmSvc "askweb/internal/domain/services/llm"
	"askweb/internal/observability"
)

// SessionOpener opens the chat session an assistant talks to.
type SessionOpener interface {
	Open(ctx context.Context) (llmSvc.ChatSession, error)
}

// Service answers user messages, running a web search first for "search:" commands.
// The session is opened once; if that failed every reply is the not-configured text.
type Service struct {
	session    llmSvc.ChatSession
	searcher   services.WebSearcher
	maxResults int
	logger     *slog.Logger
}

var _ services.Assistant = (*Service)(nil)

// New opens a session through opener. It never fails: an open error is logged
// and the assistant is left unconfigured.
func New(ctx context.Context, opener SessionOpener, searcher services.WebSearcher, maxResults int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	var session llmSvc.ChatSession
	if opener == nil {
		logger.Error("chat session unavailable", "error", "no session opener")
	} else if s, err := opener.Open(ctx); err != nil {
		logger.Error("chat session unavailable", "error", err)
	} else {
		session = s
		logger.Info("chat session opened", "provider", s.Name())
	}

	return NewService(session, searcher, maxResults, logger)
}

// NewService creates an assistant over an already opened session (nil means unconfigured).
// maxResults < 1 selects config.DefaultSearchResults.
func NewService(session llmSvc.ChatSession, searcher services.WebSearcher, maxResults int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if maxResults < 1 {
		maxResults = config.DefaultSearchResults
	}
	return &Service{
		session:    session,
		searcher:   searcher,
		maxResults: maxResults,
		logger:     logger,
	}
}

// Configured reports whether a chat session is available.
func (s *Service) Configured() bool {
	return s.session != nil
}

// Provider returns the session's provider name, or "" when unconfigured.
func (s *Service) Provider() string {
	if s.session == nil {
		return ""
	}
	return s.session.Name()
}

// Model returns the session's model, or "" when unconfigured.
func (s *Service) Model() string {
	if s.session == nil {
		return ""
	}
	return s.session.Model()
}

// GenerateResponse returns the reply text for userInput.
func (s *Service) GenerateResponse(ctx context.Context, userInput string) string {
	return s.Respond(ctx, userInput).Text
}

// Respond produces one reply. It never returns an error; failures become the
// matching Outcome with its fixed text.
func (s *Service) Respond(ctx context.Context, userInput string) models.Reply {
	reply := s.respond(ctx, userInput)
	observability.ChatRepliesTotal.WithLabelValues(string(reply.Outcome)).Inc()
	return reply
}

func (s *Service) respond(ctx context.Context, userInput string) models.Reply {
	if s.session == nil {
		return models.Reply{Text: models.ReplyNotConfigured, Outcome: models.OutcomeNotConfigured}
	}

	input := strings.TrimSpace(userInput)
	prompt := input

	var sources []models.SearchResult
	if query, ok := parseSearchQuery(input); ok {
		sources = s.search(ctx, query)
		if len(sources) == 0 {
			return models.Reply{Text: models.ReplyNoResults, Outcome: models.OutcomeNoResults}
		}
		prompt = buildResearchPrompt(sources, query)
	}

	text, err := s.send(ctx, prompt)
	if err != nil {
		s.logger.Error("chat request failed",
			"provider", s.session.Name(),
			"search", sources != nil,
			"error", err,
		)
		return models.Reply{Text: models.ReplyFailed, Outcome: models.OutcomeFailed}
	}

	return models.Reply{Text: text, Outcome: models.OutcomeAnswered, Sources: sources}
}

func (s *Service) search(ctx context.Context, query string) []models.SearchResult {
	if s.searcher == nil {
		s.logger.Warn("search requested but no searcher configured", "query", query)
		return nil
	}
	return s.searcher.Search(ctx, query, s.maxResults)
}

func (s *Service) send(ctx context.Context, prompt string) (text string, err error) {
	started := time.Now()
	defer observability.ObserveChat(s.session.Name(), started)

	defer func() {
		// Provider panics count as send failures
		if r := recover(); r != nil {
			err = fmt.Errorf("chat provider panicked: %v", r)
		}
	}()

	text, err = s.session.SendMessage(ctx, prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", domain.ErrEmptyResponse
	}
	return text, nil
}
