package assistant

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"askweb/internal/domain"
	"askweb/internal/domain/models"
	llmSvc "askweb/internal/domain/services/llm"
)

// fakeSession records prompts and answers with a canned reply.
type fakeSession struct {
	prompts []string
	reply   string
	err     error
	panics  bool
}

func (f *fakeSession) Name() string { return "fake" }

func (f *fakeSession) Model() string { return "fake-1" }

func (f *fakeSession) SendMessage(ctx context.Context, text string) (string, error) {
	f.prompts = append(f.prompts, text)
	if f.panics {
		panic("provider exploded")
	}
	return f.reply, f.err
}

// fakeSearcher returns fixed results and records queries.
type fakeSearcher struct {
	results    []models.SearchResult
	queries    []string
	maxResults []int
}

func (f *fakeSearcher) Search(ctx context.Context, query string, maxResults int) []models.SearchResult {
	f.queries = append(f.queries, query)
	f.maxResults = append(f.maxResults, maxResults)
	return f.results
}

type fakeOpener struct {
	session llmSvc.ChatSession
	err     error
}

func (f *fakeOpener) Open(ctx context.Context) (llmSvc.ChatSession, error) {
	return f.session, f.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestRespond_NotConfigured(t *testing.T) {
	searcher := &fakeSearcher{results: []models.SearchResult{{Title: "T", Href: "H"}}}
	svc := NewService(nil, searcher, 0, quietLogger())

	for _, input := range []string{"", "hello", "search: golang", "   "} {
		reply := svc.Respond(context.Background(), input)
		if reply.Text != "AI service is not configured correctly." {
			t.Errorf("input %q: unexpected text %q", input, reply.Text)
		}
		if reply.Outcome != models.OutcomeNotConfigured {
			t.Errorf("input %q: unexpected outcome %s", input, reply.Outcome)
		}
	}
	if len(searcher.queries) != 0 {
		t.Errorf("expected no search calls, got %v", searcher.queries)
	}
	if svc.Configured() || svc.Provider() != "" || svc.Model() != "" {
		t.Error("expected unconfigured assistant without provider or model")
	}
}

func TestNew_OpenFailureIsLoggedNotReturned(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	svc := New(context.Background(), &fakeOpener{err: domain.ErrNotConfigured}, &fakeSearcher{}, 6, logger)

	if svc.Configured() {
		t.Fatal("expected unconfigured assistant")
	}
	if !strings.Contains(buf.String(), "chat session unavailable") {
		t.Errorf("expected open failure to be logged, got %q", buf.String())
	}
	if got := svc.GenerateResponse(context.Background(), "hi"); got != models.ReplyNotConfigured {
		t.Errorf("unexpected reply %q", got)
	}
}

func TestNew_OpensSession(t *testing.T) {
	session := &fakeSession{reply: "hi there"}
	svc := New(context.Background(), &fakeOpener{session: session}, &fakeSearcher{}, 6, quietLogger())

	if !svc.Configured() || svc.Provider() != "fake" || svc.Model() != "fake-1" {
		t.Fatalf("expected configured fake provider, got %q/%q", svc.Provider(), svc.Model())
	}
	if got := svc.GenerateResponse(context.Background(), "hi"); got != "hi there" {
		t.Errorf("unexpected reply %q", got)
	}
}

func TestRespond_SearchWithoutResults(t *testing.T) {
	session := &fakeSession{reply: "should not be used"}
	searcher := &fakeSearcher{}
	svc := NewService(session, searcher, 0, quietLogger())

	reply := svc.Respond(context.Background(), "search: test query")

	if reply.Text != "I could not retrieve web results right now. Please try again." {
		t.Errorf("unexpected text %q", reply.Text)
	}
	if reply.Outcome != models.OutcomeNoResults {
		t.Errorf("unexpected outcome %s", reply.Outcome)
	}
	if len(session.prompts) != 0 {
		t.Errorf("expected no AI call, got %d", len(session.prompts))
	}
	if len(searcher.queries) != 1 || searcher.queries[0] != "test query" {
		t.Errorf("unexpected search queries %v", searcher.queries)
	}
	if searcher.maxResults[0] != 6 {
		t.Errorf("expected default of 6 results, got %d", searcher.maxResults[0])
	}
}

func TestRespond_SearchBuildsResearchPrompt(t *testing.T) {
	session := &fakeSession{reply: "x is a letter [1]"}
	searcher := &fakeSearcher{results: []models.SearchResult{{Title: "T", Href: "H", Body: "B"}}}
	svc := NewService(session, searcher, 3, quietLogger())

	reply := svc.Respond(context.Background(), "search: x")

	if reply.Outcome != models.OutcomeAnswered || reply.Text != "x is a letter [1]" {
		t.Fatalf("unexpected reply %+v", reply)
	}
	if len(reply.Sources) != 1 || reply.Sources[0].Href != "H" {
		t.Errorf("expected sources on reply, got %+v", reply.Sources)
	}
	if searcher.maxResults[0] != 3 {
		t.Errorf("expected configured result count 3, got %d", searcher.maxResults[0])
	}
	if len(session.prompts) != 1 {
		t.Fatalf("expected one AI call, got %d", len(session.prompts))
	}
	prompt := session.prompts[0]
	if !strings.Contains(prompt, "[1] T — H\nB") {
		t.Errorf("prompt missing reference block: %q", prompt)
	}
	if !strings.HasSuffix(prompt, "Query:\nx") {
		t.Errorf("prompt missing original query: %q", prompt)
	}
	if !strings.HasPrefix(prompt, "You are an AI research assistant.") {
		t.Errorf("prompt missing persona: %q", prompt)
	}
}

func TestRespond_PlainPromptIsTrimmedInput(t *testing.T) {
	session := &fakeSession{reply: "hi"}
	searcher := &fakeSearcher{}
	svc := NewService(session, searcher, 0, quietLogger())

	svc.Respond(context.Background(), "  hello world \n")

	if len(session.prompts) != 1 || session.prompts[0] != "hello world" {
		t.Fatalf("expected trimmed prompt, got %q", session.prompts)
	}
	if len(searcher.queries) != 0 {
		t.Errorf("expected no search, got %v", searcher.queries)
	}
}

func TestRespond_BareSearchPrefixIsPlainPrompt(t *testing.T) {
	session := &fakeSession{reply: "ok"}
	searcher := &fakeSearcher{}
	svc := NewService(session, searcher, 0, quietLogger())

	svc.Respond(context.Background(), "search:   ")

	if len(searcher.queries) != 0 {
		t.Errorf("expected no search, got %v", searcher.queries)
	}
	if len(session.prompts) != 1 || session.prompts[0] != "search:" {
		t.Errorf("expected input sent verbatim, got %q", session.prompts)
	}
}

func TestRespond_SendFailures(t *testing.T) {
	tests := []struct {
		name    string
		session *fakeSession
	}{
		{name: "provider error", session: &fakeSession{err: errors.New("503 from upstream")}},
		{name: "empty output", session: &fakeSession{reply: "  "}},
		{name: "empty response error", session: &fakeSession{err: domain.ErrEmptyResponse}},
		{name: "panic", session: &fakeSession{panics: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			svc := NewService(tt.session, &fakeSearcher{}, 0, slog.New(slog.NewTextHandler(&buf, nil)))

			reply := svc.Respond(context.Background(), "hello")

			if reply.Text != "I'm sorry, I encountered an error processing your request." {
				t.Errorf("unexpected text %q", reply.Text)
			}
			if reply.Outcome != models.OutcomeFailed {
				t.Errorf("unexpected outcome %s", reply.Outcome)
			}
			if !strings.Contains(buf.String(), "chat request failed") {
				t.Errorf("expected failure to be logged, got %q", buf.String())
			}
		})
	}
}

func TestRespond_NoSearcherMeansNoResults(t *testing.T) {
	session := &fakeSession{reply: "unused"}
	svc := NewService(session, nil, 0, quietLogger())

	reply := svc.Respond(context.Background(), "search: go")
	if reply.Outcome != models.OutcomeNoResults {
		t.Errorf("expected no_results outcome, got %s", reply.Outcome)
	}
	if len(session.prompts) != 0 {
		t.Errorf("expected no AI call, got %d", len(session.prompts))
	}
}
