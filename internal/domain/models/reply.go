package models

// Outcome tags what happened while producing a Reply.
type Outcome string

const (
	// OutcomeAnswered means the chat provider produced the reply text.
	OutcomeAnswered Outcome = "answered"
	// OutcomeNoResults means a search was requested but returned nothing, so no AI call was made.
	OutcomeNoResults Outcome = "no_results"
	// OutcomeNotConfigured means the chat session could not be opened at startup.
	OutcomeNotConfigured Outcome = "not_configured"
	// OutcomeFailed means the search or chat call failed mid-request.
	OutcomeFailed Outcome = "failed"
)

// Fixed reply texts for the non-answer outcomes.
const (
	ReplyNotConfigured = "AI service is not configured correctly."
	ReplyNoResults     = "I could not retrieve web results right now. Please try again."
	ReplyFailed        = "I'm sorry, I encountered an error processing your request."
)

// Reply is the result of one assistant turn.
type Reply struct {
	Text    string         `json:"reply"`
	Outcome Outcome        `json:"outcome"`
	Sources []SearchResult `json:"sources,omitempty"`
}

// OK reports whether the reply carries a genuine answer.
func (r Reply) OK() bool {
	return r.Outcome == OutcomeAnswered
}
