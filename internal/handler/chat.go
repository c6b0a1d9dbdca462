package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"askweb/internal/config"
	"askweb/internal/domain/services"
	"askweb/internal/httputil"
)

// ChatHandler handles chat HTTP requests
type ChatHandler struct {
	assistant services.Assistant
	logger    *slog.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(assistant services.Assistant, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		assistant: assistant,
		logger:    logger,
	}
}

// ChatRequest is the body of POST /api/chat
type ChatRequest struct {
	Message string `json:"message"`
}

// Validate checks the message is present and within MaxMessageLength runes
func (r ChatRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Message,
			validation.Required.Error("message is required"),
			validation.RuneLength(1, config.MaxMessageLength),
		),
	)
}

// SendMessage answers one message
// POST /api/chat
// Always 200 once the body is valid; the reply's outcome says whether the assistant answered.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	req.Message = strings.TrimSpace(req.Message)
	if err := req.Validate(); err != nil {
		httputil.RespondValidationError(w, err)
		return
	}

	reply := h.assistant.Respond(r.Context(), req.Message)

	h.logger.Info("chat reply",
		"request_id", httputil.GetRequestID(r),
		"user_id", httputil.GetUserID(r),
		"outcome", reply.Outcome,
		"sources", len(reply.Sources),
		"message_runes", utf8.RuneCountInString(req.Message),
	)

	httputil.RespondJSON(w, http.StatusOK, reply)
}
