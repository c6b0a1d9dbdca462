package handler

import (
	"net/http"

	"askweb/internal/domain/services"
	"askweb/internal/httputil"
)

// HealthHandler reports liveness and whether the chat session is available
type HealthHandler struct {
	assistant services.Assistant
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(assistant services.Assistant) *HealthHandler {
	return &HealthHandler{assistant: assistant}
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status         string `json:"status"`
	ChatConfigured bool   `json:"chat_configured"`
}

// HealthCheck always answers 200; an unconfigured chat session is reported, not treated as down.
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:         "ok",
		ChatConfigured: h.assistant.Configured(),
	})
}
