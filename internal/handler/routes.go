package handler

import (
	"net/http"

	"askweb/internal/observability"
)

// RegisterRoutes mounts the API on mux (Go 1.22+ method patterns)
func RegisterRoutes(mux *http.ServeMux, chat *ChatHandler, providers *ProvidersHandler, health *HealthHandler) {
	mux.HandleFunc("GET /health", health.HealthCheck)
	mux.Handle("GET /metrics", observability.Handler())

	mux.HandleFunc("POST /api/chat", chat.SendMessage)
	mux.HandleFunc("GET /api/providers", providers.ListProviders)
}
