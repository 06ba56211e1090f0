package handler

import (
	"net/http"

	"github.com/ostazi/chat-core/internal/store"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	counters store.CounterStore
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(counters store.CounterStore) *HealthHandler {
	return &HealthHandler{
		counters: counters,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.counters == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"reason": "counter store not initialized",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}
