package handler

import (
	"net/http"

	"github.com/ostazi/chat-core/internal/directory"
	"github.com/ostazi/chat-core/internal/model"
)

// CounterpartyHandler handles the counterparty directory endpoints.
type CounterpartyHandler struct {
	directory *directory.Directory
}

// NewCounterpartyHandler creates a new counterparty handler.
func NewCounterpartyHandler(dir *directory.Directory) *CounterpartyHandler {
	return &CounterpartyHandler{
		directory: dir,
	}
}

// List handles GET /api/v1/counterparties
func (h *CounterpartyHandler) List(w http.ResponseWriter, r *http.Request) {
	entries := h.directory.List(r.Context())
	writeJSON(w, http.StatusOK, &model.ListCounterpartiesResponse{
		Counterparties: entries,
		Total:          len(entries),
	})
}
