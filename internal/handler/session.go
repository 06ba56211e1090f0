// Package handler exposes the conversation session operations over
// HTTP. It owns no conversation semantics: every behavior lives in the
// session package, and these endpoints only decode, dispatch, and
// render snapshots.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ostazi/chat-core/internal/directory"
	"github.com/ostazi/chat-core/internal/middleware"
	"github.com/ostazi/chat-core/internal/model"
	"github.com/ostazi/chat-core/internal/session"
	"github.com/ostazi/chat-core/pkg/logger"
)

// SessionHandler handles the conversation session endpoints.
type SessionHandler struct {
	manager   *session.Manager
	directory *directory.Directory
	logger    *logger.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(manager *session.Manager, dir *directory.Directory, log *logger.Logger) *SessionHandler {
	return &SessionHandler{
		manager:   manager,
		directory: dir,
		logger:    log,
	}
}

func (h *SessionHandler) sessionFor(r *http.Request) *session.Session {
	ctx := r.Context()
	return h.manager.Get(middleware.GetUserID(ctx), middleware.GetLocale(ctx))
}

// Get handles GET /api/v1/session
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.sessionFor(r).Snapshot())
}

// SelectChannel handles POST /api/v1/session/channel
func (h *SessionHandler) SelectChannel(w http.ResponseWriter, r *http.Request) {
	var req model.SelectChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := middleware.ValidateChannelKind(req.Kind); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s := h.sessionFor(r)

	if req.Kind.RequiresCounterparty() && req.CounterpartyID != "" {
		if err := middleware.ValidateCounterpartyID(req.CounterpartyID); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		cp := h.directory.Find(r.Context(), req.CounterpartyID)
		if cp == nil {
			writeError(w, http.StatusNotFound, "counterparty not found")
			return
		}
		s.SelectCounterparty(r.Context(), *cp)
		writeJSON(w, http.StatusOK, s.Snapshot())
		return
	}

	if err := s.SelectChannel(r.Context(), req.Kind); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.Snapshot())
}

// UpdateDraft handles PUT /api/v1/session/draft
func (h *SessionHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.sessionFor(r).UpdateDraft(req.Text)
	w.WriteHeader(http.StatusNoContent)
}

// Send handles POST /api/v1/session/messages. An optional text body
// replaces the draft before sending. An invalid send (empty draft,
// response pending) is not an error: the snapshot comes back unchanged.
func (h *SessionHandler) Send(w http.ResponseWriter, r *http.Request) {
	s := h.sessionFor(r)

	if r.ContentLength != 0 {
		var req model.UpdateDraftRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := middleware.ValidateMessageText(req.Text); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.UpdateDraft(req.Text)
	}

	s.Send(r.Context())
	writeJSON(w, http.StatusOK, s.Snapshot())
}

// Back handles POST /api/v1/session/back
func (h *SessionHandler) Back(w http.ResponseWriter, r *http.Request) {
	s := h.sessionFor(r)
	s.GoBack()
	writeJSON(w, http.StatusOK, s.Snapshot())
}

// Close handles DELETE /api/v1/session
func (h *SessionHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.manager.Remove(middleware.GetUserID(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

// Inbound handles POST /api/v1/inbound: the externally triggered
// receive event for any channel, active or not.
func (h *SessionHandler) Inbound(w http.ResponseWriter, r *http.Request) {
	var req model.InboundMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Kind.RequiresCounterparty() {
		if err := middleware.ValidateCounterpartyID(req.CounterpartyID); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	if err := h.sessionFor(r).HandleInbound(r.Context(), req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
