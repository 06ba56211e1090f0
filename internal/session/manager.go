package session

import (
	"sync"

	"github.com/ostazi/chat-core/internal/alert"
	"github.com/ostazi/chat-core/internal/directory"
	"github.com/ostazi/chat-core/internal/model"
	"github.com/ostazi/chat-core/internal/responder"
	"github.com/ostazi/chat-core/internal/store"
	"github.com/ostazi/chat-core/pkg/logger"
	"github.com/ostazi/chat-core/pkg/metrics"
)

// Manager hands out one consolidated session per user, so every screen
// of a client drives the same state machine instead of its own copy.
type Manager struct {
	gateway       responder.Responder
	counters      store.CounterStore
	notifier      alert.Notifier
	dir           *directory.Directory
	defaultLocale model.Locale
	logger        *logger.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a session manager with shared collaborators.
func NewManager(
	gateway responder.Responder,
	counters store.CounterStore,
	notifier alert.Notifier,
	dir *directory.Directory,
	defaultLocale model.Locale,
	log *logger.Logger,
) *Manager {
	return &Manager{
		gateway:       gateway,
		counters:      counters,
		notifier:      notifier,
		dir:           dir,
		defaultLocale: defaultLocale,
		sessions:      make(map[string]*Session),
		logger:        log,
	}
}

// Get returns the user's session, creating it on first use. The locale
// is fixed at creation; an invalid locale falls back to the default.
func (m *Manager) Get(userID string, locale model.Locale) *Session {
	m.mu.RLock()
	s, exists := m.sessions[userID]
	m.mu.RUnlock()
	if exists {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, exists := m.sessions[userID]; exists {
		return s
	}

	if !locale.Valid() {
		locale = m.defaultLocale
	}
	s = New(m.gateway, m.counters, m.notifier, m.dir, locale, m.logger.WithSession(userID, ""))
	m.sessions[userID] = s
	metrics.SessionsActive.Set(float64(len(m.sessions)))
	return s
}

// Remove tears down the user's session. The durable unread counters
// survive; the in-memory state does not.
func (m *Manager) Remove(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, exists := m.sessions[userID]; exists {
		s.Reset()
		delete(m.sessions, userID)
		metrics.SessionsActive.Set(float64(len(m.sessions)))
	}
}
