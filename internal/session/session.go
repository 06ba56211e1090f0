// Package session implements the multi-channel conversation session:
// the state machine that owns the active channel, its message log, the
// draft buffer, and the unread bookkeeping around them.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ostazi/chat-core/internal/alert"
	"github.com/ostazi/chat-core/internal/directory"
	"github.com/ostazi/chat-core/internal/i18n"
	"github.com/ostazi/chat-core/internal/model"
	"github.com/ostazi/chat-core/internal/responder"
	"github.com/ostazi/chat-core/internal/store"
	"github.com/ostazi/chat-core/pkg/logger"
	"github.com/ostazi/chat-core/pkg/metrics"
)

// Errors returned by session operations. An invalid send is not among
// them: it is a silent no-op by design.
var (
	ErrUnknownChannel      = errors.New("unknown channel kind")
	ErrEmptyMessage        = errors.New("message text is empty")
	ErrMissingCounterparty = errors.New("counterparty id is required")
)

// State is the session's position in the selection flow.
type State string

const (
	// StateChannelSelection is the initial state: no channel active.
	StateChannelSelection State = "channel_selection"
	// StateCounterpartySelection is reached when the chosen kind needs
	// a counterparty picked first.
	StateCounterpartySelection State = "counterparty_selection"
	// StateActiveConversation has an open channel and a live log.
	StateActiveConversation State = "active_conversation"
)

// Session is one user's conversation session. All mutations serialize
// on the session mutex; the lock is never held across the responder
// call, so a send suspends without blocking other operations.
type Session struct {
	gateway  responder.Responder
	counters store.CounterStore
	notifier alert.Notifier
	dir      *directory.Directory
	locale   model.Locale
	logger   *logger.Logger

	mu           sync.Mutex
	state        State
	active       *model.ChannelKey
	counterparty *model.Counterparty
	messages     []model.Message
	draft        string
	awaiting     bool
}

// New creates a session in the channel-selection state.
func New(
	gateway responder.Responder,
	counters store.CounterStore,
	notifier alert.Notifier,
	dir *directory.Directory,
	locale model.Locale,
	log *logger.Logger,
) *Session {
	if !locale.Valid() {
		locale = model.LocaleEnglish
	}
	return &Session{
		gateway:  gateway,
		counters: counters,
		notifier: notifier,
		dir:      dir,
		locale:   locale,
		logger:   log,
		state:    StateChannelSelection,
	}
}

// SelectChannel activates a channel of the given kind. For kinds that
// need a counterparty and none is selected, it only transitions to
// counterparty selection. Activation atomically zeroes the channel's
// unread counter and replaces the log with the localized welcome.
func (s *Session) SelectChannel(ctx context.Context, kind model.ChannelKind) error {
	if !kind.Valid() {
		return ErrUnknownChannel
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if kind.RequiresCounterparty() && s.counterparty == nil {
		s.state = StateCounterpartySelection
		s.active = nil
		s.messages = nil
		s.draft = ""
		return nil
	}

	key := model.ChannelKey{Kind: kind}
	if kind.RequiresCounterparty() {
		key.CounterpartyID = s.counterparty.ID
	}
	s.activate(key)
	return nil
}

// SelectCounterparty records the counterparty and opens its thread.
func (s *Session) SelectCounterparty(ctx context.Context, cp model.Counterparty) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counterparty = &cp
	s.activate(model.ChannelKey{
		Kind:           model.ChannelCounterparty,
		CounterpartyID: cp.ID,
	})
}

// activate zeroes the counter, replaces the log with the welcome
// message, and enters the active-conversation state. Caller holds the
// lock. The welcome message is synthesized locally: it is never sent to
// the backend and never takes part in unread accounting.
func (s *Session) activate(key model.ChannelKey) {
	s.setUnread(key.String(), 0)

	welcome := s.newMessage(key, model.SenderFor(key.Kind), i18n.Welcome(key.Kind, s.locale))
	s.messages = []model.Message{welcome}
	s.active = &key
	s.draft = ""
	s.state = StateActiveConversation
}

// UpdateDraft replaces the draft input buffer, bounded to the maximum
// message length.
func (s *Session) UpdateDraft(text string) {
	if runes := []rune(text); len(runes) > model.MaxMessageLength {
		text = string(runes[:model.MaxMessageLength])
	}

	s.mu.Lock()
	s.draft = text
	s.mu.Unlock()
}

// Send submits the draft on the active channel and resolves with the
// reply appended. It reports false and changes nothing when the trimmed
// draft is empty, a response is already pending, or no channel is
// active. Send never fails: an unreachable responder is replaced by the
// localized fallback message.
func (s *Session) Send(ctx context.Context) bool {
	s.mu.Lock()

	text := strings.TrimSpace(s.draft)
	if text == "" || s.awaiting || s.state != StateActiveConversation || s.active == nil {
		s.mu.Unlock()
		return false
	}

	channel := *s.active

	userMsg := s.newMessage(channel, model.SenderUser, text)
	s.messages = append(s.messages, userMsg)
	s.draft = ""
	s.awaiting = true
	s.mu.Unlock()

	metrics.MessagesTotal.WithLabelValues(string(channel.Kind), string(model.SenderUser)).Inc()

	// Suspension point: single attempt, no retries, no lock held.
	reply, err := s.gateway.Respond(ctx, channel, text, s.locale)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.awaiting = false

	// The reply belongs in the log only while its channel is still the
	// active one. Anything else (picker, selection screen, another
	// channel) means the user left mid-flight.
	stillActive := s.state == StateActiveConversation &&
		s.active != nil && *s.active == channel

	if err != nil {
		s.logger.Warn("responder failed, substituting fallback",
			zap.String("channel", channel.String()),
			zap.Error(err),
		)
		metrics.FallbacksTotal.WithLabelValues(string(channel.Kind)).Inc()

		if !stillActive {
			// The user already left the channel; a synthesized
			// fallback has nothing to announce.
			return true
		}
		fallback := s.newMessage(channel, model.SenderFor(channel.Kind), i18n.Fallback(s.locale))
		s.messages = append(s.messages, fallback)
		return true
	}

	if !stillActive {
		// Reply resolved after a channel switch: it belongs to the old
		// channel, so it counts as unread there and raises an alert.
		s.recordInactive(channel, reply.Text)
		return true
	}

	s.messages = append(s.messages, *reply)
	metrics.MessagesTotal.WithLabelValues(string(channel.Kind), string(reply.Sender)).Inc()
	return true
}

// GoBack leaves the active conversation: to counterparty selection for
// counterparty threads, otherwise to channel selection. The log and
// draft are discarded.
func (s *Session) GoBack() {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateActiveConversation:
		toCounterparties := s.active != nil && s.active.Kind.RequiresCounterparty()
		s.active = nil
		s.messages = nil
		s.draft = ""
		if toCounterparties {
			s.state = StateCounterpartySelection
		} else {
			s.state = StateChannelSelection
		}
	case StateCounterpartySelection:
		s.state = StateChannelSelection
		s.counterparty = nil
	}
}

// Reset returns the session to its initial state, as when the
// conversation view is torn down. Unread counters are durable and
// survive; everything else is discarded.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateChannelSelection
	s.active = nil
	s.counterparty = nil
	s.messages = nil
	s.draft = ""
	s.awaiting = false
}

// HandleInbound processes an externally triggered receive event. A
// message for the active channel appends to the log; any other channel
// gets its unread counter bumped and one local alert.
func (s *Session) HandleInbound(ctx context.Context, req model.InboundMessageRequest) error {
	if !req.Kind.Valid() {
		return ErrUnknownChannel
	}
	if req.Kind.RequiresCounterparty() && strings.TrimSpace(req.CounterpartyID) == "" {
		// Without an id the counter would live under a bare key no
		// selectable channel ever reads or zeroes.
		return ErrMissingCounterparty
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return ErrEmptyMessage
	}

	key := model.ChannelKey{Kind: req.Kind, CounterpartyID: req.CounterpartyID}
	sender := req.Sender
	if sender == "" {
		sender = model.SenderFor(req.Kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil && *s.active == key {
		s.messages = append(s.messages, s.newMessage(key, sender, text))
		metrics.MessagesTotal.WithLabelValues(string(key.Kind), string(sender)).Inc()
		return nil
	}

	s.recordInactive(key, text)
	return nil
}

// recordInactive bumps the unread counter for a channel that is not
// active and dispatches one local alert. Caller holds the lock.
func (s *Session) recordInactive(key model.ChannelKey, text string) {
	k := key.String()
	s.setUnread(k, s.counters.Get(k)+1)

	s.notifier.Notify(i18n.AlertTitle(key.Kind, s.locale), text)
	metrics.AlertsTotal.WithLabelValues(string(key.Kind)).Inc()
}

func (s *Session) setUnread(key string, value int) {
	s.counters.Set(key, value)
	metrics.UnreadMessages.WithLabelValues(key).Set(float64(value))
}

func (s *Session) newMessage(channel model.ChannelKey, sender model.Sender, text string) model.Message {
	return model.Message{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Sender:    sender,
		Text:      text,
		Channel:   channel,
		Timestamp: time.Now(),
	}
}
