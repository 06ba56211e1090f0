package session

import (
	"context"

	"github.com/ostazi/chat-core/internal/model"
)

// State returns the current selection-flow state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ActiveChannel returns a copy of the active channel key, or nil.
func (s *Session) ActiveChannel() *model.ChannelKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil
	}
	key := *s.active
	return &key
}

// Counterparty returns a copy of the selected counterparty, or nil.
func (s *Session) Counterparty() *model.Counterparty {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.counterparty == nil {
		return nil
	}
	cp := *s.counterparty
	return &cp
}

// Messages returns a copy of the active channel's ordered log.
func (s *Session) Messages() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Draft returns the current draft buffer.
func (s *Session) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Awaiting reports whether a responder call is in flight.
func (s *Session) Awaiting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.awaiting
}

// Unread returns the current unread counts for every known channel key:
// the two fixed channels plus each directory counterparty.
func (s *Session) Unread() map[string]int {
	keys := []string{
		model.ChannelKey{Kind: model.ChannelSupport}.String(),
		model.ChannelKey{Kind: model.ChannelAIAssistant}.String(),
	}
	if s.dir != nil {
		for _, cp := range s.dir.List(context.Background()) {
			keys = append(keys, model.ChannelKey{
				Kind:           model.ChannelCounterparty,
				CounterpartyID: cp.ID,
			}.String())
		}
	}

	out := make(map[string]int, len(keys))
	for _, k := range keys {
		out[k] = s.counters.Get(k)
	}
	return out
}

// Snapshot composes the full read view the presentation layer renders.
func (s *Session) Snapshot() model.SessionSnapshot {
	s.mu.Lock()
	messages := make([]model.Message, len(s.messages))
	copy(messages, s.messages)

	snap := model.SessionSnapshot{
		State:            string(s.state),
		Messages:         messages,
		Draft:            s.draft,
		AwaitingResponse: s.awaiting,
	}
	if s.active != nil {
		key := *s.active
		snap.ActiveChannel = &key
	}
	if s.counterparty != nil {
		cp := *s.counterparty
		snap.Counterparty = &cp
	}
	s.mu.Unlock()

	snap.Unread = s.Unread()
	return snap
}
