package model

import (
	"time"
)

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser         Sender = "user"
	SenderSupport      Sender = "support"
	SenderAI           Sender = "ai"
	SenderCounterparty Sender = "counterparty"
)

// MaxMessageLength bounds the text of a single message.
const MaxMessageLength = 500

// SenderFor returns the non-user role that answers on a channel.
func SenderFor(kind ChannelKind) Sender {
	switch kind {
	case ChannelAIAssistant:
		return SenderAI
	case ChannelCounterparty:
		return SenderCounterparty
	default:
		return SenderSupport
	}
}

// Message is a single conversation entry. Messages are immutable once
// created; a channel log only ever appends them.
type Message struct {
	// Identity. IDs are UUIDv7, so creation order sorts.
	ID string `json:"id"`

	// Content
	Sender Sender `json:"sender"`
	Text   string `json:"text"`

	// Context
	Channel ChannelKey `json:"channel"`

	// Timestamps
	Timestamp time.Time `json:"timestamp"`
}

// SelectChannelRequest asks the session to activate a channel.
type SelectChannelRequest struct {
	Kind           ChannelKind `json:"kind"`
	CounterpartyID string      `json:"counterparty_id,omitempty"`
}

// UpdateDraftRequest replaces the session's draft input buffer.
type UpdateDraftRequest struct {
	Text string `json:"text"`
}

// InboundMessageRequest carries an externally triggered receive event
// for a channel, active or not.
type InboundMessageRequest struct {
	Kind           ChannelKind `json:"kind"`
	CounterpartyID string      `json:"counterparty_id,omitempty"`
	Sender         Sender      `json:"sender"`
	Text           string      `json:"text"`
}

// SessionSnapshot is the read view the presentation layer renders from.
type SessionSnapshot struct {
	State            string         `json:"state"`
	ActiveChannel    *ChannelKey    `json:"active_channel,omitempty"`
	Counterparty     *Counterparty  `json:"counterparty,omitempty"`
	Messages         []Message      `json:"messages"`
	Draft            string         `json:"draft"`
	AwaitingResponse bool           `json:"awaiting_response"`
	Unread           map[string]int `json:"unread"`
}
