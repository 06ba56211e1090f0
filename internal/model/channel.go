// Package model defines data structures for the conversation core.
package model

import (
	"fmt"
)

// ChannelKind identifies one of the addressable conversation contexts.
type ChannelKind string

const (
	ChannelSupport      ChannelKind = "support"
	ChannelAIAssistant  ChannelKind = "ai_assistant"
	ChannelCounterparty ChannelKind = "counterparty"
)

// Valid reports whether k is one of the known channel kinds.
func (k ChannelKind) Valid() bool {
	switch k {
	case ChannelSupport, ChannelAIAssistant, ChannelCounterparty:
		return true
	}
	return false
}

// RequiresCounterparty reports whether the kind needs a selected
// counterparty before a conversation can open.
func (k ChannelKind) RequiresCounterparty() bool {
	return k == ChannelCounterparty
}

// ChannelKey addresses a single conversation context: a kind plus, for
// counterparty threads, the counterparty id. It is the unit unread
// counters are keyed by.
type ChannelKey struct {
	Kind           ChannelKind `json:"kind"`
	CounterpartyID string      `json:"counterparty_id,omitempty"`
}

// String composes the key into the single string form used by the
// counter store, e.g. "support" or "counterparty:t-17".
func (c ChannelKey) String() string {
	if c.Kind == ChannelCounterparty && c.CounterpartyID != "" {
		return fmt.Sprintf("%s:%s", c.Kind, c.CounterpartyID)
	}
	return string(c.Kind)
}

// Locale is the language synthesized text is rendered in.
type Locale string

const (
	LocaleArabic  Locale = "ar"
	LocaleEnglish Locale = "en"
	LocaleUrdu    Locale = "ur"
)

// Valid reports whether l is a supported locale.
func (l Locale) Valid() bool {
	switch l {
	case LocaleArabic, LocaleEnglish, LocaleUrdu:
		return true
	}
	return false
}
