package middleware

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/ostazi/chat-core/internal/model"
)

// ValidateMessageText validates user-authored message text.
func ValidateMessageText(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.New("text cannot be empty")
	}
	if utf8.RuneCountInString(text) > model.MaxMessageLength {
		return errors.New("text exceeds maximum length")
	}
	if !utf8.ValidString(text) {
		return errors.New("text must be valid UTF-8")
	}
	return nil
}

// ValidateChannelKind validates a channel kind value.
func ValidateChannelKind(kind model.ChannelKind) error {
	if !kind.Valid() {
		return errors.New("unknown channel kind")
	}
	return nil
}

// ValidateCounterpartyID validates a counterparty id.
func ValidateCounterpartyID(id string) error {
	if id == "" {
		return errors.New("counterparty id cannot be empty")
	}
	if len(id) > 64 {
		return errors.New("counterparty id exceeds maximum length")
	}
	return nil
}
