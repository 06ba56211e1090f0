package responder

import (
	"context"
	"fmt"
	"time"

	"github.com/ostazi/chat-core/internal/i18n"
	"github.com/ostazi/chat-core/internal/model"
)

// DefaultScriptedDelay approximates human response latency.
const DefaultScriptedDelay = 1200 * time.Millisecond

// ScriptedResponder simulates the support desk and counterparty threads:
// a fixed delay, then a deterministic localized acknowledgement.
//
// This is a documented placeholder. Real support/teacher delivery lives
// in an external backend; swapping it in replaces this type behind the
// Responder interface without touching the session.
type ScriptedResponder struct {
	delay time.Duration
}

// NewScriptedResponder creates a scripted responder with the given
// artificial delay. A zero delay uses DefaultScriptedDelay.
func NewScriptedResponder(delay time.Duration) *ScriptedResponder {
	if delay == 0 {
		delay = DefaultScriptedDelay
	}
	return &ScriptedResponder{delay: delay}
}

// Respond waits the simulated latency and returns the acknowledgement
// for the channel's role.
func (r *ScriptedResponder) Respond(ctx context.Context, channel model.ChannelKey, text string, locale model.Locale) (*model.Message, error) {
	select {
	case <-time.After(r.delay):
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
	}

	return newMessage(channel, model.SenderFor(channel.Kind), i18n.Acknowledgement(channel.Kind, locale)), nil
}
