// Package responder abstracts how a sent message gets answered: a
// remote inference call for the AI assistant, or a simulated human reply
// for the support and counterparty channels.
package responder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ostazi/chat-core/internal/model"
	"github.com/ostazi/chat-core/pkg/metrics"
)

// ErrUnavailable is returned when a responder cannot produce a reply:
// transport error, timeout, non-success status, or malformed payload.
// The session recovers by substituting a localized fallback message.
var ErrUnavailable = errors.New("responder unavailable")

// Responder produces a reply to a message sent on a channel.
type Responder interface {
	// Respond returns the reply message for text sent on channel.
	// Each call is a single attempt; there are no internal retries.
	Respond(ctx context.Context, channel model.ChannelKey, text string, locale model.Locale) (*model.Message, error)
}

// Backend selects the AI-assistant implementation.
type Backend string

const (
	BackendInference Backend = "inference"
	BackendOpenAI    Backend = "openai"
	BackendAnthropic Backend = "anthropic"
)

// Gateway routes each channel kind to its responder: the configured AI
// backend for the assistant, the scripted stand-in for humans.
type Gateway struct {
	ai       Responder
	scripted Responder
}

// NewGateway creates a gateway from the two branch responders.
func NewGateway(ai, scripted Responder) *Gateway {
	return &Gateway{
		ai:       ai,
		scripted: scripted,
	}
}

// Respond dispatches to the responder for the channel kind.
func (g *Gateway) Respond(ctx context.Context, channel model.ChannelKey, text string, locale model.Locale) (*model.Message, error) {
	start := time.Now()

	var (
		reply   *model.Message
		err     error
		backend string
	)
	switch channel.Kind {
	case model.ChannelAIAssistant:
		backend = "ai"
		reply, err = g.ai.Respond(ctx, channel, text, locale)
	default:
		backend = "scripted"
		reply, err = g.scripted.Respond(ctx, channel, text, locale)
	}

	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.RecordResponder(backend, status, time.Since(start).Seconds())

	return reply, err
}

// AIOptions configures the AI-assistant backend.
type AIOptions struct {
	InferenceURL     string
	InferenceContext string
	InferenceTimeout time.Duration
	OpenAIAPIKey     string
	AnthropicAPIKey  string
	Model            string
}

// NewAIResponder creates the AI-assistant responder for the configured
// backend.
func NewAIResponder(backend Backend, opts AIOptions) (Responder, error) {
	switch backend {
	case BackendOpenAI:
		return NewOpenAIResponder(opts.OpenAIAPIKey, opts.Model)
	case BackendAnthropic:
		return NewAnthropicResponder(opts.AnthropicAPIKey, opts.Model)
	case BackendInference, "":
		if opts.InferenceURL == "" {
			return nil, errors.New("inference endpoint URL is required")
		}
		return NewInferenceResponder(opts.InferenceURL, opts.InferenceContext, opts.InferenceTimeout), nil
	default:
		return nil, fmt.Errorf("unknown responder backend %q", backend)
	}
}

// newMessage builds a reply message for a channel.
func newMessage(channel model.ChannelKey, sender model.Sender, text string) *model.Message {
	return &model.Message{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Sender:    sender,
		Text:      text,
		Channel:   channel,
		Timestamp: time.Now(),
	}
}
