package responder

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/ostazi/chat-core/internal/model"
)

// AnthropicResponder answers AI-assistant messages through the
// Anthropic API, as an alternative backend to the inference endpoint.
type AnthropicResponder struct {
	client *anthropic.Client
	model  string
}

// NewAnthropicResponder creates a new Anthropic-backed responder.
func NewAnthropicResponder(apiKey, model string) (*AnthropicResponder, error) {
	if apiKey == "" {
		return nil, errors.New("Anthropic API key is required")
	}
	if model == "" {
		model = "claude-3-5-haiku-20241022"
	}

	return &AnthropicResponder{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}, nil
}

// Respond sends one message request and concatenates the text blocks of
// the reply. All failures map to ErrUnavailable.
func (r *AnthropicResponder) Respond(ctx context.Context, channel model.ChannelKey, text string, locale model.Locale) (*model.Message, error) {
	prompt := assistantInstruction(locale) + "\n\n" + text

	resp, err := r.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.F(r.model),
		MaxTokens: anthropic.F(int64(512)),
		Messages: anthropic.F([]anthropic.MessageParam{
			{
				Role: anthropic.F(anthropic.MessageParamRoleUser),
				Content: anthropic.F([]anthropic.MessageParamContentUnion{
					anthropic.TextBlockParam{
						Type: anthropic.F(anthropic.TextBlockParamTypeText),
						Text: anthropic.F(prompt),
					},
				}),
			},
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var content string
	for _, block := range resp.Content {
		if block.Type == anthropic.ContentBlockTypeText {
			content += block.Text
		}
	}
	if content == "" {
		return nil, fmt.Errorf("%w: empty completion", ErrUnavailable)
	}

	return newMessage(channel, model.SenderAI, content), nil
}
