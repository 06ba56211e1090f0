package responder

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/ostazi/chat-core/internal/model"
)

// OpenAIResponder answers AI-assistant messages through the OpenAI API.
// It is an alternative backend to the project's own inference endpoint,
// selected by configuration.
type OpenAIResponder struct {
	client *openai.Client
	model  string
}

// NewOpenAIResponder creates a new OpenAI-backed responder.
func NewOpenAIResponder(apiKey, model string) (*OpenAIResponder, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &OpenAIResponder{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

// Respond sends one chat completion request and maps the first choice
// to an AI message. All failures map to ErrUnavailable.
func (r *OpenAIResponder) Respond(ctx context.Context, channel model.ChannelKey, text string, locale model.Locale) (*model.Message, error) {
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: assistantInstruction(locale)},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		MaxTokens: 512,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("%w: empty completion", ErrUnavailable)
	}

	return newMessage(channel, model.SenderAI, resp.Choices[0].Message.Content), nil
}

// assistantInstruction pins the reply language to the user's locale.
func assistantInstruction(locale model.Locale) string {
	switch locale {
	case model.LocaleArabic:
		return "You are a study assistant for a tutoring app. Reply in Arabic, briefly."
	case model.LocaleUrdu:
		return "You are a study assistant for a tutoring app. Reply in Urdu, briefly."
	default:
		return "You are a study assistant for a tutoring app. Reply in English, briefly."
	}
}
