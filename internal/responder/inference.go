package responder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ostazi/chat-core/internal/model"
)

// inferenceRequest is the body sent to the inference endpoint.
type inferenceRequest struct {
	Message  string `json:"message"`
	Language string `json:"language"`
	Context  string `json:"context"`
}

// inferenceResponse is the expected success body.
type inferenceResponse struct {
	Response string `json:"response"`
}

// InferenceResponder answers AI-assistant messages through the external
// inference endpoint: one POST per send, no retries.
type InferenceResponder struct {
	url         string
	contextHint string
	client      *http.Client
}

// NewInferenceResponder creates a responder for the given endpoint URL.
func NewInferenceResponder(url, contextHint string, timeout time.Duration) *InferenceResponder {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &InferenceResponder{
		url:         url,
		contextHint: contextHint,
		client:      &http.Client{Timeout: timeout},
	}
}

// Respond issues the inference call. Any transport error, non-2xx
// status, or body not matching the contract maps to ErrUnavailable.
func (r *InferenceResponder) Respond(ctx context.Context, channel model.ChannelKey, text string, locale model.Locale) (*model.Message, error) {
	body, err := json.Marshal(inferenceRequest{
		Message:  text,
		Language: string(locale),
		Context:  r.contextHint,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var parsed inferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	if parsed.Response == "" {
		return nil, fmt.Errorf("%w: empty response body", ErrUnavailable)
	}

	return newMessage(channel, model.SenderAI, parsed.Response), nil
}
