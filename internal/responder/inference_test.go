package responder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ostazi/chat-core/internal/model"
)

var aiChannel = model.ChannelKey{Kind: model.ChannelAIAssistant}

func TestInferenceResponderSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req inferenceRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "2+2?", req.Message)
		assert.Equal(t, "en", req.Language)

		json.NewEncoder(w).Encode(inferenceResponse{Response: "4"})
	}))
	defer srv.Close()

	r := NewInferenceResponder(srv.URL, "tutoring", 5*time.Second)
	msg, err := r.Respond(context.Background(), aiChannel, "2+2?", model.LocaleEnglish)
	require.NoError(t, err)

	assert.Equal(t, "4", msg.Text)
	assert.Equal(t, model.SenderAI, msg.Sender)
	assert.Equal(t, aiChannel, msg.Channel)
	assert.NotEmpty(t, msg.ID)
}

func TestInferenceResponderNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	r := NewInferenceResponder(srv.URL, "", 5*time.Second)
	_, err := r.Respond(context.Background(), aiChannel, "hi", model.LocaleEnglish)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestInferenceResponderMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected": true`))
	}))
	defer srv.Close()

	r := NewInferenceResponder(srv.URL, "", 5*time.Second)
	_, err := r.Respond(context.Background(), aiChannel, "hi", model.LocaleEnglish)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestInferenceResponderEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(inferenceResponse{Response: ""})
	}))
	defer srv.Close()

	r := NewInferenceResponder(srv.URL, "", 5*time.Second)
	_, err := r.Respond(context.Background(), aiChannel, "hi", model.LocaleEnglish)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestInferenceResponderTransportError(t *testing.T) {
	r := NewInferenceResponder("http://127.0.0.1:1", "", time.Second)
	_, err := r.Respond(context.Background(), aiChannel, "hi", model.LocaleEnglish)
	assert.ErrorIs(t, err, ErrUnavailable)
}
