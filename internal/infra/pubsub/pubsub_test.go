package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"evently/config"
	"evently/internal/domain/constants"
	"evently/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLocalHTTPPublisher_PublishEventCreated(t *testing.T) {
	msg := &service.EventCreatedMessage{
		RequestID: "req-1",
		EventID:   "5f0c9c4e-1c7e-4a54-8f5b-0d7c3f1a2b3c",
		Title:     "Go meetup",
		Date:      time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC),
		Location:  "Taipei",
		CreatedBy: "user-1",
	}

	var received PubSubPushMessage
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, discardLogger())
	require.NoError(t, publisher.PublishEventCreated(context.Background(), msg))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, constants.MessageTypeEventCreated, received.Message.Attributes["type"])
	assert.Equal(t, msg.EventID, received.Message.Attributes["event_id"])
	assert.Equal(t, "req-1", received.Message.Attributes["request_id"])
	assert.NotEmpty(t, received.Message.MessageID)

	data, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)

	var decoded service.EventCreatedMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, msg.EventID, decoded.EventID)
	assert.Equal(t, msg.Title, decoded.Title)
	assert.True(t, msg.Date.Equal(decoded.Date))
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, discardLogger())
	err := publisher.PublishEventCreated(context.Background(), &service.EventCreatedMessage{EventID: "e"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestMessageAttributes_OmitsEmptyRequestID(t *testing.T) {
	attrs := messageAttributes(&service.EventCreatedMessage{EventID: "e"})
	assert.Equal(t, map[string]string{"type": constants.MessageTypeEventCreated, "event_id": "e"}, attrs)
}

func TestNewEventPublisher(t *testing.T) {
	tests := []struct {
		name    string
		pubsub  *config.PubSubConfig
		wantErr string
	}{
		{name: "not configured"},
		{name: "empty provider", pubsub: &config.PubSubConfig{}},
		{name: "local without endpoint", pubsub: &config.PubSubConfig{Provider: constants.PubSubProviderLocal}, wantErr: "local endpoint"},
		{name: "google without project", pubsub: &config.PubSubConfig{Provider: constants.PubSubProviderGoogle}, wantErr: "project ID"},
		{name: "google without topic", pubsub: &config.PubSubConfig{Provider: constants.PubSubProviderGoogle, ProjectID: "p"}, wantErr: "topic ID"},
		{name: "unknown provider", pubsub: &config.PubSubConfig{Provider: "kafka"}, wantErr: "unknown pubsub provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			publisher, err := NewEventPublisher(PublisherParams{
				Ctx:    context.Background(),
				Config: &config.Config{PubSub: tt.pubsub},
				Logger: discardLogger(),
			})
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}
			require.NoError(t, err)
			assert.IsType(t, &noopPublisher{}, publisher)
			assert.NoError(t, publisher.PublishEventCreated(context.Background(), &service.EventCreatedMessage{EventID: "e"}))
			assert.NoError(t, publisher.Close())
		})
	}
}
