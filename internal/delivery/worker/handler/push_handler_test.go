package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"evently/config"
	deliverycontext "evently/internal/delivery/context"
	"evently/internal/domain/constants"
	domainerrors "evently/internal/domain/errors"
	"evently/internal/domain/service"
	mockUsecase "evently/internal/mocks/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestPushHandler(announcementUC *mockUsecase.MockAnnouncementUsecase) *PushHandler {
	return NewPushHandler(PushHandlerParams{
		Config:         &config.Config{},
		Logger:         newDiscardLogger(),
		AnnouncementUC: announcementUC,
	})
}

func encodeAnnouncement(t *testing.T, msg *service.EventCreatedMessage) string {
	t.Helper()

	data, err := json.Marshal(msg)
	require.NoError(t, err)

	return base64.StdEncoding.EncodeToString(data)
}

func newPushBody(t *testing.T, data string, attributes map[string]string) string {
	t.Helper()

	var push PubSubMessage
	push.Message.Data = data
	push.Message.Attributes = attributes
	push.Message.MessageID = "msg-1"
	push.Subscription = "projects/evently/subscriptions/event-created-push"

	body, err := json.Marshal(push)
	require.NoError(t, err)

	return string(body)
}

func newPushContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func sampleAnnouncement() *service.EventCreatedMessage {
	return &service.EventCreatedMessage{
		EventID:   "4f1c2a9e-8a42-4b8e-9d4b-0f3f8c3c2b10",
		Title:     "Go meetup",
		Date:      time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC),
		Location:  "Taipei",
		CreatedBy: "0b7e3f0e-2f5d-4e0a-9f3c-9d6f1f7c8a21",
	}
}

func TestPushHandler_HandlePush_Success(t *testing.T) {
	announcementUC := mockUsecase.NewMockAnnouncementUsecase(t)
	h := newTestPushHandler(announcementUC)

	msg := sampleAnnouncement()
	msg.RequestID = "req-from-payload"

	announcementUC.EXPECT().
		AnnounceEvent(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, got *service.EventCreatedMessage) error {
			assert.Equal(t, msg.EventID, got.EventID)
			assert.Equal(t, msg.Title, got.Title)
			assert.True(t, msg.Date.Equal(got.Date))
			assert.Equal(t, "req-from-attributes", deliverycontext.GetRequestIDFromContext(ctx))

			return nil
		}).
		Once()

	c, rec := newPushContext(newPushBody(t, encodeAnnouncement(t, msg), map[string]string{
		"type":       constants.MessageTypeEventCreated,
		"request_id": "req-from-attributes",
	}))

	require.NoError(t, h.HandlePush(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPushHandler_HandlePush_BadEnvelope(t *testing.T) {
	tests := []struct {
		name string
		body func(t *testing.T) string
	}{
		{
			name: "not json",
			body: func(t *testing.T) string { return "{not json" },
		},
		{
			name: "data is not base64",
			body: func(t *testing.T) string { return newPushBody(t, "%%%", nil) },
		},
		{
			name: "data is not an announcement",
			body: func(t *testing.T) string {
				return newPushBody(t, base64.StdEncoding.EncodeToString([]byte("[1,2,3]")), nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			announcementUC := mockUsecase.NewMockAnnouncementUsecase(t)
			h := newTestPushHandler(announcementUC)

			c, rec := newPushContext(tt.body(t))

			require.NoError(t, h.HandlePush(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			announcementUC.AssertNotCalled(t, "AnnounceEvent", mock.Anything, mock.Anything)
		})
	}
}

func TestPushHandler_HandlePush_AnnouncementErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "undeliverable announcement is acknowledged",
			err:        domainerrors.NewValidationError("event_id", "event_id must be a UUID"),
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrapped validation error is acknowledged",
			err:        errors.Wrap(domainerrors.NewValidationError("event_id", "event_id is required"), "announce"),
			wantStatus: http.StatusOK,
		},
		{
			name:       "notification failure is retried",
			err:        errors.New("firebase unavailable"),
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			announcementUC := mockUsecase.NewMockAnnouncementUsecase(t)
			h := newTestPushHandler(announcementUC)

			announcementUC.EXPECT().
				AnnounceEvent(mock.Anything, mock.Anything).
				Return(tt.err).
				Once()

			c, rec := newPushContext(newPushBody(t, encodeAnnouncement(t, sampleAnnouncement()), nil))

			require.NoError(t, h.HandlePush(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestPushHandler_HandlePush_IgnoresOtherMessageTypes(t *testing.T) {
	announcementUC := mockUsecase.NewMockAnnouncementUsecase(t)
	h := newTestPushHandler(announcementUC)

	c, rec := newPushContext(newPushBody(t, encodeAnnouncement(t, sampleAnnouncement()), map[string]string{
		"type": "event.deleted",
	}))

	require.NoError(t, h.HandlePush(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	announcementUC.AssertNotCalled(t, "AnnounceEvent", mock.Anything, mock.Anything)
}

func TestPushHandler_HandlePush_VerifiesToken(t *testing.T) {
	announcementUC := mockUsecase.NewMockAnnouncementUsecase(t)
	h := newTestPushHandler(announcementUC)
	h.verifyPushAuth = true
	h.verifyToken = func(*http.Request) error {
		return errors.New("invalid audience")
	}

	c, rec := newPushContext(newPushBody(t, encodeAnnouncement(t, sampleAnnouncement()), nil))

	require.NoError(t, h.HandlePush(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	announcementUC.AssertNotCalled(t, "AnnounceEvent", mock.Anything, mock.Anything)
}

func TestNewPushHandler_VerifyPushAuth(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		provider string
		want     bool
	}{
		{name: "google in production", env: constants.EnvProduction, provider: constants.PubSubProviderGoogle, want: true},
		{name: "google in develop", env: constants.EnvDevelop, provider: constants.PubSubProviderGoogle, want: false},
		{name: "local in production", env: constants.EnvProduction, provider: constants.PubSubProviderLocal, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{PubSub: &config.PubSubConfig{Provider: tt.provider}}
			cfg.Env.Env = tt.env

			h := NewPushHandler(PushHandlerParams{
				Config:         cfg,
				Logger:         newDiscardLogger(),
				AnnouncementUC: mockUsecase.NewMockAnnouncementUsecase(t),
			})

			assert.Equal(t, tt.want, h.verifyPushAuth)
		})
	}
}

func TestPushHandler_ExtractRequestID(t *testing.T) {
	h := newTestPushHandler(mockUsecase.NewMockAnnouncementUsecase(t))

	var push PubSubMessage
	msg := &service.EventCreatedMessage{}

	ctx := deliverycontext.WithRequestID(context.Background(), "req-from-context")
	assert.Equal(t, "req-from-context", h.extractRequestID(ctx, &push, msg))

	msg.RequestID = "req-from-payload"
	assert.Equal(t, "req-from-payload", h.extractRequestID(ctx, &push, msg))

	push.Message.Attributes = map[string]string{"request_id": "req-from-attributes"}
	assert.Equal(t, "req-from-attributes", h.extractRequestID(ctx, &push, msg))

	generated := h.extractRequestID(context.Background(), &PubSubMessage{}, &service.EventCreatedMessage{})
	assert.Len(t, generated, 36)
}

func TestVerifyPubSubToken_RejectsMissingBearer(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/push", nil)
	require.Error(t, verifyPubSubToken(req))

	req.Header.Set("Authorization", "Basic abc")
	require.Error(t, verifyPubSubToken(req))
}
