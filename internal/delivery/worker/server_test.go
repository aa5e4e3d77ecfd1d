package worker

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"evently/config"
	"evently/internal/delivery/worker/handler"
	"evently/internal/domain/service"
	mockUsecase "evently/internal/mocks/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestWorker(t *testing.T) (http.Handler, *mockUsecase.MockAnnouncementUsecase) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{}
	announcementUC := mockUsecase.NewMockAnnouncementUsecase(t)

	pushHandler := handler.NewPushHandler(handler.PushHandlerParams{
		Config:         cfg,
		Logger:         logger,
		AnnouncementUC: announcementUC,
	})

	return newEcho(cfg, logger, pushHandler), announcementUC
}

func TestWorker_Health(t *testing.T) {
	e, _ := newTestWorker(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestWorker_PushRoute(t *testing.T) {
	e, announcementUC := newTestWorker(t)

	announcementUC.EXPECT().
		AnnounceEvent(mock.Anything, mock.MatchedBy(func(msg *service.EventCreatedMessage) bool {
			return msg.EventID == "4f1c2a9e-8a42-4b8e-9d4b-0f3f8c3c2b10"
		})).
		Return(nil).
		Once()

	data, err := json.Marshal(service.EventCreatedMessage{EventID: "4f1c2a9e-8a42-4b8e-9d4b-0f3f8c3c2b10", Title: "Go meetup"})
	require.NoError(t, err)

	var push handler.PubSubMessage
	push.Message.Data = base64.StdEncoding.EncodeToString(data)
	body, err := json.Marshal(push)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", "req-push-1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-push-1", rec.Header().Get("X-Request-Id"))
}
