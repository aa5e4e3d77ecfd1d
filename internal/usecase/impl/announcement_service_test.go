package impl

import (
	"context"
	"testing"
	"time"

	"evently/config"
	"evently/internal/domain/constants"
	domainerrors "evently/internal/domain/errors"
	"evently/internal/domain/service"
	mockSvc "evently/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAnnouncement() *service.EventCreatedMessage {
	return &service.EventCreatedMessage{
		RequestID: "req-1",
		EventID:   uuid.NewString(),
		Title:     "Go meetup",
		Date:      time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC),
		Location:  "Taipei",
		CreatedBy: uuid.NewString(),
	}
}

func TestAnnouncementService_AnnounceEvent(t *testing.T) {
	notifier := mockSvc.NewMockNotificationService(t)
	svc := NewAnnouncementService(AnnouncementServiceParams{
		Notifier: notifier,
		Config:   &config.Config{Firebase: &config.FirebaseConfig{Topic: "taipei-events"}},
		Logger:   newDiscardLogger(),
	})

	ctx := context.Background()
	msg := newAnnouncement()
	wantData := map[string]string{
		"type":     constants.MessageTypeEventCreated,
		"event_id": msg.EventID,
	}

	notifier.EXPECT().
		SendTopicNotification(ctx, "taipei-events", "Go meetup", "Taipei, Sat, Mar 1 2025 18:00 UTC", wantData).
		Return(nil)

	require.NoError(t, svc.AnnounceEvent(ctx, msg))
}

func TestAnnouncementService_AnnounceEvent_DefaultTopic(t *testing.T) {
	notifier := mockSvc.NewMockNotificationService(t)
	svc := NewAnnouncementService(AnnouncementServiceParams{
		Notifier: notifier,
		Config:   &config.Config{},
		Logger:   newDiscardLogger(),
	})

	msg := newAnnouncement()
	msg.Title = ""
	msg.Location = ""

	notifier.EXPECT().
		SendTopicNotification(mock.Anything, "events", "New event", "Sat, Mar 1 2025 18:00 UTC", mock.Anything).
		Return(nil)

	require.NoError(t, svc.AnnounceEvent(context.Background(), msg))
}

func TestAnnouncementService_AnnounceEvent_Undeliverable(t *testing.T) {
	notifier := mockSvc.NewMockNotificationService(t)
	svc := NewAnnouncementService(AnnouncementServiceParams{
		Notifier: notifier,
		Logger:   newDiscardLogger(),
	})

	tests := []struct {
		name string
		msg  *service.EventCreatedMessage
	}{
		{name: "nil message", msg: nil},
		{name: "missing event id", msg: &service.EventCreatedMessage{Title: "x"}},
		{name: "malformed event id", msg: &service.EventCreatedMessage{EventID: "not-a-uuid"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.AnnounceEvent(context.Background(), tt.msg)

			var validationErr *domainerrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, "event_id", validationErr.Field())
		})
	}
}

func TestAnnouncementService_AnnounceEvent_NotifierFailure(t *testing.T) {
	notifier := mockSvc.NewMockNotificationService(t)
	svc := NewAnnouncementService(AnnouncementServiceParams{
		Notifier: notifier,
		Logger:   newDiscardLogger(),
	})

	sendErr := errors.New("fcm unavailable")
	notifier.EXPECT().
		SendTopicNotification(mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(sendErr)

	err := svc.AnnounceEvent(context.Background(), newAnnouncement())

	assert.ErrorIs(t, err, sendErr)
	var validationErr *domainerrors.ValidationError
	assert.False(t, errors.As(err, &validationErr))
}

func TestAnnouncementService_AnnounceEvent_WithoutNotifier(t *testing.T) {
	svc := NewAnnouncementService(AnnouncementServiceParams{Logger: newDiscardLogger()})

	assert.NoError(t, svc.AnnounceEvent(context.Background(), newAnnouncement()))
}
