package impl

import (
	"context"
	"fmt"
	"log/slog"

	"evently/config"
	deliverycontext "evently/internal/delivery/context"
	"evently/internal/domain/constants"
	domainerrors "evently/internal/domain/errors"
	"evently/internal/domain/service"
	"evently/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultAnnouncementTopic = "events"
	announcementDateLayout   = "Mon, Jan 2 2006 15:04 MST"
)

type announcementService struct {
	notifier service.NotificationService
	topic    string
	logger   *slog.Logger
}

// AnnouncementServiceParams holds dependencies for AnnouncementService, injected by Fx.
type AnnouncementServiceParams struct {
	fx.In

	Notifier service.NotificationService `optional:"true"`
	Config   *config.Config
	Logger   *slog.Logger
}

// NewAnnouncementService is the constructor for announcementService.
// A nil notifier turns announcements into logged no-ops.
func NewAnnouncementService(params AnnouncementServiceParams) usecase.AnnouncementUsecase {
	topic := defaultAnnouncementTopic
	if params.Config != nil && params.Config.Firebase != nil && params.Config.Firebase.Topic != "" {
		topic = params.Config.Firebase.Topic
	}

	return &announcementService{
		notifier: params.Notifier,
		topic:    topic,
		logger:   params.Logger,
	}
}

func (srv *announcementService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AnnounceEvent pushes a notification about a new event to the announcement topic.
func (srv *announcementService) AnnounceEvent(ctx context.Context, msg *service.EventCreatedMessage) error {
	if msg == nil || msg.EventID == "" {
		return domainerrors.NewValidationError("event_id", "event_id is required")
	}
	if _, err := uuid.Parse(msg.EventID); err != nil {
		return domainerrors.NewValidationError("event_id", "event_id must be a valid UUID")
	}

	logger := srv.log(ctx).With(slog.String("eventID", msg.EventID))
	if msg.RequestID != "" {
		logger = logger.With(slog.String("request_id", msg.RequestID))
	}

	if srv.notifier == nil {
		logger.Warn("Notification service not configured, announcement dropped")

		return nil
	}

	data := map[string]string{
		"type":     constants.MessageTypeEventCreated,
		"event_id": msg.EventID,
	}

	if err := srv.notifier.SendTopicNotification(ctx, srv.topic, announcementTitle(msg), announcementBody(msg), data); err != nil {
		return errors.Wrap(err, "failed to send event announcement")
	}

	logger.Info("Event announced", slog.String("topic", srv.topic))

	return nil
}

func announcementTitle(msg *service.EventCreatedMessage) string {
	if msg.Title == "" {
		return "New event"
	}

	return msg.Title
}

func announcementBody(msg *service.EventCreatedMessage) string {
	date := msg.Date.UTC().Format(announcementDateLayout)
	if msg.Location == "" {
		return date
	}

	return fmt.Sprintf("%s, %s", msg.Location, date)
}
