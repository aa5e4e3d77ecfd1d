package impl

import (
	"context"
	"log/slog"

	deliverycontext "evently/internal/delivery/context"
	"evently/internal/domain/entity"
	domainerrors "evently/internal/domain/errors"
	"evently/internal/domain/repository"
	"evently/internal/domain/service"
	"evently/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type eventService struct {
	txManager repository.TransactionManager
	eventRepo repository.EventRepository
	publisher service.EventPublisher
	qrCodeSvc service.QRCodeService
	logger    *slog.Logger
}

// EventServiceParams holds dependencies for EventService, injected by Fx.
type EventServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	EventRepo repository.EventRepository
	Publisher service.EventPublisher
	QRCodeSvc service.QRCodeService
	Logger    *slog.Logger
}

// NewEventService is the constructor for eventService.
func NewEventService(params EventServiceParams) usecase.EventUsecase {
	return &eventService{
		txManager: params.TxManager,
		eventRepo: params.EventRepo,
		publisher: params.Publisher,
		qrCodeSvc: params.QRCodeSvc,
		logger:    params.Logger,
	}
}

func (srv *eventService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateEvent stores the event, reads it back with its creator and announces it.
// A failed announcement is logged and never fails the request.
func (srv *eventService) CreateEvent(ctx context.Context, creatorID uuid.UUID, input *usecase.CreateEventInput) (*entity.Event, error) {
	newEvent := &entity.Event{
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		Location:    input.Location,
		Capacity:    input.Capacity,
		Coordinates: input.Coordinates,
		CreatedBy:   creatorID,
	}

	var createdEvent *entity.Event
	if err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		eventRepo := repoFactory.EventRepo()

		if err := eventRepo.Create(ctx, newEvent); err != nil {
			return errors.Wrap(err, "failed to create event")
		}

		stored, err := eventRepo.FindByID(ctx, newEvent.ID)
		if err != nil {
			return errors.Wrap(err, "failed to load created event")
		}
		createdEvent = stored

		return nil
	}); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Event created",
		slog.String("eventID", createdEvent.ID.String()),
		slog.String("creatorID", creatorID.String()),
	)

	srv.announce(ctx, createdEvent)

	return createdEvent, nil
}

func (srv *eventService) announce(ctx context.Context, event *entity.Event) {
	if srv.publisher == nil {
		return
	}

	msg := &service.EventCreatedMessage{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		EventID:   event.ID.String(),
		Title:     event.Title,
		Date:      event.Date,
		Location:  event.Location,
		CreatedBy: event.CreatedBy.String(),
	}

	if err := srv.publisher.PublishEventCreated(ctx, msg); err != nil {
		srv.log(ctx).Warn("Failed to publish event announcement",
			slog.String("eventID", msg.EventID),
			slog.Any("error", err),
		)
	}
}

// ListEvents returns all events, optionally restricted to a radius around a point.
func (srv *eventService) ListEvents(ctx context.Context, input *usecase.ListEventsInput) ([]*entity.Event, error) {
	events, err := srv.eventRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list events")
	}

	if input == nil || input.Near == nil {
		return events, nil
	}

	return filterNearby(events, input.Near), nil
}

// filterNearby keeps events whose coordinates lie within the filter radius.
// Events without coordinates never match.
func filterNearby(events []*entity.Event, near *usecase.NearbyFilter) []*entity.Event {
	origin := orb.Point{near.Longitude, near.Latitude}
	radiusMeters := near.RadiusKm * 1000

	nearby := make([]*entity.Event, 0, len(events))
	for _, event := range events {
		if event.Coordinates == nil {
			continue
		}

		position := orb.Point{event.Coordinates.Longitude, event.Coordinates.Latitude}
		if geo.DistanceHaversine(origin, position) <= radiusMeters {
			nearby = append(nearby, event)
		}
	}

	return nearby
}

// GetEvent returns one event with its creator.
func (srv *eventService) GetEvent(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	event, err := srv.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, errors.Wrap(domainerrors.ErrEventNotFound, id.String())
		}

		return nil, errors.Wrap(err, "failed to find event")
	}

	return event, nil
}

// EventShareQR renders a QR code that links to the event.
func (srv *eventService) EventShareQR(ctx context.Context, id uuid.UUID) ([]byte, error) {
	event, err := srv.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrCodeSvc.GenerateEventQR(event.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to generate share code", slog.String("eventID", event.ID.String()), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrQRCodeFailed, err.Error())
	}

	return png, nil
}
