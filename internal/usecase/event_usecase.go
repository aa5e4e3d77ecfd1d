package usecase

import (
	"context"
	"time"

	"evently/internal/domain/entity"
	"evently/internal/domain/service"

	"github.com/google/uuid"
)

// CreateEventInput holds the validated fields of a new event.
type CreateEventInput struct {
	Title       string
	Description string
	Date        time.Time
	Location    string
	Capacity    int
	Coordinates *entity.Coordinates
}

// NearbyFilter restricts a listing to events within RadiusKm of a point.
type NearbyFilter struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
}

// ListEventsInput holds optional listing filters.
type ListEventsInput struct {
	Near *NearbyFilter
}

// EventUsecase defines the event operations exposed over HTTP.
type EventUsecase interface {
	// CreateEvent stores an event owned by creatorID and announces it.
	CreateEvent(ctx context.Context, creatorID uuid.UUID, input *CreateEventInput) (*entity.Event, error)

	ListEvents(ctx context.Context, input *ListEventsInput) ([]*entity.Event, error)

	// GetEvent returns ErrEventNotFound when no event has this id.
	GetEvent(ctx context.Context, id uuid.UUID) (*entity.Event, error)

	// EventShareQR renders the share code of an existing event.
	EventShareQR(ctx context.Context, id uuid.UUID) ([]byte, error)
}

// AnnouncementUsecase fans event announcements out to subscribed devices.
type AnnouncementUsecase interface {
	// AnnounceEvent returns a ValidationError for announcements that can never be delivered.
	AnnounceEvent(ctx context.Context, msg *service.EventCreatedMessage) error
}
