package repository

import (
	"context"
	"errors"

	"evently/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrEventNotFound is returned when no event has the requested ID.
var ErrEventNotFound = errors.New("event not found")

// EventRepository persists events.
type EventRepository interface {
	// Create inserts event and fills in its ID, TicketsSold and timestamps.
	Create(ctx context.Context, event *entity.Event) error

	// List returns all events with their creator populated, ordered by date then creation time.
	List(ctx context.Context) ([]*entity.Event, error)

	// FindByID returns a single event with its creator populated.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
}
