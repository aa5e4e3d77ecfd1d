package entity

import (
	"time"

	"github.com/google/uuid"
)

// Event is a scheduled gathering created by an authenticated user.
type Event struct {
	ID          uuid.UUID
	Title       string
	Description string
	Date        time.Time
	Location    string
	Capacity    int
	TicketsSold int
	CreatedBy   uuid.UUID
	Creator     *EventCreator // Populated on reads; nil when the creator is unknown.
	Coordinates *Coordinates  // Optional position used by nearby searches.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EventCreator is the public projection of the user who created an event.
type EventCreator struct {
	ID   uuid.UUID
	Name string
}

// Coordinates is a WGS84 position.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}
