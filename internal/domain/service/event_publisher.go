package service

import (
	"context"
	"time"
)

// EventCreatedMessage announces a newly stored event to downstream consumers.
type EventCreatedMessage struct {
	RequestID string    `json:"request_id,omitempty"` // For distributed tracing
	EventID   string    `json:"event_id"`
	Title     string    `json:"title"`
	Date      time.Time `json:"date"`
	Location  string    `json:"location"`
	CreatedBy string    `json:"created_by"`
}

// EventPublisher defines the interface for publishing announcements to a message queue
type EventPublisher interface {
	// PublishEventCreated publishes an announcement for async processing
	PublishEventCreated(ctx context.Context, msg *EventCreatedMessage) error

	// Close releases any resources held by the publisher
	Close() error
}
