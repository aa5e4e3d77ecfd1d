package service

import (
	"github.com/google/uuid"
)

// QRCodeService renders share codes for events
type QRCodeService interface {
	// GenerateEventQR returns a PNG QR code pointing at the event's public URL
	GenerateEventQR(eventID uuid.UUID) ([]byte, error)
}
