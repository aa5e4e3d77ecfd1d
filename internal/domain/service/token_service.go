package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Token verification failures. Callers map all of them to the same client outcome
// but they stay distinguishable for logging and tests.
var (
	ErrTokenInvalidSignature = errors.New("token signature is invalid")
	ErrTokenExpired          = errors.New("token is expired")
	ErrTokenMalformed        = errors.New("token is malformed")
)

// TokenService issues and verifies signed, time-bounded bearer tokens.
type TokenService interface {
	// Issue creates a token for subjectID that expires TTL() after issuance.
	Issue(subjectID uuid.UUID) (string, error)

	// Verify checks the signature, then expiry, then returns the subject.
	// Errors wrap one of ErrTokenInvalidSignature, ErrTokenExpired or ErrTokenMalformed.
	Verify(token string) (uuid.UUID, error)

	// TTL returns the lifetime of issued tokens.
	TTL() time.Duration
}
