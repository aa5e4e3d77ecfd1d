// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"evently/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository is the credential store.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves the user whose email equals email exactly. No partial matching.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create inserts user and fills in its ID and timestamps.
	// It fails with domainerrors.ErrDuplicateCredential when the email is taken;
	// the storage-level unique constraint is the authority for that check.
	Create(ctx context.Context, user *entity.User) error
}
