// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"evently/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new user.
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's basic information.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput carries the bearer token issued on a successful login.
type LoginOutput struct {
	Token     string
	ExpiresIn time.Duration
	User      *entity.User
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	// Register stores a new user. A taken email yields ErrDuplicateCredential.
	Register(ctx context.Context, input *RegisterUserInput) (*RegisterOutput, error)

	// Login returns ErrInvalidCredentials for an unknown email and for a wrong password alike.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}
