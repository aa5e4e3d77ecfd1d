// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is an identity record owned by the credential store.
type User struct {
	ID           uuid.UUID // Assigned by the store on insert, immutable afterwards.
	Email        string    // Login identifier, unique across users in its normalised form.
	PasswordHash string    // Produced by the password hasher. Never the plaintext, never serialised to clients.
	Name         string    // Display name, not unique.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail returns the form of email that is stored and compared.
// Emails are trimmed and lower-cased, so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
