// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a single registered account. Records are created by
// registration and read by login; the core never mutates or deletes them.
type User struct {
	ID           uuid.UUID // The unique identifier for the user.
	Email        string    // The user's login identifier. Unique across all records.
	Name         string    // The user's display name.
	PasswordHash string    // The bcrypt hash of the user's password. Never the plaintext, never empty once created.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this record.
}
