// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
// The plaintext password lives only for the duration of the call.
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VerifyTokenInput carries the bearer token to re-verify.
type VerifyTokenInput struct {
	Token string `json:"token" validate:"required"`
}

// --- Output DTOs ---

// UserView is the caller-facing projection of a user record: the identity
// claims subset only, never the password hash.
type UserView struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// AuthOutput is the common result of all three operations: the identity and
// a freshly issued token asserting it.
type AuthOutput struct {
	User  UserView `json:"user"`
	Token string   `json:"token"`
}

// AuthUsecase defines the interface for authentication operations.
// This is the contract that the delivery layer depends on.
type AuthUsecase interface {
	// Register creates a new user record and issues a token for it.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Login verifies credentials against the user directory and issues a token.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// VerifyToken validates an existing token and re-issues a fresh one from
	// its claims (sliding expiration). It does not consult the user directory.
	VerifyToken(ctx context.Context, input *VerifyTokenInput) (*AuthOutput, error)
}
