package service

import (
	"time"

	"github.com/google/uuid"
)

// IdentityClaims is the subset of a user record that is safe to embed in a
// token: no password material and no timing fields. Verify returns exactly
// this set; issued-at and expiry are handled inside the codec.
type IdentityClaims struct {
	UserID uuid.UUID
	Name   string
	Email  string
}

// TokenService defines the interface for issuing and verifying signed identity tokens.
// This abstracts the details of token encoding from the use cases.
type TokenService interface {
	// Issue creates a signed, time-bounded token embedding the given claims.
	Issue(claims IdentityClaims) (string, error)

	// Verify checks the signature and expiry of a token string and decodes
	// its identity claims. Tampered, malformed and expired tokens all fail.
	Verify(tokenString string) (*IdentityClaims, error)

	// TokenTTL returns the configured validity window for issued tokens.
	TokenTTL() time.Duration
}
