// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"authd/config"
	"authd/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret string        // Secret key for signing tokens. Process-wide, loaded once at startup.
	ttl    time.Duration // Time-to-live for issued tokens.
}

// identityTokenClaims is the wire shape of the token payload: the identity
// claims plus the registered timing claims. It never leaves this package;
// Verify strips the timing claims before returning.
type identityTokenClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Token == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	// config.New guarantees Auth is populated; hand-built configs may leave it
	// nil, in which case issued tokens expire immediately.
	var ttl time.Duration
	if cfg.Auth != nil {
		ttl = cfg.Auth.TokenTTL
	}

	return &jwtService{
		secret: cfg.SecretKey.Token,
		ttl:    ttl,
	}, nil
}

// Issue creates a signed token embedding the identity claims plus issued-at
// and expiry timestamps.
func (s *jwtService) Issue(claims service.IdentityClaims) (string, error) {
	now := time.Now()

	tokenClaims := identityTokenClaims{
		Name:  claims.Name,
		Email: claims.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims)

	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Verify checks the signature and expiry of a token string and decodes its
// identity claims. It rejects non-HMAC signing methods so a token cannot
// downgrade the expected algorithm.
func (s *jwtService) Verify(tokenString string) (*service.IdentityClaims, error) {
	var tokenClaims identityTokenClaims

	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token")
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	userID, err := uuid.Parse(tokenClaims.Subject)
	if err != nil {
		return nil, errors.Wrap(err, "invalid subject claim")
	}

	return &service.IdentityClaims{
		UserID: userID,
		Name:   tokenClaims.Name,
		Email:  tokenClaims.Email,
	}, nil
}

// TokenTTL returns the configured validity window for issued tokens.
func (s *jwtService) TokenTTL() time.Duration {
	return s.ttl
}
