package auth

import (
	"strings"
	"testing"
	"time"

	"authd/config"
	"authd/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenConfig(ttl time.Duration) *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{TokenTTL: ttl},
	}
	cfg.SecretKey.Token = "test_token_secret_key_very_long_for_testing"

	return cfg
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	jwtService, err := NewJWTService(newTokenConfig(time.Hour))
	require.NoError(t, err)
	require.NotNil(t, jwtService)

	claims := service.IdentityClaims{
		UserID: uuid.New(),
		Name:   "Alice",
		Email:  "alice@x.com",
	}

	token, err := jwtService.Issue(claims)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	decoded, err := jwtService.Verify(token)
	require.NoError(t, err)
	require.NotNil(t, decoded)

	// Round trip returns exactly the issued identity subset, timing claims stripped.
	assert.Equal(t, claims, *decoded)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	// TTL of zero issues a token that is already expired.
	jwtService, err := NewJWTService(newTokenConfig(0))
	require.NoError(t, err)

	token, err := jwtService.Issue(service.IdentityClaims{
		UserID: uuid.New(),
		Name:   "Alice",
		Email:  "alice@x.com",
	})
	require.NoError(t, err)

	claims, err := jwtService.Verify(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_MalformedToken(t *testing.T) {
	jwtService, err := NewJWTService(newTokenConfig(time.Hour))
	require.NoError(t, err)

	claims, err := jwtService.Verify("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_TamperedToken(t *testing.T) {
	jwtService, err := NewJWTService(newTokenConfig(time.Hour))
	require.NoError(t, err)

	token, err := jwtService.Issue(service.IdentityClaims{
		UserID: uuid.New(),
		Name:   "Alice",
		Email:  "alice@x.com",
	})
	require.NoError(t, err)

	// Flip one byte in each token segment; every variant must be rejected.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	for i := range parts {
		tampered := make([]string, 3)
		copy(tampered, parts)
		segment := []byte(tampered[i])
		if segment[0] == 'A' {
			segment[0] = 'B'
		} else {
			segment[0] = 'A'
		}
		tampered[i] = string(segment)

		claims, err := jwtService.Verify(strings.Join(tampered, "."))
		assert.Error(t, err, "segment %d", i)
		assert.Nil(t, claims)
	}
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer, err := NewJWTService(newTokenConfig(time.Hour))
	require.NoError(t, err)

	otherCfg := newTokenConfig(time.Hour)
	otherCfg.SecretKey.Token = "a_different_secret_key_entirely_for_testing"
	verifier, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	token, err := issuer.Issue(service.IdentityClaims{
		UserID: uuid.New(),
		Name:   "Alice",
		Email:  "alice@x.com",
	})
	require.NoError(t, err)

	claims, err := verifier.Verify(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_EmptySecret(t *testing.T) {
	cfg := newTokenConfig(time.Hour)
	cfg.SecretKey.Token = ""

	jwtService, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secret must be provided")
}

func TestJWTService_TokenTTL(t *testing.T) {
	jwtService, err := NewJWTService(newTokenConfig(45 * time.Minute))
	require.NoError(t, err)

	assert.Equal(t, 45*time.Minute, jwtService.TokenTTL())
}
