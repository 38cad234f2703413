package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"authd/config"
	"authd/internal/domain/entity"
	domainerrors "authd/internal/domain/errors"
	"authd/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// fakeDirectoryDown stands in for a directory that cannot be reached.
var fakeDirectoryDown = domainerrors.NewDirectoryUnavailableError(
	errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), "")

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()

	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.ErrorCode())
}

func newTestConfig(ttl time.Duration) *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost: 4,
			TokenTTL:   ttl,
		},
	}
	cfg.SecretKey.Token = "test_token_secret_key_very_long_for_testing"

	return cfg
}

// fakeUserRepository is an in-memory user directory. It enforces email
// uniqueness on create the way the real store's unique index does.
type fakeUserRepository struct {
	mu      sync.Mutex
	byEmail map[string]*entity.User

	// When set, every call fails with this error, simulating an
	// unreachable directory.
	failWith error

	// When set, lookups report not-found even for stored users, so a
	// create can run into the uniqueness constraint the way a lost
	// check-then-create race does.
	lookupMiss bool
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{byEmail: make(map[string]*entity.User)}
}

func (f *fakeUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return nil, f.failWith
	}

	for _, user := range f.byEmail {
		if user.ID == id {
			cloned := *user

			return &cloned, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return nil, f.failWith
	}

	user, ok := f.byEmail[email]
	if !ok || f.lookupMiss {
		return nil, repository.ErrUserNotFound
	}
	cloned := *user

	return &cloned, nil
}

func (f *fakeUserRepository) Create(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return f.failWith
	}

	if _, ok := f.byEmail[user.Email]; ok {
		return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
	}

	now := time.Now()
	user.ID = uuid.New()
	user.CreatedAt = now
	user.UpdatedAt = now

	cloned := *user
	f.byEmail[user.Email] = &cloned

	return nil
}
