// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "authd/internal/delivery/context"
	"authd/internal/domain/entity"
	domainerrors "authd/internal/domain/errors"
	"authd/internal/domain/repository"
	"authd/internal/domain/service"
	"authd/internal/usecase"

	"github.com/pkg/errors"
)

// authService implements the AuthUsecase interface.
type authService struct {
	users  repository.UserRepository
	hasher service.PasswordHasher
	tokens service.TokenService
	logger *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(
	users repository.UserRepository,
	hasher service.PasswordHasher,
	tokens service.TokenService,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete user registration process.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Starting user registration", slog.String("email", input.Email))

	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("name, email and password are required")
	}

	// 1. Check whether the email is already registered. This check is
	// advisory; the directory's uniqueness constraint is the arbiter under
	// concurrent registration.
	_, err := srv.users.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.ErrUserAlreadyExists.WrapMessage("user registration failed")
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		srv.log(ctx).Error("Failed to look up user during registration", slog.Any("error", err), slog.String("email", input.Email))

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	// 2. Hash the password. The plaintext is never stored or logged.
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password during registration")
	}

	// 3. Create the user record. A concurrent registration losing the race
	// surfaces here as ErrUserAlreadyExists from the directory.
	newUser := &entity.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}
	if err := srv.users.Create(ctx, newUser); err != nil {
		srv.log(ctx).Error("Failed to create user", slog.Any("error", err), slog.String("email", input.Email))

		return nil, errors.Wrap(err, "failed to create user")
	}

	// 4. Build claims from the newly created record and issue a token.
	output, err := srv.issueFor(newUser)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token after registration", slog.Any("error", err), slog.Any("userID", newUser.ID))

		return nil, err
	}
	srv.log(ctx).Debug("User registered successfully", slog.Any("userID", newUser.ID))

	return output, nil
}

// Login orchestrates the credential verification process.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Debug("Starting user login", slog.String("email", input.Email))

	if input.Email == "" || input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("email and password are required")
	}

	// 1. Find the user record. A missing record maps to the same
	// caller-facing failure as a bad password; the wrap message keeps the
	// two cases distinguishable in logs and error chains.
	user, err := srv.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.String("reason", "unknown email"))

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed: unknown email")
		}
		srv.log(ctx).Error("Failed to look up user during login", slog.Any("error", err), slog.String("email", input.Email))

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	// 2. Check the password against the stored hash.
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.String("reason", "password mismatch"))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed: password mismatch")
	}

	// 3. Build claims from the found record and issue a token.
	output, err := srv.issueFor(user)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token after login", slog.Any("error", err), slog.Any("userID", user.ID))

		return nil, err
	}
	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return output, nil
}

// VerifyToken validates an existing token and re-issues a fresh one from its
// claims. The embedded identity is trusted as of issuance time; the user
// directory is not consulted.
func (srv *authService) VerifyToken(ctx context.Context, input *usecase.VerifyTokenInput) (*usecase.AuthOutput, error) {
	if input.Token == "" {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("token is required")
	}

	claims, err := srv.tokens.Verify(input.Token)
	if err != nil {
		srv.log(ctx).Warn("Token verification failed", slog.Any("error", err))

		return nil, domainerrors.ErrInvalidToken.WrapMessage("token verification failed")
	}

	// Sliding expiration: sign a fresh token with a new validity window
	// rather than extending the old one.
	newToken, err := srv.tokens.Issue(*claims)
	if err != nil {
		srv.log(ctx).Error("Failed to re-issue token", slog.Any("error", err), slog.Any("userID", claims.UserID))

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to re-issue token")
	}
	srv.log(ctx).Debug("Token re-verified", slog.Any("userID", claims.UserID))

	return &usecase.AuthOutput{
		User: usecase.UserView{
			ID:    claims.UserID,
			Name:  claims.Name,
			Email: claims.Email,
		},
		Token: newToken,
	}, nil
}

// issueFor builds identity claims from a user record and issues a token.
func (srv *authService) issueFor(user *entity.User) (*usecase.AuthOutput, error) {
	claims := service.IdentityClaims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
	}

	token, err := srv.tokens.Issue(claims)
	if err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("failed to issue token")
	}

	return &usecase.AuthOutput{
		User: usecase.UserView{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
		Token: token,
	}, nil
}
