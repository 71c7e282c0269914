package usecases

import (
	"context"

	"helpdesk/internal/domain/user"
	apperrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type AuthenticateUserCommand struct {
	Username string
	Password string
}

type AuthenticateUserResult struct {
	User *user.User
}

// AuthenticateUserUseCase verifies credentials. Unknown usernames and wrong
// passwords produce the same error so login probing reveals nothing, and the
// limiter throttles repeated attempts per normalized username.
type AuthenticateUserUseCase struct {
	userRepo user.UserRepository
	hasher   PasswordHasher
	limiter  LoginLimiter
	logger   logger.Interface
}

func NewAuthenticateUserUseCase(
	userRepo user.UserRepository,
	hasher PasswordHasher,
	limiter LoginLimiter,
	logger logger.Interface,
) *AuthenticateUserUseCase {
	return &AuthenticateUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		limiter:  limiter,
		logger:   logger,
	}
}

func (uc *AuthenticateUserUseCase) Execute(ctx context.Context, cmd AuthenticateUserCommand) (*AuthenticateUserResult, error) {
	username := user.NormalizeUsername(cmd.Username)
	if username == "" || cmd.Password == "" {
		return nil, apperrors.NewValidationError("username and password are required")
	}

	allowed, err := uc.limiter.Allow(ctx, username)
	if err != nil {
		// A broken limiter must not lock everyone out.
		uc.logger.Warnw("login limiter unavailable, allowing attempt",
			"username", username, "error", err)
	} else if !allowed {
		uc.logger.Warnw("login throttled", "username", username)
		return nil, apperrors.NewUnauthorizedError("too many login attempts, try again later")
	}

	u, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid username or password")
	}

	if err := uc.hasher.Verify(cmd.Password, u.PasswordHash()); err != nil {
		uc.logger.Warnw("failed login attempt", "username", username)
		return nil, apperrors.NewUnauthorizedError("invalid username or password")
	}

	if err := uc.limiter.Reset(ctx, username); err != nil {
		uc.logger.Warnw("failed to reset login window", "username", username, "error", err)
	}

	uc.logger.Infow("user authenticated", "user_id", u.ID(), "username", username)

	return &AuthenticateUserResult{User: u}, nil
}
