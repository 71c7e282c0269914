package usecases

import (
	"context"
	"fmt"

	"helpdesk/internal/domain/user"
	vo "helpdesk/internal/domain/user/valueobjects"
	"helpdesk/internal/shared/authorization"
	apperrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type RegisterUserCommand struct {
	Username string
	Password string
	Email    string
	Company  string
	Role     string
}

type RegisterUserResult struct {
	User *user.User
}

// RegisterUserUseCase creates a user account with a bcrypt password hash.
// Usernames are normalized before the uniqueness check so visually identical
// names cannot coexist.
type RegisterUserUseCase struct {
	userRepo user.UserRepository
	hasher   PasswordHasher
	logger   logger.Interface
}

func NewRegisterUserUseCase(
	userRepo user.UserRepository,
	hasher PasswordHasher,
	logger logger.Interface,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, cmd RegisterUserCommand) (*RegisterUserResult, error) {
	if len(cmd.Password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters")
	}

	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	role := authorization.ParseUserRole(cmd.Role)

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "username", cmd.Username, "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := user.NewUser(cmd.Username, hash, role, email, cmd.Company)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Save(ctx, u); err != nil {
		if apperrors.IsConflictError(err) {
			return nil, apperrors.NewConflictError(fmt.Sprintf("username %q is already taken", u.Username()))
		}
		uc.logger.Errorw("failed to save user", "username", u.Username(), "error", err)
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	uc.logger.Infow("user registered", "user_id", u.ID(), "username", u.Username(), "role", role)

	return &RegisterUserResult{User: u}, nil
}
