package usecases

import (
	"context"
	"fmt"

	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/authorization"
	apperrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type ChangeUserRoleCommand struct {
	UserID uint
	Role   string
}

type ChangeUserRoleResult struct {
	User *user.User
}

// ChangeUserRoleUseCase lets an admin promote or demote an account.
type ChangeUserRoleUseCase struct {
	userRepo user.UserRepository
	logger   logger.Interface
}

func NewChangeUserRoleUseCase(userRepo user.UserRepository, logger logger.Interface) *ChangeUserRoleUseCase {
	return &ChangeUserRoleUseCase{userRepo: userRepo, logger: logger}
}

func (uc *ChangeUserRoleUseCase) Execute(ctx context.Context, cmd ChangeUserRoleCommand) (*ChangeUserRoleResult, error) {
	if cmd.UserID == 0 {
		return nil, apperrors.NewValidationError("user ID is required")
	}

	role := authorization.UserRole(cmd.Role)
	if !role.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid role: %s", cmd.Role))
	}

	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if err := u.ChangeRole(role); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to change user role",
			"user_id", cmd.UserID, "role", role, "error", err)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	uc.logger.Infow("user role changed", "user_id", u.ID(), "role", role)

	return &ChangeUserRoleResult{User: u}, nil
}
