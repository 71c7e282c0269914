package usecases

import "context"

// PasswordHasher abstracts the bcrypt hasher so tests can substitute a fake.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// LoginLimiter throttles authentication attempts per username.
type LoginLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}

type RegisterUserExecutor interface {
	Execute(ctx context.Context, cmd RegisterUserCommand) (*RegisterUserResult, error)
}

type AuthenticateUserExecutor interface {
	Execute(ctx context.Context, cmd AuthenticateUserCommand) (*AuthenticateUserResult, error)
}

type ListUsersExecutor interface {
	Execute(ctx context.Context) (*ListUsersResult, error)
}

type ChangeUserRoleExecutor interface {
	Execute(ctx context.Context, cmd ChangeUserRoleCommand) (*ChangeUserRoleResult, error)
}
