package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/authorization"
	apperrors "helpdesk/internal/shared/errors"
)

func TestAuthenticateUserUseCase_Execute(t *testing.T) {
	alice := userFixture(t, 1, "alice", authorization.RoleClient)
	userRepo := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*user.User, error) {
			require.Equal(t, "alice", username)
			return alice, nil
		},
	}
	limiter := &fakeLimiter{allowed: true}
	uc := NewAuthenticateUserUseCase(userRepo, &fakeHasher{}, limiter, testLogger())

	result, err := uc.Execute(context.Background(), AuthenticateUserCommand{
		Username: "  Alice ",
		Password: "s3cretpass",
	})

	require.NoError(t, err)
	assert.Equal(t, uint(1), result.User.ID())
	assert.Equal(t, []string{"alice"}, limiter.allowKeys)
	assert.Equal(t, []string{"alice"}, limiter.resetKeys, "success must reset the attempt window")
}

func TestAuthenticateUserUseCase_WrongPassword(t *testing.T) {
	alice := userFixture(t, 1, "alice", authorization.RoleClient)
	userRepo := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*user.User, error) {
			return alice, nil
		},
	}
	limiter := &fakeLimiter{allowed: true}
	uc := NewAuthenticateUserUseCase(userRepo, &fakeHasher{}, limiter, testLogger())

	_, err := uc.Execute(context.Background(), AuthenticateUserCommand{
		Username: "alice",
		Password: "wrongpass",
	})

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeUnauthorized, appErr.Type)
	assert.Equal(t, "invalid username or password", appErr.Message)
	assert.Empty(t, limiter.resetKeys)
}

func TestAuthenticateUserUseCase_UnknownUserGetsSameError(t *testing.T) {
	userRepo := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*user.User, error) {
			return nil, apperrors.NewNotFoundError("user not found")
		},
	}
	uc := NewAuthenticateUserUseCase(userRepo, &fakeHasher{}, &fakeLimiter{allowed: true}, testLogger())

	_, err := uc.Execute(context.Background(), AuthenticateUserCommand{
		Username: "nobody",
		Password: "whatever1",
	})

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeUnauthorized, appErr.Type)
	assert.Equal(t, "invalid username or password", appErr.Message)
}

func TestAuthenticateUserUseCase_Throttled(t *testing.T) {
	userRepo := &mockUserRepo{}
	uc := NewAuthenticateUserUseCase(userRepo, &fakeHasher{}, &fakeLimiter{allowed: false}, testLogger())

	_, err := uc.Execute(context.Background(), AuthenticateUserCommand{
		Username: "alice",
		Password: "s3cretpass",
	})

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeUnauthorized, appErr.Type)
	assert.Contains(t, appErr.Message, "too many login attempts")
}

func TestAuthenticateUserUseCase_BrokenLimiterFailsOpen(t *testing.T) {
	alice := userFixture(t, 1, "alice", authorization.RoleClient)
	userRepo := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*user.User, error) {
			return alice, nil
		},
	}
	limiter := &fakeLimiter{allowErr: errors.New("redis down")}
	uc := NewAuthenticateUserUseCase(userRepo, &fakeHasher{}, limiter, testLogger())

	result, err := uc.Execute(context.Background(), AuthenticateUserCommand{
		Username: "alice",
		Password: "s3cretpass",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice", result.User.Username())
}

func TestAuthenticateUserUseCase_RequiresCredentials(t *testing.T) {
	uc := NewAuthenticateUserUseCase(&mockUserRepo{}, &fakeHasher{}, &fakeLimiter{allowed: true}, testLogger())

	_, err := uc.Execute(context.Background(), AuthenticateUserCommand{Username: "   ", Password: "x"})
	assert.True(t, apperrors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), AuthenticateUserCommand{Username: "alice"})
	assert.True(t, apperrors.IsValidationError(err))
}
