package usecases

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"helpdesk/internal/domain/user"
	vo "helpdesk/internal/domain/user/valueobjects"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/logger"
)

type mockUserRepo struct {
	saveFn          func(ctx context.Context, u *user.User) error
	updateFn        func(ctx context.Context, u *user.User) error
	getByIDFn       func(ctx context.Context, userID uint) (*user.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*user.User, error)
	listFn          func(ctx context.Context) ([]*user.User, error)

	saved   []*user.User
	updated []*user.User
}

func (m *mockUserRepo) Save(ctx context.Context, u *user.User) error {
	m.saved = append(m.saved, u)
	if m.saveFn != nil {
		return m.saveFn(ctx, u)
	}
	return u.SetID(uint(len(m.saved)))
}

func (m *mockUserRepo) Update(ctx context.Context, u *user.User) error {
	m.updated = append(m.updated, u)
	if m.updateFn != nil {
		return m.updateFn(ctx, u)
	}
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, userID uint) (*user.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, userID)
	}
	return nil, errors.New("unexpected GetByID call")
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, errors.New("unexpected GetByUsername call")
}

func (m *mockUserRepo) List(ctx context.Context) ([]*user.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, errors.New("unexpected List call")
}

// fakeHasher marks hashes reversibly so tests can assert on them.
type fakeHasher struct {
	hashErr error
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + password, nil
}

func (h *fakeHasher) Verify(password, hash string) error {
	if hash != "hashed:"+password {
		return errors.New("password mismatch")
	}
	return nil
}

type fakeLimiter struct {
	allowed  bool
	allowErr error

	allowKeys []string
	resetKeys []string
}

func (l *fakeLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.allowKeys = append(l.allowKeys, key)
	return l.allowed, l.allowErr
}

func (l *fakeLimiter) Reset(ctx context.Context, key string) error {
	l.resetKeys = append(l.resetKeys, key)
	return nil
}

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func userFixture(t *testing.T, id uint, username string, role authorization.UserRole) *user.User {
	t.Helper()
	addr, err := vo.NewEmail(username + "@example.com")
	require.NoError(t, err)
	u, err := user.NewUser(username, "hashed:s3cretpass", role, addr, "Acme")
	require.NoError(t, err)
	require.NoError(t, u.SetID(id))
	return u
}
