package authimpl

import (
	"context"
	"testing"
	"time"

	"github.com/openclique/feedline/internal/domain"
	userrepo "github.com/openclique/feedline/internal/repositories/users"
	"github.com/openclique/feedline/pkg/config"
	apperrors "github.com/openclique/feedline/pkg/errors"
	"github.com/openclique/feedline/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	byEmail    map[string]domain.User
	byUsername map[string]domain.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		byEmail:    make(map[string]domain.User),
		byUsername: make(map[string]domain.User),
	}
}

func (f *fakeUsers) Create(_ context.Context, user domain.User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return userrepo.ErrAlreadyExists
	}
	if _, ok := f.byUsername[user.Username]; ok {
		return userrepo.ErrAlreadyExists
	}
	f.byEmail[user.Email] = user
	f.byUsername[user.Username] = user
	return nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, userrepo.ErrNotFound
	}
	return user, nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (domain.User, error) {
	user, ok := f.byUsername[username]
	if !ok {
		return domain.User{}, userrepo.ErrNotFound
	}
	return user, nil
}

func newService(t *testing.T) *AuthImpl {
	t.Helper()
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenTTL = time.Hour
	return New(Opts{
		Users:  newFakeUsers(),
		Logger: logger.New(logger.Opts{Env: "development"}),
		Config: cfg,
	})
}

func TestRegisterLoginVerifyRoundtrip(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice_01", "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice_01", registered.Username)
	assert.NotEqual(t, "s3cret", registered.PasswordHash)

	token, user, err := svc.Login(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, registered.ID, user.ID)

	identity, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID.String(), identity.UserID)
	assert.Equal(t, "alice_01", identity.Username)
}

func TestRegisterValidatesInput(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"short username", "ab", "a@b.com", "pw"},
		{"bad characters", "has space", "a@b.com", "pw"},
		{"bad email", "alice_01", "not-an-email", "pw"},
		{"empty password", "alice_01", "a@b.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.username, tt.email, tt.password)
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice_01", "alice@example.com", "pw")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice_01", "other@example.com", "pw")
	require.Error(t, err)
	assert.True(t, apperrors.IsAlreadyExists(err))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice_01", "alice@example.com", "s3cret")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "alice@example.com", "wrong")
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))

	_, _, err = svc.Login(ctx, "nobody@example.com", "s3cret")
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice_01", "alice@example.com", "s3cret")
	require.NoError(t, err)
	token, _, err := svc.Login(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)

	_, err = svc.Verify(token + "x")
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))

	_, err = svc.Verify("not-a-token")
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := newService(t)
	svc.Config.Auth.TokenTTL = -time.Minute
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice_01", "alice@example.com", "s3cret")
	require.NoError(t, err)
	token, _, err := svc.Login(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
}
