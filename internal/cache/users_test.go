package cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/profile-service/internal/models"
)

type StoreMock struct{ mock.Mock }

func (m *StoreMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *StoreMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

func (m *StoreMock) Invalidate(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestUserCache_UserRoundTrip(t *testing.T) {
	store, mr := setupTestCache(t)
	uc := NewUserCache(store, newNoopLogger(), 0, 0)
	ctx := context.Background()

	user := models.PublicUser{ID: "65f1c2a9e4b0a1b2c3d4e5f6", Name: "Alice", Email: "a@b.com", Mobile: "+15551234567"}

	got, ok := uc.GetUser(ctx, user.ID)
	assert.False(t, ok)
	assert.Nil(t, got)

	uc.SetUser(ctx, user)
	assert.Equal(t, time.Hour, mr.TTL(UserKey(user.ID)))

	got, ok = uc.GetUser(ctx, user.ID)
	require.True(t, ok)
	assert.Equal(t, user, *got)

	raw, err := mr.Get(UserKey(user.ID))
	require.NoError(t, err)
	assert.NotContains(t, raw, "password")
}

func TestUserCache_ListRoundTrip(t *testing.T) {
	store, mr := setupTestCache(t)
	uc := NewUserCache(store, newNoopLogger(), time.Hour, 0)
	ctx := context.Background()

	_, ok := uc.GetUserList(ctx)
	assert.False(t, ok)

	users := []models.PublicUser{
		{ID: "65f1c2a9e4b0a1b2c3d4e5f6", Name: "Alice", Email: "a@b.com"},
		{ID: "65f1c2a9e4b0a1b2c3d4e5f7", Name: "Bob", Email: "b@b.com"},
	}
	uc.SetUserList(ctx, users)
	assert.Equal(t, time.Duration(0), mr.TTL(userListKey), "list key has no expiry by default")

	got, ok := uc.GetUserList(ctx)
	require.True(t, ok)
	assert.Equal(t, users, got)

	uc.InvalidateUserList(ctx)
	_, ok = uc.GetUserList(ctx)
	assert.False(t, ok)
}

func TestUserCache_EmptyListIsHit(t *testing.T) {
	store, _ := setupTestCache(t)
	uc := NewUserCache(store, newNoopLogger(), time.Hour, time.Minute)
	ctx := context.Background()

	uc.SetUserList(ctx, []models.PublicUser{})

	got, ok := uc.GetUserList(ctx)
	require.True(t, ok)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestUserCache_FailuresDegradeToMiss(t *testing.T) {
	store := new(StoreMock)
	uc := NewUserCache(store, newNoopLogger(), time.Hour, 0)
	ctx := context.Background()
	boom := errors.New("connection refused")

	store.On("Get", ctx, "user:65f1c2a9e4b0a1b2c3d4e5f6", mock.Anything).Return(false, boom).Once()
	store.On("Get", ctx, "users", mock.Anything).Return(false, boom).Once()
	store.On("Set", ctx, "user:65f1c2a9e4b0a1b2c3d4e5f6", mock.Anything, time.Hour).Return(boom).Once()
	store.On("Set", ctx, "users", mock.Anything, time.Duration(0)).Return(boom).Once()
	store.On("Invalidate", ctx, "users").Return(boom).Once()

	got, ok := uc.GetUser(ctx, "65f1c2a9e4b0a1b2c3d4e5f6")
	assert.False(t, ok)
	assert.Nil(t, got)

	list, ok := uc.GetUserList(ctx)
	assert.False(t, ok)
	assert.Nil(t, list)

	assert.NotPanics(t, func() {
		uc.SetUser(ctx, models.PublicUser{ID: "65f1c2a9e4b0a1b2c3d4e5f6"})
		uc.SetUserList(ctx, nil)
		uc.InvalidateUserList(ctx)
	})

	store.AssertExpectations(t)
}
