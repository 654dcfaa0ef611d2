package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/profile-service/internal/lib/sl"
	"github.com/magabrotheeeer/profile-service/internal/metrics"
	"github.com/magabrotheeeer/profile-service/internal/models"
)

const (
	userKeyPrefix = "user:"
	userListKey   = "users"

	// DefaultUserTTL — срок жизни записи отдельного пользователя.
	DefaultUserTTL = time.Hour
)

// Store описывает key-value хранилище, поверх которого работает UserCache.
type Store interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// UserCache — best-effort кеш пользователей и их списка.
// Ни один метод не возвращает ошибку: сбои пишутся в лог.
type UserCache struct {
	store   Store
	log     *slog.Logger
	userTTL time.Duration
	listTTL time.Duration
}

// NewUserCache создает UserCache. Нулевой userTTL заменяется на DefaultUserTTL,
// listTTL == 0 оставляет список без срока жизни.
func NewUserCache(store Store, log *slog.Logger, userTTL, listTTL time.Duration) *UserCache {
	if userTTL <= 0 {
		userTTL = DefaultUserTTL
	}
	return &UserCache{
		store:   store,
		log:     log.With(slog.String("component", "user_cache")),
		userTTL: userTTL,
		listTTL: listTTL,
	}
}

// UserKey возвращает ключ кеша для пользователя.
func UserKey(id string) string {
	return userKeyPrefix + id
}

// GetUser возвращает пользователя из кеша, false при промахе или сбое.
func (c *UserCache) GetUser(ctx context.Context, id string) (*models.PublicUser, bool) {
	var user models.PublicUser
	if !c.get(ctx, "user", UserKey(id), &user) {
		return nil, false
	}
	return &user, true
}

// SetUser кладёт пользователя в кеш на userTTL.
func (c *UserCache) SetUser(ctx context.Context, user models.PublicUser) {
	c.set(ctx, UserKey(user.ID), user, c.userTTL)
}

// GetUserList возвращает закешированный список пользователей.
func (c *UserCache) GetUserList(ctx context.Context) ([]models.PublicUser, bool) {
	var users []models.PublicUser
	if !c.get(ctx, "list", userListKey, &users) {
		return nil, false
	}
	if users == nil {
		users = []models.PublicUser{}
	}
	return users, true
}

// SetUserList кладёт список пользователей в кеш на listTTL.
func (c *UserCache) SetUserList(ctx context.Context, users []models.PublicUser) {
	c.set(ctx, userListKey, users, c.listTTL)
}

// InvalidateUserList удаляет закешированный список.
func (c *UserCache) InvalidateUserList(ctx context.Context) {
	if err := c.store.Invalidate(ctx, userListKey); err != nil {
		c.log.Warn("failed to invalidate cached user list", sl.Err(err))
	}
}

func (c *UserCache) get(ctx context.Context, kind, key string, out any) bool {
	found, err := c.store.Get(ctx, key, out)
	switch {
	case err != nil:
		metrics.CacheRequests.WithLabelValues(kind, metrics.CacheError).Inc()
		c.log.Warn("failed to read from cache", slog.String("key", key), sl.Err(err))
		return false
	case !found:
		metrics.CacheRequests.WithLabelValues(kind, metrics.CacheMiss).Inc()
		return false
	default:
		metrics.CacheRequests.WithLabelValues(kind, metrics.CacheHit).Inc()
		return true
	}
}

func (c *UserCache) set(ctx context.Context, key string, value any, ttl time.Duration) {
	if err := c.store.Set(ctx, key, value, ttl); err != nil {
		c.log.Warn("failed to write to cache", slog.String("key", key), sl.Err(err))
	}
}
