package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	profileRepo "matrimonial/database/repository/profile"
	userRepo "matrimonial/database/repository/user"
	"matrimonial/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CachePrefix is the prefix used for cached session users.
const CachePrefix = "session:user:"

// Loader resolves the session view of a user, caching it in Redis when a client
// is configured.
type Loader struct {
	users    userRepo.UserRepository
	profiles profileRepo.ProfileRepository
	cache    *redis.Client
	ttl      time.Duration
	logger   *zap.Logger
}

func NewLoader(users userRepo.UserRepository, profiles profileRepo.ProfileRepository, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{users: users, profiles: profiles, cache: cache, ttl: ttl, logger: logger}
}

// Load returns the session user for userID.
func (l *Loader) Load(ctx context.Context, userID string) (models.SessionUser, error) {
	if su, ok := l.cached(ctx, userID); ok {
		return su, nil
	}

	u, err := l.users.GetByID(ctx, userID)
	if err != nil {
		return models.SessionUser{}, err
	}
	hasProfile := u.HasProfile
	if !hasProfile && l.profiles != nil {
		if hasProfile, err = l.profiles.ExistsForUser(ctx, userID); err != nil {
			return models.SessionUser{}, err
		}
	}
	su := models.SessionUser{ID: u.ID, Email: u.Email, Role: u.Role, HasProfile: hasProfile}
	l.store(ctx, su)
	return su, nil
}

// Invalidate drops the cached entry so the next Load reads the database.
func (l *Loader) Invalidate(ctx context.Context, userID string) error {
	if l.cache == nil {
		return nil
	}
	if err := l.cache.Del(ctx, CachePrefix+userID).Err(); err != nil {
		return fmt.Errorf("failed to invalidate session cache: %w", err)
	}
	return nil
}

func (l *Loader) cached(ctx context.Context, userID string) (models.SessionUser, bool) {
	var su models.SessionUser
	if l.cache == nil {
		return su, false
	}
	data, err := l.cache.Get(ctx, CachePrefix+userID).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			l.logger.Warn("session cache read failed", zap.String("userID", userID), zap.Error(err))
		}
		return su, false
	}
	if err := json.Unmarshal(data, &su); err != nil {
		l.logger.Warn("discarding corrupt session cache entry", zap.String("userID", userID), zap.Error(err))
		return su, false
	}
	return su, true
}

func (l *Loader) store(ctx context.Context, su models.SessionUser) {
	if l.cache == nil {
		return
	}
	data, err := json.Marshal(su)
	if err != nil {
		return
	}
	if err := l.cache.Set(ctx, CachePrefix+su.ID, data, l.ttl).Err(); err != nil {
		l.logger.Warn("session cache write failed", zap.String("userID", su.ID), zap.Error(err))
	}
}

// Open loads userID and returns a Context bound to it.
func (l *Loader) Open(ctx context.Context, userID string) (*Context, error) {
	su, err := l.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Context{loader: l, user: su}, nil
}

// Context is the signed-in user as seen by one wizard session.
type Context struct {
	loader *Loader
	mu     sync.RWMutex
	user   models.SessionUser
}

func (c *Context) CurrentUser() models.SessionUser {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user
}

// RefreshSession reloads the user from the database, bypassing the cache.
func (c *Context) RefreshSession(ctx context.Context) error {
	id := c.CurrentUser().ID
	if err := c.loader.Invalidate(ctx, id); err != nil {
		return err
	}
	su, err := c.loader.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to refresh session: %w", err)
	}
	c.mu.Lock()
	c.user = su
	c.mu.Unlock()
	return nil
}
