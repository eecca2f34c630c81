package session

import (
	"context"
	"testing"
	"time"

	profileRepo "matrimonial/database/repository/profile"
	userRepo "matrimonial/database/repository/user"
	"matrimonial/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsers struct {
	userRepo.UserRepository
	users map[string]*models.User
	reads int
}

func (s *stubUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	s.reads++
	u, ok := s.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

type stubProfiles struct {
	profileRepo.ProfileRepository
	owners map[string]bool
}

func (s *stubProfiles) ExistsForUser(ctx context.Context, userID string) (bool, error) {
	return s.owners[userID], nil
}

func newCache(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestLoadCachesSessionUser(t *testing.T) {
	ctx := context.Background()
	client, mr := newCache(t)
	users := &stubUsers{users: map[string]*models.User{
		"u1": {ID: "u1", Email: "u1@example.com", Role: models.RoleMember},
	}}
	l := NewLoader(users, &stubProfiles{owners: map[string]bool{}}, client, time.Minute, nil)

	su, err := l.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.SessionUser{ID: "u1", Email: "u1@example.com", Role: models.RoleMember}, su)
	assert.True(t, mr.Exists(CachePrefix+"u1"))

	_, err = l.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, users.reads)

	mr.FastForward(2 * time.Minute)
	_, err = l.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, users.reads)
}

func TestLoadUnknownUser(t *testing.T) {
	l := NewLoader(&stubUsers{users: map[string]*models.User{}}, nil, nil, time.Minute, nil)
	_, err := l.Load(context.Background(), "ghost")
	assert.ErrorIs(t, err, userRepo.ErrUserNotFound)
}

func TestRefreshSessionSeesNewProfile(t *testing.T) {
	ctx := context.Background()
	client, _ := newCache(t)
	users := &stubUsers{users: map[string]*models.User{
		"u1": {ID: "u1", Email: "u1@example.com", Role: models.RoleMember},
	}}
	profiles := &stubProfiles{owners: map[string]bool{}}
	l := NewLoader(users, profiles, client, time.Hour, nil)

	sc, err := l.Open(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, sc.CurrentUser().HasProfile)

	profiles.owners["u1"] = true
	_, err = l.Load(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, sc.CurrentUser().HasProfile, "cached until refreshed")

	require.NoError(t, sc.RefreshSession(ctx))
	assert.True(t, sc.CurrentUser().HasProfile)
}

func TestCorruptCacheEntryIsIgnored(t *testing.T) {
	ctx := context.Background()
	client, mr := newCache(t)
	require.NoError(t, mr.Set(CachePrefix+"u1", "{not json"))
	users := &stubUsers{users: map[string]*models.User{"u1": {ID: "u1", Role: models.RoleAdmin, HasProfile: true}}}
	l := NewLoader(users, nil, client, time.Minute, nil)

	su, err := l.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, su.Role)
	assert.True(t, su.HasProfile)
}
