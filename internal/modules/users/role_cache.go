package users

import (
	"context"
	"time"

	"vales/internal/middleware"
	"vales/internal/pkg/cache"
)

// RoleCache answers identity lookups for authenticated requests, hitting the
// database at most once per TTL per user.
type RoleCache struct {
	users UserRepositoryInterface
	cache *cache.TTL[int64, middleware.Identity]
}

func NewRoleCache(users UserRepositoryInterface, ttl time.Duration) *RoleCache {
	return &RoleCache{
		users: users,
		cache: cache.NewTTL[int64, middleware.Identity](0, ttl),
	}
}

func (rc *RoleCache) Lookup(ctx context.Context, userID int64) (middleware.Identity, error) {
	if id, ok := rc.cache.Get(userID); ok {
		return id, nil
	}

	u, err := rc.users.GetByID(ctx, userID)
	if err != nil {
		return middleware.Identity{}, err
	}

	id := middleware.Identity{
		UserID: u.ID,
		Role:   string(u.Role),
		Name:   u.Name,
		Local:  u.Local,
		Active: u.Active,
	}
	rc.cache.Set(userID, id)
	return id, nil
}

func (rc *RoleCache) Evict(userID int64) {
	rc.cache.Evict(userID)
}
