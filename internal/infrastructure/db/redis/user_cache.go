package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/apostaesportiva/bolao/internal/core/domain"
)

const defaultCacheTTL = 15 * time.Minute

// UserCache keeps header summaries as JSON strings.
// Key format: user:<uid>
type UserCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewUserCache(client *redis.Client, ttl time.Duration) *UserCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &UserCache{client: client, ttl: ttl}
}

// Get returns nil, nil when uid is not cached.
func (c *UserCache) Get(ctx context.Context, uid string) (*domain.CachedUser, error) {
	raw, err := c.client.Get(ctx, c.key(uid)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}
	var user domain.CachedUser
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &user, nil
}

func (c *UserCache) Set(ctx context.Context, uid string, user *domain.CachedUser) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, c.key(uid), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *UserCache) Delete(ctx context.Context, uid string) error {
	if err := c.client.Del(ctx, c.key(uid)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (c *UserCache) key(uid string) string {
	return "user:" + uid
}
