package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/apostaesportiva/bolao/internal/core/domain"
)

const defaultResetTTL = time.Hour

// ResetTokenStore keeps one-time password reset tokens.
// Key format: reset:<token> → uid
type ResetTokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewResetTokenStore(client *redis.Client, ttl time.Duration) *ResetTokenStore {
	if ttl <= 0 {
		ttl = defaultResetTTL
	}
	return &ResetTokenStore{client: client, ttl: ttl}
}

// Save records token for uid; it expires after the store TTL.
func (s *ResetTokenStore) Save(ctx context.Context, token, uid string) error {
	if err := s.client.Set(ctx, s.key(token), uid, s.ttl).Err(); err != nil {
		return fmt.Errorf("reset token save: %w", err)
	}
	return nil
}

// Consume reads and deletes token in one round trip, so a link works once.
func (s *ResetTokenStore) Consume(ctx context.Context, token string) (string, error) {
	uid, err := s.client.GetDel(ctx, s.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrResetTokenNotFound
		}
		return "", fmt.Errorf("reset token consume: %w", err)
	}
	return uid, nil
}

func (s *ResetTokenStore) key(token string) string {
	return "reset:" + token
}
