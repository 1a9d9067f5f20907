package ports

import (
	"context"

	"github.com/apostaesportiva/bolao/internal/core/domain"
)

// UserRepository persists pool records keyed by account UID.
type UserRepository interface {
	// Set writes the whole record, replacing any previous one.
	Set(ctx context.Context, uid string, user *domain.User) error
	FindByUID(ctx context.Context, uid string) (*domain.User, error)
}

// UserCache keeps short-lived user summaries. Get returns nil, nil on a miss.
type UserCache interface {
	Get(ctx context.Context, uid string) (*domain.CachedUser, error)
	Set(ctx context.Context, uid string, user *domain.CachedUser) error
	Delete(ctx context.Context, uid string) error
}

// ResetTokenStore holds one-time password reset tokens.
type ResetTokenStore interface {
	Save(ctx context.Context, token, uid string) error
	// Consume returns the owner of token and removes it atomically.
	Consume(ctx context.Context, token string) (string, error)
}
