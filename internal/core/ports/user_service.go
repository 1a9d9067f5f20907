package ports

import (
	"context"

	"github.com/apostaesportiva/bolao/internal/core/domain"
)

type UserService interface {
	CreateUser(ctx context.Context, uid string) (*domain.User, error)
	GetUserDetails(ctx context.Context, uid string) (*domain.User, error)
	GetUserByUID(ctx context.Context, uid string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, uid string, user *domain.User) (*domain.User, error)
	GetAccount(ctx context.Context, uid string) (*domain.Account, error)
	GetCachedUser(ctx context.Context, uid string) (*domain.CachedUser, error)
}
