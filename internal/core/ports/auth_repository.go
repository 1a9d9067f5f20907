package ports

import (
	"context"

	"github.com/apostaesportiva/bolao/internal/core/domain"
)

// AccountRepository persists identity accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	FindByUID(ctx context.Context, uid string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByGoogleSubject(ctx context.Context, subject string) (*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
}
