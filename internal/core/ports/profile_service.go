package ports

import (
	"context"
	"io"

	"github.com/apostaesportiva/bolao/internal/core/domain"
)

type ProfileService interface {
	UpdateDisplayName(ctx context.Context, uid, name string) (*domain.Account, error)
	UpdateEmail(ctx context.Context, session *domain.Session, email string) (*domain.Account, error)
	UpdatePassword(ctx context.Context, session *domain.Session, newPassword, confirmation string) (string, error)
	UploadPhoto(ctx context.Context, uid, contentType string, size int64, reader io.Reader) (*domain.Account, error)
	DeletePhoto(ctx context.Context, uid string) (*domain.Account, error)
	OpenPhoto(ctx context.Context, key string) (*domain.Photo, error)
}
