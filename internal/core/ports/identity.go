package ports

import (
	"context"

	"github.com/apostaesportiva/bolao/internal/core/domain"
)

// GoogleProvider runs the OAuth code flow against Google.
type GoogleProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*domain.GoogleProfile, error)
}

// Mailer delivers password reset links.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, link string) error
}
