package ports

import (
	"context"

	"github.com/apostaesportiva/bolao/internal/core/domain"
)

// AuthService is the in-process identity provider.
type AuthService interface {
	SignUpWithEmailAndPassword(ctx context.Context, name, email, password, confirmation string) (*domain.AuthResult, error)
	LoginWithEmailAndPassword(ctx context.Context, email, password string) (*domain.AuthResult, error)
	LoginWithGoogle(ctx context.Context, code string) (*domain.AuthResult, error)
	GoogleAuthURL(state string) (string, error)
	FetchSignInMethodsForEmail(ctx context.Context, email string) ([]string, error)
	SendPasswordResetEmail(ctx context.Context, email, resetBaseURL string) error
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
	VerifyIDToken(ctx context.Context, token string) (*domain.Session, error)
	RefreshIDToken(ctx context.Context, session *domain.Session) (string, error)
	NeedsRefresh(session *domain.Session) bool
}
