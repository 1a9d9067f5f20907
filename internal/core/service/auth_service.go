package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/apostaesportiva/bolao/internal/core/domain"
	"github.com/apostaesportiva/bolao/internal/core/ports"
	"github.com/apostaesportiva/bolao/internal/i18n"
)

const (
	minPasswordLength      = 6
	defaultRefreshInterval = 10 * time.Minute
)

// AuthDeps groups the collaborators of the identity service. Google, Resets and
// Mailer may be nil, disabling the matching sign-in or recovery flow.
type AuthDeps struct {
	Accounts ports.AccountRepository
	Users    ports.UserRepository
	Cache    ports.UserCache
	Resets   ports.ResetTokenStore
	Mailer   ports.Mailer
	Google   ports.GoogleProvider
	Tokens   *TokenManager

	// IsAdmin decides the role of pool records created at sign-up.
	IsAdmin         func(email string) bool
	RefreshInterval time.Duration
	Log             zerolog.Logger
}

// AuthService implements sign-up, sign-in, password recovery and session tokens.
type AuthService struct {
	accounts        ports.AccountRepository
	users           ports.UserRepository
	cache           ports.UserCache
	resets          ports.ResetTokenStore
	mailer          ports.Mailer
	google          ports.GoogleProvider
	tokens          *TokenManager
	isAdmin         func(email string) bool
	refreshInterval time.Duration
	log             zerolog.Logger
	now             func() time.Time
}

func NewAuthService(deps AuthDeps) *AuthService {
	refresh := deps.RefreshInterval
	if refresh <= 0 {
		refresh = defaultRefreshInterval
	}
	isAdmin := deps.IsAdmin
	if isAdmin == nil {
		isAdmin = func(string) bool { return false }
	}
	return &AuthService{
		accounts:        deps.Accounts,
		users:           deps.Users,
		cache:           deps.Cache,
		resets:          deps.Resets,
		mailer:          deps.Mailer,
		google:          deps.Google,
		tokens:          deps.Tokens,
		isAdmin:         isAdmin,
		refreshInterval: refresh,
		log:             deps.Log,
		now:             time.Now,
	}
}

func (s *AuthService) SignUpWithEmailAndPassword(ctx context.Context, name, email, password, confirmation string) (*domain.AuthResult, error) {
	if password != confirmation {
		return nil, domain.NewMessageError(i18n.KeyErrPasswordsDiffer, domain.ErrPasswordMismatch)
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if len(password) < minPasswordLength {
		return nil, domain.NewAuthError(domain.CodeWeakPassword, nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	account := &domain.Account{
		UID:          uuid.NewString(),
		Email:        email,
		DisplayName:  strings.TrimSpace(name),
		PasswordHash: string(hash),
		Providers:    []string{domain.ProviderPassword},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrEmailInUse) {
			return nil, domain.NewAuthError(domain.CodeEmailAlreadyInUse, err)
		}
		return nil, fmt.Errorf("sign up: %w", err)
	}

	user, err := s.createPoolRecord(ctx, account)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(account, now)
	if err != nil {
		return nil, err
	}

	s.cacheSummary(ctx, account, user)
	s.log.Info().Str("uid", account.UID).Msg("account created")

	return &domain.AuthResult{Account: account, User: user, Token: token}, nil
}

func (s *AuthService) LoginWithEmailAndPassword(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.NewAuthError(domain.CodeUserNotFound, err)
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if account.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, wrongPassword(account.Providers)
	}

	user, err := s.users.FindByUID(ctx, account.UID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.NewMessageError(i18n.KeyErrMissingDBUser, err)
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	token, err := s.tokens.Issue(account, s.now())
	if err != nil {
		return nil, err
	}

	s.cacheSummary(ctx, account, user)
	return &domain.AuthResult{Account: account, User: user, Token: token}, nil
}

// wrongPassword explains a failed password check using the sign-in methods
// linked to the account.
func wrongPassword(providers []string) error {
	cause := domain.NewAuthError(domain.CodeWrongPassword, nil)
	switch {
	case len(providers) == 0:
		return domain.NewMessageError(i18n.KeyErrBadCredentials, cause)
	case providers[0] == domain.ProviderGoogle:
		return domain.NewMessageError(i18n.KeyErrGoogleHint, cause)
	default:
		return cause
	}
}

func (s *AuthService) GoogleAuthURL(state string) (string, error) {
	if s.google == nil {
		return "", domain.NewAuthError(domain.CodeInternalError, errors.New("google sign-in is not configured"))
	}
	return s.google.AuthCodeURL(state), nil
}

// LoginWithGoogle completes the OAuth code flow. Accounts are matched by Google
// subject first, then by verified e-mail (linking the provider), and created
// otherwise. A missing pool record is created on the fly.
func (s *AuthService) LoginWithGoogle(ctx context.Context, code string) (*domain.AuthResult, error) {
	if s.google == nil {
		return nil, domain.NewAuthError(domain.CodeInternalError, errors.New("google sign-in is not configured"))
	}
	if strings.TrimSpace(code) == "" {
		return nil, domain.NewAuthError(domain.CodePopupClosedByUser, nil)
	}

	profile, err := s.google.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	account, err := s.googleAccount(ctx, profile)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByUID(ctx, account.UID)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		if user, err = s.createPoolRecord(ctx, account); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("google login: %w", err)
	}

	token, err := s.tokens.Issue(account, s.now())
	if err != nil {
		return nil, err
	}

	s.cacheSummary(ctx, account, user)
	return &domain.AuthResult{Account: account, User: user, Token: token}, nil
}

func (s *AuthService) googleAccount(ctx context.Context, profile *domain.GoogleProfile) (*domain.Account, error) {
	account, err := s.accounts.FindByGoogleSubject(ctx, profile.Subject)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, fmt.Errorf("google login: %w", err)
	}

	email, err := normalizeEmail(profile.Email)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()

	account, err = s.accounts.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if !profile.EmailVerified {
			return nil, domain.NewAuthError(domain.CodeEmailAlreadyInUse, nil)
		}
		if !account.HasProvider(domain.ProviderGoogle) {
			account.Providers = append(account.Providers, domain.ProviderGoogle)
		}
		account.GoogleSubject = profile.Subject
		if account.DisplayName == "" {
			account.DisplayName = profile.Name
		}
		if account.PhotoURL == "" {
			account.PhotoURL = profile.Picture
		}
		account.UpdatedAt = now
		if err := s.accounts.Update(ctx, account); err != nil {
			return nil, fmt.Errorf("link google: %w", err)
		}
		s.log.Info().Str("uid", account.UID).Msg("google provider linked")
		return account, nil
	case !errors.Is(err, domain.ErrAccountNotFound):
		return nil, fmt.Errorf("google login: %w", err)
	}

	account = &domain.Account{
		UID:           uuid.NewString(),
		Email:         email,
		DisplayName:   profile.Name,
		PhotoURL:      profile.Picture,
		Providers:     []string{domain.ProviderGoogle},
		GoogleSubject: profile.Subject,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrEmailInUse) {
			return nil, domain.NewAuthError(domain.CodeEmailAlreadyInUse, err)
		}
		return nil, fmt.Errorf("google sign up: %w", err)
	}
	s.log.Info().Str("uid", account.UID).Msg("account created with google")
	return account, nil
}

func (s *AuthService) FetchSignInMethodsForEmail(ctx context.Context, email string) ([]string, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("fetch sign-in methods: %w", err)
	}
	return append([]string(nil), account.Providers...), nil
}

// SendPasswordResetEmail stores a one-time token and mails a link built from
// resetBaseURL with the token in the "token" query parameter.
func (s *AuthService) SendPasswordResetEmail(ctx context.Context, email, resetBaseURL string) error {
	if s.resets == nil || s.mailer == nil {
		return domain.NewAuthError(domain.CodeInternalError, errors.New("password reset is not configured"))
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.NewAuthError(domain.CodeUserNotFound, err)
		}
		return fmt.Errorf("password reset: %w", err)
	}

	token := uuid.NewString()
	if err := s.resets.Save(ctx, token, account.UID); err != nil {
		return fmt.Errorf("password reset: %w", err)
	}

	link, err := url.Parse(resetBaseURL)
	if err != nil {
		return fmt.Errorf("password reset: base url: %w", err)
	}
	q := link.Query()
	q.Set("token", token)
	link.RawQuery = q.Encode()

	if err := s.mailer.SendPasswordReset(ctx, account.Email, link.String()); err != nil {
		return fmt.Errorf("password reset: send: %w", err)
	}
	return nil
}

func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if s.resets == nil {
		return domain.NewAuthError(domain.CodeInternalError, errors.New("password reset is not configured"))
	}
	if len(newPassword) < minPasswordLength {
		return domain.NewAuthError(domain.CodeWeakPassword, nil)
	}

	uid, err := s.resets.Consume(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrResetTokenNotFound) {
			return domain.NewAuthError(domain.CodeExpiredActionCode, err)
		}
		return fmt.Errorf("confirm reset: %w", err)
	}

	account, err := s.accounts.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.NewAuthError(domain.CodeUserNotFound, err)
		}
		return fmt.Errorf("confirm reset: %w", err)
	}

	if err := setPassword(account, newPassword, s.now()); err != nil {
		return err
	}
	if err := s.accounts.Update(ctx, account); err != nil {
		return fmt.Errorf("confirm reset: %w", err)
	}
	return nil
}

// VerifyIDToken checks the token signature and expiry, then rejects tokens
// minted before the account's last credential change.
func (s *AuthService) VerifyIDToken(ctx context.Context, token string) (*domain.Session, error) {
	session, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.FindByUID(ctx, session.UID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.NewAuthError(domain.CodeInvalidIDToken, err)
		}
		return nil, fmt.Errorf("verify token: %w", err)
	}
	if session.IssuedAt.Before(account.TokensValidAfter.Truncate(time.Second)) {
		return nil, domain.NewAuthError(domain.CodeInvalidIDToken, errors.New("token revoked"))
	}
	session.Email = account.Email
	return session, nil
}

// RefreshIDToken mints a new token for the session, keeping its auth time.
func (s *AuthService) RefreshIDToken(ctx context.Context, session *domain.Session) (string, error) {
	account, err := s.accounts.FindByUID(ctx, session.UID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return "", domain.NewAuthError(domain.CodeUserNotFound, err)
		}
		return "", fmt.Errorf("refresh token: %w", err)
	}
	return s.tokens.Issue(account, session.AuthTime)
}

// NeedsRefresh reports whether the session token is older than the refresh interval.
func (s *AuthService) NeedsRefresh(session *domain.Session) bool {
	return s.now().Sub(session.IssuedAt) >= s.refreshInterval
}

func (s *AuthService) createPoolRecord(ctx context.Context, account *domain.Account) (*domain.User, error) {
	role := domain.RoleUser
	if s.isAdmin(account.Email) {
		role = domain.RoleAdmin
	}
	user := domain.NewUser(role)
	if err := s.users.Set(ctx, account.UID, user); err != nil {
		return nil, fmt.Errorf("create user record: %w", err)
	}
	return user, nil
}

func (s *AuthService) cacheSummary(ctx context.Context, account *domain.Account, user *domain.User) {
	if s.cache == nil {
		return
	}
	summary := &domain.CachedUser{Name: account.DisplayName, Email: account.Email, Role: user.Role}
	if err := s.cache.Set(ctx, account.UID, summary); err != nil {
		s.log.Warn().Err(err).Str("uid", account.UID).Msg("cache user summary failed")
	}
}

func setPassword(account *domain.Account, password string, now time.Time) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	account.PasswordHash = string(hash)
	if !account.HasProvider(domain.ProviderPassword) {
		account.Providers = append(account.Providers, domain.ProviderPassword)
	}
	account.TokensValidAfter = now.UTC()
	account.UpdatedAt = now.UTC()
	return nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return "", domain.NewAuthError(domain.CodeInvalidEmail, err)
	}
	if addr.Address != email {
		return "", domain.NewAuthError(domain.CodeInvalidEmail, nil)
	}
	return email, nil
}
