package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/apostaesportiva/bolao/internal/core/domain"
	"github.com/apostaesportiva/bolao/internal/core/ports"
)

// UserService reads and writes pool records and their cached summaries.
type UserService struct {
	accounts ports.AccountRepository
	users    ports.UserRepository
	cache    ports.UserCache
	isAdmin  func(email string) bool
	log      zerolog.Logger
}

func NewUserService(
	accounts ports.AccountRepository,
	users ports.UserRepository,
	cache ports.UserCache,
	isAdmin func(email string) bool,
	log zerolog.Logger,
) *UserService {
	if isAdmin == nil {
		isAdmin = func(string) bool { return false }
	}
	return &UserService{accounts: accounts, users: users, cache: cache, isAdmin: isAdmin, log: log}
}

// CreateUser writes a fresh pool record for uid, replacing any existing one.
func (s *UserService) CreateUser(ctx context.Context, uid string) (*domain.User, error) {
	role := domain.RoleUser
	account, err := s.accounts.FindByUID(ctx, uid)
	switch {
	case err == nil:
		if s.isAdmin(account.Email) {
			role = domain.RoleAdmin
		}
	case !errors.Is(err, domain.ErrAccountNotFound):
		return nil, fmt.Errorf("create user: %w", err)
	}

	user := domain.NewUser(role)
	if err := s.users.Set(ctx, uid, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.invalidate(ctx, uid)
	return user, nil
}

// GetUserDetails returns the pool record for uid, or nil when there is none.
func (s *UserService) GetUserDetails(ctx context.Context, uid string) (*domain.User, error) {
	return s.GetUserByUID(ctx, uid)
}

func (s *UserService) GetUserByUID(ctx context.Context, uid string) (*domain.User, error) {
	user, err := s.users.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// GetUserByEmail resolves email through the owning account. Unknown e-mails
// yield nil without error.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	account, err := s.accounts.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return s.GetUserByUID(ctx, account.UID)
}

// UpdateUser replaces the pool record for uid.
func (s *UserService) UpdateUser(ctx context.Context, uid string, user *domain.User) (*domain.User, error) {
	if user == nil || (user.Role != domain.RoleUser && user.Role != domain.RoleAdmin) {
		return nil, domain.ErrInvalidRole
	}
	if user.TotalPoints == nil {
		user.TotalPoints = map[string]float64{}
	}
	if err := s.users.Set(ctx, uid, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	s.invalidate(ctx, uid)
	return user, nil
}

func (s *UserService) GetAccount(ctx context.Context, uid string) (*domain.Account, error) {
	account, err := s.accounts.FindByUID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return account, nil
}

// GetCachedUser returns the header summary for uid, reading through the cache.
func (s *UserService) GetCachedUser(ctx context.Context, uid string) (*domain.CachedUser, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, uid)
		if err != nil {
			s.log.Warn().Err(err).Str("uid", uid).Msg("user cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	account, err := s.GetAccount(ctx, uid)
	if err != nil {
		return nil, err
	}
	summary := &domain.CachedUser{Name: account.DisplayName, Email: account.Email}
	user, err := s.GetUserByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if user != nil {
		summary.Role = user.Role
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, uid, summary); err != nil {
			s.log.Warn().Err(err).Str("uid", uid).Msg("user cache write failed")
		}
	}
	return summary, nil
}

func (s *UserService) invalidate(ctx context.Context, uid string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, uid); err != nil {
		s.log.Warn().Err(err).Str("uid", uid).Msg("user cache invalidation failed")
	}
}
