package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/apostaesportiva/bolao/internal/core/domain"
)

const defaultTokenTTL = time.Hour

type tokenClaims struct {
	jwt.RegisteredClaims
	UID      string `json:"uid"`
	Email    string `json:"email"`
	AuthTime int64  `json:"auth_time"`
}

// TokenManager signs and verifies session ID tokens with HMAC-SHA256.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for account. authTime is when the user last proved
// their credentials and survives refreshes.
func (m *TokenManager) Issue(account *domain.Account, authTime time.Time) (string, error) {
	now := m.now()
	if authTime.IsZero() {
		authTime = now
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.UID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UID:      account.UID,
		Email:    account.Email,
		AuthTime: authTime.Unix(),
	})

	signed, err := t.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature and expiry of raw and returns its session.
func (m *TokenManager) Parse(raw string) (*domain.Session, error) {
	claims := &tokenClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithIssuedAt())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.NewAuthError(domain.CodeIDTokenExpired, err)
		}
		return nil, domain.NewAuthError(domain.CodeInvalidIDToken, err)
	}
	if !tkn.Valid || claims.UID == "" || claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, domain.NewAuthError(domain.CodeInvalidIDToken, errors.New("incomplete claims"))
	}

	return &domain.Session{
		UID:       claims.UID,
		Email:     claims.Email,
		IssuedAt:  claims.IssuedAt.Time,
		AuthTime:  time.Unix(claims.AuthTime, 0),
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
