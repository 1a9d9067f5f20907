package domain

import (
	"slices"
	"time"
)

const (
	ProviderPassword = "password"
	ProviderGoogle   = "google.com"
)

// Account models an identity: credentials, profile and linked sign-in methods.
type Account struct {
	UID              string    `json:"uid"`
	Email            string    `json:"email"`
	DisplayName      string    `json:"displayName"`
	PhotoURL         string    `json:"photoURL"`
	PasswordHash     string    `json:"-"`
	Providers        []string  `json:"providers"`
	GoogleSubject    string    `json:"-"`
	TokensValidAfter time.Time `json:"-"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// HasProvider reports whether the account can sign in with provider.
func (a *Account) HasProvider(provider string) bool {
	return slices.Contains(a.Providers, provider)
}

// Session is the verified content of a session token.
type Session struct {
	UID       string
	Email     string
	IssuedAt  time.Time
	AuthTime  time.Time
	ExpiresAt time.Time
}

// GoogleProfile is the identity returned by Google after a successful sign-in.
type GoogleProfile struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

// AuthResult is what a successful sign-in or sign-up yields.
type AuthResult struct {
	Account *Account
	User    *User
	Token   string
}
