package service

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/apostaesportiva/bolao/internal/core/domain"
	"github.com/apostaesportiva/bolao/internal/i18n"
)

type authFixture struct {
	svc      *AuthService
	accounts *stubAccountRepo
	users    *stubUserRepo
	cache    *stubCache
	resets   *stubResetStore
	mailer   *stubMailer
	google   *stubGoogle
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		accounts: newStubAccountRepo(),
		users:    newStubUserRepo(),
		cache:    newStubCache(),
		resets:   &stubResetStore{tokens: map[string]string{}},
		mailer:   &stubMailer{},
		google:   &stubGoogle{},
	}
	f.svc = NewAuthService(AuthDeps{
		Accounts: f.accounts,
		Users:    f.users,
		Cache:    f.cache,
		Resets:   f.resets,
		Mailer:   f.mailer,
		Google:   f.google,
		Tokens:   NewTokenManager("secret", time.Hour),
		IsAdmin:  func(email string) bool { return email == "boss@example.com" },
		Log:      zerolog.Nop(),
	})
	return f
}

func assertAuthCode(t *testing.T, err error, code string) {
	t.Helper()
	if got := domain.AuthCode(err); got != code {
		t.Fatalf("expected auth code %q, got %q (err=%v)", code, got, err)
	}
}

func assertMessageKey(t *testing.T, err error, key string) {
	t.Helper()
	if got := domain.MessageKey(err); got != key {
		t.Fatalf("expected message key %q, got %q (err=%v)", key, got, err)
	}
}

func TestAuthService_SignUp_Success(t *testing.T) {
	f := newAuthFixture()

	res, err := f.svc.SignUpWithEmailAndPassword(context.Background(), " Ana ", "Ana@Example.com", "secret1", "secret1")
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if res.Account.Email != "ana@example.com" || res.Account.DisplayName != "Ana" {
		t.Fatalf("unexpected account: %+v", res.Account)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(res.Account.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected token")
	}
	if res.User.Role != domain.RoleUser || res.User.TotalPoints == nil || len(res.User.TotalPoints) != 0 {
		t.Fatalf("unexpected pool record: %+v", res.User)
	}
	if _, ok := f.users.users[res.Account.UID]; !ok {
		t.Fatalf("pool record not persisted")
	}
	if cached := f.cache.entries[res.Account.UID]; cached == nil || cached.Name != "Ana" {
		t.Fatalf("summary not cached: %+v", cached)
	}
}

func TestAuthService_SignUp_AdminEmail(t *testing.T) {
	f := newAuthFixture()

	res, err := f.svc.SignUpWithEmailAndPassword(context.Background(), "Boss", "boss@example.com", "secret1", "secret1")
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if res.User.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %s", res.User.Role)
	}
}

func TestAuthService_SignUp_PasswordMismatch(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.SignUpWithEmailAndPassword(context.Background(), "Ana", "ana@example.com", "secret1", "secret2")
	if !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
	assertMessageKey(t, err, i18n.KeyErrPasswordsDiffer)
	if len(f.accounts.accounts) != 0 {
		t.Fatalf("mismatch must not create an account")
	}
}

func TestAuthService_SignUp_Duplicate(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	if _, err := f.svc.SignUpWithEmailAndPassword(ctx, "Ana", "ana@example.com", "secret1", "secret1"); err != nil {
		t.Fatalf("first sign up failed: %v", err)
	}
	_, err := f.svc.SignUpWithEmailAndPassword(ctx, "Ana", "ana@example.com", "secret2", "secret2")
	assertAuthCode(t, err, domain.CodeEmailAlreadyInUse)
}

func TestAuthService_SignUp_WeakPasswordAndBadEmail(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.svc.SignUpWithEmailAndPassword(ctx, "Ana", "ana@example.com", "12345", "12345")
	assertAuthCode(t, err, domain.CodeWeakPassword)

	_, err = f.svc.SignUpWithEmailAndPassword(ctx, "Ana", "not-an-email", "secret1", "secret1")
	assertAuthCode(t, err, domain.CodeInvalidEmail)
}

func TestAuthService_Login_Success(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	created, err := f.svc.SignUpWithEmailAndPassword(ctx, "Ana", "ana@example.com", "secret1", "secret1")
	if err != nil {
		t.Fatalf("sign up failed: %v", err)
	}

	res, err := f.svc.LoginWithEmailAndPassword(ctx, "ANA@example.com", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Account.UID != created.Account.UID {
		t.Fatalf("logged into wrong account")
	}

	session, err := f.svc.VerifyIDToken(ctx, res.Token)
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if session.UID != created.Account.UID || session.Email != "ana@example.com" {
		t.Fatalf("unexpected session: %+v", session)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.LoginWithEmailAndPassword(context.Background(), "ghost@example.com", "secret1")
	assertAuthCode(t, err, domain.CodeUserNotFound)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)

	cases := []struct {
		name      string
		providers []string
		wantKey   string
		wantCode  string
	}{
		{name: "password provider", providers: []string{domain.ProviderPassword}, wantCode: domain.CodeWrongPassword},
		{name: "google first", providers: []string{domain.ProviderGoogle, domain.ProviderPassword}, wantKey: i18n.KeyErrGoogleHint},
		{name: "no providers", providers: nil, wantKey: i18n.KeyErrBadCredentials},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newAuthFixture()
			f.accounts.accounts["u1"] = &domain.Account{
				UID:          "u1",
				Email:        "ana@example.com",
				PasswordHash: string(hash),
				Providers:    tc.providers,
			}

			_, err := f.svc.LoginWithEmailAndPassword(ctx, "ana@example.com", "wrong-password")
			if err == nil {
				t.Fatalf("expected error")
			}
			assertMessageKey(t, err, tc.wantKey)
			if tc.wantCode != "" {
				assertAuthCode(t, err, tc.wantCode)
			}
		})
	}
}

func TestAuthService_Login_GoogleOnlyAccount(t *testing.T) {
	f := newAuthFixture()
	f.accounts.accounts["u1"] = &domain.Account{UID: "u1", Email: "ana@example.com", Providers: []string{domain.ProviderGoogle}}

	_, err := f.svc.LoginWithEmailAndPassword(context.Background(), "ana@example.com", "secret1")
	assertMessageKey(t, err, i18n.KeyErrGoogleHint)
}

func TestAuthService_Login_MissingPoolRecord(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	res, err := f.svc.SignUpWithEmailAndPassword(ctx, "Ana", "ana@example.com", "secret1", "secret1")
	if err != nil {
		t.Fatalf("sign up failed: %v", err)
	}
	delete(f.users.users, res.Account.UID)

	_, err = f.svc.LoginWithEmailAndPassword(ctx, "ana@example.com", "secret1")
	assertMessageKey(t, err, i18n.KeyErrMissingDBUser)
}

func TestAuthService_LoginWithGoogle_CreatesAccountAndRecord(t *testing.T) {
	f := newAuthFixture()
	f.google.profile = &domain.GoogleProfile{
		Subject: "g-1", Email: "Ana@Gmail.com", EmailVerified: true, Name: "Ana", Picture: "https://lh3.googleusercontent.com/a",
	}

	res, err := f.svc.LoginWithGoogle(context.Background(), "code")
	if err != nil {
		t.Fatalf("LoginWithGoogle failed: %v", err)
	}
	if res.Account.Email != "ana@gmail.com" || res.Account.GoogleSubject != "g-1" {
		t.Fatalf("unexpected account: %+v", res.Account)
	}
	if len(res.Account.Providers) != 1 || res.Account.Providers[0] != domain.ProviderGoogle {
		t.Fatalf("unexpected providers: %v", res.Account.Providers)
	}
	if res.Account.PhotoURL != "https://lh3.googleusercontent.com/a" {
		t.Fatalf("expected google picture as photo")
	}
	if _, ok := f.users.users[res.Account.UID]; !ok {
		t.Fatalf("pool record not created")
	}

	again, err := f.svc.LoginWithGoogle(context.Background(), "code")
	if err != nil {
		t.Fatalf("second LoginWithGoogle failed: %v", err)
	}
	if again.Account.UID != res.Account.UID || len(f.accounts.accounts) != 1 {
		t.Fatalf("second sign-in must reuse the account")
	}
}

func TestAuthService_LoginWithGoogle_LinksExistingAccount(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	created, err := f.svc.SignUpWithEmailAndPassword(ctx, "Ana", "ana@example.com", "secret1", "secret1")
	if err != nil {
		t.Fatalf("sign up failed: %v", err)
	}
	f.users.users[created.Account.UID].TotalPoints["2026"] = 12

	f.google.profile = &domain.GoogleProfile{Subject: "g-1", Email: "ana@example.com", EmailVerified: true, Name: "Ana G"}
	res, err := f.svc.LoginWithGoogle(ctx, "code")
	if err != nil {
		t.Fatalf("LoginWithGoogle failed: %v", err)
	}
	if res.Account.UID != created.Account.UID {
		t.Fatalf("expected linked account")
	}
	if !res.Account.HasProvider(domain.ProviderGoogle) || res.Account.Providers[0] != domain.ProviderPassword {
		t.Fatalf("unexpected providers: %v", res.Account.Providers)
	}
	if res.User.TotalPoints["2026"] != 12 {
		t.Fatalf("existing pool record must be kept, got %+v", res.User)
	}
}

func TestAuthService_LoginWithGoogle_UnverifiedEmailCollision(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	if _, err := f.svc.SignUpWithEmailAndPassword(ctx, "Ana", "ana@example.com", "secret1", "secret1"); err != nil {
		t.Fatalf("sign up failed: %v", err)
	}
	f.google.profile = &domain.GoogleProfile{Subject: "g-1", Email: "ana@example.com"}

	_, err := f.svc.LoginWithGoogle(ctx, "code")
	assertAuthCode(t, err, domain.CodeEmailAlreadyInUse)
}

func TestAuthService_LoginWithGoogle_NoCode(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.LoginWithGoogle(context.Background(), "")
	assertAuthCode(t, err, domain.CodePopupClosedByUser)
}

func TestAuthService_FetchSignInMethods(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	methods, err := f.svc.FetchSignInMethodsForEmail(ctx, "ghost@example.com")
	if err != nil || len(methods) != 0 {
		t.Fatalf("expected no methods, got %v %v", methods, err)
	}

	if _, err := f.svc.SignUpWithEmailAndPassword(ctx, "Ana", "ana@example.com", "secret1", "secret1"); err != nil {
		t.Fatalf("sign up failed: %v", err)
	}
	methods, err = f.svc.FetchSignInMethodsForEmail(ctx, "ana@example.com")
	if err != nil || len(methods) != 1 || methods[0] != domain.ProviderPassword {
		t.Fatalf("unexpected methods: %v %v", methods, err)
	}
}

func TestAuthService_PasswordReset_RoundTrip(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	created, err := f.svc.SignUpWithEmailAndPassword(ctx, "Ana", "ana@example.com", "secret1", "secret1")
	if err != nil {
		t.Fatalf("sign up failed: %v", err)
	}

	if err := f.svc.SendPasswordResetEmail(ctx, "ana@example.com", "http://localhost:8080/reset"); err != nil {
		t.Fatalf("SendPasswordResetEmail failed: %v", err)
	}
	if f.mailer.to != "ana@example.com" {
		t.Fatalf("mail sent to %q", f.mailer.to)
	}
	link, err := url.Parse(f.mailer.link)
	if err != nil {
		t.Fatalf("bad link: %v", err)
	}
	token := link.Query().Get("token")
	if link.Path != "/reset" || token == "" {
		t.Fatalf("unexpected link: %s", f.mailer.link)
	}

	if err := f.svc.ConfirmPasswordReset(ctx, token, "newsecret"); err != nil {
		t.Fatalf("ConfirmPasswordReset failed: %v", err)
	}
	if _, err := f.svc.LoginWithEmailAndPassword(ctx, "ana@example.com", "newsecret"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}

	err = f.svc.ConfirmPasswordReset(ctx, token, "another1")
	assertAuthCode(t, err, domain.CodeExpiredActionCode)

	// the token issued at sign-up predates the reset
	f.accounts.accounts[created.Account.UID].TokensValidAfter = time.Now().Add(time.Minute)
	_, err = f.svc.VerifyIDToken(ctx, created.Token)
	assertAuthCode(t, err, domain.CodeInvalidIDToken)
}

func TestAuthService_SendPasswordReset_UnknownEmail(t *testing.T) {
	f := newAuthFixture()

	err := f.svc.SendPasswordResetEmail(context.Background(), "ghost@example.com", "http://localhost/reset")
	assertAuthCode(t, err, domain.CodeUserNotFound)
}

func TestAuthService_RefreshKeepsAuthTime(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	res, err := f.svc.SignUpWithEmailAndPassword(ctx, "Ana", "ana@example.com", "secret1", "secret1")
	if err != nil {
		t.Fatalf("sign up failed: %v", err)
	}
	session, err := f.svc.VerifyIDToken(ctx, res.Token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if f.svc.NeedsRefresh(session) {
		t.Fatalf("fresh token must not need refresh")
	}

	base := time.Now()
	f.svc.now = func() time.Time { return base.Add(11 * time.Minute) }
	if !f.svc.NeedsRefresh(session) {
		t.Fatalf("token older than the refresh interval must need refresh")
	}

	refreshed, err := f.svc.RefreshIDToken(ctx, session)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	next, err := f.svc.VerifyIDToken(ctx, refreshed)
	if err != nil {
		t.Fatalf("refreshed token invalid: %v", err)
	}
	if !next.AuthTime.Equal(session.AuthTime) {
		t.Fatalf("auth time changed across refresh: %v != %v", next.AuthTime, session.AuthTime)
	}
}
