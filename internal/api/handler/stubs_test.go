package handler

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/apostaesportiva/bolao/internal/api/cookie"
	"github.com/apostaesportiva/bolao/internal/core/domain"
	"github.com/apostaesportiva/bolao/internal/core/ports"
)

type stubAuth struct {
	ports.AuthService
	signUp  func(name, email, password, confirmation string) (*domain.AuthResult, error)
	login   func(email, password string) (*domain.AuthResult, error)
	google  func(code string) (*domain.AuthResult, error)
	forgot  func(email, base string) error
	methods func(email string) ([]string, error)
	refresh func(session *domain.Session) (string, error)
}

func (s *stubAuth) SignUpWithEmailAndPassword(_ context.Context, name, email, password, confirmation string) (*domain.AuthResult, error) {
	return s.signUp(name, email, password, confirmation)
}

func (s *stubAuth) LoginWithEmailAndPassword(_ context.Context, email, password string) (*domain.AuthResult, error) {
	return s.login(email, password)
}

func (s *stubAuth) LoginWithGoogle(_ context.Context, code string) (*domain.AuthResult, error) {
	return s.google(code)
}

func (s *stubAuth) GoogleAuthURL(state string) (string, error) {
	return "https://accounts.example.com/auth?state=" + state, nil
}

func (s *stubAuth) SendPasswordResetEmail(_ context.Context, email, base string) error {
	return s.forgot(email, base)
}

func (s *stubAuth) FetchSignInMethodsForEmail(_ context.Context, email string) ([]string, error) {
	return s.methods(email)
}

func (s *stubAuth) RefreshIDToken(_ context.Context, session *domain.Session) (string, error) {
	return s.refresh(session)
}

type stubUsers struct {
	ports.UserService
	account *domain.Account
	user    *domain.User
	err     error
	lastUID string
}

func (s *stubUsers) GetAccount(_ context.Context, uid string) (*domain.Account, error) {
	s.lastUID = uid
	return s.account, s.err
}

func (s *stubUsers) GetUserDetails(_ context.Context, uid string) (*domain.User, error) {
	s.lastUID = uid
	return s.user, s.err
}

func (s *stubUsers) GetUserByUID(_ context.Context, uid string) (*domain.User, error) {
	s.lastUID = uid
	return s.user, s.err
}

func (s *stubUsers) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.lastUID = email
	return s.user, s.err
}

func (s *stubUsers) CreateUser(_ context.Context, uid string) (*domain.User, error) {
	s.lastUID = uid
	return s.user, s.err
}

func (s *stubUsers) UpdateUser(_ context.Context, uid string, user *domain.User) (*domain.User, error) {
	s.lastUID = uid
	if s.err != nil {
		return nil, s.err
	}
	return user, nil
}

type stubProfile struct {
	ports.ProfileService
	uploaded    []byte
	contentType string
	uploadErr   error
	photos      map[string][]byte
}

func (s *stubProfile) UploadPhoto(_ context.Context, _ string, contentType string, _ int64, reader io.Reader) (*domain.Account, error) {
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	s.uploaded, s.contentType = data, contentType
	return &domain.Account{UID: "u1"}, nil
}

func (s *stubProfile) OpenPhoto(_ context.Context, key string) (*domain.Photo, error) {
	if !strings.HasPrefix(key, "uploads/") {
		return nil, domain.ErrInvalidPhoto
	}
	data, ok := s.photos[key]
	if !ok {
		return nil, domain.ErrPhotoNotFound
	}
	return &domain.Photo{Body: io.NopCloser(bytes.NewReader(data)), Size: int64(len(data)), ContentType: "image/png"}, nil
}

var testJar = cookie.NewJar(false, 0)

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	renderer, err := NewRenderer()
	require.NoError(t, err)
	e.Renderer = renderer
	e.Validator = NewValidator()
	return e
}

func withSession(c echo.Context, uid string) {
	c.Set("session", &domain.Session{UID: uid, Email: uid + "@example.com"})
}

func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

// flashOf decodes the notice a response left for the next page.
func flashOf(t *testing.T, rec *httptest.ResponseRecorder) cookie.Notice {
	t.Helper()
	ck := responseCookie(rec, cookie.FlashName)
	require.NotNil(t, ck, "expected a flash cookie")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(ck)
	notice, ok := testJar.ReadFlash(httptest.NewRecorder(), req)
	require.True(t, ok)
	return notice
}
