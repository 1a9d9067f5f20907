package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/apostaesportiva/bolao/internal/api/cookie"
	"github.com/apostaesportiva/bolao/internal/api/metrics"
	"github.com/apostaesportiva/bolao/internal/core/domain"
	"github.com/apostaesportiva/bolao/internal/core/ports"
)

const (
	ctxSessionKey = "session"
	ctxUserKey    = "user"
	ctxRoleKey    = "role"
)

// SessionConfig wires LoadSession.
type SessionConfig struct {
	Auth  ports.AuthService
	Users ports.UserService
	Jar   cookie.Jar
	Log   zerolog.Logger

	// Skipper bypasses session loading. Defaults to SkipOpsRoutes.
	Skipper echomiddleware.Skipper
}

var opsPrefixes = []string{"/health", "/metrics", "/static/", "/swagger/"}

// SkipOpsRoutes matches the probe, metrics, static asset and API doc routes,
// none of which read the session.
func SkipOpsRoutes(c echo.Context) bool {
	path := c.Request().URL.Path
	for _, prefix := range opsPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// LoadSession verifies the session cookie, if any, and injects the session,
// the cached user summary and its role into the context. Invalid tokens are
// destroyed; tokens older than the refresh interval are re-issued.
func LoadSession(cfg SessionConfig) echo.MiddlewareFunc {
	if cfg.Skipper == nil {
		cfg.Skipper = SkipOpsRoutes
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skipper(c) {
				return next(c)
			}
			token, ok := cookie.ReadSession(c.Request())
			if !ok {
				return next(c)
			}

			ctx := c.Request().Context()
			session, err := cfg.Auth.VerifyIDToken(ctx, token)
			if err != nil {
				if domain.AuthCode(err) == "" {
					return err
				}
				cfg.Log.Debug().Err(err).Msg("session cookie rejected")
				cfg.Jar.ClearSession(c.Response())
				return next(c)
			}

			if cfg.Auth.NeedsRefresh(session) {
				fresh, err := cfg.Auth.RefreshIDToken(ctx, session)
				if err != nil {
					cfg.Log.Warn().Err(err).Str("uid", session.UID).Msg("session refresh failed")
				} else {
					cfg.Jar.WriteSession(c.Response(), fresh)
					metrics.SessionsRefreshedTotal.Inc()
				}
			}
			c.Set(ctxSessionKey, session)

			if cfg.Users != nil {
				summary, err := cfg.Users.GetCachedUser(ctx, session.UID)
				if err != nil {
					cfg.Log.Warn().Err(err).Str("uid", session.UID).Msg("user summary lookup failed")
				} else {
					c.Set(ctxUserKey, summary)
					c.Set(ctxRoleKey, summary.Role)
				}
			}
			return next(c)
		}
	}
}

// APIAuth rejects requests without a valid session with 401.
func APIAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := SessionFrom(c); !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
			}
			return next(c)
		}
	}
}

// RequireUser sends visitors without a valid session to the login page.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := SessionFrom(c); !ok {
				return c.Redirect(http.StatusFound, "/login")
			}
			return next(c)
		}
	}
}

// GuestOnly sends signed-in users to the dashboard.
func GuestOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := SessionFrom(c); ok {
				return c.Redirect(http.StatusFound, "/dashboard")
			}
			return next(c)
		}
	}
}

// SessionFrom returns the session injected by LoadSession.
func SessionFrom(c echo.Context) (*domain.Session, bool) {
	session, ok := c.Get(ctxSessionKey).(*domain.Session)
	return session, ok && session != nil
}

// UserFrom returns the cached user summary injected by LoadSession.
func UserFrom(c echo.Context) *domain.CachedUser {
	user, _ := c.Get(ctxUserKey).(*domain.CachedUser)
	return user
}
