package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/apostaesportiva/bolao/internal/api/middleware"
	"github.com/apostaesportiva/bolao/internal/core/domain"
	"github.com/apostaesportiva/bolao/internal/i18n"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	tag := middleware.LangFrom(c)

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, "invalid role"
	case errors.Is(err, domain.ErrInvalidPhoto):
		return http.StatusBadRequest, "invalid photo"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrPhotoNotFound):
		return http.StatusNotFound, "photo not found"
	case errors.Is(err, domain.ErrAccountNotFound), errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, i18n.DecodeAuthCode(tag, domain.CodeUserNotFound)
	case errors.Is(err, domain.ErrUnavailable):
		log.Warn().Err(err).Str("path", c.Path()).Msg("backend unavailable")
		return http.StatusServiceUnavailable, i18n.ErrorMessage(tag, err)
	}

	if code := domain.AuthCode(err); code != "" {
		status := http.StatusBadRequest
		switch code {
		case domain.CodeInvalidIDToken, domain.CodeIDTokenExpired, domain.CodeRequiresRecentLogin:
			status = http.StatusUnauthorized
		case domain.CodeEmailAlreadyInUse:
			status = http.StatusConflict
		case domain.CodeInternalError:
			status = http.StatusInternalServerError
		}
		return status, i18n.ErrorMessage(tag, err)
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
