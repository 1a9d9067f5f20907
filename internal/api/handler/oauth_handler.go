package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/apostaesportiva/bolao/internal/api/metrics"
	"github.com/apostaesportiva/bolao/internal/core/domain"
	"github.com/apostaesportiva/bolao/internal/i18n"
)

// GoogleLogin redirects to Google's consent page with a fresh state.
func (h *PageHandler) GoogleLogin(c echo.Context) error {
	state := uuid.NewString()
	target, err := h.auth.GoogleAuthURL(state)
	if err != nil {
		return h.failLogin(c, err)
	}
	h.jar.WriteState(c.Response(), state)
	return c.Redirect(http.StatusFound, target)
}

// GoogleCallback completes the Google sign-in. A denied consent reads as the
// user closing the popup.
func (h *PageHandler) GoogleCallback(c echo.Context) error {
	validState := h.jar.ConsumeState(c.Response(), c.Request(), c.QueryParam("state"))

	if c.QueryParam("error") != "" {
		err := domain.NewAuthError(domain.CodePopupClosedByUser, nil)
		metrics.AuthAttemptsTotal.WithLabelValues(domain.ProviderGoogle, authResult(err)).Inc()
		return h.failLogin(c, err)
	}
	if !validState {
		err := domain.NewAuthError(domain.CodeInternalError, nil)
		metrics.AuthAttemptsTotal.WithLabelValues(domain.ProviderGoogle, authResult(err)).Inc()
		return h.failLogin(c, err)
	}

	result, err := h.auth.LoginWithGoogle(c.Request().Context(), c.QueryParam("code"))
	metrics.AuthAttemptsTotal.WithLabelValues(domain.ProviderGoogle, authResult(err)).Inc()
	if err != nil {
		return h.failLogin(c, err)
	}

	h.startSession(c, result, i18n.KeyToastLoginTitle, i18n.KeyToastLoginBody)
	return c.Redirect(http.StatusFound, "/dashboard")
}

func (h *PageHandler) failLogin(c echo.Context, err error) error {
	h.log.Warn().Err(err).Msg("google sign-in failed")
	h.jar.WriteFlash(c.Response(), *errorNotice(ctxLang(c), err))
	return c.Redirect(http.StatusFound, "/login")
}
