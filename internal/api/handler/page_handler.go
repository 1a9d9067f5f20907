package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/apostaesportiva/bolao/internal/api/cookie"
	"github.com/apostaesportiva/bolao/internal/api/metrics"
	"github.com/apostaesportiva/bolao/internal/api/middleware"
	"github.com/apostaesportiva/bolao/internal/core/domain"
	"github.com/apostaesportiva/bolao/internal/core/ports"
	"github.com/apostaesportiva/bolao/internal/i18n"
)

// PageDeps wires the server-rendered pages.
type PageDeps struct {
	Auth          ports.AuthService
	Users         ports.UserService
	Jar           cookie.Jar
	BaseURL       string
	NoImageURL    string
	GoogleEnabled bool
	Log           zerolog.Logger
}

// PageHandler serves the sign-in pages, the dashboard, logout and the theme toggle.
type PageHandler struct {
	auth          ports.AuthService
	users         ports.UserService
	jar           cookie.Jar
	baseURL       string
	noImageURL    string
	googleEnabled bool
	log           zerolog.Logger
}

func NewPageHandler(deps PageDeps) *PageHandler {
	return &PageHandler{
		auth:          deps.Auth,
		users:         deps.Users,
		jar:           deps.Jar,
		baseURL:       strings.TrimRight(deps.BaseURL, "/"),
		noImageURL:    deps.NoImageURL,
		googleEnabled: deps.GoogleEnabled,
		log:           deps.Log,
	}
}

// page builds the view model shared by every template and consumes the
// pending flash notice.
func (h *PageHandler) page(c echo.Context, titleKey string) pageData {
	return newPage(c, h.jar, titleKey)
}

func newPage(c echo.Context, jar cookie.Jar, titleKey string) pageData {
	data := pageData{
		Lang:     ctxLang(c),
		TitleKey: titleKey,
		Theme:    cookie.ReadTheme(c.Request()),
		User:     middleware.UserFrom(c),
	}
	if notice, ok := jar.ReadFlash(c.Response(), c.Request()); ok {
		data.Notice = &notice
	}
	return data
}

func errorNotice(tag language.Tag, err error) *cookie.Notice {
	return &cookie.Notice{Kind: cookie.KindError, Title: i18n.T(tag, i18n.KeyToastError), Body: errorText(tag, err)}
}

// renderFormError re-renders a form page with field errors or a notification.
func (h *PageHandler) renderFormError(c echo.Context, name, titleKey string, form map[string]string, err error) error {
	data := h.page(c, titleKey)
	data.Form = form
	data.GoogleEnabled = h.googleEnabled
	data.Token = form["token"]
	status := http.StatusUnprocessableEntity
	var ve *ValidationError
	if errors.As(err, &ve) {
		data.Errors = ve.Messages(data.Lang)
	} else {
		data.Notice = errorNotice(data.Lang, err)
		status = http.StatusOK
	}
	return c.Render(status, name, data)
}

func authResult(err error) string {
	if err == nil {
		return "success"
	}
	if code := domain.AuthCode(err); code != "" {
		return code
	}
	return "error"
}

// LoginPage renders the sign-in form.
func (h *PageHandler) LoginPage(c echo.Context) error {
	data := h.page(c, i18n.KeyPageLogin)
	data.GoogleEnabled = h.googleEnabled
	return c.Render(http.StatusOK, "login", data)
}

// Login signs in with e-mail and password and opens the dashboard.
func (h *PageHandler) Login(c echo.Context) error {
	var form loginForm
	if err := bindAndValidate(c, &form); err != nil {
		return h.renderFormError(c, "login", i18n.KeyPageLogin, map[string]string{"email": form.Email}, err)
	}

	result, err := h.auth.LoginWithEmailAndPassword(c.Request().Context(), form.Email, form.Password)
	metrics.AuthAttemptsTotal.WithLabelValues(domain.ProviderPassword, authResult(err)).Inc()
	if err != nil {
		return h.renderFormError(c, "login", i18n.KeyPageLogin, map[string]string{"email": form.Email}, err)
	}

	h.startSession(c, result, i18n.KeyToastLoginTitle, i18n.KeyToastLoginBody)
	return c.Redirect(http.StatusFound, "/dashboard")
}

// SignupPage renders the registration form.
func (h *PageHandler) SignupPage(c echo.Context) error {
	data := h.page(c, i18n.KeyPageSignup)
	data.GoogleEnabled = h.googleEnabled
	return c.Render(http.StatusOK, "signup", data)
}

// Signup creates the account and its pool record and opens the dashboard.
func (h *PageHandler) Signup(c echo.Context) error {
	var form signupForm
	sticky := func() map[string]string { return map[string]string{"name": form.Name, "email": form.Email} }
	if err := bindAndValidate(c, &form); err != nil {
		return h.renderFormError(c, "signup", i18n.KeyPageSignup, sticky(), err)
	}

	result, err := h.auth.SignUpWithEmailAndPassword(c.Request().Context(), form.Name, form.Email, form.Password, form.PasswordConfirmation)
	metrics.AuthAttemptsTotal.WithLabelValues("signup", authResult(err)).Inc()
	if err != nil {
		return h.renderFormError(c, "signup", i18n.KeyPageSignup, sticky(), err)
	}

	h.startSession(c, result, i18n.KeyToastSignupTitle, i18n.KeyToastSignupBody)
	return c.Redirect(http.StatusFound, "/dashboard")
}

// ForgotPage renders the password reset request form.
func (h *PageHandler) ForgotPage(c echo.Context) error {
	return c.Render(http.StatusOK, "forgot", h.page(c, i18n.KeyPageForgot))
}

// Forgot mails a password reset link.
func (h *PageHandler) Forgot(c echo.Context) error {
	var form forgotForm
	if err := bindAndValidate(c, &form); err != nil {
		return h.renderFormError(c, "forgot", i18n.KeyPageForgot, map[string]string{"email": form.Email}, err)
	}

	if err := h.auth.SendPasswordResetEmail(c.Request().Context(), form.Email, h.baseURL+"/reset"); err != nil {
		return h.renderFormError(c, "forgot", i18n.KeyPageForgot, map[string]string{"email": form.Email}, err)
	}

	tag := ctxLang(c)
	h.jar.WriteFlash(c.Response(), cookie.Notice{
		Kind:  cookie.KindSuccess,
		Title: i18n.T(tag, i18n.KeyToastResetSentTitle),
		Body:  i18n.T(tag, i18n.KeyToastResetSentBody),
	})
	return c.Redirect(http.StatusFound, "/login")
}

// ResetPage renders the new password form for the token in the query.
func (h *PageHandler) ResetPage(c echo.Context) error {
	data := h.page(c, i18n.KeyPageReset)
	data.Token = c.QueryParam("token")
	return c.Render(http.StatusOK, "reset", data)
}

// Reset consumes the reset token and sets the new password.
func (h *PageHandler) Reset(c echo.Context) error {
	var form resetForm
	if err := bindAndValidate(c, &form); err != nil {
		return h.renderFormError(c, "reset", i18n.KeyPageReset, map[string]string{"token": form.Token}, err)
	}

	if err := h.auth.ConfirmPasswordReset(c.Request().Context(), form.Token, form.NewPassword); err != nil {
		return h.renderFormError(c, "reset", i18n.KeyPageReset, map[string]string{"token": form.Token}, err)
	}

	h.jar.WriteFlash(c.Response(), cookie.Notice{Kind: cookie.KindSuccess, Title: i18n.T(ctxLang(c), i18n.KeyToastResetDone)})
	return c.Redirect(http.StatusFound, "/login")
}

// Dashboard shows the signed-in user's pool record.
func (h *PageHandler) Dashboard(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	account, err := h.users.GetAccount(ctx, session.UID)
	if err != nil {
		return err
	}
	pool, err := h.users.GetUserDetails(ctx, session.UID)
	if err != nil {
		return err
	}

	data := h.page(c, i18n.KeyPageDashboard)
	data.Account = account
	data.Pool = pool
	data.PhotoURL = photoOrPlaceholder(account.PhotoURL, h.noImageURL)
	if pool != nil {
		data.Points = sortedPoints(pool.TotalPoints)
	}
	return c.Render(http.StatusOK, "dashboard", data)
}

// Logout destroys the session cookie.
func (h *PageHandler) Logout(c echo.Context) error {
	h.jar.ClearSession(c.Response())
	h.jar.WriteFlash(c.Response(), cookie.Notice{Kind: cookie.KindSuccess, Title: i18n.T(ctxLang(c), i18n.KeyToastLogout)})
	return c.Redirect(http.StatusFound, "/login")
}

// ToggleTheme flips between the light and dark theme and goes back.
func (h *PageHandler) ToggleTheme(c echo.Context) error {
	h.jar.ToggleTheme(c.Response(), c.Request())
	return c.Redirect(http.StatusFound, backTo(c.Request()))
}

// Home sends visitors to the dashboard; guests bounce on to the login page.
func (h *PageHandler) Home(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/dashboard")
}

func (h *PageHandler) startSession(c echo.Context, result *domain.AuthResult, titleKey, bodyKey string) {
	tag := ctxLang(c)
	name := result.Account.DisplayName
	if name == "" {
		name = result.Account.Email
	}
	h.jar.WriteSession(c.Response(), result.Token)
	h.jar.WriteFlash(c.Response(), cookie.Notice{
		Kind:  cookie.KindSuccess,
		Title: i18n.T(tag, titleKey),
		Body:  i18n.T(tag, bodyKey, name),
	})
}

// backTo returns the same-origin path of the Referer, or "/".
func backTo(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || !strings.HasPrefix(ref.Path, "/") || strings.HasPrefix(ref.Path, "//") {
		return "/"
	}
	if ref.Host != "" && ref.Host != r.Host {
		return "/"
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}

func photoOrPlaceholder(photoURL, placeholder string) string {
	if photoURL == "" {
		return placeholder
	}
	return photoURL
}
