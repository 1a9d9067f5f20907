package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/apostaesportiva/bolao/internal/api/cookie"
	"github.com/apostaesportiva/bolao/internal/api/metrics"
	"github.com/apostaesportiva/bolao/internal/core/domain"
	"github.com/apostaesportiva/bolao/internal/core/ports"
)

// AuthHandler is the JSON face of the identity service used by scripted clients.
type AuthHandler struct {
	authService ports.AuthService
	userService ports.UserService
	jar         cookie.Jar
	baseURL     string
}

func NewAuthHandler(authService ports.AuthService, userService ports.UserService, jar cookie.Jar, baseURL string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		jar:         jar,
		baseURL:     strings.TrimRight(baseURL, "/"),
	}
}

// authResponse mirrors the result of every auth action.
type authResponse struct {
	Success bool            `json:"success"`
	User    *domain.Account `json:"user,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type methodsResponse struct {
	Methods []string `json:"methods"`
}

func (h *AuthHandler) fail(c echo.Context, err error) error {
	return c.JSON(authStatus(err), authResponse{Error: errorText(ctxLang(c), err)})
}

// SignUp registers a new account.
//
// @Summary      Sign up with e-mail and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupForm  true  "Registration details"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  authResponse
// @Failure      409   {object}  authResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signupForm
	if err := bindAndValidate(c, &req); err != nil {
		return h.fail(c, err)
	}

	result, err := h.authService.SignUpWithEmailAndPassword(c.Request().Context(), req.Name, req.Email, req.Password, req.PasswordConfirmation)
	metrics.AuthAttemptsTotal.WithLabelValues("signup", authResult(err)).Inc()
	if err != nil {
		return h.fail(c, err)
	}

	h.jar.WriteSession(c.Response(), result.Token)
	return c.JSON(http.StatusOK, authResponse{Success: true, User: result.Account})
}

// Login signs in with e-mail and password and sets the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginForm  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  authResponse
// @Failure      401   {object}  authResponse
// @Failure      404   {object}  authResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginForm
	if err := bindAndValidate(c, &req); err != nil {
		return h.fail(c, err)
	}

	result, err := h.authService.LoginWithEmailAndPassword(c.Request().Context(), req.Email, req.Password)
	metrics.AuthAttemptsTotal.WithLabelValues(domain.ProviderPassword, authResult(err)).Inc()
	if err != nil {
		return h.fail(c, err)
	}

	h.jar.WriteSession(c.Response(), result.Token)
	return c.JSON(http.StatusOK, authResponse{Success: true, User: result.Account})
}

// Forgot mails a password reset link.
//
// @Summary      Send a password reset e-mail
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotForm  true  "Account e-mail"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  authResponse
// @Failure      404   {object}  authResponse
// @Router       /api/auth/forgot [post]
func (h *AuthHandler) Forgot(c echo.Context) error {
	var req forgotForm
	if err := bindAndValidate(c, &req); err != nil {
		return h.fail(c, err)
	}
	if err := h.authService.SendPasswordResetEmail(c.Request().Context(), req.Email, h.baseURL+"/reset"); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, authResponse{Success: true})
}

// Refresh re-issues the session token.
//
// @Summary      Refresh the session token
// @Tags         auth
// @Produce      json
// @Success      200   {object}  authResponse
// @Failure      401   {object}  map[string]string
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	token, err := h.authService.RefreshIDToken(ctx, session)
	if err != nil {
		return h.fail(c, err)
	}
	account, err := h.userService.GetAccount(ctx, session.UID)
	if err != nil {
		return h.fail(c, err)
	}

	h.jar.WriteSession(c.Response(), token)
	metrics.SessionsRefreshedTotal.Inc()
	return c.JSON(http.StatusOK, authResponse{Success: true, User: account})
}

// Logout destroys the session cookie.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200   {object}  authResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.jar.ClearSession(c.Response())
	return c.JSON(http.StatusOK, authResponse{Success: true})
}

// SignInMethods lists the providers an e-mail can sign in with.
//
// @Summary      Sign-in methods for an e-mail
// @Tags         auth
// @Produce      json
// @Param        email  query     string  true  "Account e-mail"
// @Success      200    {object}  methodsResponse
// @Failure      400    {object}  authResponse
// @Router       /api/auth/methods [get]
func (h *AuthHandler) SignInMethods(c echo.Context) error {
	methods, err := h.authService.FetchSignInMethodsForEmail(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return h.fail(c, err)
	}
	if methods == nil {
		methods = []string{}
	}
	return c.JSON(http.StatusOK, methodsResponse{Methods: methods})
}

// authStatus maps an auth failure to its HTTP status.
func authStatus(err error) int {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest
	}
	switch domain.AuthCode(err) {
	case domain.CodeEmailAlreadyInUse:
		return http.StatusConflict
	case domain.CodeWrongPassword, domain.CodeRequiresRecentLogin, domain.CodeInvalidIDToken, domain.CodeIDTokenExpired:
		return http.StatusUnauthorized
	case domain.CodeUserNotFound:
		return http.StatusNotFound
	case domain.CodeInvalidEmail, domain.CodeWeakPassword, domain.CodeExpiredActionCode:
		return http.StatusBadRequest
	case domain.CodeNetworkRequestFailed:
		return http.StatusServiceUnavailable
	}
	switch {
	case errors.Is(err, domain.ErrPasswordMismatch):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusServiceUnavailable
	case domain.MessageKey(err) != "":
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
