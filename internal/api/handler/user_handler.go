package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/apostaesportiva/bolao/internal/core/domain"
	"github.com/apostaesportiva/bolao/internal/core/ports"
)

// UserHandler exposes pool records to same-process clients.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// userResponse omits "user" when there is no record.
type userResponse struct {
	User *domain.User `json:"user,omitempty"`
}

// CreateUser writes a fresh pool record for the signed-in user.
//
// @Summary      Create the caller's pool record
// @Tags         users
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/users/createUser [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	user, err := h.userService.CreateUser(c.Request().Context(), session.UID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// GetUserDetails returns the caller's pool record.
//
// @Summary      Current user's pool record
// @Tags         users
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/users/getUserDetails [get]
func (h *UserHandler) GetUserDetails(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	user, err := h.userService.GetUserDetails(c.Request().Context(), session.UID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// GetUserByUID returns the pool record of any user.
//
// @Summary      Pool record by user id
// @Tags         users
// @Produce      json
// @Param        uid  path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/users/getUserByUid/{uid} [get]
func (h *UserHandler) GetUserByUID(c echo.Context) error {
	user, err := h.userService.GetUserByUID(c.Request().Context(), c.Param("uid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// GetUserByEmail returns the pool record of the account owning an e-mail.
//
// @Summary      Pool record by e-mail
// @Tags         users
// @Produce      json
// @Param        email  path      string  true  "Account e-mail"
// @Success      200    {object}  userResponse
// @Failure      401    {object}  map[string]string
// @Router       /api/users/getUserByEmail/{email} [get]
func (h *UserHandler) GetUserByEmail(c echo.Context) error {
	user, err := h.userService.GetUserByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// UpdateUser replaces a pool record. Admin only.
//
// @Summary      Replace a pool record
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        uid   path      string       true  "User id"
// @Param        body  body      domain.User  true  "Pool record"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/users/{uid} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	var req domain.User
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	user, err := h.userService.UpdateUser(c.Request().Context(), c.Param("uid"), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}
