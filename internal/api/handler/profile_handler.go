package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/apostaesportiva/bolao/internal/api/cookie"
	"github.com/apostaesportiva/bolao/internal/api/metrics"
	"github.com/apostaesportiva/bolao/internal/core/domain"
	"github.com/apostaesportiva/bolao/internal/core/ports"
	"github.com/apostaesportiva/bolao/internal/i18n"
)

const maxPhotoBytes = 5 << 20

// ProfileHandler serves the profile page, its update forms and avatar images.
type ProfileHandler struct {
	profile    ports.ProfileService
	users      ports.UserService
	jar        cookie.Jar
	noImageURL string
	log        zerolog.Logger
}

func NewProfileHandler(profile ports.ProfileService, users ports.UserService, jar cookie.Jar, noImageURL string, log zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{profile: profile, users: users, jar: jar, noImageURL: noImageURL, log: log}
}

// Page renders the profile forms.
func (h *ProfileHandler) Page(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	account, err := h.users.GetAccount(c.Request().Context(), session.UID)
	if err != nil {
		return err
	}

	data := newPage(c, h.jar, i18n.KeyPageProfile)
	data.Account = account
	data.PhotoURL = photoOrPlaceholder(account.PhotoURL, h.noImageURL)
	return c.Render(http.StatusOK, "profile", data)
}

// UpdateName changes the display name.
func (h *ProfileHandler) UpdateName(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	var form profileNameForm
	if err := bindAndValidate(c, &form); err != nil {
		return h.done(c, "name", err, "")
	}
	_, err = h.profile.UpdateDisplayName(c.Request().Context(), session.UID, form.Name)
	return h.done(c, "name", err, i18n.KeyToastNameUpdated)
}

// UpdateEmail changes the sign-in e-mail.
func (h *ProfileHandler) UpdateEmail(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	var form profileEmailForm
	if err := bindAndValidate(c, &form); err != nil {
		return h.done(c, "email", err, "")
	}
	_, err = h.profile.UpdateEmail(c.Request().Context(), session, form.Email)
	return h.done(c, "email", err, i18n.KeyToastEmailUpdated)
}

// UpdatePassword sets a new password and swaps the session cookie for the
// token issued after the change.
func (h *ProfileHandler) UpdatePassword(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	var form profilePasswordForm
	if err := bindAndValidate(c, &form); err != nil {
		return h.done(c, "password", err, "")
	}
	token, err := h.profile.UpdatePassword(c.Request().Context(), session, form.NewPassword, form.NewPasswordConfirmation)
	if err == nil {
		h.jar.WriteSession(c.Response(), token)
	}
	return h.done(c, "password", err, i18n.KeyToastPasswordUpdated)
}

// UploadPhoto stores the multipart "photo" file as the new avatar.
func (h *ProfileHandler) UploadPhoto(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	tag := ctxLang(c)

	fh, err := c.FormFile("photo")
	if err != nil {
		return h.photoFailed(c, domain.NewMessageError(i18n.KeyValPhotoRequired, domain.ErrInvalidPhoto))
	}
	if fh.Size > maxPhotoBytes {
		return h.photoFailed(c, domain.ErrInvalidPhoto)
	}
	file, err := fh.Open()
	if err != nil {
		return h.photoFailed(c, err)
	}
	defer file.Close()

	_, err = h.profile.UploadPhoto(c.Request().Context(), session.UID, fh.Header.Get(echo.HeaderContentType), fh.Size, file)
	if err != nil {
		return h.photoFailed(c, err)
	}

	metrics.PhotoUploadBytes.Observe(float64(fh.Size))
	metrics.ProfileUpdatesTotal.WithLabelValues("photo", "success").Inc()
	h.jar.WriteFlash(c.Response(), cookie.Notice{Kind: cookie.KindSuccess, Title: i18n.T(tag, i18n.KeyToastPhotoUpdated)})
	return c.Redirect(http.StatusFound, "/profile")
}

// DeletePhoto removes the avatar.
func (h *ProfileHandler) DeletePhoto(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	tag := ctxLang(c)

	if _, err := h.profile.DeletePhoto(c.Request().Context(), session.UID); err != nil {
		h.log.Error().Err(err).Str("uid", session.UID).Msg("delete photo failed")
		metrics.ProfileUpdatesTotal.WithLabelValues("photo_delete", "error").Inc()
		h.jar.WriteFlash(c.Response(), cookie.Notice{Kind: cookie.KindError, Title: i18n.T(tag, i18n.KeyToastPhotoDeleteError)})
		return c.Redirect(http.StatusFound, "/profile")
	}

	metrics.ProfileUpdatesTotal.WithLabelValues("photo_delete", "success").Inc()
	h.jar.WriteFlash(c.Response(), cookie.Notice{Kind: cookie.KindSuccess, Title: i18n.T(tag, i18n.KeyToastPhotoDeleted)})
	return c.Redirect(http.StatusFound, "/profile")
}

// Photo streams an avatar object. Missing objects fall back to the placeholder.
func (h *ProfileHandler) Photo(c echo.Context) error {
	photo, err := h.profile.OpenPhoto(c.Request().Context(), c.Param("*"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPhotoNotFound):
			return c.Redirect(http.StatusFound, h.noImageURL)
		case errors.Is(err, domain.ErrInvalidPhoto):
			return echo.NewHTTPError(http.StatusNotFound, "photo not found")
		}
		return err
	}
	defer photo.Body.Close()

	header := c.Response().Header()
	header.Set("Cache-Control", "private, max-age=86400")
	if photo.Size > 0 {
		header.Set(echo.HeaderContentLength, strconv.FormatInt(photo.Size, 10))
	}
	if !photo.LastModified.IsZero() {
		header.Set(echo.HeaderLastModified, photo.LastModified.UTC().Format(http.TimeFormat))
	}
	contentType := photo.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return c.Stream(http.StatusOK, contentType, photo.Body)
}

// done writes the outcome notification of a profile form and goes back to the page.
func (h *ProfileHandler) done(c echo.Context, field string, err error, successKey string) error {
	tag := ctxLang(c)
	if err != nil {
		metrics.ProfileUpdatesTotal.WithLabelValues(field, "error").Inc()
		h.log.Debug().Err(err).Str("field", field).Msg("profile update rejected")
		h.jar.WriteFlash(c.Response(), *errorNotice(tag, err))
		return c.Redirect(http.StatusFound, "/profile")
	}
	metrics.ProfileUpdatesTotal.WithLabelValues(field, "success").Inc()
	h.jar.WriteFlash(c.Response(), cookie.Notice{Kind: cookie.KindSuccess, Title: i18n.T(tag, successKey)})
	return c.Redirect(http.StatusFound, "/profile")
}

func (h *ProfileHandler) photoFailed(c echo.Context, err error) error {
	tag := ctxLang(c)
	metrics.ProfileUpdatesTotal.WithLabelValues("photo", "error").Inc()
	h.log.Warn().Err(err).Msg("photo upload failed")

	body := i18n.T(tag, i18n.KeyToastPhotoFailedBody)
	if domain.MessageKey(err) != "" {
		body = i18n.ErrorMessage(tag, err)
	}
	h.jar.WriteFlash(c.Response(), cookie.Notice{Kind: cookie.KindError, Title: i18n.T(tag, i18n.KeyToastPhotoFailed), Body: body})
	return c.Redirect(http.StatusFound, "/profile")
}
