package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"

	"github.com/apostaesportiva/bolao/internal/api/middleware"
	"github.com/apostaesportiva/bolao/internal/core/domain"
	"github.com/apostaesportiva/bolao/internal/i18n"
)

// ctxSession extracts the session injected by middleware.LoadSession. Its
// absence means the route was registered without a guard; reject with 401.
func ctxSession(c echo.Context) (*domain.Session, error) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return session, nil
}

func ctxLang(c echo.Context) language.Tag {
	return middleware.LangFrom(c)
}

// errorText renders err for a notification or a JSON error field.
func errorText(tag language.Tag, err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.First(tag)
	}
	return i18n.ErrorMessage(tag, err)
}

// bindAndValidate binds the request into form and runs the validator.
func bindAndValidate(c echo.Context, form any) error {
	if err := c.Bind(form); err != nil {
		return &ValidationError{Fields: []FieldError{{Field: "body", Key: i18n.KeyValInvalid}}}
	}
	return c.Validate(form)
}
