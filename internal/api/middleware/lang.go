package middleware

import (
	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"

	"github.com/apostaesportiva/bolao/internal/i18n"
)

const ctxLangKey = "lang"

// Language resolves the request language and persists an explicit ?lang=
// choice in a cookie.
func Language() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tag, persist := i18n.ResolveTag(c.Request())
			if persist {
				i18n.SetLanguageCookie(c.Response(), tag)
			}
			c.Set(ctxLangKey, tag)
			return next(c)
		}
	}
}

// LangFrom returns the request language, falling back to the default.
func LangFrom(c echo.Context) language.Tag {
	if tag, ok := c.Get(ctxLangKey).(language.Tag); ok {
		return tag
	}
	return i18n.Default()
}
