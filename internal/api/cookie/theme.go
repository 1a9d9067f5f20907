package cookie

import (
	"net/http"
	"time"
)

const (
	ThemeName  = "theme"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ReadTheme returns the stored theme, light by default.
func ReadTheme(r *http.Request) string {
	if v, ok := read(r, ThemeName); ok && v == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// ToggleTheme flips the stored theme and returns the new value.
func (j Jar) ToggleTheme(w http.ResponseWriter, r *http.Request) string {
	next := ThemeDark
	if ReadTheme(r) == ThemeDark {
		next = ThemeLight
	}
	if w != nil {
		http.SetCookie(w, &http.Cookie{
			Name:     ThemeName,
			Value:    next,
			Path:     "/",
			MaxAge:   int((365 * 24 * time.Hour).Seconds()),
			Secure:   j.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return next
}
