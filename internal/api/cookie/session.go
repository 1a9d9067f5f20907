// Package cookie centralizes the browser cookies of the web app: the session
// token, one-time flash notices, the OAuth state and the UI theme.
package cookie

import (
	"net/http"
	"strings"
	"time"
)

// SessionName is the cookie carrying the signed session token.
const SessionName = "apostaesportivabolao.token"

const defaultSessionMaxAge = 24 * time.Hour

// Jar writes cookies with a shared security policy.
type Jar struct {
	Secure        bool
	SessionMaxAge time.Duration
}

func NewJar(secure bool, sessionMaxAge time.Duration) Jar {
	if sessionMaxAge <= 0 {
		sessionMaxAge = defaultSessionMaxAge
	}
	return Jar{Secure: secure, SessionMaxAge: sessionMaxAge}
}

// ReadSession returns the trimmed session token when present.
func ReadSession(r *http.Request) (string, bool) {
	return read(r, SessionName)
}

// WriteSession stores token in the session cookie.
func (j Jar) WriteSession(w http.ResponseWriter, token string) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionName,
		Value:    strings.TrimSpace(token),
		Path:     "/",
		MaxAge:   int(j.maxAge().Seconds()),
		HttpOnly: true,
		Secure:   j.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSession expires the session cookie.
func (j Jar) ClearSession(w http.ResponseWriter) {
	j.clear(w, SessionName, true)
}

func (j Jar) maxAge() time.Duration {
	if j.SessionMaxAge <= 0 {
		return defaultSessionMaxAge
	}
	return j.SessionMaxAge
}

func (j Jar) clear(w http.ResponseWriter, name string, httpOnly bool) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: httpOnly,
		Secure:   j.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func read(r *http.Request, name string) (string, bool) {
	if r == nil {
		return "", false
	}
	c, err := r.Cookie(name)
	if err != nil || c == nil {
		return "", false
	}
	value := strings.TrimSpace(c.Value)
	if value == "" {
		return "", false
	}
	return value, true
}
