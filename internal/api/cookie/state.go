package cookie

import (
	"crypto/subtle"
	"net/http"
	"time"
)

// StateName holds the OAuth state between the redirect and the callback.
const StateName = "bolao_oauth_state"

const stateMaxAge = 10 * time.Minute

func (j Jar) WriteState(w http.ResponseWriter, state string) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     StateName,
		Value:    state,
		Path:     "/auth/google",
		MaxAge:   int(stateMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   j.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ConsumeState clears the state cookie and reports whether it matches got.
func (j Jar) ConsumeState(w http.ResponseWriter, r *http.Request, got string) bool {
	want, ok := read(r, StateName)
	if w != nil {
		http.SetCookie(w, &http.Cookie{
			Name:     StateName,
			Value:    "",
			Path:     "/auth/google",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   j.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
	if !ok || got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}
