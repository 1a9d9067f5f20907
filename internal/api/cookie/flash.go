package cookie

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
)

// FlashName carries one notification to the next rendered page.
const FlashName = "bolao_flash"

// Kind classifies how a notice is presented.
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindError   Kind = "error"
)

// Notice is an already localized toast.
type Notice struct {
	Kind  Kind   `json:"kind"`
	Title string `json:"title"`
	Body  string `json:"body,omitempty"`
}

// WriteFlash stores notice for the next page render.
func (j Jar) WriteFlash(w http.ResponseWriter, notice Notice) {
	if w == nil {
		return
	}
	normalized, ok := normalizeNotice(notice)
	if !ok {
		return
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		Secure:   j.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadFlash reads and clears the pending notice.
func (j Jar) ReadFlash(w http.ResponseWriter, r *http.Request) (Notice, bool) {
	raw, ok := read(r, FlashName)
	if !ok {
		return Notice{}, false
	}
	j.clear(w, FlashName, true)
	return decodeNotice(raw)
}

func decodeNotice(raw string) (Notice, bool) {
	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return Notice{}, false
	}
	var notice Notice
	if err := json.Unmarshal(decoded, &notice); err != nil {
		return Notice{}, false
	}
	return normalizeNotice(notice)
}

func normalizeNotice(notice Notice) (Notice, bool) {
	notice.Title = strings.TrimSpace(notice.Title)
	if notice.Title == "" {
		return Notice{}, false
	}
	notice.Kind = Kind(strings.ToLower(strings.TrimSpace(string(notice.Kind))))
	switch notice.Kind {
	case KindSuccess, KindInfo, KindError:
		return notice, true
	default:
		return Notice{}, false
	}
}
