package i18n

import (
	"errors"

	"golang.org/x/text/language"

	"github.com/apostaesportiva/bolao/internal/core/domain"
)

// authCodeKeys maps identity error codes 1:1 to display messages. Codes not
// listed fall back to KeyErrGeneric.
var authCodeKeys = map[string]string{
	domain.CodeEmailAlreadyInUse:    KeyErrEmailInUse,
	domain.CodeWrongPassword:        KeyErrWrongPassword,
	domain.CodeUserNotFound:         KeyErrUserNotFound,
	domain.CodePopupClosedByUser:    KeyErrPopupClosed,
	domain.CodeRequiresRecentLogin:  KeyErrRecentLogin,
	domain.CodeNetworkRequestFailed: KeyErrNetwork,
}

// AuthCodeKey returns the message key for an identity error code.
func AuthCodeKey(code string) string {
	if key, ok := authCodeKeys[code]; ok {
		return key
	}
	return KeyErrGeneric
}

// DecodeAuthCode returns the localized display text for an identity error code.
func DecodeAuthCode(tag language.Tag, code string) string {
	return T(tag, AuthCodeKey(code))
}

// ErrorMessage renders err for display. A message key chosen by a service wins
// over any identity code it wraps; unreachable backends read as a network
// failure; anything else is the generic failure text.
func ErrorMessage(tag language.Tag, err error) string {
	if err == nil {
		return ""
	}
	if key := domain.MessageKey(err); key != "" {
		return T(tag, key)
	}
	if code := domain.AuthCode(err); code != "" {
		return DecodeAuthCode(tag, code)
	}
	if errors.Is(err, domain.ErrUnavailable) {
		return DecodeAuthCode(tag, domain.CodeNetworkRequestFailed)
	}
	return T(tag, KeyErrUnexpected)
}
