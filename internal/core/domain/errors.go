package domain

import (
	"errors"
	"fmt"
)

// Identity error codes. The display table in internal/i18n translates a subset
// of them; the rest render as the generic failure message.
const (
	CodeEmailAlreadyInUse    = "auth/email-already-in-use"
	CodeWrongPassword        = "auth/wrong-password"
	CodeUserNotFound         = "auth/user-not-found"
	CodePopupClosedByUser    = "auth/popup-closed-by-user"
	CodeRequiresRecentLogin  = "auth/requires-recent-login"
	CodeNetworkRequestFailed = "auth/network-request-failed"
	CodeInvalidEmail         = "auth/invalid-email"
	CodeWeakPassword         = "auth/weak-password"
	CodeIDTokenExpired       = "auth/id-token-expired"
	CodeInvalidIDToken       = "auth/invalid-id-token"
	CodeExpiredActionCode    = "auth/expired-action-code"
	CodeInternalError        = "auth/internal-error"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailInUse         = errors.New("email already in use")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidPhoto       = errors.New("invalid photo")
	ErrPhotoNotFound      = errors.New("photo not found")
	ErrResetTokenNotFound = errors.New("reset token not found")
	ErrUnavailable        = errors.New("backend unavailable")
	ErrInvalidRole        = errors.New("invalid role")
)

// AuthError carries an identity error code alongside the underlying cause.
type AuthError struct {
	Code string
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return e.Code
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// NewAuthError wraps err with an identity error code.
func NewAuthError(code string, err error) *AuthError {
	return &AuthError{Code: code, Err: err}
}

// AuthCode returns the identity error code carried by err, or "" if none.
func AuthCode(err error) string {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

// MessageError is a failure whose user-facing text is already decided by the
// service (a message key, not an identity code).
type MessageError struct {
	Key string
	Err error
}

func (e *MessageError) Error() string {
	if e.Err == nil {
		return e.Key
	}
	return fmt.Sprintf("%s: %v", e.Key, e.Err)
}

func (e *MessageError) Unwrap() error { return e.Err }

// NewMessageError wraps err with a display message key.
func NewMessageError(key string, err error) *MessageError {
	return &MessageError{Key: key, Err: err}
}

// MessageKey returns the display message key carried by err, or "" if none.
func MessageKey(err error) string {
	var me *MessageError
	if errors.As(err, &me) {
		return me.Key
	}
	return ""
}
