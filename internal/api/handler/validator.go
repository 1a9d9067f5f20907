package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"

	"github.com/apostaesportiva/bolao/internal/i18n"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// Field names in errors come from the form tag.
func NewValidator() *echoValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &echoValidator{v: v}
}

// FieldError names the failing field and the message key to show for it.
type FieldError struct {
	Field string
	Key   string
}

// ValidationError lists failing fields in struct order.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Key)
	}
	return strings.Join(msgs, "; ")
}

// Messages returns the localized message per field.
func (e *ValidationError) Messages(tag language.Tag) map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if _, seen := out[f.Field]; !seen {
			out[f.Field] = i18n.T(tag, f.Key)
		}
	}
	return out
}

// First returns the localized message of the first failing field.
func (e *ValidationError) First(tag language.Tag) string {
	if len(e.Fields) == 0 {
		return i18n.T(tag, i18n.KeyValInvalid)
	}
	return i18n.T(tag, e.Fields[0].Key)
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			t := reflect.Indirect(reflect.ValueOf(i)).Type()
			out := &ValidationError{Fields: make([]FieldError, 0, len(ve))}
			for _, fe := range ve {
				out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Key: fieldError(t, fe)})
			}
			return out
		}
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

// fieldError picks the message key for a failed rule. The msg struct tag maps
// rules to keys ("required=validation.name_required,min=..."); rules it does
// not list fall back to generic keys.
func fieldError(t reflect.Type, fe validator.FieldError) string {
	if sf, ok := t.FieldByName(fe.StructField()); ok {
		for _, pair := range strings.Split(sf.Tag.Get("msg"), ",") {
			rule, key, ok := strings.Cut(strings.TrimSpace(pair), "=")
			if ok && rule == fe.Tag() {
				return key
			}
		}
	}
	switch fe.Tag() {
	case "email":
		return i18n.KeyValEmailInvalid
	case "eqfield":
		return i18n.KeyValConfirmMismatch
	default:
		return i18n.KeyValInvalid
	}
}
