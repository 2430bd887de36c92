package handler

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a form field name to the message shown next to it.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fe[k])
	}
	return strings.Join(msgs, "; ")
}

// echoValidator wraps go-playground/validator so Echo can call c.Validate(form).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate satisfies the echo.Validator interface. Failures come back as
// FieldErrors keyed by the field's form name, one message per field, worded
// with the field's `label` tag.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	t := reflect.Indirect(reflect.ValueOf(i)).Type()
	out := make(FieldErrors, len(ve))
	for _, fe := range ve {
		name, label := fe.Field(), fe.Field()
		if sf, ok := t.FieldByName(fe.StructField()); ok {
			if tag := strings.Split(sf.Tag.Get("form"), ",")[0]; tag != "" {
				name = tag
			} else if tag := strings.Split(sf.Tag.Get("query"), ",")[0]; tag != "" {
				name = tag
			}
			if l := sf.Tag.Get("label"); l != "" {
				label = l
			}
		}
		if _, seen := out[name]; !seen {
			out[name] = fieldError(label, fe)
		}
	}
	return out
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(label string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "required_with":
		return label + " is required to change the password"
	case "email":
		return label + " must be a valid email address"
	case "numeric", "number":
		return label + " must be a number"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, fe.Param())
	case "datetime":
		return label + " must be a date (YYYY-MM-DD)"
	default:
		return fmt.Sprintf("%s is invalid (%s)", label, fe.Tag())
	}
}
