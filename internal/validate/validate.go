// Package validate checks user-supplied values before they touch the
// credential store. Every value used as a lookup key must pass the scalar
// screening here first; structured-operator parameters (user[$ne]=x style)
// are rejected with ErrInjectionAttempt before any query runs.
package validate

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInjectionAttempt marks input that tried to smuggle a structured value
// where a plain string was expected. Distinct from ordinary validation
// failure so callers can surface an explicit warning.
var ErrInjectionAttempt = errors.New("structured value where a plain string was expected")

var v = validator.New()

// FieldError is a single validation failure carrying the user-facing message
// for the first violated constraint.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

// Name checks a display name: required, alphanumeric, at most 20 characters.
func Name(s string) error {
	return field("name", s, "required,alphanum,max=20")
}

// Email checks email syntax.
func Email(s string) error {
	return field("email", s, "required,email")
}

// Password checks a password: required, at most 20 characters. No minimum
// length or complexity rule exists; keep it that way.
func Password(s string) error {
	return field("password", s, "required,max=20")
}

// LoginEmail checks the login lookup key. The login path validates the email
// as a bare bounded string, not with email syntax, so lookup failures leak
// nothing about why.
func LoginEmail(s string) error {
	return field("email", s, "required,max=20")
}

// SignupUnit validates the signup fields as a unit and returns the first
// failure in field order: email, name, password.
func SignupUnit(email, name, password string) error {
	if err := Email(email); err != nil {
		return err
	}
	if err := Name(name); err != nil {
		return err
	}
	return Password(password)
}

// Scalar extracts values[key] after screening for structured-operator
// parameters. A key like "user[$ne]" or a repeated parameter is an injection
// attempt; the value itself must then pass the bounded-string check.
// Returns "" with nil error when the parameter is absent.
func Scalar(values url.Values, key string) (string, error) {
	prefix := key + "["
	for k := range values {
		if strings.HasPrefix(k, prefix) {
			return "", ErrInjectionAttempt
		}
	}
	vals := values[key]
	if len(vals) > 1 {
		return "", ErrInjectionAttempt
	}
	if len(vals) == 0 {
		return "", nil
	}
	if err := field(key, vals[0], "required,max=20"); err != nil {
		return "", err
	}
	return vals[0], nil
}

func field(name, value, tags string) error {
	err := v.Var(value, tags)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &FieldError{Field: name, Message: message(name, verrs[0].Tag(), verrs[0].Param())}
	}
	return &FieldError{Field: name, Message: fmt.Sprintf("%q is invalid", name)}
}

func message(name, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%q is not allowed to be empty", name)
	case "email":
		return fmt.Sprintf("%q must be a valid email", name)
	case "alphanum":
		return fmt.Sprintf("%q must only contain alpha-numeric characters", name)
	case "max":
		return fmt.Sprintf("%q length must be less than or equal to %s characters long", name, param)
	default:
		return fmt.Sprintf("%q is invalid", name)
	}
}
