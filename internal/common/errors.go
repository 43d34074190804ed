// Package common defines the sentinel errors shared by the repositories,
// the validator, the service layer and the transports. Callers should use
// errors.Is / errors.As to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Client input errors. Each of them maps to 400 Bad Request.
	ErrMissingField  = errors.New("missing field")
	ErrInvalidFormat = errors.New("invalid format")
	ErrDuplicateMail = errors.New("user with this email already exists")
	ErrInvalidAge    = errors.New("enter a valid birth date")
	ErrTooYoung      = errors.New("user is younger than the minimum age")
	ErrInvalidRange  = errors.New("from value must be less than to value")
	ErrUnknownID     = errors.New("unknown id")
	ErrUnknownUser   = errors.New("unknown user")
	ErrBadRequest    = errors.New("bad request")
)

// FieldError reports a rejected field. Kind is ErrMissingField or
// ErrInvalidFormat; errors.Is matches against Kind.
type FieldError struct {
	Kind  error
	Field string
}

// MissingField builds the rejection for an absent required field.
func MissingField(field string) *FieldError {
	return &FieldError{Kind: ErrMissingField, Field: field}
}

// InvalidFormat builds the rejection for a field that fails its grammar.
func InvalidFormat(field string) *FieldError {
	return &FieldError{Kind: ErrInvalidFormat, Field: field}
}

func (e *FieldError) Error() string {
	switch {
	case e.Kind == ErrMissingField && e.Field == "mail":
		return "unknown email value"
	case e.Kind == ErrInvalidFormat && e.Field == "mail":
		return "invalid email regex"
	case e.Kind == ErrMissingField && e.Field == "firstName":
		return "unknown first name value"
	case e.Kind == ErrMissingField && e.Field == "lastName":
		return "unknown last name value"
	case e.Kind == ErrMissingField && e.Field == "birthDate":
		return "unknown birth date value"
	default:
		return fmt.Sprintf("%v: %s", e.Kind, e.Field)
	}
}

func (e *FieldError) Is(target error) bool {
	return target == e.Kind
}

// TooYoung builds the rejection for a user below minAge.
func TooYoung(minAge int) error {
	return &tooYoungError{minAge: minAge}
}

type tooYoungError struct {
	minAge int
}

func (e *tooYoungError) Error() string {
	return fmt.Sprintf("user's age must be at least %d", e.minAge)
}

func (e *tooYoungError) Is(target error) bool {
	return target == ErrTooYoung
}

// BadRequest wraps a malformed-input message (bad JSON, unparsable id...)
// so that it matches ErrBadRequest.
func BadRequest(format string, args ...any) error {
	return &badRequestError{msg: fmt.Sprintf(format, args...)}
}

type badRequestError struct {
	msg string
}

func (e *badRequestError) Error() string        { return e.msg }
func (e *badRequestError) Is(target error) bool { return target == ErrBadRequest }

// IsClientError reports whether err is a deterministic rejection of client
// input, as opposed to an infrastructure failure.
func IsClientError(err error) bool {
	for _, target := range []error{
		ErrMissingField,
		ErrInvalidFormat,
		ErrDuplicateMail,
		ErrInvalidAge,
		ErrTooYoung,
		ErrInvalidRange,
		ErrUnknownID,
		ErrUnknownUser,
		ErrBadRequest,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
