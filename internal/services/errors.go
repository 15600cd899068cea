package services

import (
	"errors"
	"fmt"
)

// Domain failure taxonomy. Handlers map these to HTTP statuses; NotFound,
// BadCredential and RoleMismatch collapse to one generic message at the
// auth boundary so callers cannot enumerate accounts or approval state.
var (
	ErrDuplicateContact      = errors.New("contact address already registered")
	ErrDuplicateLicense      = errors.New("license or certification number already registered for this role")
	ErrDuplicateRegistration = errors.New("registration number already registered")
	ErrNotFound              = errors.New("record not found")
	ErrBadCredential         = errors.New("invalid contact or password")
	ErrRoleMismatch          = errors.New("role does not match this account")
	ErrForbidden             = errors.New("not permitted")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrInvalidToken          = errors.New("invalid or expired token")
)

// ValidationError reports malformed or missing caller input.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func validationErr(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}
