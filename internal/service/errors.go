package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidationFailed is matched by every *FormError.
	ErrValidationFailed = errors.New("validation failed")
	ErrUnknownForm      = errors.New("unknown form")

	ErrWrongPassword    = errors.New("wrong password")
	ErrWrongCredentials = errors.New("wrong username or password")

	ErrStorageUnavailable = errors.New("storage is not configured")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// FormError carries the messages of a submission that did not pass its form.
type FormError struct {
	Form     string
	Messages []string
}

func (e *FormError) Error() string {
	return fmt.Sprintf("%s: form %q: %s", ErrValidationFailed, e.Form, strings.Join(e.Messages, "; "))
}

func (e *FormError) Unwrap() error {
	return ErrValidationFailed
}
