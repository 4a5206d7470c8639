package services

import (
	"errors"

	"github.com/nevta-digital/nevta-api/store"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrTOTPRequired        = errors.New("2FA code required")
	ErrInvalidTOTP         = errors.New("invalid 2FA code")
	ErrSessionExpired      = errors.New("session expired")
	ErrInsightsUnavailable = errors.New("insights unavailable")
)

// ValidationError carries the locale key of the message shown to the user.
// errors.Is(err, ErrValidation) holds for every ValidationError.
type ValidationError struct {
	Key     string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ConflictError is a duplicate the user can fix, such as a mobile number
// that is already registered. errors.Is(err, store.ErrConflict) holds.
type ConflictError struct {
	Key     string
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) Is(target error) bool { return target == store.ErrConflict }

func invalid(key, message string) error {
	return &ValidationError{Key: key, Message: message}
}
