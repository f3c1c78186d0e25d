package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFlightSelected guards booking submission against an empty handoff slot.
	ErrNoFlightSelected = errors.New("no flight selected")
	// ErrSoldOut rejects selecting a flight with no available seats.
	ErrSoldOut = errors.New("flight is sold out")
	// ErrNotConfirmed guards destructive operator actions behind an explicit confirmation.
	ErrNotConfirmed = errors.New("operation not confirmed")
)

// ValidationError is a local, field-scoped error raised before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
