package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the rental ledger. They are matched with errors.Is at
// the command boundary and mapped to structured wire responses there; none of
// them is ever fatal to the server.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrGameNotFound    = errors.New("game not found")
	ErrRentalNotFound  = errors.New("rental not found")
	ErrOutOfStock      = errors.New("out of stock")
	ErrAlreadyReturned = errors.New("rental already returned")
	ErrUnknownAction   = errors.New("unknown action")
)

// ValidationError reports malformed or missing caller input. It is safe to
// retry the command after correcting the input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
