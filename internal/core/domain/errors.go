package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrAccountExists      = errors.New("account already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access forbidden")
	ErrReportNotFound     = errors.New("report not found")
	ErrInvalidTransition  = errors.New("invalid status transition")

	// ErrDuplicateReportCode and ErrDuplicateIdempotencyKey report a unique
	// index conflict on insert.
	ErrDuplicateReportCode     = errors.New("report code already in use")
	ErrDuplicateIdempotencyKey = errors.New("idempotency key already used")

	// ErrAlreadyAssigned is returned to the losing side of an accept race.
	// It also matches ErrInvalidTransition.
	ErrAlreadyAssigned = fmt.Errorf("%w: report already assigned", ErrInvalidTransition)
)

// Invalid builds an ErrValidation carrying a human-readable reason.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
