package service

import (
	"errors"
	"fmt"
)

// Stable error kinds. Controllers map these to HTTP statuses with
// errors.Is; the wrapped message carries the human-readable reason.
var (
	ErrValidation          = errors.New("validation failed")
	ErrDuplicate           = errors.New("duplicate value")
	ErrNotFound            = errors.New("not found")
	ErrInvalidTransfer     = errors.New("invalid transfer")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrConflict marks an optimistic concurrency loss. It is retried
	// transparently a bounded number of times before surfacing.
	ErrConflict = errors.New("concurrency conflict")
)

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func duplicatef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDuplicate, fmt.Sprintf(format, args...))
}
