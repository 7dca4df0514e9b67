package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks a caller error: a required field is missing or malformed.
	// No write is attempted when it is returned.
	ErrValidation = errors.New("validation failed")

	// ErrStorage marks a failed durable write or scan.
	ErrStorage = errors.New("storage failure")
)

// Validation returns an error wrapping ErrValidation with a human-readable message.
func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// StorageError carries the failing operation and the store's original error.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes both ErrStorage and the underlying cause to errors.Is / errors.As.
func (e *StorageError) Unwrap() []error {
	return []error{ErrStorage, e.Err}
}

// Storage wraps err as a StorageError. A nil err yields nil.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// IsValidation reports whether err is a caller error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
