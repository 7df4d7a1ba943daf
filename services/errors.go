package services

import "errors"

// ErrNotFound is returned when an operation targets a missing or
// soft-deleted entity.
var ErrNotFound = errors.New("not found")

// ValidationError signals malformed or inconsistent input. It may wrap
// an underlying persistence failure.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error { return e.Err }

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func WrapValidationError(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
