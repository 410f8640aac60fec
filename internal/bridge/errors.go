package bridge

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("bridge not found")
	ErrInvalidInput = errors.New("invalid input")
)

// NotFoundError reports a missing record by identifier.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Bridge %q not found.", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InvalidInput wraps err so that errors.Is(result, ErrInvalidInput) holds
// while keeping the underlying message.
func InvalidInput(err error) error {
	return &inputError{err: err}
}

type inputError struct {
	err error
}

func (e *inputError) Error() string { return e.err.Error() }

func (e *inputError) Unwrap() []error { return []error{ErrInvalidInput, e.err} }
