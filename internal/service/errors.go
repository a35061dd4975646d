package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blog-publishing-api/internal/validation"
	"github.com/samber/oops"
)

// Authentication errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrWrongPassword     = errors.New("wrong password")
	ErrDuplicateUsername = errors.New("username already taken")
)

// Content errors
var (
	ErrPostNotFound = errors.New("post not found")
	ErrValidation   = errors.New("validation failed")
)

// ErrServer marks an infrastructure failure. The cause stays in the chain
// for logging but is never shown to clients.
var ErrServer = errors.New("internal server error")

// Error codes attached to infrastructure failures
const (
	CodeStorage = "STORAGE_FAILED"
	CodeHash    = "HASH_FAILED"
	CodeSession = "SESSION_FAILED"
)

// ValidationFailedError lists the fields that failed validation.
// It matches ErrValidation with errors.Is.
type ValidationFailedError struct {
	Errors []validation.ValidationError
}

func (e *ValidationFailedError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, ve := range e.Errors {
		msgs = append(msgs, ve.String())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationFailedError) Unwrap() error {
	return ErrValidation
}

func validationFailed(errs []validation.ValidationError) error {
	return &ValidationFailedError{Errors: errs}
}

// serverError wraps an infrastructure failure so that it matches ErrServer
func serverError(code, operation string, err error) error {
	return oops.Code(code).With("operation", operation).Wrap(fmt.Errorf("%w: %w", ErrServer, err))
}
