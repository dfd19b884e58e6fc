package service

import (
	"errors"
	"fmt"

	"github.com/whatssound/tipservice/internal/constants"
	"github.com/whatssound/tipservice/internal/tipping"
)

var (
	ErrSelfTip = errors.New("sender and receiver are the same user")
)

type Error struct {
	Code  string
	Cause error
}

func NewServiceError(code string, cause error) error {
	return Error{Code: code, Cause: cause}
}

func (e Error) Error() string {
	if e.Cause == nil {
		return e.Code
	}

	return e.Cause.Error()
}

func (e Error) Unwrap() error {
	return e.Cause
}

// PersistenceError is the cause of PERSISTENCE_FAILED once every write attempt failed.
type PersistenceError struct {
	Op       string
	Attempts int
	Err      error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s failed after %d attempt(s): %v", e.Op, e.Attempts, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the service error code carried by err, or "" when there is none.
func ErrorCode(err error) string {
	var serviceErr Error
	if errors.As(err, &serviceErr) {
		return serviceErr.Code
	}

	return ""
}

func validationFailed(field, reason string) error {
	return NewServiceError(constants.ErrCodeValidationFailed, &tipping.ValidationError{Field: field, Reason: reason})
}

// fromDomain maps the typed errors of the tipping package onto service codes.
func fromDomain(err error) error {
	var validationErr *tipping.ValidationError
	if errors.As(err, &validationErr) {
		return NewServiceError(constants.ErrCodeValidationFailed, err)
	}

	var transitionErr *tipping.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		return NewServiceError(constants.ErrCodeInvalidTransition, err)
	}

	return NewServiceError(constants.ErrCodeInternalError, err)
}
