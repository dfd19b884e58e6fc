package paymentprocessor

import (
	"errors"
	"net/http"
)

const (
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeCardDeclined     = "CARD_DECLINED"
	ErrCodeAccountNotFound  = "ACCOUNT_NOT_FOUND"
	ErrCodeTimeout          = "TIMEOUT"
	ErrCodeServerError      = "SERVER_ERROR"
)

var (
	ErrValidationFailed = errors.New(ErrCodeValidationFailed)
	ErrCardDeclined     = errors.New(ErrCodeCardDeclined)
	ErrAccountNotFound  = errors.New(ErrCodeAccountNotFound)
	ErrTimeout          = errors.New(ErrCodeTimeout)
	ErrServerError      = errors.New(ErrCodeServerError)
)

var statusErrorMap = map[int]error{
	http.StatusPaymentRequired:     ErrCardDeclined,
	http.StatusNotFound:            ErrAccountNotFound,
	http.StatusUnprocessableEntity: ErrValidationFailed,
}

func MapStatusToError(statusCode int) error {
	if err, exists := statusErrorMap[statusCode]; exists {
		return err
	}

	return ErrServerError
}

// IsDeclined reports whether the processor refused the payment for good. Retrying
// such a request cannot succeed.
func IsDeclined(err error) bool {
	return errors.Is(err, ErrCardDeclined) || errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrValidationFailed)
}
