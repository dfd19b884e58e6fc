package constants

import "net/http"

const (
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
	ErrCodeInvalidTransition   = "INVALID_TRANSITION"
	ErrCodeTransitionConflict  = "TRANSITION_CONFLICT"
	ErrCodeTipNotFound         = "TIP_NOT_FOUND"
	ErrCodeSongNotFound        = "SONG_NOT_FOUND"
	ErrCodeSelfTip             = "SELF_TIP"
	ErrCodePersistenceFailed   = "PERSISTENCE_FAILED"
	ErrCodePaymentDeclined     = "PAYMENT_DECLINED"
	ErrCodePaymentServiceError = "PAYMENT_SERVICE_ERROR"
	ErrCodeChargeTimeout       = "CHARGE_TIMEOUT"
	ErrCodeRefundTimeout       = "REFUND_TIMEOUT"
	ErrCodeInvalidRequestBody  = "INVALID_REQUEST_BODY"
	ErrCodeRouteNotFound       = "ROUTE_NOT_FOUND"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

const (
	ErrMsgValidationFailed    = "request validation failed"
	ErrMsgInvalidTransition   = "transition not allowed from the current status"
	ErrMsgTransitionConflict  = "tip status changed concurrently"
	ErrMsgTipNotFound         = "tip not found"
	ErrMsgSongNotFound        = "song not found"
	ErrMsgSelfTip             = "You cannot tip yourself"
	ErrMsgPersistenceFailed   = "could not save, please try again"
	ErrMsgPaymentDeclined     = "payment declined"
	ErrMsgPaymentServiceError = "payment service unavailable"
	ErrMsgChargeTimeout       = "payment timed out"
	ErrMsgRefundTimeout       = "refund timed out"
	ErrMsgInvalidRequestBody  = "failed to parse request body"
	ErrMsgRouteNotFound       = "route not found"
	ErrMsgInternalError       = "Internal server error"
)

var errorMessages = map[string]string{
	ErrCodeValidationFailed:    ErrMsgValidationFailed,
	ErrCodeInvalidTransition:   ErrMsgInvalidTransition,
	ErrCodeTransitionConflict:  ErrMsgTransitionConflict,
	ErrCodeTipNotFound:         ErrMsgTipNotFound,
	ErrCodeSongNotFound:        ErrMsgSongNotFound,
	ErrCodeSelfTip:             ErrMsgSelfTip,
	ErrCodePersistenceFailed:   ErrMsgPersistenceFailed,
	ErrCodePaymentDeclined:     ErrMsgPaymentDeclined,
	ErrCodePaymentServiceError: ErrMsgPaymentServiceError,
	ErrCodeChargeTimeout:       ErrMsgChargeTimeout,
	ErrCodeRefundTimeout:       ErrMsgRefundTimeout,
	ErrCodeInvalidRequestBody:  ErrMsgInvalidRequestBody,
	ErrCodeRouteNotFound:       ErrMsgRouteNotFound,
	ErrCodeInternalError:       ErrMsgInternalError,
}

var httpStatuses = map[string]int{
	ErrCodeValidationFailed:    http.StatusUnprocessableEntity,
	ErrCodeInvalidTransition:   http.StatusConflict,
	ErrCodeTransitionConflict:  http.StatusConflict,
	ErrCodeTipNotFound:         http.StatusNotFound,
	ErrCodeSongNotFound:        http.StatusNotFound,
	ErrCodeSelfTip:             http.StatusUnprocessableEntity,
	ErrCodePersistenceFailed:   http.StatusServiceUnavailable,
	ErrCodePaymentDeclined:     http.StatusPaymentRequired,
	ErrCodePaymentServiceError: http.StatusBadGateway,
	ErrCodeChargeTimeout:       http.StatusGatewayTimeout,
	ErrCodeRefundTimeout:       http.StatusGatewayTimeout,
	ErrCodeInvalidRequestBody:  http.StatusBadRequest,
	ErrCodeRouteNotFound:       http.StatusNotFound,
	ErrCodeInternalError:       http.StatusInternalServerError,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

func GetHTTPStatus(code string) int {
	if status, exists := httpStatuses[code]; exists {
		return status
	}
	return http.StatusInternalServerError
}
