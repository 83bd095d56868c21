package dto

import (
	"net/http"
	"strings"
)

// Error codes carry an ERR_ prefix on the wire. Domain errors contribute their
// own code (PAYMENT_NOT_FOUND becomes ERR_PAYMENT_NOT_FOUND).
const errCodePrefix = "ERR_"

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeRequestTooLarge is used when a body or upload exceeds its limit
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Resource and state error codes
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
	ErrCodeInvalidState        = "ERR_INVALID_STATE"
)

// Upstream and availability error codes
const (
	// ErrCodePaymentProvider is used when Stripe or PayPal rejects a call
	ErrCodePaymentProvider = "ERR_PAYMENT_PROVIDER"
	// ErrCodeNotConfigured is used when an optional integration is disabled
	ErrCodeNotConfigured = "ERR_NOT_CONFIGURED"
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps exact error codes to HTTP status codes.
// Codes missing here fall back to the naming rules in GetHTTPStatus.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeInvalidState:        http.StatusUnprocessableEntity,

	ErrCodePaymentProvider: http.StatusBadGateway,
	ErrCodeNotConfigured:   http.StatusServiceUnavailable,
	ErrCodeRateLimited:     http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for a normalized error code.
// Codes without an exact entry are classified by name:
// *_NOT_FOUND is 404, *_NOT_CONFIGURED is 503, INVALID_* and *_REQUIRED
// are 400, TOKEN_* is 401; anything else is 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	name := strings.TrimPrefix(code, errCodePrefix)
	switch {
	case strings.HasSuffix(name, "_NOT_FOUND"):
		return http.StatusNotFound
	case strings.HasSuffix(name, "_NOT_CONFIGURED"):
		return http.StatusServiceUnavailable
	case strings.HasPrefix(name, "INVALID_"), strings.HasSuffix(name, "_REQUIRED"):
		return http.StatusBadRequest
	case strings.HasPrefix(name, "TOKEN_"):
		return http.StatusUnauthorized
	case strings.HasSuffix(name, "_TOO_LARGE"):
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}

// LegacyErrorCodeMapping maps codes whose wire form differs from the
// prefixed domain code
var LegacyErrorCodeMapping = map[string]string{
	"VALIDATION_ERROR":  ErrCodeValidation,
	"INTERNAL_ERROR":    ErrCodeInternal,
	"TOO_MANY_REQUESTS": ErrCodeRateLimited,
}

// NormalizeErrorCode converts a domain error code to its wire form.
// Codes that already carry the ERR_ prefix are returned as-is.
func NormalizeErrorCode(code string) string {
	if code == "" {
		return ErrCodeUnknown
	}
	if strings.HasPrefix(code, errCodePrefix) {
		return code
	}
	if newCode, ok := LegacyErrorCodeMapping[code]; ok {
		return newCode
	}
	return errCodePrefix + code
}
