package dto

import (
	"net/http"
	"strings"
)

// Error codes surfaced by the API. Domain errors carry the same codes, so
// handlers map them straight through without translation.
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeValidation = "VALIDATION_ERROR"

	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeTokenExpired       = "TOKEN_EXPIRED"
	ErrCodeInvalidToken       = "INVALID_TOKEN"
	ErrCodeAccountDeactivated = "ACCOUNT_DEACTIVATED"

	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeAlreadyExists       = "ALREADY_EXISTS"
	ErrCodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	ErrCodeInvalidState        = "INVALID_STATE"

	// Tenant resolution outcomes. NO_TENANT is terminal: the user has no
	// active membership and retrying will not change that. NO_MAPPING_YET
	// and TRANSIENT_AUTH are transient provisioning states; clients may
	// retry after a delay.
	ErrCodeNoTenant      = "NO_TENANT"
	ErrCodeNoMappingYet  = "NO_MAPPING_YET"
	ErrCodeTransientAuth = "TRANSIENT_AUTH"

	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeInvalidToken:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeAccountDeactivated: http.StatusForbidden,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeInvalidState:        http.StatusConflict,

	ErrCodeNoTenant:      http.StatusForbidden,
	ErrCodeNoMappingYet:  http.StatusServiceUnavailable,
	ErrCodeTransientAuth: http.StatusServiceUnavailable,

	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status for an error code. Codes with an
// INVALID_ prefix not listed explicitly are treated as input validation
// failures (INVALID_AMOUNT, INVALID_DUE_DATE, ...); anything unknown is a
// server error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
