package errors

import (
	"fmt"
	"net/http"

	"storefront/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

// Is matches on the business code so that WithDetails copies still match their sentinel.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Authorization
	ErrUnauthenticated = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHENTICATED",
		"please sign in to continue",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"you are not allowed to do this",
		"",
	)

	// Validation
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)

	ErrMissingUserID = NewBaseError(
		http.StatusBadRequest,
		"MISSING_USER_ID",
		"no user is associated with this session",
		"",
	)

	ErrCartEmpty = NewBaseError(
		http.StatusBadRequest,
		"CART_EMPTY",
		"the cart is empty",
		"",
	)

	// Lookup
	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"resource not found",
		"",
	)

	ErrDiscountNotRedeemable = NewBaseError(
		http.StatusBadRequest,
		"DISCOUNT_NOT_REDEEMABLE",
		"discount code is expired or inactive",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"something went wrong",
		"",
	)
)

// APIError is a transport failure or a rejection returned by the remote API.
// StatusCode is zero when the request never got a response.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Msg        string
	cause      error
}

// NewAPIError builds an APIError for a response with a non-success status.
func NewAPIError(method, path string, status int, msg string) *APIError {
	return &APIError{StatusCode: status, Method: method, Path: path, Msg: msg}
}

// NewTransportError builds an APIError for a request that never got a response.
func NewTransportError(method, path string, cause error) *APIError {
	return &APIError{Method: method, Path: path, Msg: "network request failed", cause: cause}
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %s: %v", e.Method, e.Path, e.Msg, e.cause)
	}

	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Msg)
}

// Unwrap exposes the transport cause.
func (e *APIError) Unwrap() error {
	return e.cause
}

// Transport reports whether the request failed before a response arrived.
func (e *APIError) Transport() bool {
	return e.StatusCode == 0
}

// HTTPCode maps the remote status onto the gateway's response code.
func (e *APIError) HTTPCode() int {
	if e.StatusCode == 0 {
		return http.StatusBadGateway
	}

	return e.StatusCode
}

// ErrorCode returns the business error code
func (e *APIError) ErrorCode() string {
	if e.StatusCode == 0 {
		return "API_UNREACHABLE"
	}

	return "API_ERROR"
}

// Message returns the user-friendly error message
func (e *APIError) Message() string {
	return e.Msg
}

// Details returns detailed error information
func (e *APIError) Details() string {
	return e.Method + " " + e.Path
}
