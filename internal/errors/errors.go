package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrAccountNotFound is returned when an HSA account is not found.
	ErrAccountNotFound = errors.New("HSA account not found")
	// ErrNoActiveCard is returned when an operation requires an active virtual card.
	ErrNoActiveCard = errors.New("no active virtual card found")
	// ErrCardAlreadyIssued is returned when the account already has an active card.
	ErrCardAlreadyIssued = errors.New("user already has an active virtual card")
	// ErrInvalidAmount is returned when an amount is missing or not positive.
	ErrInvalidAmount = errors.New("valid amount is required")
	// ErrUserIDRequired is returned when the userId query parameter is missing.
	ErrUserIDRequired = errors.New("user ID is required")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Store failures fall
// through to a generic 500 so internals never leak to the client.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrAccountNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "ACCOUNT_NOT_FOUND")
	case ErrNoActiveCard:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NO_ACTIVE_CARD")
	case ErrCardAlreadyIssued:
		return NewHTTPError(http.StatusConflict, err.Error(), "CARD_ALREADY_ISSUED")
	case ErrInvalidAmount:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_AMOUNT")
	case ErrUserIDRequired:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "USER_ID_REQUIRED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
