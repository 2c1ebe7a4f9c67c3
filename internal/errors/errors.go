package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidUserID is returned when a path id is not an integer.
	ErrInvalidUserID = errors.New("invalid user id")
	// ErrInvalidPayload is returned when a request body cannot be decoded or misses required fields.
	ErrInvalidPayload = errors.New("invalid request payload")
	// ErrStoreUnavailable is returned when the database cannot be reached.
	ErrStoreUnavailable = errors.New("database unavailable")
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

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors become a
// generic 500 so driver messages never reach the client.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidUserID):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidUserID.Error(), "INVALID_USER_ID")
	case errors.Is(err, ErrInvalidPayload):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidPayload.Error(), "INVALID_PAYLOAD")
	case errors.Is(err, ErrStoreUnavailable):
		return NewHTTPError(http.StatusServiceUnavailable, ErrStoreUnavailable.Error(), "STORE_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
