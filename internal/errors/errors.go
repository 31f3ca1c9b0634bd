package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidInput is returned for requests that fail validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrProfileNotFound is returned when a talent has not created a profile yet.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrInvalidRole is returned for roles outside EMPLOYER and TALENT.
	ErrInvalidRole = errors.New("invalid role")
	// ErrEmptyResume is returned when there is no resume text to work with.
	ErrEmptyResume = errors.New("resume text is empty")
	// ErrUnsupportedFormat is returned for resume files that cannot be read.
	ErrUnsupportedFormat = errors.New("unsupported resume format")
	// ErrFileTooLarge is returned for uploads over the size limit.
	ErrFileTooLarge = errors.New("file exceeds 5 MiB")
	// ErrAIUnavailable is returned when no language model is configured or it failed.
	ErrAIUnavailable = errors.New("AI service unavailable")
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

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_INPUT")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrProfileNotFound):
		return NewHTTPError(http.StatusNotFound, ErrProfileNotFound.Error(), "PROFILE_NOT_FOUND")
	case errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidRole.Error(), "INVALID_ROLE")
	case errors.Is(err, ErrEmptyResume):
		return NewHTTPError(http.StatusBadRequest, ErrEmptyResume.Error(), "EMPTY_RESUME")
	case errors.Is(err, ErrUnsupportedFormat):
		return NewHTTPError(http.StatusUnsupportedMediaType, ErrUnsupportedFormat.Error(), "UNSUPPORTED_FORMAT")
	case errors.Is(err, ErrFileTooLarge):
		return NewHTTPError(http.StatusRequestEntityTooLarge, ErrFileTooLarge.Error(), "FILE_TOO_LARGE")
	case errors.Is(err, ErrAIUnavailable):
		return NewHTTPError(http.StatusServiceUnavailable, ErrAIUnavailable.Error(), "AI_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
