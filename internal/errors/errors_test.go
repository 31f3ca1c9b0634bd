package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("%w: text is empty", ErrInvalidInput), http.StatusBadRequest, "INVALID_INPUT"},
		{ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{fmt.Errorf("load: %w", ErrProfileNotFound), http.StatusNotFound, "PROFILE_NOT_FOUND"},
		{ErrInvalidRole, http.StatusBadRequest, "INVALID_ROLE"},
		{ErrEmptyResume, http.StatusBadRequest, "EMPTY_RESUME"},
		{fmt.Errorf("extract: %w", ErrUnsupportedFormat), http.StatusUnsupportedMediaType, "UNSUPPORTED_FORMAT"},
		{ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{ErrAIUnavailable, http.StatusServiceUnavailable, "AI_UNAVAILABLE"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.status, got.StatusCode)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, got.Message, got.ToErrorResponse().Error)
		})
	}
}

func TestMapErrorToHTTP_HidesInternalDetails(t *testing.T) {
	got := MapErrorToHTTP(errors.New("dial tcp 10.0.0.1:3306: refused"))
	assert.Equal(t, "internal server error", got.Message)
}
