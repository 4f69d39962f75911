package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name            string
		originalError   error
		message         string
		expectedMessage string
	}{
		{
			name:            "wrap simple error",
			originalError:   errors.New("original error"),
			message:         "wrapper message",
			expectedMessage: "wrapper message: original error",
		},
		{
			name:            "empty wrapper message",
			originalError:   errors.New("original error"),
			message:         "",
			expectedMessage: ": original error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrappedError := WrapError(tt.originalError, tt.message)
			assert.Error(t, wrappedError)
			assert.Equal(t, tt.expectedMessage, wrappedError.Error())
			assert.ErrorIs(t, wrappedError, tt.originalError)
		})
	}
}

func TestWrapError_Nil(t *testing.T) {
	assert.NoError(t, WrapError(nil, "wrapper message"))
	assert.NoError(t, WrapErrorf(nil, "wrapper %d", 1))
}

func TestWrapErrorf(t *testing.T) {
	base := errors.New("boom")
	err := WrapErrorf(base, "fetch %s", "abc")
	assert.Equal(t, "fetch abc: boom", err.Error())
	assert.ErrorIs(t, err, base)
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("room_id", "", "must not be empty")

	assert.Equal(t, "validation failed for field 'room_id': must not be empty (value: )", err.Error())
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, fmt.Errorf("outer: %w", err), ErrInvalidInput)
}

func TestConfigurationError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ConfigurationError
		expected string
	}{
		{"section and field", NewConfigurationError("storage_config", "driver", "unknown"), "configuration error in section 'storage_config', field 'driver': unknown"},
		{"section only", NewConfigurationError("storage_config", "", "missing"), "configuration error in section 'storage_config': missing"},
		{"reason only", NewConfigurationError("", "", "bad"), "configuration error: bad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrInvalidConfiguration)
		})
	}
}

func TestNetworkError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewNetworkError("https://api.figma.com/v1/files/abc", "request failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestStatusCodeOf(t *testing.T) {
	httpErr := NewHTTPErrorWithURL(http.StatusForbidden, "Invalid token", "https://api.figma.com/v1/files/abc")

	assert.Equal(t, http.StatusForbidden, StatusCodeOf(httpErr))
	assert.Equal(t, http.StatusForbidden, StatusCodeOf(fmt.Errorf("outer: %w", httpErr)))
	assert.Equal(t, 0, StatusCodeOf(errors.New("plain")))
	assert.Equal(t, "HTTP 403 error for 'https://api.figma.com/v1/files/abc': Invalid token", httpErr.Error())
}
