package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	t.Run("message without cause", func(t *testing.T) {
		err := ErrNotFound("snapshot missing", nil)
		assert.Equal(t, "snapshot missing", err.Error())
		assert.Equal(t, http.StatusNotFound, GetStatusCode(err))
		assert.Equal(t, ErrCodeNotFound, GetErrorCode(err))
	})

	t.Run("message with cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := ErrInternalError("bridge unavailable", cause)
		assert.Contains(t, err.Error(), "connection refused")
		assert.Equal(t, cause, errors.Unwrap(err))
		assert.Equal(t, "connection refused", GetErrorDetails(err))
	})

	t.Run("errors.Is matches by code", func(t *testing.T) {
		err := ErrUnknownAction("frobnicate")
		assert.True(t, errors.Is(err, &AppError{Code: ErrCodeUnknownAction}))
		assert.False(t, errors.Is(err, &AppError{Code: ErrCodeNotFound}))
	})

	t.Run("plain errors fall back to 500", func(t *testing.T) {
		err := errors.New("boom")
		assert.Equal(t, http.StatusInternalServerError, GetStatusCode(err))
		assert.Empty(t, GetErrorCode(err))
		assert.Equal(t, "boom", GetErrorMessage(err))
	})

	t.Run("constructor panics on wrong range", func(t *testing.T) {
		assert.Panics(t, func() {
			NewClientError(http.StatusInternalServerError, ErrCodeInvalidRequest, "bad", nil)
		})
		assert.Panics(t, func() {
			NewServerError(http.StatusNotFound, ErrCodeInternalError, "bad", nil)
		})
	})
}
