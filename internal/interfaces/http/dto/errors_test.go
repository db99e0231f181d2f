package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodePreferencesNotFound, http.StatusNotFound},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeInvalidCredentials, http.StatusUnauthorized},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeEventFull, http.StatusUnprocessableEntity},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"INVALID_TITLE", http.StatusBadRequest},
		{"SOMETHING_NEW", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewListResponse(t *testing.T) {
	resp := NewListResponse([]string{"a", "b"}, 2)

	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Rows)
	assert.Equal(t, 2, *resp.Rows)
	assert.Nil(t, resp.Error)
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodePreferencesNotFound, "Preferences not found", "req-123")

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodePreferencesNotFound, resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-1", []ValidationDetail{
		{Field: "latitude", Message: "must be between -90 and 90"},
	})

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Len(t, resp.Error.Details, 1)
}

func TestErrorEnvelopeMirrorsMessage(t *testing.T) {
	resp := NewErrorResponse(ErrCodePreferencesNotFound, "Preferences not found")

	assert.False(t, resp.Success)
	assert.Equal(t, "Preferences not found", resp.Message)
	assert.Equal(t, "Preferences not found", resp.Error.Message)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var flat struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(raw, &flat))
	assert.False(t, flat.Success)
	assert.Equal(t, "Preferences not found", flat.Message)
}
