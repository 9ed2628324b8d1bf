package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeUnknown, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeTokenExpired, http.StatusUnauthorized},
		{ErrCodeInvalidCredentials, http.StatusUnauthorized},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeConflict, http.StatusConflict},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodeInsufficientStock, http.StatusUnprocessableEntity},
		{ErrCodeEmptyBasket, http.StatusUnprocessableEntity},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		domain string
		wire   string
	}{
		{"NOT_FOUND", ErrCodeNotFound},
		{"ALREADY_EXISTS", ErrCodeAlreadyExists},
		{"INSUFFICIENT_STOCK", ErrCodeInsufficientStock},
		{"EMPTY_BASKET", ErrCodeEmptyBasket},
		{"INVALID_CREDENTIALS", ErrCodeInvalidCredentials},
		{"TOKEN_MAX_REFRESH", ErrCodeTokenInvalid},
		{"INVALID_PASSWORD", ErrCodeInvalidInput},
		// Already-normalized or unknown codes pass through unchanged
		{ErrCodeNotFound, ErrCodeNotFound},
		{"SOMETHING_ELSE", "SOMETHING_ELSE"},
	}

	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			assert.Equal(t, tt.wire, NormalizeErrorCode(tt.domain))
		})
	}
}

func TestResponseSerialization(t *testing.T) {
	t.Run("success response omits error", func(t *testing.T) {
		resp := NewSuccessResponse(map[string]string{"name": "Guitar"})
		raw, err := json.Marshal(resp)
		assert.NoError(t, err)
		assert.Contains(t, string(raw), `"success":true`)
		assert.NotContains(t, string(raw), `"error"`)
	})

	t.Run("error response carries request ID", func(t *testing.T) {
		resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Resource not found", "req-123")
		raw, err := json.Marshal(resp)
		assert.NoError(t, err)
		assert.Contains(t, string(raw), `"request_id":"req-123"`)
		assert.NotContains(t, string(raw), `"data"`)
	})

	t.Run("meta computes total pages", func(t *testing.T) {
		resp := NewSuccessResponseWithMeta([]string{}, 45, 2, 20)
		assert.Equal(t, 3, resp.Meta.TotalPages)
	})
}
