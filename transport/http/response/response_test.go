package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"homestay/shared/failure"
	"homestay/transport/http/response"
)

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     int
		expected string
	}{
		{
			name:     "failure",
			err:      failure.Conflict("dates taken"),
			code:     http.StatusConflict,
			expected: `{"error":"dates taken"}`,
		},
		{
			name:     "wrapped failure",
			err:      fmt.Errorf("stage: %w", failure.NotFound("reservation not found")),
			code:     http.StatusNotFound,
			expected: `{"error":"reservation not found"}`,
		},
		{
			name:     "internal error text is hidden",
			err:      errors.New("pq: connection refused"),
			code:     http.StatusInternalServerError,
			expected: `{"error":"Internal Server Error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			response.WithError(rec, tt.err)

			assert.Equal(t, tt.code, rec.Code)
			assert.JSONEq(t, tt.expected, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithJSON(rec, http.StatusOK, map[string]int{"nights": 2})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"nights":2}}`, rec.Body.String())
}

func TestWithRaw(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithRaw(rec, http.StatusOK, map[string]string{"RspCode": "00", "Message": "Confirm Success"})

	assert.JSONEq(t, `{"RspCode":"00","Message":"Confirm Success"}`, rec.Body.String())
}
