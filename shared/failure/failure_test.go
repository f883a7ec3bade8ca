package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"homestay/shared/failure"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("bad body")), code: http.StatusBadRequest, message: "bad body"},
		{name: "bad request from string", err: failure.BadRequestFromString("check_in is required"), code: http.StatusBadRequest, message: "check_in is required"},
		{name: "unauthorized", err: failure.Unauthorized("token expired"), code: http.StatusUnauthorized, message: "token expired"},
		{name: "internal", err: failure.InternalError(errors.New("db down")), code: http.StatusInternalServerError, message: "db down"},
		{name: "unimplemented", err: failure.Unimplemented("Refund"), code: http.StatusNotImplemented, message: "Refund"},
		{name: "not found", err: failure.NotFound("booking"), code: http.StatusNotFound, message: "booking"},
		{name: "conflict", err: failure.Conflict("dates taken"), code: http.StatusConflict, message: "dates taken"},
		{name: "forbidden", err: failure.Forbidden("not yours"), code: http.StatusForbidden, message: "not yours"},
		{name: "sentinel", err: failure.New(http.StatusConflict, "invalid transition"), code: http.StatusConflict, message: "invalid transition"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestNilErrorsStayNil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode(t *testing.T) {
	sentinel := failure.New(http.StatusNotFound, "intent not found")

	assert.Equal(t, http.StatusNotFound, failure.GetCode(fmt.Errorf("claim: %w", sentinel)))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain")))
	assert.Equal(t, http.StatusTooManyRequests, failure.GetCode(failure.TooManyRequestsError))
}

func TestGetMessage(t *testing.T) {
	sentinel := failure.New(http.StatusConflict, "dates overlap")

	assert.Equal(t, "dates overlap", failure.GetMessage(fmt.Errorf("stage: %w", sentinel)))
	assert.Equal(t, "Internal Server Error", failure.GetMessage(errors.New("connection reset")))
	assert.True(t, errors.Is(fmt.Errorf("wrap: %w", sentinel), sentinel))
}
