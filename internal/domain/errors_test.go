package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	cause := errors.New("connection refused")

	assert.Equal(t, "skipapi.ListSkips: Failed to fetch skips: connection refused",
		Unavailable(cause, "skipapi.ListSkips", "Failed to fetch skips").Error())
	assert.Equal(t, "Bad selection", Invalid("", "Bad selection").Error())
}

func TestAsError(t *testing.T) {
	nf := NotFound("GET /booking/x", "step", "x")
	wrapped := fmt.Errorf("routing: %w", nf)

	assert.Same(t, nf, AsError(wrapped))

	raw := errors.New("boom")
	e := AsError(raw)
	assert.Equal(t, EINTERNAL, e.Code)
	assert.ErrorIs(t, e, raw)
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "", ErrorCode(nil))
	assert.Equal(t, EINTERNAL, ErrorCode(errors.New("boom")))
	assert.Equal(t, ERATELIMIT, ErrorCode(fmt.Errorf("wrapped: %w", RateLimit("middleware.RateLimiter"))))
	assert.Equal(t, EFORBIDDEN, ErrorCode(Forbidden("csrf", "no")))
}

func TestError_PublicMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"not found names the resource", NotFound("op", "step", "teleport"), `No step named "teleport".`},
		{"rate limit", RateLimit("op"), "Too many requests. Please try again later."},
		{"internal is hidden", Internal(errors.New("sql: no rows"), "op", "lookup failed"), genericMessage},
		{"empty message is generic", &Error{Code: EINVALID}, genericMessage},
		{"not implemented", NotImplemented("op", "Not yet"), "Not yet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.PublicMessage())
		})
	}
}

func TestNewValidationError(t *testing.T) {
	ve := NewValidationError("SkipHandler.Continue", "skip_id", "Select a skip")

	assert.Equal(t, map[string]string{"skip_id": "Select a skip"}, ve.Fields)
	assert.Contains(t, ve.Error(), "SkipHandler.Continue")
}
