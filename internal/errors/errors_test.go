package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatusFromErr(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "validation", err: NewError("bad date").Mark(ErrValidation), status: http.StatusBadRequest, code: ErrCodeValidation},
		{name: "not found", err: NewError("missing").Mark(ErrNotFound), status: http.StatusNotFound, code: ErrCodeNotFound},
		{name: "duplicate", err: NewError("dup").Mark(ErrAlreadyExists), status: http.StatusConflict, code: ErrCodeAlreadyExists},
		{name: "permission", err: NewError("denied").Mark(ErrPermissionDenied), status: http.StatusForbidden, code: ErrCodePermissionDenied},
		{name: "lock timeout", err: NewError("lock").Mark(ErrConcurrency), status: http.StatusServiceUnavailable, code: ErrCodeConcurrency},
		{name: "database", err: WithError(errors.New("conn reset")).Mark(ErrDatabase), status: http.StatusInternalServerError, code: ErrCodeDatabase},
		{name: "unmarked", err: errors.New("boom"), status: http.StatusInternalServerError, code: ErrCodeSystemError},
		{
			name:   "validation wins over a wrapped not found",
			err:    WithError(NewError("missing").Mark(ErrNotFound)).Mark(ErrValidation),
			status: http.StatusBadRequest,
			code:   ErrCodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// repeated to catch any dependence on map iteration order
			for i := 0; i < 20; i++ {
				assert.Equal(t, tt.status, HTTPStatusFromErr(tt.err))
				assert.Equal(t, tt.code, CodeFromErr(tt.err))
			}
		})
	}
}

func TestNewErrorResponse(t *testing.T) {
	err := NewError("agreement not found").
		WithHint("Agreement agr_1 was not found").
		WithReportableDetails(map[string]any{"agreement_id": "agr_1"}).
		Mark(ErrNotFound)

	resp := NewErrorResponse(err)
	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "Agreement agr_1 was not found", resp.Error.Display)
	require.NotNil(t, resp.Error.Details)
	assert.Equal(t, "agr_1", resp.Error.Details["agreement_id"])
}

func TestNewErrorResponse_HidesInternalMessage(t *testing.T) {
	resp := NewErrorResponse(WithError(errors.New("pq: password authentication failed")).Mark(ErrDatabase))
	assert.Equal(t, "An unexpected error occurred", resp.Error.Display)
	assert.Nil(t, resp.Error.Details)
}
