package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantName   string
	}{
		{"validation", ValidationError("bad input"), http.StatusBadRequest, "ValidationError"},
		{"unauthorized", UnauthorizedError("no token"), http.StatusUnauthorized, "UnauthorizedError"},
		{"forbidden", ForbiddenError("not yours"), http.StatusForbidden, "ForbiddenError"},
		{"not found", NotFoundError("Account not found"), http.StatusNotFound, "NotFoundError"},
		{"conflict", ConflictError("already exists"), http.StatusConflict, "ConflictError"},
		{"plain error", errors.New("pq: connection refused"), http.StatusInternalServerError, "InternalServerError"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantName, body.Error)
		})
	}
}

func TestWriteErrorWrappedAPIError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, fmt.Errorf("lookup failed: %w", NotFoundError("Category not found")))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWriteErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errors.New("dial tcp 10.0.0.5:5432: connect: connection refused"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Internal Server Error", body.Message)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"hello":"world"}`, rec.Body.String())
}
