package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emrekaya/clubsphere/internal/app/models/dto"
	"github.com/emrekaya/clubsphere/internal/pkg/apperrors"
)

func handleError(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("GET", "/", nil)

	HandleAPIError(c, err)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder.Code, body
}

func TestHandleAPIError_StatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"event not found", apperrors.ErrEventNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"member not found", apperrors.ErrMemberNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"notification not found", apperrors.ErrNotificationNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"event full", apperrors.ErrEventFull, http.StatusConflict, dto.ErrorCodeEventFull},
		{"event started", apperrors.ErrEventStarted, http.StatusConflict, dto.ErrorCodeEventStarted},
		{"email exists", apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"forbidden", apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"not authenticated", apperrors.ErrNotAuthenticated, http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
		{"token expired", apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{"token revoked", apperrors.ErrTokenRevoked, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
		{"validation failed", apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"bad request", apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeResourceInvalid},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := handleError(t, tc.err)
			assert.Equal(t, tc.wantStatus, status)
			require.NotNil(t, body.Error)
			assert.Equal(t, tc.wantCode, body.Error.Code)
			assert.NotEmpty(t, body.Error.Message)
		})
	}
}

func TestHandleAPIError_WrappedCustomError(t *testing.T) {
	err := apperrors.NewCustomError(apperrors.ErrEventFull, "No spots left for this event")

	status, body := handleError(t, err)
	assert.Equal(t, http.StatusConflict, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, dto.ErrorCodeEventFull, body.Error.Code)
	assert.Equal(t, "No spots left for this event", body.Error.Message)
}

func TestHandleAPIError_CustomErrorDetails(t *testing.T) {
	err := apperrors.NewCustomError(apperrors.ErrValidationFailed, "Registration form is invalid").
		WithDetails(map[string]interface{}{"field": "teamName"})

	status, body := handleError(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, body.Error)
	assert.NotNil(t, body.Error.Details)
}

func TestHandleAPIError_ForbiddenHelper(t *testing.T) {
	status, body := handleError(t, apperrors.NewForbiddenError("Only registered attendees can access the event chat"))
	assert.Equal(t, http.StatusForbidden, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, "Only registered attendees can access the event chat", body.Error.Message)
}
