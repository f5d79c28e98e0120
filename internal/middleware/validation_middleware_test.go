package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emrekaya/clubsphere/internal/app/models/dto"
)

type bindingSample struct {
	Name  string `validate:"required,min=2"`
	Email string `validate:"required,email"`
	Role  string `validate:"oneof=ADMIN MEMBER"`
}

func handleBinding(t *testing.T, err error, message string) (int, dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("POST", "/", nil)

	HandleBindingError(c, err, message)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder.Code, body
}

func TestHandleBindingError_ValidatorErrors(t *testing.T) {
	err := validator.New().Struct(bindingSample{Role: "SUPERUSER"})
	require.Error(t, err)

	status, body := handleBinding(t, err, "Invalid registration data")

	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, dto.ErrorCodeValidationFailed, body.Error.Code)
	assert.Equal(t, "Invalid registration data", body.Error.Message)

	details, ok := body.Error.Details.([]interface{})
	require.True(t, ok)
	require.Len(t, details, 3)
	assert.Contains(t, details, "Name is required")
	assert.Contains(t, details, "Email is required")
	assert.Contains(t, details, "Role must be one of: ADMIN MEMBER")
}

func TestHandleBindingError_MinTag(t *testing.T) {
	err := validator.New().Struct(bindingSample{Name: "x", Email: "a@b.co", Role: "MEMBER"})
	require.Error(t, err)

	_, body := handleBinding(t, err, "Invalid profile data")

	details, ok := body.Error.Details.([]interface{})
	require.True(t, ok)
	require.Len(t, details, 1)
	assert.Equal(t, "Name must be at least 2", details[0])
}

func TestHandleBindingError_NonValidatorError(t *testing.T) {
	status, body := handleBinding(t, errors.New("unexpected EOF"), "Invalid event data")

	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, dto.ErrorCodeValidationFailed, body.Error.Code)
	assert.Equal(t, "unexpected EOF", body.Error.Details)
}
