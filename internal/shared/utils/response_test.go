package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civictrack/civictrack/internal/shared/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func respond(t *testing.T, err error) (int, APIResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	ErrorResponseWithError(c, err)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestErrorResponseWithError_AppErrors(t *testing.T) {
	tests := []struct {
		err      error
		wantCode int
		wantType string
	}{
		{errors.NewValidationError("bad"), http.StatusBadRequest, "validation_error"},
		{errors.NewNotFoundError("missing"), http.StatusNotFound, "not_found"},
		{errors.NewForbiddenError("nope"), http.StatusForbidden, "forbidden"},
		{errors.NewConflictError("stale"), http.StatusConflict, "conflict"},
	}
	for _, tt := range tests {
		code, resp := respond(t, tt.err)
		assert.Equal(t, tt.wantCode, code)
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, tt.wantType, resp.Error.Type)
	}
}

func TestErrorResponseWithError_HidesInternalDetails(t *testing.T) {
	code, resp := respond(t, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "internal_error", resp.Error.Type)
	assert.NotContains(t, resp.Error.Message, assert.AnError.Error())
}

func TestValidateStruct_UsesJSONNames(t *testing.T) {
	type payload struct {
		Rating int `json:"rating" validate:"gte=1,lte=5"`
	}

	err := ValidateStruct(payload{Rating: 9})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, errors.GetAppError(err).Details, "rating must be less than or equal to 5")
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "a***@city.gov", MaskEmail("alice@city.gov"))
	assert.Equal(t, "a***@city.gov", MaskEmail("a@city.gov"))
	assert.Equal(t, "***", MaskEmail("not-an-email"))
}
