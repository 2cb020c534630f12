package httputil

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/mealguard/internal/errors"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestHandleErrorGin(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "not found",
			err:          apperrors.Wrap(apperrors.ErrNotFound, "account not found"),
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"not_found","message":"The requested resource was not found"}`,
		},
		{
			name:         "conflict",
			err:          apperrors.Wrap(apperrors.ErrConflict, "account already exists"),
			expectedCode: http.StatusConflict,
			expectedBody: `{"error":"conflict","message":"A conflict occurred with existing data"}`,
		},
		{
			name:         "invalid input shows its message",
			err:          apperrors.Wrap(apperrors.ErrInvalidInput, "email: must be a valid email address"),
			expectedCode: http.StatusUnprocessableEntity,
			expectedBody: `{"error":"invalid_input","message":"email: must be a valid email address: invalid input"}`,
		},
		{
			name:         "unauthorized",
			err:          apperrors.Wrap(apperrors.ErrUnauthorized, "token expired"),
			expectedCode: http.StatusUnauthorized,
			expectedBody: `{"error":"unauthorized","message":"Authentication is required"}`,
		},
		{
			name:         "forbidden",
			err:          apperrors.Wrap(apperrors.ErrForbidden, "insufficient permissions"),
			expectedCode: http.StatusForbidden,
			expectedBody: `{"error":"forbidden","message":"You don't have permission to access this resource"}`,
		},
		{
			name:         "too many requests",
			err:          apperrors.ErrTooManyRequests,
			expectedCode: http.StatusTooManyRequests,
			expectedBody: `{"error":"rate_limit_exceeded","message":"Too many requests"}`,
		},
		{
			name:         "internal error hides details",
			err:          errors.New("failed to decrypt phone: message authentication failed"),
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"internal_error","message":"An internal error occurred"}`,
		},
		{
			name: "reclassified input error",
			err: apperrors.Internal(
				apperrors.Wrap(apperrors.ErrInvalidInput, "envelope is malformed"),
				"failed to decrypt phone",
			),
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"internal_error","message":"An internal error occurred"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, nil))
			c, w := newTestContext()

			HandleErrorGin(c, tt.err, logger)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			assert.Contains(t, logs.String(), "request failed")
		})
	}
}

func TestHandleErrorGin_NilError(t *testing.T) {
	c, w := newTestContext()
	HandleErrorGin(c, nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestHandleBadRequestGin(t *testing.T) {
	c, w := newTestContext()
	HandleBadRequestGin(c, errors.New("invalid account id format: must be a valid UUID"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t,
		`{"error":"bad_request","message":"invalid account id format: must be a valid UUID"}`,
		w.Body.String(),
	)
}

func TestHandleValidationErrorGin(t *testing.T) {
	c, w := newTestContext()
	HandleValidationErrorGin(c, errors.New("invalid limit parameter: must be between 1 and 100"), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Contains(t, w.Body.String(), `"validation_error"`)
}
