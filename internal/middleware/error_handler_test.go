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

	"github.com/guttosm/badge-service/internal/domain/dto"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name           string
		handler        gin.HandlerFunc
		expectedStatus int
		expectedBody   string
		expectJSON     bool
	}{
		{
			name: "no errors passes through",
			handler: func(c *gin.Context) {
				c.String(http.StatusOK, "ok")
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "ok",
		},
		{
			name: "unwritten error becomes 500",
			handler: func(c *gin.Context) {
				_ = c.Error(errors.New("render failed"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectJSON:     true,
		},
		{
			name: "written response is kept",
			handler: func(c *gin.Context) {
				_ = c.Error(errors.New("late failure"))
				c.AbortWithStatus(http.StatusBadRequest)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			w := serve(func(r *gin.Engine) {
				r.Use(ErrorHandler())
				r.GET("/", tt.handler)
			}, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if !tt.expectJSON {
				assert.Equal(t, tt.expectedBody, w.Body.String())
				return
			}
			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, dto.ErrCodeInternal, resp.Error)
			assert.Equal(t, "An unexpected error occurred", resp.Message)
		})
	}
}

func TestNotFound(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/a/b/c", nil)
	req.Header.Set("Accept-Language", "nl")

	w := serve(func(r *gin.Engine) {
		r.Use(RequestID())
		r.NoRoute(NotFound())
	}, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error)
	assert.Equal(t, "Niet gevonden", resp.Message)
	assert.NotEmpty(t, resp.RequestID)
}

func TestAbortWithError_CoversEveryCode(t *testing.T) {
	for code, key := range messageKeys {
		assert.NotEmpty(t, key, code)
	}
	assert.Len(t, messageKeys, 6)
}
