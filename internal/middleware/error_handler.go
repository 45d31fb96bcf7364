package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/badge-service/internal/domain/dto"
	"github.com/guttosm/badge-service/internal/i18n"
	"github.com/guttosm/badge-service/internal/logger"
)

// ErrorHandler logs errors attached to the gin context and answers with a
// 500 JSON error if the handler wrote nothing.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last()
		requestID := GetRequestID(c)

		log := logger.Logger()
		log.Error().
			Str("request_id", requestID).
			Str("error", err.Error()).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Request error")

		if !c.Writer.Written() {
			AbortWithError(c, http.StatusInternalServerError)
		}
	}
}

// NotFound answers unknown routes with a 404 JSON error.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		AbortWithError(c, http.StatusNotFound)
	}
}

// AbortWithError aborts the request with a translated JSON error for status.
func AbortWithError(c *gin.Context, status int) {
	code := dto.ErrCodeFromStatus(status)
	message := i18n.GetTranslator().Translate(messageKeys[code], i18n.GetLocale(c))
	c.AbortWithStatusJSON(status, dto.NewError(code, message).WithRequestID(GetRequestID(c)))
}

var messageKeys = map[string]string{
	dto.ErrCodeInvalidRequest: i18n.ErrKeyInvalidRequest,
	dto.ErrCodeInternal:       i18n.ErrKeyInternalError,
	dto.ErrCodeNotFound:       i18n.ErrKeyNotFound,
	dto.ErrCodeRateLimit:      i18n.ErrKeyRateLimitExceeded,
	dto.ErrCodeTimeout:        i18n.ErrKeyTimeout,
	dto.ErrCodeUnavailable:    i18n.ErrKeyUnavailable,
}
