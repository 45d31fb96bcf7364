package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// DefaultTimeout bounds request processing when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Timeout returns a middleware that attaches a deadline to the request
// context. Handlers are expected to honour it; if the deadline passes and
// the handler wrote nothing, the middleware answers 504 with a JSON error.
// A non-positive timeout disables the middleware.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			AbortWithError(c, http.StatusGatewayTimeout)
		}
	}
}
