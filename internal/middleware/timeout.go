package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// Timeout installs a deadline on every request context. Store operations
// are the only blocking calls, and they all take the request context, so a
// stuck database makes the driver return context.DeadlineExceeded instead
// of hanging the handler.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
