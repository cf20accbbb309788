package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"community-feed-api/internal/response"
)

// Recovery turns a handler panic into a 500 envelope and logs where it happened
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			fields := []zap.Field{
				zap.String("panic", fmt.Sprint(rec)),
				zap.String("panic_type", fmt.Sprintf("%T", rec)),
				zap.String("method", c.Request.Method),
				zap.String("route", c.FullPath()),
				zap.String("path", c.Request.URL.Path),
				zap.Stack("stacktrace"),
			}
			if userID, ok := c.Get("user_id"); ok {
				fields = append(fields, zap.Any("user_id", userID))
			}
			logger.Error("Recovered from handler panic", fields...)

			if c.Writer.Written() {
				c.Abort()
				return
			}
			response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Internal server error")
			c.Abort()
		}()

		c.Next()
	}
}
