// Package middleware provides HTTP middleware components.
package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"backoffice/internal/core/apperror"
	"backoffice/pkg/logger"
)

// Recovery turns a handler panic into a 500 rendered by ErrorHandler.
// The stack goes to the log only.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			requestID := c.GetString(KeyRequestID)
			logger.FromContext(c.Request.Context()).Errorw("panic in handler",
				"panic", r,
				"method", c.Request.Method,
				"route", c.FullPath(),
				"request_id", requestID,
				"stack", string(debug.Stack()),
			)

			appErr := apperror.NewInternal(fmt.Errorf("panic: %v", r)).WithDetail("request_id", requestID)
			if c.Writer.Written() {
				c.Abort()
				return
			}
			_ = c.Error(appErr)
			c.Abort()
		}()
		c.Next()
	}
}
