package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/AbrahamLara/chat-app-backend/internal/transport/httpdto"
	"github.com/AbrahamLara/chat-app-backend/pkg/logger"
)

// ErrorHandler is a last-resort net for handlers that record errors on
// the gin context instead of writing a response. The internal cause is
// logged, never returned.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		if l != nil {
			l.Errorf("request error: %s", err.Error())
		}
		if !c.Writer.Written() {
			c.JSON(c.Writer.Status(), httpdto.NewErrorResponse("internal error", httpdto.CodeInternalError))
		}
	}
}
