package middleware

import (
	"errors"
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"

	"gavel/internal/shared/constants"
	"gavel/internal/shared/logger"
	"gavel/internal/shared/utils"
)

// Recovery converts panics into the standard error envelope. Writes against a
// dead client connection are logged and aborted without a response, since
// there is nobody left to answer.
func Recovery(log logger.Interface) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"client_ip", c.ClientIP(),
			"error", recovered,
		}
		if requestID := c.Request.Header.Get(constants.HeaderXRequestID); requestID != "" {
			fields = append(fields, "request_id", requestID)
		}

		if clientGone(recovered) {
			log.Warnw("client connection lost mid-request", fields...)
			c.Abort()
			return
		}

		fields = append(fields, "stack", string(debug.Stack()))
		log.Errorw("panic recovered", fields...)

		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error occurred")
	})
}

// clientGone reports whether the recovered value is a write to a closed
// connection rather than a real panic.
func clientGone(recovered interface{}) bool {
	err, ok := recovered.(error)
	if !ok {
		return false
	}

	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		return false
	}

	var syscallErr *os.SyscallError
	if !errors.As(opErr.Err, &syscallErr) {
		return false
	}

	msg := strings.ToLower(syscallErr.Error())
	return strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "connection reset by peer") ||
		strings.Contains(msg, "connection refused")
}

// ErrorHandler answers errors that handlers attached to the context without
// writing a response themselves.
func ErrorHandler(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		log.Errorw("unhandled request error",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)

		if !c.Writer.Written() {
			utils.ErrorResponseWithError(c, err)
		}
	}
}
