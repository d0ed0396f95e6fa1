package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/fisker/webdb-console/pkg/logger"
	"github.com/gin-gonic/gin"
)

// MsgInternalError is the only detail a client sees after a panic.
const MsgInternalError = "Erro interno do servidor."

// RecoveryMiddleware 自定义错误恢复中间件，打印详细的错误信息
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		err, ok := recovered.(error)
		if !ok {
			err = fmt.Errorf("%v", recovered)
		}

		requestMethod := c.Request.Method
		requestPath := c.Request.URL.Path
		requestQuery := c.Request.URL.RawQuery

		fullURL := requestPath
		if requestQuery != "" {
			fullURL = fmt.Sprintf("%s?%s", requestPath, requestQuery)
		}

		logger.Errorf(
			"Panic recovered: %v\n"+
				"  Request: %s %s\n"+
				"  Client IP: %s\n"+
				"  User-Agent: %s\n"+
				"  Request ID: %s\n"+
				"  Stack Trace:\n%s",
			err,
			requestMethod,
			fullURL,
			c.ClientIP(),
			c.Request.UserAgent(),
			c.GetString(RequestIDKey),
			string(debug.Stack()),
		)

		c.String(http.StatusInternalServerError, MsgInternalError)
		c.Abort()
	})
}
