package middleware

import (
	"strconv"
	"time"

	"github.com/fisker/webdb-console/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics 记录请求数和处理时长；endpoint 使用路由模板，避免 id 造成标签爆炸
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		method := c.Request.Method

		metrics.APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.APIRequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
	}
}
