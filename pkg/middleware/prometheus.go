package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/csvvault/pkg/metrics"
)

// PrometheusMiddleware Prometheus监控中间件. 路径标签使用路由模板，未匹配的请求记为 "unmatched".
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		metrics.InFlightRequests.Inc()
		defer metrics.InFlightRequests.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.ObserveRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
