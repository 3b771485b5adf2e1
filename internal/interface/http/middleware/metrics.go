package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/libraryapi/pkg/metrics"
)

// Metrics HTTP请求指标中间件
// 记录三类指标:
// 1. 请求总数(method/path/status标签)
// 2. 请求耗时分布
// 3. 处理中的请求数
//
// path用路由模板(/api/books/:id)而不是真实URL，避免高基数标签
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.HTTPRequestsInProgress.Inc()

		c.Next()

		metrics.HTTPRequestsInProgress.Dec()

		path := c.FullPath()
		if path == "" {
			// 未匹配到路由(404)，归并到一个固定标签
			path = "unmatched"
		}

		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
