package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/booklib/pkg/metrics"
)

// Metrics HTTP指标采集中间件
// 设计说明：
// 路径标签用路由模板（如/api/v1/users/:userId）而不是实际路径，
// 否则每个用户ID都会产生一条新的时间序列，基数爆炸
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			// 未匹配到路由（404），归并到一个固定标签
			path = "unmatched"
		}

		m.ObserveHTTPRequest(
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(startTime),
		)
	}
}
