package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Logger 请求日志中间件
// 设计说明：
// 1. 为每个请求生成唯一请求ID（写入上下文和响应头），便于排查问题
// 2. 记录方法、路径、状态码、耗时、客户端IP
// 3. 不记录请求体和敏感字段
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 生成请求ID
		requestID := uuid.New().String()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		startTime := time.Now()

		c.Next()

		latency := time.Since(startTime)

		// 提取错误信息（如果有）
		var errMsg string
		if len(c.Errors) > 0 {
			errMsg = " | " + c.Errors.String()
		}

		log.Printf("[HTTP] %s | %3d | %13v | %15s | %-7s %s%s",
			requestID,
			c.Writer.Status(),
			latency,
			c.ClientIP(),
			c.Request.Method,
			c.Request.URL.Path,
			errMsg,
		)

		// 慢请求告警
		if latency > 3*time.Second {
			log.Printf("[WARN] 慢请求: %s %s 耗时 %v",
				c.Request.Method, c.Request.URL.Path, latency)
		}
	}
}
