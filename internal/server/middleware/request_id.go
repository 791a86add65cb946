package middleware

import (
	"github.com/gin-gonic/gin"

	"notesum/internal/pkg/id"
)

const (
	// RequestIDKey gin context 中的请求ID键
	RequestIDKey = "request_id"
	// RequestIDHeader 请求ID头
	RequestIDHeader = "X-Request-ID"
)

// RequestID 请求ID中间件
// 沿用客户端传入的合法 UUID，否则生成新的
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if !id.IsValid(rid) {
			rid = id.New()
		}

		c.Set(RequestIDKey, rid)
		c.Header(RequestIDHeader, rid)
		c.Next()
	}
}
