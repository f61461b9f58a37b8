package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeaders 安全 HTTP 头中间件
// 接口只返回 JSON 与 xlsx 附件，CSP 禁止加载任何子资源；
// 规划类接口的响应依赖请求体，禁止中间缓存
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		c.Header("Cross-Origin-Resource-Policy", "cross-origin")
		if c.Request.Method == "POST" {
			c.Header("Cache-Control", "no-store")
		}

		c.Next()
	}
}
