package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware CORS中间件，允许任意来源并暴露请求 ID 与 Location 头.
func CORSMiddleware() gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AddAllowHeaders(HeaderRequestID)
	config.AddExposeHeaders(HeaderRequestID, "Location")

	return cors.New(config)
}
