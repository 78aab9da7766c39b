package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/csvvault/pkg/context"
	"github.com/yeisme/csvvault/pkg/internal/storage"
)

// StorageMiddleware 把存储管理器放入请求上下文，供健康检查使用.
func StorageMiddleware(manager *storage.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.WithStorageManager(c.Request.Context(), manager)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
