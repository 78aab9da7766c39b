package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterFilesRoutes 注册文件相关路由，handlers 为 nil 时使用 501 占位实现.
//
//	GET  /files      -> List
//	POST /files      -> Upload
//	GET  /files/:id  -> Get
func RegisterFilesRoutes(g *gin.RouterGroup, handlers FileHandlers) {
	if handlers == nil {
		handlers = placeholder{}
	}

	filesRoutes := g.Group("/files")
	{
		filesRoutes.GET("", handlers.List())
		filesRoutes.POST("", handlers.Upload())
		filesRoutes.GET("/:id", handlers.Get())
	}
}
