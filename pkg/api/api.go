// Package api 把 HTTP 接口挂载到 gin 引擎，是 router 与 handle 的组装入口.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/csvvault/pkg/configs"
	"github.com/yeisme/csvvault/pkg/internal/handle"
	"github.com/yeisme/csvvault/pkg/internal/router"
	"github.com/yeisme/csvvault/pkg/internal/service"
	"github.com/yeisme/csvvault/pkg/middleware"
)

// RegisterGroup 注册文件接口、健康检查与 swagger 文档. svc 为 nil 时文件接口返回 501.
func RegisterGroup(e *gin.Engine, cfg *configs.AppConfig, svc *service.FileService) *gin.Engine {
	var handlers router.FileHandlers
	if svc != nil {
		handlers = handle.NewFileHandlers(svc, cfg.Server.Debug)
	}

	root := e.Group("")

	router.RegisterFilesRoutes(root.Group("", middleware.BodyLimitMiddleware(cfg.Upload.MaxSize)), handlers)
	router.RegisterHealthCheckRoute(root)
	router.RegisterSwaggerRoute(e, cfg.Server)

	return e
}
